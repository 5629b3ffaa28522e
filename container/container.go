package container

import (
	"github.com/donorflow/server/config"
	"github.com/donorflow/server/persistence"
	"github.com/donorflow/server/persistence/inmem"
	rd "github.com/donorflow/server/persistence/redis"
)

type DIContainer struct {
	initialized bool
	flowStorage persistence.FlowStorage
}

func NewDiContainer() *DIContainer {
	return &DIContainer{
		initialized: false,
	}
}

func (d *DIContainer) setInitialized() {
	d.initialized = true
}

func (d *DIContainer) Init(conf config.Config) {
	defer d.setInitialized()

	switch conf.StorageType {
	case config.STORAGE_TYPE_REDIS:
		rdConf := rd.Config{
			Addrs:     conf.RedisConfig.Addrs,
			Namespace: conf.RedisConfig.Namespace,
		}
		d.flowStorage = rd.NewRedisFlowStorage(rdConf)
	default:
		d.flowStorage = inmem.NewInMemFlowStorage()
	}
}

func (d *DIContainer) GetFlowStorage() persistence.FlowStorage {
	if !d.initialized {
		panic("persistence not initalized")
	}
	return d.flowStorage
}
