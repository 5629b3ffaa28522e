package config

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"

type Config struct {
	RedisConfig RedisStorageConfig
	BioService  BioServiceConfig
	HttpPort    int
	StorageType StorageType
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
}

type BioServiceConfig struct {
	ApiUrl         string
	ApiKey         string
	TimeoutSeconds int
}
