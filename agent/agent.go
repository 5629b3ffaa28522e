package agent

import (
	"sync"

	"github.com/donorflow/server/audience"
	"github.com/donorflow/server/config"
	"github.com/donorflow/server/container"
	"github.com/donorflow/server/enrichment"
	"github.com/donorflow/server/flow"
	"github.com/donorflow/server/logger"
	"github.com/donorflow/server/rest"
)

type Agent struct {
	Config       config.Config
	container    *container.DIContainer
	estimator    *audience.Estimator
	flowService  *flow.FlowService
	bioService   *enrichment.Service
	httpServer   *rest.Server
	shutdown     bool
	shutdowns    chan struct{}
	shutdownLock sync.Mutex
	wg           sync.WaitGroup
}

func New(config config.Config) (*Agent, error) {
	a := &Agent{
		Config:    config,
		shutdowns: make(chan struct{}),
	}
	setup := []func() error{
		a.setupContainer,
		a.setupEstimator,
		a.setupFlowService,
		a.setupBioService,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupContainer() error {
	a.container = container.NewDiContainer()
	a.container.Init(a.Config)
	return nil
}

func (a *Agent) setupEstimator() error {
	a.estimator = audience.NewEstimator()
	return nil
}

func (a *Agent) setupFlowService() error {
	a.flowService = flow.NewFlowService(a.container.GetFlowStorage(), a.estimator)
	return nil
}

func (a *Agent) setupBioService() error {
	a.bioService = enrichment.NewService(a.Config.BioService)
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort, a.flowService, a.estimator, a.bioService)
	if err != nil {
		return err
	}
	return nil
}

func (a *Agent) Start() error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.Start(); err != nil {
			select {
			case <-a.shutdowns:
			default:
				logger.Error("http server stopped unexpectedly")
			}
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	logger.Info("shutting down server")
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true
	close(a.shutdowns)

	if err := a.httpServer.Stop(); err != nil {
		return err
	}
	logger.Info("waiting for all services to shutdown...")
	a.wg.Wait()
	return nil
}
