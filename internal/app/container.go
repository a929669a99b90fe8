// Package app wires application services with infrastructure adapters.
package app

import (
	"context"

	"github.com/eufat/snapshell/internal/domain"
	"github.com/eufat/snapshell/internal/infrastructure/ai"
	"github.com/eufat/snapshell/internal/infrastructure/cache"
	"github.com/eufat/snapshell/internal/infrastructure/config"
	"github.com/eufat/snapshell/internal/infrastructure/history"
	"github.com/eufat/snapshell/internal/pkg/logger"
	"github.com/eufat/snapshell/internal/ports"
	"github.com/eufat/snapshell/internal/services"
)

// Container holds the constructed dependency graph.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	Session        *services.SessionService
	Doctor         *services.DoctorService
	HistoryStore   ports.HistoryRepository
	CacheStore     ports.CacheRepository
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph. Configuration is resolved
// once here; nothing downstream reads the environment.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)
	historyStore := history.NewFileStore()
	cacheStore := cache.NewFileCache(cfg.Cache)

	session := &services.SessionService{
		Provider: ai.NewClient(cfg),
		History:  historyStore,
		Cache:    cacheStore,
		Logger:   log,
	}

	doctor := &services.DoctorService{
		ConfigProvider: cfgLoader,
		History:        historyStore,
		Cache:          cacheStore,
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		Session:        session,
		Doctor:         doctor,
		HistoryStore:   historyStore,
		CacheStore:     cacheStore,
		Logger:         log,
	}, nil
}
