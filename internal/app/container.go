package app

import (
	"context"

	"github.com/afevis/modcheck/internal/domain"
	"github.com/afevis/modcheck/internal/infrastructure/cache"
	"github.com/afevis/modcheck/internal/infrastructure/checks"
	"github.com/afevis/modcheck/internal/infrastructure/config"
	"github.com/afevis/modcheck/internal/infrastructure/env"
	"github.com/afevis/modcheck/internal/infrastructure/history"
	"github.com/afevis/modcheck/internal/pkg/logger"
	"github.com/afevis/modcheck/internal/ports"
	"github.com/afevis/modcheck/internal/services"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	VerifyService  *services.VerifyService
	ConfigProvider ports.ConfigProvider
	CacheStore     ports.WarningCacheStore
	History        ports.WarningHistoryRepository
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph. The prompter and link
// opener are attached by the CLI layer; until then the verify service runs
// silent.
func BuildContainer(ctx context.Context, configPath string, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader(configPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	cacheStore := cache.NewBinaryStore(cfg.CacheFile, log)
	historyStore := history.NewSQLiteStore(cfg.HistoryFile)

	verifyService := &services.VerifyService{
		ConfigProvider: cfgLoader,
		CacheStore:     cacheStore,
		Checker:        checks.New(),
		Env:            env.New(),
		History:        historyStore,
		Logger:         log,
	}

	return &Container{
		VerifyService:  verifyService,
		ConfigProvider: cfgLoader,
		CacheStore:     cacheStore,
		History:        historyStore,
		Logger:         log,
	}, nil
}

// WithInstallDir decorates a config provider so loaded configs check the
// given directory instead of the configured one.
func WithInstallDir(inner ports.ConfigProvider, dir string) ports.ConfigProvider {
	if dir == "" {
		return inner
	}
	return dirOverride{inner: inner, dir: dir}
}

type dirOverride struct {
	inner ports.ConfigProvider
	dir   string
}

func (d dirOverride) Load(ctx context.Context) (domain.Config, error) {
	cfg, err := d.inner.Load(ctx)
	if err == nil {
		cfg.InstallDir = d.dir
	}
	return cfg, err
}
