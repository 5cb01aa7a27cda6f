package stage

import (
	"github.com/google/wire"

	"github.com/zeusync/entitypool/internal/assets"
	"github.com/zeusync/entitypool/internal/config"
	"github.com/zeusync/entitypool/internal/core/events/bus"
	"github.com/zeusync/entitypool/internal/core/observability/log"
	"github.com/zeusync/entitypool/internal/core/observability/poolobs"
	"github.com/zeusync/entitypool/internal/core/pool"
	"github.com/zeusync/entitypool/internal/core/registry"
	"github.com/zeusync/entitypool/internal/gameobjects"
)

// ProviderSet builds a Stage from a *config.Config.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideCatalog,
	ProvideBus,
	ProvideRegistry,
	New,
	wire.Bind(new(log.Log), new(*log.Logger)),
	wire.Bind(new(assets.Source), new(*assets.Catalog)),
)

// ProvideLogger builds the process logger. The cleanup flushes it.
func ProvideLogger(cfg *config.Config) (*log.Logger, func(), error) {
	logger, err := log.New(cfg.LogLevel(), log.WithEncoding(cfg.Logging.Format))
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideCatalog(cfg *config.Config) (*assets.Catalog, error) {
	return cfg.Catalog()
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

// ProvideRegistry registers every game object kind, sized from cfg, with pool
// lifecycle forwarded to the logger and the bus.
func ProvideRegistry(cfg *config.Config, src assets.Source, logger log.Log, b bus.EventBus) (*registry.Registry, error) {
	settings, err := cfg.PoolSettings()
	if err != nil {
		return nil, err
	}

	r := registry.New()
	err = gameobjects.RegisterDefaults(r, src, settings,
		pool.WithObserver(poolobs.NewLogObserver(logger)),
		pool.WithObserver(poolobs.NewBusObserver(b, "pool")),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}
