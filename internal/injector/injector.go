//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/entitypool/internal/config"
	"github.com/zeusync/entitypool/internal/stage"
)

// InitializeStage wires a ready-to-run stage from cfg. The cleanup flushes the logger.
func InitializeStage(cfg *config.Config) (*stage.Stage, func(), error) {
	wire.Build(stage.ProviderSet)
	return nil, nil, nil
}
