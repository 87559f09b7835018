package bootstrap

import (
	"context"

	"go.uber.org/fx"

	"stagebook/internal/infra/sweeper"
	"stagebook/internal/pkg/config"
	"stagebook/internal/usecase/commands"
)

var SweeperModule = fx.Module("sweeper",
	fx.Provide(
		func(holds *commands.HoldCommands, cfg config.Config) *sweeper.HoldSweeper {
			return sweeper.NewHoldSweeper(holds, cfg.Sweep)
		},
	),
	fx.Invoke(registerSweeper),
)

func registerSweeper(lc fx.Lifecycle, s *sweeper.HoldSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return s.Start()
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			return nil
		},
	})
}
