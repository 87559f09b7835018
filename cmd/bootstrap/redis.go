package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"stagebook/internal/infra/notify"
	"stagebook/internal/pkg/config"
	"stagebook/internal/usecase/commands"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		fx.Annotate(
			notify.NewRedisNotifier,
			fx.As(new(commands.Notifier)),
		),
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := notify.NewRedisClient(cfg.Redis)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
