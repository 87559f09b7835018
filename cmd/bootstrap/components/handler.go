package components

import (
	"stagebook/internal/handler"
	"stagebook/internal/handler/api"
	"stagebook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTimelineHandler,
		api.NewHoldHandler,
		api.NewProposalHandler,
		api.NewTokenHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
