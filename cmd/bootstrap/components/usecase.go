package components

import (
	"stagebook/internal/pkg/clock"
	"stagebook/internal/usecase/commands"
	"stagebook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		clock.NewRealClock,
		commands.NewHoldCommands,
		commands.NewProposalCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewTimelineQueries,
	),
)
