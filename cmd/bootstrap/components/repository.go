package components

import (
	repo_impl "stagebook/internal/infra/repository"
	"stagebook/internal/usecase/commands"
	"stagebook/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(queries.BookingReader)),
		),
		fx.Annotate(
			repo_impl.NewRequestRepository,
			fx.As(new(commands.RequestRepository)),
			fx.As(new(queries.RequestReader)),
		),
		fx.Annotate(
			repo_impl.NewOfferRepository,
			fx.As(new(commands.OfferRepository)),
			fx.As(new(queries.OfferReader)),
		),
		fx.Annotate(
			repo_impl.NewProposalRepository,
			fx.As(new(commands.ProposalRepository)),
			fx.As(new(queries.ProposalReader)),
		),
		fx.Annotate(
			repo_impl.NewHoldRepository,
			fx.As(new(commands.HoldRepository)),
			fx.As(new(queries.HoldReader)),
		),
	),
)
