package components

import (
	"tablebook/internal/infra/postgres"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"
	"tablebook/internal/usecase/sweeper"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			postgres.NewTxManager,
			fx.As(new(commands.TxManager)),
		),
		fx.Annotate(
			postgres.NewVenueRepository,
			fx.As(new(commands.VenueRepository)),
			fx.As(new(queries.VenueReadStore)),
		),
		fx.Annotate(
			postgres.NewHoldRepository,
			fx.As(new(commands.HoldRepository)),
			fx.As(new(sweeper.HoldSweepStore)),
		),
		fx.Annotate(
			postgres.NewConflictRepository,
			fx.As(new(commands.ConflictFinder)),
			fx.As(new(queries.ConflictReadStore)),
		),
		fx.Annotate(
			postgres.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			postgres.NewAssignmentRepository,
			fx.As(new(commands.AssignmentRepository)),
		),
		fx.Annotate(
			postgres.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
	),
)
