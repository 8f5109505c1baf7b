package components

import (
	"court-booking/internal/infra/db"
	"court-booking/internal/infra/repository"
	"court-booking/internal/infra/uow"
	"court-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Pool-backed repositories for read paths outside a transaction.
		// Writes always go through the UnitOfWork.
		fx.Annotate(
			repository.NewCourtRepository,
			fx.As(new(shared.CourtRepository)),
		),
		fx.Annotate(
			repository.NewRequestRepository,
			fx.As(new(shared.RequestRepository)),
		),
		fx.Annotate(
			repository.NewTimeSlotRepository,
			fx.As(new(shared.TimeSlotRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(shared.UserRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
