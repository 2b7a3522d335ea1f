package components

import (
	"roombook/internal/domain/booking"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewBookingPolicy,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewRoomCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewRoomQueries,
		queries.NewUserQueries,
	),
)

func NewBookingPolicy(cfg config.Config) (booking.Policy, error) {
	return booking.NewPolicy(
		cfg.Booking.WorkdayStart,
		cfg.Booking.WorkdayEnd,
		cfg.Booking.MinDurationMin,
		cfg.Booking.MaxDurationMin,
	)
}
