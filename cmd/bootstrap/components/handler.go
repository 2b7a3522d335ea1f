package components

import (
	"roombook/internal/handler"
	"roombook/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewRoomHandler,
		api.NewUserHandler,
	),
	fx.Invoke(handler.NewRouter),
)
