package components

import (
	"tablebook/internal/handler"
	"tablebook/internal/handler/api"
	"tablebook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewHoldHandler,
		api.NewReservationHandler,
		api.NewVenueHandler,
		middleware.NewLinkTokenMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
