package components

import (
	"ticketbooth/internal/handler"
	"ticketbooth/internal/handler/api"
	"ticketbooth/internal/handler/middleware"
	"ticketbooth/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig {
			return cfg.Cookie
		},
		api.NewAuthHandler,
		api.NewCartHandler,
		api.NewOrderHandler,
		api.NewTicketHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
