package components

import (
	"ticketbooth/internal/infra/cartstore"
	"ticketbooth/internal/infra/payment"
	"ticketbooth/internal/infra/readstore"
	"ticketbooth/internal/infra/uow"
	"ticketbooth/internal/pkg/config"
	"ticketbooth/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	repositoryModule,
	gatewayModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewOrderReads,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewTicketReads,
			fx.As(new(queries.TicketReadStore)),
		),
		fx.Annotate(
			readstore.NewEventReads,
			fx.As(new(queries.EventReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReads,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

// In-process and stubbed adapters behind the same ports a production
// deployment would swap out.
var gatewayModule = fx.Module("persistence/gateway",
	fx.Provide(
		cartstore.NewMemoryStore,
		func(cfg config.Config) config.PaymentConfig {
			return cfg.Payment
		},
		payment.NewStubAuthorizer,
	),
)
