package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"swiftparcel/internal/adapters/out/daraja"
	"swiftparcel/internal/adapters/out/email"
	"swiftparcel/internal/adapters/out/postgres"
	"swiftparcel/internal/adapters/out/routing"
	"swiftparcel/internal/core/application/usecases/commands"
	"swiftparcel/internal/core/application/usecases/queries"
	"swiftparcel/internal/core/domain/services"
	"swiftparcel/internal/core/ports"
)

// CompositionRoot wires adapters, domain services and use case handlers.
// All dependencies are constructed here; nothing reaches for globals.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	uowFactory       postgres.GormUnitOfWorkFactory
	gateway          ports.PaymentGateway
	distanceProvider ports.DistanceProvider
	emailSender      ports.EmailSender
	pricingEngine    services.PricingEngine
	dispatcher       services.CourierDispatcher
}

// NewCompositionRoot builds the object graph from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway: daraja.NewClient(daraja.Config{
			BaseURL:        config.DarajaBaseURL,
			ConsumerKey:    config.DarajaConsumerKey,
			ConsumerSecret: config.DarajaConsumerSecret,
			ShortCode:      config.DarajaShortCode,
			Passkey:        config.DarajaPasskey,
			CallbackURL:    config.DarajaCallbackURL,
		}, logger),
		distanceProvider: routing.NewProvider(routing.Config{
			BaseURL: config.RoutingBaseURL,
			APIKey:  config.RoutingAPIKey,
		}, logger),
		emailSender: email.NewSender(email.Config{
			Host:     config.SMTPHost,
			Port:     config.SMTPPort,
			Username: config.SMTPUsername,
			Password: config.SMTPPassword,
			From:     config.SMTPFrom,
		}, logger),
		pricingEngine: services.NewPricingEngine(services.DefaultTariff()),
		dispatcher:    services.NewCourierDispatcher(),
	}
}

// PaymentGateway exposes the provider client for the jobs wiring.
func (c *CompositionRoot) PaymentGateway() ports.PaymentGateway {
	return c.gateway
}

// OrderUoWFactory exposes the order unit of work factory for the jobs wiring.
func (c *CompositionRoot) OrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// PaymentUoWFactory exposes the payment unit of work factory for the jobs wiring.
func (c *CompositionRoot) PaymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.OrderUoWFactory(), c.distanceProvider, c.pricingEngine, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDestinationCommandHandler() commands.UpdateDestinationCommandHandler {
	return commands.NewUpdateDestinationCommandHandler(
		c.OrderUoWFactory(), c.distanceProvider, c.pricingEngine, c.logger)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.dispatcher, c.emailSender, c.logger)
}

func (c *CompositionRoot) CreateManualAssignCourierCommandHandler() commands.ManualAssignCourierCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewManualAssignCourierCommandHandler(f, c.emailSender, c.logger)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	return commands.NewInitiatePaymentCommandHandler(c.PaymentUoWFactory(), c.gateway, c.logger)
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	return commands.NewReconcilePaymentCommandHandler(
		c.PaymentUoWFactory(), c.CreateAssignCourierCommandHandler(),
		c.emailSender, c.config.FinanceEmail, c.logger)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkNotificationReadCommandHandler(f)
}

func (c *CompositionRoot) CreateGetQuoteQueryHandler() queries.GetQuoteQueryHandler {
	return queries.NewGetQuoteQueryHandler(c.distanceProvider, c.pricingEngine, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPaymentStatusQueryHandler() queries.GetPaymentStatusQueryHandler {
	return queries.NewGetPaymentStatusQueryHandler(c.gormDB, c.gateway, c.logger)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
