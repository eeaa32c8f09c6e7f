// Package http exposes the application over a REST API.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swiftparcel/internal/adapters/out/daraja"
	"swiftparcel/internal/core/application/usecases/commands"
	"swiftparcel/internal/core/application/usecases/queries"
	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/order"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	updateStatusHandler      commands.UpdateOrderStatusCommandHandler
	updateDestinationHandler commands.UpdateDestinationCommandHandler
	assignCourierHandler     commands.AssignCourierCommandHandler
	manualAssignHandler      commands.ManualAssignCourierCommandHandler
	updateLocationHandler    commands.UpdateCourierLocationCommandHandler
	initiatePaymentHandler   commands.InitiatePaymentCommandHandler
	reconcilePaymentHandler  commands.ReconcilePaymentCommandHandler
	markReadHandler          commands.MarkNotificationReadCommandHandler

	getQuoteHandler         queries.GetQuoteQueryHandler
	getOrderHandler         queries.GetOrderQueryHandler
	trackOrderHandler       queries.TrackOrderQueryHandler
	getCustomerOrders       queries.GetCustomerOrdersQueryHandler
	getPaymentStatusHandler queries.GetPaymentStatusQueryHandler
	getNotificationsHandler queries.GetNotificationsQueryHandler
	getAllCouriersHandler   queries.GetAllCouriersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	updateDestinationHandler commands.UpdateDestinationCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	manualAssignHandler commands.ManualAssignCourierCommandHandler,
	updateLocationHandler commands.UpdateCourierLocationCommandHandler,
	initiatePaymentHandler commands.InitiatePaymentCommandHandler,
	reconcilePaymentHandler commands.ReconcilePaymentCommandHandler,
	markReadHandler commands.MarkNotificationReadCommandHandler,
	getQuoteHandler queries.GetQuoteQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	getCustomerOrders queries.GetCustomerOrdersQueryHandler,
	getPaymentStatusHandler queries.GetPaymentStatusQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateStatusHandler:      updateStatusHandler,
		updateDestinationHandler: updateDestinationHandler,
		assignCourierHandler:     assignCourierHandler,
		manualAssignHandler:      manualAssignHandler,
		updateLocationHandler:    updateLocationHandler,
		initiatePaymentHandler:   initiatePaymentHandler,
		reconcilePaymentHandler:  reconcilePaymentHandler,
		markReadHandler:          markReadHandler,
		getQuoteHandler:          getQuoteHandler,
		getOrderHandler:          getOrderHandler,
		trackOrderHandler:        trackOrderHandler,
		getCustomerOrders:        getCustomerOrders,
		getPaymentStatusHandler:  getPaymentStatusHandler,
		getNotificationsHandler:  getNotificationsHandler,
		getAllCouriersHandler:    getAllCouriersHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.POST("/quotes", s.GetQuote)

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderID", s.GetOrder)
	v1.GET("/orders/track/:trackingNumber", s.TrackOrder)
	v1.PATCH("/orders/:orderID/status", s.UpdateOrderStatus)
	v1.POST("/orders/:orderID/cancel", s.CancelOrder)
	v1.PATCH("/orders/:orderID/destination", s.UpdateDestination)
	v1.POST("/orders/:orderID/assign", s.AssignCourier)
	v1.GET("/orders/:orderID/payment", s.GetPaymentStatus)

	v1.POST("/payments/initiate", s.InitiatePayment)
	v1.POST("/payments/callback", s.PaymentCallback)

	v1.GET("/couriers", s.GetCouriers)
	v1.PATCH("/couriers/:courierID/location", s.UpdateCourierLocation)

	v1.GET("/customers/:customerID/orders", s.GetCustomerOrders)
	v1.GET("/customers/:customerID/notifications", s.GetNotifications)
	v1.PATCH("/notifications/:notificationID/read", s.MarkNotificationRead)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetQuote handles POST /api/v1/quotes. It prices a hypothetical delivery
// without creating anything.
func (s *Server) GetQuote(ctx echo.Context) error {
	var req quoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewGetQuoteQuery(
		req.PickupLat, req.PickupLng,
		req.DestinationLat, req.DestinationLng,
		req.WeightKg, req.Description, req.Dimensions,
		req.Fragile, req.InsuranceRequired, req.Express,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	quote, err := s.getQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	b := quote.Breakdown
	return ctx.JSON(http.StatusOK, quoteResponse{
		BasePrice:        b.BasePrice.String(),
		DistanceCharge:   b.DistanceCharge.String(),
		WeightCharge:     b.WeightCharge.String(),
		FragileCharge:    b.FragileCharge.String(),
		InsuranceCharge:  b.InsuranceCharge.String(),
		Subtotal:         b.Subtotal.String(),
		WeekendSurcharge: b.WeekendSurcharge.String(),
		ExpressSurcharge: b.ExpressSurcharge.String(),
		Total:            b.Total.String(),
		Currency:         b.Total.Currency(),
		DistanceKm:       quote.DistanceKm,
		WeightCategory:   string(b.WeightCategory),
		EtaMinutes:       quote.EtaMinutes,
	})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer_id")
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID,
		req.PickupLat, req.PickupLng, req.PickupAddress,
		req.DestinationLat, req.DestinationLng, req.DestinationAddress,
		req.WeightKg, req.Description, req.Dimensions,
		req.Fragile, req.InsuranceRequired, req.Express,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID, http.StatusCreated)
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	return s.respondWithOrder(ctx, orderID, http.StatusOK)
}

func (s *Server) respondWithOrder(ctx echo.Context, orderID kernel.UUID, status int) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	var courierID *string
	if result.CourierID != nil {
		id := result.CourierID.String()
		courierID = &id
	}

	return ctx.JSON(status, orderResponse{
		ID:                 result.ID.String(),
		CustomerID:         result.CustomerID.String(),
		TrackingNumber:     result.TrackingNumber,
		Status:             result.Status,
		CourierID:          courierID,
		PickupAddress:      result.PickupAddress,
		DestinationAddress: result.DestinationAddress,
		WeightKg:           result.WeightKg,
		WeightCategory:     result.WeightCategory,
		Fragile:            result.Fragile,
		InsuranceRequired:  result.InsuranceRequired,
		Express:            result.Express,
		DistanceKm:         result.DistanceKm,
		TotalPrice:         result.TotalPrice,
		Currency:           result.Currency,
		CreatedAt:          result.CreatedAt,
	})
}

// TrackOrder handles GET /api/v1/orders/track/:trackingNumber. This is the
// public endpoint; it exposes no identifiers beyond the tracking number.
func (s *Server) TrackOrder(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(ctx.Param("trackingNumber"))
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackOrderResponse{
		TrackingNumber:     result.TrackingNumber,
		Status:             result.Status,
		PickupAddress:      result.PickupAddress,
		DestinationAddress: result.DestinationAddress,
		CourierName:        result.CourierName,
		CourierLat:         result.CourierLat,
		CourierLng:         result.CourierLng,
		CreatedAt:          result.CreatedAt,
		AssignedAt:         result.AssignedAt,
		PickedUpAt:         result.PickedUpAt,
		InTransitAt:        result.InTransitAt,
		DeliveredAt:        result.DeliveredAt,
		CancelledAt:        result.CancelledAt,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderID/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	return s.applyStatus(ctx, orderID, target)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	return s.applyStatus(ctx, orderID, order.Cancelled)
}

func (s *Server) applyStatus(ctx echo.Context, orderID kernel.UUID, target order.Status) error {
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID, http.StatusOK)
}

// UpdateDestination handles PATCH /api/v1/orders/:orderID/destination.
func (s *Server) UpdateDestination(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req updateDestinationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateDestinationCommand(
		orderID, req.DestinationLat, req.DestinationLng, req.DestinationAddress,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateDestinationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID, http.StatusOK)
}

// AssignCourier handles POST /api/v1/orders/:orderID/assign. An empty body
// or empty courier_id dispatches automatically; a courier_id pins the choice.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req assignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if req.CourierID != "" {
		return s.assignManually(ctx, orderID, req.CourierID)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignCourierResponse{
		CourierID:   result.CourierID.String(),
		CourierName: result.CourierName,
		DistanceKm:  result.DistanceKm,
	})
}

func (s *Server) assignManually(ctx echo.Context, orderID kernel.UUID, rawCourierID string) error {
	courierID, err := kernel.UUIDFromString(rawCourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier_id")
	}

	cmd, err := commands.NewManualAssignCourierCommand(orderID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.manualAssignHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignCourierResponse{
		CourierID: courierID.String(),
	})
}

// InitiatePayment handles POST /api/v1/payments/initiate.
func (s *Server) InitiatePayment(ctx echo.Context) error {
	var req initiatePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order_id")
	}

	paymentID := kernel.NewUUID()

	cmd, err := commands.NewInitiatePaymentCommand(paymentID, orderID, req.Phone)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.initiatePaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusAccepted, initiatePaymentResponse{
		PaymentID:         paymentID.String(),
		CheckoutRequestID: result.CheckoutRequestID,
		Status:            result.Status.String(),
	})
}

// PaymentCallback handles POST /api/v1/payments/callback.
//
// The provider is always acknowledged with success: it retries on non-200
// answers, and replayed callbacks are already absorbed by reconciliation
// idempotency. Failures are logged server side via the command handler.
func (s *Server) PaymentCallback(ctx echo.Context) error {
	payload, err := readBody(ctx)
	if err != nil {
		return badRequest(ctx, "Unreadable request body")
	}

	callback, err := daraja.ParseCallback(payload)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReconcilePaymentCommand(
		callback.CheckoutRequestID,
		callback.ResultCode,
		callback.ReceiptNumber,
		callback.PaidAt,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if _, err = s.reconcilePaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, callbackAck{
		ResultCode: 0,
		ResultDesc: "Accepted",
	})
}

// GetPaymentStatus handles GET /api/v1/orders/:orderID/payment. It reports
// the latest payment attempt for the order.
func (s *Server) GetPaymentStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetPaymentStatusQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getPaymentStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentStatusResponse{
		PaymentID:     result.PaymentID.String(),
		Status:        result.Status,
		Amount:        result.Amount,
		Currency:      result.Currency,
		Method:        result.Method,
		ReceiptNumber: result.ReceiptNumber,
		FailureReason: result.FailureReason,
		PaidAt:        result.PaidAt,
		CreatedAt:     result.CreatedAt,
	})
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	query := queries.NewGetAllCouriersQuery()

	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]courierResponse, len(couriers))
	for i, c := range couriers {
		response[i] = courierResponse{
			ID:              c.ID.String(),
			Name:            c.Name,
			VehicleType:     c.VehicleType,
			IsAvailable:     c.IsAvailable,
			IsVerified:      c.IsVerified,
			Latitude:        c.Latitude,
			Longitude:       c.Longitude,
			TotalDeliveries: c.TotalDeliveries,
			Rating:          c.Rating,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateCourierLocation handles PATCH /api/v1/couriers/:courierID/location.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("courierID"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var req updateLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, req.Latitude, req.Longitude)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCustomerOrders handles GET /api/v1/customers/:customerID/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerID"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]orderSummaryResponse, len(orders))
	for i, o := range orders {
		response[i] = orderSummaryResponse{
			ID:                 o.ID.String(),
			TrackingNumber:     o.TrackingNumber,
			Status:             o.Status,
			DestinationAddress: o.DestinationAddress,
			TotalPrice:         o.TotalPrice,
			Currency:           o.Currency,
			CreatedAt:          o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetNotifications handles GET /api/v1/customers/:customerID/notifications.
// ?unread=true narrows the listing to unread entries.
func (s *Server) GetNotifications(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerID"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	unreadOnly := ctx.QueryParam("unread") == "true"

	query, err := queries.NewGetNotificationsQuery(customerID, unreadOnly)
	if err != nil {
		return respondError(ctx, err)
	}

	notifications, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]notificationResponse, len(notifications))
	for i, n := range notifications {
		var orderID *string
		if n.OrderID != nil {
			id := n.OrderID.String()
			orderID = &id
		}

		response[i] = notificationResponse{
			ID:        n.ID.String(),
			OrderID:   orderID,
			Kind:      n.Kind,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles PATCH /api/v1/notifications/:notificationID/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	notificationID, err := kernel.UUIDFromString(ctx.Param("notificationID"))
	if err != nil {
		return badRequest(ctx, "Invalid notification id")
	}

	var req markReadRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer_id")
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.markReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
