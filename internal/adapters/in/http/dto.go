package http

import "time"

// Transport DTOs for the public API. Domain types never cross this boundary.

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type quoteRequest struct {
	PickupLat         float64 `json:"pickup_lat"`
	PickupLng         float64 `json:"pickup_lng"`
	DestinationLat    float64 `json:"destination_lat"`
	DestinationLng    float64 `json:"destination_lng"`
	WeightKg          float64 `json:"weight_kg"`
	Description       string  `json:"description"`
	Dimensions        string  `json:"dimensions"`
	Fragile           bool    `json:"fragile"`
	InsuranceRequired bool    `json:"insurance_required"`
	Express           bool    `json:"express"`
}

type quoteResponse struct {
	BasePrice        string  `json:"base_price"`
	DistanceCharge   string  `json:"distance_charge"`
	WeightCharge     string  `json:"weight_charge"`
	FragileCharge    string  `json:"fragile_charge"`
	InsuranceCharge  string  `json:"insurance_charge"`
	Subtotal         string  `json:"subtotal"`
	WeekendSurcharge string  `json:"weekend_surcharge"`
	ExpressSurcharge string  `json:"express_surcharge"`
	Total            string  `json:"total"`
	Currency         string  `json:"currency"`
	DistanceKm       float64 `json:"distance_km"`
	WeightCategory   string  `json:"weight_category"`
	EtaMinutes       int     `json:"eta_minutes"`
}

type createOrderRequest struct {
	CustomerID         string  `json:"customer_id"`
	PickupLat          float64 `json:"pickup_lat"`
	PickupLng          float64 `json:"pickup_lng"`
	PickupAddress      string  `json:"pickup_address"`
	DestinationLat     float64 `json:"destination_lat"`
	DestinationLng     float64 `json:"destination_lng"`
	DestinationAddress string  `json:"destination_address"`
	WeightKg           float64 `json:"weight_kg"`
	Description        string  `json:"description"`
	Dimensions         string  `json:"dimensions"`
	Fragile            bool    `json:"fragile"`
	InsuranceRequired  bool    `json:"insurance_required"`
	Express            bool    `json:"express"`
}

type orderResponse struct {
	ID                 string    `json:"id"`
	CustomerID         string    `json:"customer_id"`
	TrackingNumber     string    `json:"tracking_number"`
	Status             string    `json:"status"`
	CourierID          *string   `json:"courier_id,omitempty"`
	PickupAddress      string    `json:"pickup_address"`
	DestinationAddress string    `json:"destination_address"`
	WeightKg           float64   `json:"weight_kg"`
	WeightCategory     string    `json:"weight_category"`
	Fragile            bool      `json:"fragile"`
	InsuranceRequired  bool      `json:"insurance_required"`
	Express            bool      `json:"express"`
	DistanceKm         float64   `json:"distance_km"`
	TotalPrice         string    `json:"total_price"`
	Currency           string    `json:"currency"`
	CreatedAt          time.Time `json:"created_at"`
}

type orderSummaryResponse struct {
	ID                 string    `json:"id"`
	TrackingNumber     string    `json:"tracking_number"`
	Status             string    `json:"status"`
	DestinationAddress string    `json:"destination_address"`
	TotalPrice         string    `json:"total_price"`
	Currency           string    `json:"currency"`
	CreatedAt          time.Time `json:"created_at"`
}

type trackOrderResponse struct {
	TrackingNumber     string     `json:"tracking_number"`
	Status             string     `json:"status"`
	PickupAddress      string     `json:"pickup_address"`
	DestinationAddress string     `json:"destination_address"`
	CourierName        *string    `json:"courier_name,omitempty"`
	CourierLat         *float64   `json:"courier_lat,omitempty"`
	CourierLng         *float64   `json:"courier_lng,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	AssignedAt         *time.Time `json:"assigned_at,omitempty"`
	PickedUpAt         *time.Time `json:"picked_up_at,omitempty"`
	InTransitAt        *time.Time `json:"in_transit_at,omitempty"`
	DeliveredAt        *time.Time `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateDestinationRequest struct {
	DestinationLat     float64 `json:"destination_lat"`
	DestinationLng     float64 `json:"destination_lng"`
	DestinationAddress string  `json:"destination_address"`
}

type assignCourierRequest struct {
	// CourierID selects a specific courier; empty means automatic dispatch.
	CourierID string `json:"courier_id"`
}

type assignCourierResponse struct {
	CourierID   string  `json:"courier_id"`
	CourierName string  `json:"courier_name,omitempty"`
	DistanceKm  float64 `json:"distance_km,omitempty"`
}

type initiatePaymentRequest struct {
	OrderID string `json:"order_id"`
	Phone   string `json:"phone"`
}

type initiatePaymentResponse struct {
	PaymentID         string `json:"payment_id"`
	CheckoutRequestID string `json:"checkout_request_id"`
	Status            string `json:"status"`
}

type paymentStatusResponse struct {
	PaymentID     string     `json:"payment_id"`
	Status        string     `json:"status"`
	Amount        string     `json:"amount"`
	Currency      string     `json:"currency"`
	Method        string     `json:"method"`
	ReceiptNumber *string    `json:"receipt_number,omitempty"`
	FailureReason *string    `json:"failure_reason,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type updateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type courierResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	VehicleType     string   `json:"vehicle_type"`
	IsAvailable     bool     `json:"is_available"`
	IsVerified      bool     `json:"is_verified"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	TotalDeliveries int      `json:"total_deliveries"`
	Rating          float64  `json:"rating"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	OrderID   *string   `json:"order_id,omitempty"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type markReadRequest struct {
	CustomerID string `json:"customer_id"`
}

// callbackAck is the acknowledgement the provider expects regardless of how
// reconciliation went; retries are driven by our own idempotency, not theirs.
type callbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}
