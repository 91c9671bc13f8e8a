package http

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest carries the data needed to place a new order.
type CreateOrderRequest struct {
	CustomerID     string          `json:"customer_id"`
	StoreID        string          `json:"store_id"`
	PaymentMethod  string          `json:"payment_method"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// CreatedResponse returns the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// RecordPaymentRequest reports the outcome of a payment attempt.
type RecordPaymentRequest struct {
	Succeeded bool `json:"succeeded"`
}

// TransitionOrderRequest asks to move an order to a new workflow status.
type TransitionOrderRequest struct {
	TargetStatus string `json:"target_status"`
	ActorID      string `json:"actor_id"`
	Note         string `json:"note"`
}

// AssignOrderRequest optionally pins the assignment to a specific agent.
type AssignOrderRequest struct {
	AgentID *string `json:"agent_id"`
}

// ReassignOrderRequest carries the staff-provided reassignment reason.
type ReassignOrderRequest struct {
	Reason string `json:"reason"`
}

// AcceptAssignmentRequest identifies the agent accepting the order's
// active assignment.
type AcceptAssignmentRequest struct {
	AgentID string `json:"agent_id"`
}

// LocationPingRequest carries one courier location sample.
type LocationPingRequest struct {
	AgentID      string           `json:"agent_id"`
	Lat          float64          `json:"lat"`
	Lon          float64          `json:"lon"`
	SpeedKmh     *decimal.Decimal `json:"speed_kmh"`
	BatteryLevel *int             `json:"battery_level"`
}

// CodeResponse returns a freshly issued handover or delivery code.
type CodeResponse struct {
	Code string `json:"code"`
}

// VerifyHandoverCodeRequest carries the code the courier read to the
// merchant.
type VerifyHandoverCodeRequest struct {
	Code string `json:"code"`
}

// VerifyDeliveryCodeRequest carries the customer code plus optional proof
// of delivery fields.
type VerifyDeliveryCodeRequest struct {
	Code           string   `json:"code"`
	DeliveryMethod string   `json:"delivery_method"`
	Recipient      string   `json:"recipient"`
	PhotoRef       string   `json:"photo_ref"`
	SignatureRef   string   `json:"signature_ref"`
	Lat            *float64 `json:"lat"`
	Lon            *float64 `json:"lon"`
	Notes          string   `json:"notes"`
}

// AssignmentResponse describes an order's assignment.
type AssignmentResponse struct {
	ID                   string          `json:"id"`
	OrderID              string          `json:"order_id"`
	AgentID              string          `json:"agent_id"`
	Status               string          `json:"status"`
	EstimatedDistanceKm  decimal.Decimal `json:"estimated_distance_km"`
	EstimatedTimeMinutes int             `json:"estimated_time_minutes"`
	AssignedAt           time.Time       `json:"assigned_at"`
}

// OrderSummaryResponse is one row of the merchant console order list.
type OrderSummaryResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	StoreID       string          `json:"store_id"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// OrderHistoryEntryResponse is one status change on an order's timeline.
type OrderHistoryEntryResponse struct {
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// NextStatusesResponse lists the statuses an order may move to next.
type NextStatusesResponse struct {
	OrderID       string   `json:"order_id"`
	CurrentStatus string   `json:"current_status"`
	NextStatuses  []string `json:"next_statuses"`
}

// RegisterAgentRequest carries the data needed to register a delivery agent.
type RegisterAgentRequest struct {
	StoreID       string `json:"store_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	VehicleType   string `json:"vehicle_type"`
	MaxConcurrent int    `json:"max_concurrent"`
}

// AgentResponse is one row of the store's agent roster.
type AgentResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Phone                string  `json:"phone"`
	VehicleType          string  `json:"vehicle_type"`
	OperationalStatus    string  `json:"operational_status"`
	IsAvailable          bool    `json:"is_available"`
	CurrentAssignments   int     `json:"current_assignments"`
	MaxConcurrent        int     `json:"max_concurrent"`
	TotalDeliveries      int     `json:"total_deliveries"`
	SuccessfulDeliveries int     `json:"successful_deliveries"`
	SuccessRate          float64 `json:"success_rate"`
}

// SetAgentAvailabilityRequest updates an agent's shift state.
type SetAgentAvailabilityRequest struct {
	Available         bool   `json:"available"`
	OperationalStatus string `json:"operational_status"`
}
