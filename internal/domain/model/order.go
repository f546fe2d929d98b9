package model

import "time"

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

var nextOrderStatus = map[OrderStatus]OrderStatus{
	OrderStatusReady:      OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// CanTransitionTo reports whether next directly follows s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	n, ok := nextOrderStatus[s]
	return ok && n == next
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusReady, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// Order describes a placed purchase.
type Order struct {
	ID            int64
	UserID        int64
	Status        OrderStatus
	TotalPrice    int64
	UsedPoints    int64
	EarnedMileage int64
	GradeName     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []OrderLine
}

// OrderLine is a single book within an order. UnitPrice is the price at the
// time of ordering and is never recomputed.
type OrderLine struct {
	ID        int64
	OrderID   int64
	BookID    int64
	Quantity  int64
	UnitPrice int64
}

// Amount returns the line total.
func (l OrderLine) Amount() int64 {
	return l.UnitPrice * l.Quantity
}

// OrderRequest is the checkout input coming from the catalogue layer.
// A nil UsedPoints spends the whole point balance.
type OrderRequest struct {
	BookID     int64
	Quantity   int64
	UnitPrice  int64
	UsedPoints *int64
}

// OrderDraft is everything the store needs to persist an order.
type OrderDraft struct {
	UserID        int64
	TotalPrice    int64
	UsedPoints    int64
	EarnedMileage int64
	GradeName     string
	Lines         []OrderLine
}

// OrderCalculationResult carries every intermediate value of a price
// calculation for display and audit.
type OrderCalculationResult struct {
	OriginalAmount      int64  `json:"original_amount"`
	GradeDiscountAmount int64  `json:"grade_discount_amount"`
	UsedPoints          int64  `json:"used_points"`
	AfterDiscountAmount int64  `json:"after_discount_amount"`
	AfterPointsAmount   int64  `json:"after_points_amount"`
	ShippingCost        int64  `json:"shipping_cost"`
	FinalAmount         int64  `json:"final_amount"`
	EarnedMileage       int64  `json:"earned_mileage"`
	GradeName           string `json:"grade_name"`
}

// PlacementState tracks a single order attempt.
type PlacementState string

const (
	PlacementValidating    PlacementState = "VALIDATING"
	PlacementStockReserved PlacementState = "STOCK_RESERVED"
	PlacementPersisted     PlacementState = "PERSISTED"
	PlacementSyncing       PlacementState = "SYNCING"
	PlacementDone          PlacementState = "DONE"
	PlacementFailed        PlacementState = "FAILED"
)

// PlacedOrder is the outcome of a successful checkout.
type PlacedOrder struct {
	Order          *Order
	Calculation    OrderCalculationResult
	CacheHit       bool
	RemainingStock int64
}
