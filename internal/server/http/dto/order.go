package dto

import "time"

// OrderRequest describes checkout payload. Omitted used_points spends the
// whole balance.
type OrderRequest struct {
	BookID     int64  `json:"book_id"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	UsedPoints *int64 `json:"used_points,omitempty"`
}

// OrderLineResponse is a single line of an order.
type OrderLineResponse struct {
	BookID    int64 `json:"book_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// OrderResponse describes a persisted order.
type OrderResponse struct {
	ID            int64               `json:"id"`
	Status        string              `json:"status"`
	TotalPrice    int64               `json:"total_price"`
	UsedPoints    int64               `json:"used_points"`
	EarnedMileage int64               `json:"earned_mileage"`
	GradeName     string              `json:"grade_name"`
	CreatedAt     time.Time           `json:"created_at"`
	Lines         []OrderLineResponse `json:"lines"`
}

// CalculationResponse is the price breakdown of an order.
type CalculationResponse struct {
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

// PlacedOrderResponse is returned after a successful checkout.
type PlacedOrderResponse struct {
	Order          OrderResponse       `json:"order"`
	Calculation    CalculationResponse `json:"calculation"`
	RemainingStock int64               `json:"remaining_stock"`
}

// StatusRequest asks to move an order to the next status.
type StatusRequest struct {
	Status string `json:"status"`
}
