package model

import "math"

// RateScale is the number of basis points in a whole.
const RateScale = 10000

// MaxAmount is the largest amount a rate can be applied to without overflow.
const MaxAmount = math.MaxInt64 / RateScale

// Rate is a fraction expressed in basis points, so 500 means 5%.
type Rate int64

// Of returns amount multiplied by the rate, truncated toward zero.
func (r Rate) Of(amount int64) int64 {
	return amount * int64(r) / RateScale
}

// Complement returns 1 - r.
func (r Rate) Complement() Rate {
	return RateScale - r
}

// GradeInfo is a snapshot of a customer grade policy row.
type GradeInfo struct {
	Name         string `json:"grade_name"`
	MinUsage     int64  `json:"min_usage"`
	OrderCount   int64  `json:"order_count"`
	DiscountRate Rate   `json:"discount_bps"`
	MileageRate  Rate   `json:"mileage_bps"`
}
