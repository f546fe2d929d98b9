package pricing

import "github.com/polkiloo/bookshop/internal/domain/model"

// Policy prices an order for a single grade snapshot.
type Policy struct {
	grade       model.GradeInfo
	shippingFee int64
}

// NewPolicy builds a policy from grade data and the flat shipping fee.
func NewPolicy(grade model.GradeInfo, shippingFee int64) Policy {
	return Policy{grade: grade, shippingFee: shippingFee}
}

// GradeName returns the grade the policy was built from.
func (p Policy) GradeName() string {
	return p.grade.Name
}

// Grade returns the underlying snapshot.
func (p Policy) Grade() model.GradeInfo {
	return p.grade
}

// DiscountedPrice applies the grade discount.
func (p Policy) DiscountedPrice(original int64) int64 {
	return p.grade.DiscountRate.Complement().Of(original)
}

// ShippingCost is free from MinUsage upwards.
func (p Policy) ShippingCost(amount int64) int64 {
	if amount >= p.grade.MinUsage {
		return 0
	}
	return p.shippingFee
}

// MileageEarned is computed on the pre-discount amount.
func (p Policy) MileageEarned(original int64) int64 {
	return p.grade.MileageRate.Of(original)
}
