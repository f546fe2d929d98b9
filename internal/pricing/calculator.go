package pricing

import (
	"context"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// Calculate turns a policy, the line amount and the points spent into a
// price breakdown. Steps run in a fixed order: discount, points, shipping,
// final amount, mileage. Points beyond the discounted amount are forfeited.
func Calculate(policy Policy, originalAmount, usedPoints int64) model.OrderCalculationResult {
	originalAmount = max(originalAmount, 0)
	usedPoints = max(usedPoints, 0)

	discounted := policy.DiscountedPrice(originalAmount)
	afterPoints := max(discounted-usedPoints, 0)
	shipping := policy.ShippingCost(afterPoints)

	return model.OrderCalculationResult{
		OriginalAmount:      originalAmount,
		GradeDiscountAmount: originalAmount - discounted,
		UsedPoints:          usedPoints,
		AfterDiscountAmount: discounted,
		AfterPointsAmount:   afterPoints,
		ShippingCost:        shipping,
		FinalAmount:         afterPoints + shipping,
		EarnedMileage:       policy.MileageEarned(originalAmount),
		GradeName:           policy.GradeName(),
	}
}

// PolicyResolver returns the pricing policy for a grade.
type PolicyResolver interface {
	Resolve(ctx context.Context, gradeName string) Policy
}

// Calculator resolves the grade policy and computes the breakdown.
type Calculator struct {
	resolver PolicyResolver
}

// NewCalculator creates calculator over the resolver.
func NewCalculator(resolver PolicyResolver) *Calculator {
	return &Calculator{resolver: resolver}
}

// Calculate never fails: unknown grades are priced with the default policy.
func (c *Calculator) Calculate(ctx context.Context, gradeName string, originalAmount, usedPoints int64) model.OrderCalculationResult {
	return Calculate(c.resolver.Resolve(ctx, gradeName), originalAmount, usedPoints)
}
