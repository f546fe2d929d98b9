package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

const shippingFee = 3000

var (
	goldGrade   = model.GradeInfo{Name: "GOLD", MinUsage: 30000, DiscountRate: 500, MileageRate: 500}
	bronzeGrade = model.GradeInfo{Name: "BRONZE", MinUsage: 1_000_000}
)

func TestCalculateGoldScenario(t *testing.T) {
	result := Calculate(NewPolicy(goldGrade, shippingFee), 50000, 1000)

	assert.Equal(t, model.OrderCalculationResult{
		OriginalAmount:      50000,
		GradeDiscountAmount: 2500,
		UsedPoints:          1000,
		AfterDiscountAmount: 47500,
		AfterPointsAmount:   46500,
		ShippingCost:        0,
		FinalAmount:         46500,
		EarnedMileage:       2500,
		GradeName:           "GOLD",
	}, result)
}

func TestCalculateBronzeScenario(t *testing.T) {
	result := Calculate(NewPolicy(bronzeGrade, shippingFee), 10000, 0)

	assert.Equal(t, int64(0), result.GradeDiscountAmount)
	assert.Equal(t, int64(shippingFee), result.ShippingCost)
	assert.Equal(t, int64(10000+shippingFee), result.FinalAmount)
	assert.Zero(t, result.EarnedMileage)
	assert.Equal(t, "BRONZE", result.GradeName)
}

func TestCalculatePointsNeverGoNegative(t *testing.T) {
	policy := NewPolicy(goldGrade, shippingFee)
	for _, points := range []int64{0, 1, 47499, 47500, 47501, 1_000_000} {
		result := Calculate(policy, 50000, points)
		assert.GreaterOrEqual(t, result.AfterPointsAmount, int64(0), "points=%d", points)
		assert.Equal(t, max(47500-points, 0), result.AfterPointsAmount, "points=%d", points)
	}

	result := Calculate(policy, 50000, 100000)
	assert.Zero(t, result.AfterPointsAmount)
	assert.Equal(t, int64(shippingFee), result.ShippingCost, "shipping is judged after points")
	assert.Equal(t, int64(shippingFee), result.FinalAmount)
}

func TestCalculateMileageIndependentOfDiscount(t *testing.T) {
	var mileage []int64
	for _, rate := range []model.Rate{0, 500, 1000, 5000} {
		grade := goldGrade
		grade.DiscountRate = rate
		mileage = append(mileage, Calculate(NewPolicy(grade, shippingFee), 40000, 0).EarnedMileage)
	}
	for _, m := range mileage {
		assert.Equal(t, int64(2000), m)
	}
}

func TestShippingBoundary(t *testing.T) {
	policy := NewPolicy(goldGrade, shippingFee)

	assert.Zero(t, policy.ShippingCost(goldGrade.MinUsage))
	assert.Equal(t, int64(shippingFee), policy.ShippingCost(goldGrade.MinUsage-1))
}

func TestCalculateIsDeterministic(t *testing.T) {
	policy := NewPolicy(model.GradeInfo{Name: "SILVER", MinUsage: 40000, DiscountRate: 333, MileageRate: 123}, shippingFee)
	first := Calculate(policy, 12345, 678)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, Calculate(policy, 12345, 678))
	}
	assert.Equal(t, int64(12345-12345*333/10000), first.AfterDiscountAmount)
}

func TestCalculateClampsNegativeInputs(t *testing.T) {
	result := Calculate(NewPolicy(goldGrade, shippingFee), -100, -5)
	assert.Zero(t, result.OriginalAmount)
	assert.Zero(t, result.UsedPoints)
	assert.Equal(t, int64(shippingFee), result.FinalAmount)
}

type staticResolver struct {
	policy Policy
	names  []string
}

func (s *staticResolver) Resolve(_ context.Context, name string) Policy {
	s.names = append(s.names, name)
	return s.policy
}

func TestCalculatorResolvesPolicy(t *testing.T) {
	resolver := &staticResolver{policy: NewPolicy(goldGrade, shippingFee)}
	calc := NewCalculator(resolver)

	result := calc.Calculate(context.Background(), "GOLD", 50000, 1000)

	assert.Equal(t, []string{"GOLD"}, resolver.names)
	assert.Equal(t, int64(46500), result.FinalAmount)
}
