package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
)

// ValidateOrderRequest checks the request against the buyer and returns the
// number of points to spend. A nil UsedPoints spends the whole balance.
func ValidateOrderRequest(user *model.User, req model.OrderRequest) (int64, error) {
	if user == nil {
		return 0, fmt.Errorf("missing buyer: %w", domainErrors.ErrInvalidRequest)
	}
	if req.BookID <= 0 {
		return 0, fmt.Errorf("book id must be positive: %w", domainErrors.ErrInvalidRequest)
	}
	if req.Quantity <= 0 {
		return 0, fmt.Errorf("quantity must be positive: %w", domainErrors.ErrInvalidRequest)
	}
	if req.UnitPrice < 0 {
		return 0, fmt.Errorf("unit price must not be negative: %w", domainErrors.ErrInvalidRequest)
	}
	if req.UnitPrice > model.MaxAmount/req.Quantity {
		return 0, fmt.Errorf("order amount exceeds %d: %w", model.MaxAmount, domainErrors.ErrInvalidRequest)
	}

	balance := max(user.Points, 0)
	if req.UsedPoints == nil {
		return balance, nil
	}
	points := *req.UsedPoints
	if points < 0 || points > balance {
		return 0, fmt.Errorf("used points %d outside balance %d: %w", points, balance, domainErrors.ErrInvalidRequest)
	}
	return points, nil
}

// NormalizeGradeName trims and upper-cases a grade name.
func NormalizeGradeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
