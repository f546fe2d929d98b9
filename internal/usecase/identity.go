package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// IdentityUseCase resolves the customer forwarded by the upstream gateway.
type IdentityUseCase struct {
	users repository.UserRepository
}

// NewIdentityUseCase constructs IdentityUseCase.
func NewIdentityUseCase(users repository.UserRepository) *IdentityUseCase {
	return &IdentityUseCase{users: users}
}

// ParseUserID extracts a positive user identifier from a header value.
func ParseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("user id %q: %w", raw, domainErrors.ErrInvalidRequest)
	}
	return id, nil
}

// Identify loads the user named by the header value.
func (u *IdentityUseCase) Identify(ctx context.Context, raw string) (*model.User, error) {
	id, err := ParseUserID(raw)
	if err != nil {
		return nil, err
	}
	return u.users.GetByID(ctx, id)
}
