package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
)

const (
	// UserContextKey is a gin context key for the identified customer.
	UserContextKey = "user"
	// UserIDHeader carries the customer id forwarded by the gateway.
	UserIDHeader = "X-User-ID"
)

// UserIdentifier resolves a forwarded user id into a customer.
type UserIdentifier interface {
	Identify(ctx context.Context, userID string) (*model.User, error)
}

// UserRequired ensures the request names a known customer.
func UserRequired(identifier UserIdentifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		user, err := identifier.Identify(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, domainErrors.ErrInvalidRequest) || errors.Is(err, domainErrors.ErrNotFound) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}
