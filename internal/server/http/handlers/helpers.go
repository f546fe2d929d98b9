package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/server/http/middleware"
)

// CurrentUser extracts the identified customer from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

// CurrentUserID returns the identified customer id or 0.
func CurrentUserID(c *gin.Context) int64 {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInsufficientPoints):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrAlreadyExists), errors.Is(err, domainErrors.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Status(StatusFor(err))
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
