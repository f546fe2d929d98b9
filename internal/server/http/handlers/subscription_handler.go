package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/server/http/dto"
)

// SubscriptionHandler manages stock alert subscriptions.
type SubscriptionHandler struct {
	facade SubscriptionFacade
}

// NewSubscriptionHandler constructs SubscriptionHandler.
func NewSubscriptionHandler(facade SubscriptionFacade) *SubscriptionHandler {
	return &SubscriptionHandler{facade: facade}
}

// Subscribe handles POST /api/subscriptions.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	sub, err := h.facade.Subscribe(c.Request.Context(), CurrentUserID(c), req.BookID, req.Threshold)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSubscriptionResponse(*sub))
}

// List handles GET /api/subscriptions.
func (h *SubscriptionHandler) List(c *gin.Context) {
	subs, err := h.facade.Subscriptions(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(subs) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		response = append(response, toSubscriptionResponse(s))
	}
	c.JSON(http.StatusOK, response)
}

// Unsubscribe handles DELETE /api/subscriptions/:id.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.Unsubscribe(c.Request.Context(), CurrentUserID(c), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toSubscriptionResponse(sub model.NotificationSubscription) dto.SubscriptionResponse {
	return dto.SubscriptionResponse{
		ID:        sub.ID,
		BookID:    sub.BookID,
		Threshold: sub.Threshold,
		Active:    sub.Active,
		CreatedAt: sub.CreatedAt,
	}
}
