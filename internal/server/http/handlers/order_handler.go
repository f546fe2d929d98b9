package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	placed, err := h.facade.PlaceOrder(c.Request.Context(), CurrentUser(c), toOrderRequest(req))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PlacedOrderResponse{
		Order:          toOrderResponse(*placed.Order),
		Calculation:    toCalculationResponse(placed.Calculation),
		RemainingStock: placed.RemainingStock,
	})
}

// Quote handles POST /api/orders/quote.
func (h *OrderHandler) Quote(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	calc, err := h.facade.Quote(c.Request.Context(), CurrentUser(c), toOrderRequest(req))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCalculationResponse(*calc))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// AdvanceStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	next := model.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err := h.facade.AdvanceOrder(c.Request.Context(), CurrentUserID(c), id, next); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toOrderRequest(req dto.OrderRequest) model.OrderRequest {
	return model.OrderRequest{
		BookID:     req.BookID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		UsedPoints: req.UsedPoints,
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{BookID: l.BookID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return dto.OrderResponse{
		ID:            order.ID,
		Status:        string(order.Status),
		TotalPrice:    order.TotalPrice,
		UsedPoints:    order.UsedPoints,
		EarnedMileage: order.EarnedMileage,
		GradeName:     order.GradeName,
		CreatedAt:     order.CreatedAt,
		Lines:         lines,
	}
}

func toCalculationResponse(calc model.OrderCalculationResult) dto.CalculationResponse {
	return dto.CalculationResponse{
		OriginalAmount:      calc.OriginalAmount,
		GradeDiscountAmount: calc.GradeDiscountAmount,
		UsedPoints:          calc.UsedPoints,
		AfterDiscountAmount: calc.AfterDiscountAmount,
		AfterPointsAmount:   calc.AfterPointsAmount,
		ShippingCost:        calc.ShippingCost,
		FinalAmount:         calc.FinalAmount,
		EarnedMileage:       calc.EarnedMileage,
		GradeName:           calc.GradeName,
	}
}
