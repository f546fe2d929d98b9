package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bookshop/internal/server/http/dto"
)

// CatalogHandler serves stock and grade maintenance endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Restock handles POST /api/books/:id/restock.
func (h *CatalogHandler) Restock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	quantity, err := h.facade.Restock(c.Request.Context(), id, req.Delta)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StockResponse{BookID: id, Quantity: quantity})
}

// EvictGrade handles DELETE /api/grades/cache/:name.
func (h *CatalogHandler) EvictGrade(c *gin.Context) {
	if err := h.facade.EvictGrade(c.Request.Context(), c.Param("name")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EvictGrades handles DELETE /api/grades/cache.
func (h *CatalogHandler) EvictGrades(c *gin.Context) {
	h.facade.EvictGrades(c.Request.Context())
	c.Status(http.StatusNoContent)
}
