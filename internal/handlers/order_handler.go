package handlers

import (
	"net/http"

	"burger_pos/internal/models"
	"burger_pos/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	Lines         []services.LineRequest `json:"lines" binding:"dive"`
	Customer      string                 `json:"customer"`
	Note          string                 `json:"note"`
	PaymentMethod models.PaymentMethod   `json:"payment_method" binding:"required"`
}

func (h *APIHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	lines := make([]models.OrderLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		line, err := h.catalogService.BuildLine(lr)
		if err != nil {
			h.respondError(c, err)
			return
		}
		lines = append(lines, line)
	}

	order, err := h.orderService.CreateOrder(lines, req.Customer, req.Note, req.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders returns active orders oldest first, optionally filtered by status.
func (h *APIHandler) ListOrders(c *gin.Context) {
	var (
		orders []models.Order
		err    error
	)
	if status := models.OrderStatus(c.Query("status")); status != "" {
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + string(status)})
			return
		}
		orders, err = h.orderService.ListByStatus(status)
	} else {
		orders, err = h.orderService.ListActive()
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (h *APIHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) AdvanceOrder(c *gin.Context) {
	order, err := h.orderService.AdvanceStatus(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) MarkReady(c *gin.Context) {
	order, err := h.orderService.MarkReady(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) DeliverOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.orderService.MarkDelivered(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": models.OrderDelivered})
}

func (h *APIHandler) CancelOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.orderService.CancelOrder(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "cancelled"})
}
