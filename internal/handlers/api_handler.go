package handlers

import (
	"net/http"
	"time"

	"burger_pos/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping() error
}

type APIHandler struct {
	orderService   services.OrderService
	catalogService services.CatalogService
	kitchenService services.KitchenService
	reportService  services.ReportService
	health         HealthChecker
	location       *time.Location
	logger         *zap.Logger
}

type HandlerDeps struct {
	Orders   services.OrderService
	Catalog  services.CatalogService
	Kitchen  services.KitchenService
	Reports  services.ReportService
	Health   HealthChecker
	Location *time.Location
}

func NewAPIHandler(deps HandlerDeps, logger *zap.Logger) *APIHandler {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		orderService:   deps.Orders,
		catalogService: deps.Catalog,
		kitchenService: deps.Kitchen,
		reportService:  deps.Reports,
		health:         deps.Health,
		location:       deps.Location,
		logger:         logger,
	}
}

// RegisterRoutes mounts every endpoint. confirm guards the destructive ones.
func (h *APIHandler) RegisterRoutes(router *gin.Engine, confirm gin.HandlerFunc) {
	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		api.GET("/catalog", h.GetCatalog)

		api.POST("/orders", h.CreateOrder)
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.POST("/orders/:id/advance", h.AdvanceOrder)
		api.POST("/orders/:id/ready", h.MarkReady)
		api.POST("/orders/:id/deliver", h.DeliverOrder)
		api.DELETE("/orders/:id", confirm, h.CancelOrder)

		api.GET("/kitchen", h.GetKitchenBoard)

		api.GET("/report", h.GetReport)
		api.POST("/report/close", confirm, h.CloseDay)

		api.GET("/closings", h.ListClosings)
		api.GET("/closings/:id", h.GetClosing)
	}
}

func (h *APIHandler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health.Ping(); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Catalog())
}

func (h *APIHandler) GetKitchenBoard(c *gin.Context) {
	board, err := h.kitchenService.Board()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}
