package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"procurement-service/internal/catalog"
	"procurement-service/internal/checkout"
	"procurement-service/internal/models"
	"procurement-service/internal/narration"
	"procurement-service/internal/planner"
	"procurement-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog  *catalog.Catalog
	planner  *planner.Service
	checkout *checkout.Simulator
	voice    narration.VoiceGenerator
}

// NewHandler creates a new HTTP handler
func NewHandler(cat *catalog.Catalog, plannerSvc *planner.Service, checkoutSim *checkout.Simulator, voice narration.VoiceGenerator) *Handler {
	return &Handler{
		catalog:  cat,
		planner:  plannerSvc,
		checkout: checkoutSim,
		voice:    voice,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/inventory", h.getInventory)
		api.POST("/plan", h.buildPlan)
		api.POST("/checkout", h.executeCheckout)
		api.POST("/speak", h.speak)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// getInventory returns the catalog, optionally filtered by the q query
func (h *Handler) getInventory(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Search(c.Query("q")))
}

// buildPlan handles procurement plan requests
func (h *Handler) buildPlan(c *gin.Context) {
	var req planner.PlanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields: people, budget, deadline",
			"details": err.Error(),
		})
		return
	}

	result := h.planner.BuildPlan(c.Request.Context(), req)

	c.JSON(http.StatusOK, gin.H{
		"plan":       result.Plan,
		"reasoning":  strings.Join(result.Reasoning, "\n"),
		"total_cost": result.TotalCost,
	})
}

// checkoutRequest is the client-submitted cart
type checkoutRequest struct {
	Cart []models.CartItem `json:"cart" binding:"required"`
}

// executeCheckout handles simulated multi-store checkout
func (h *Handler) executeCheckout(c *gin.Context) {
	var req checkoutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart format. Expected an array of items.",
		})
		return
	}

	result := h.checkout.ExecuteOrder(c.Request.Context(), req.Cart)

	c.JSON(http.StatusOK, result)
}

// speakRequest is the summary to narrate. Pointer fields distinguish a
// missing value from a legitimate zero.
type speakRequest struct {
	Savings      *float64 `json:"savings" binding:"required"`
	DeliveryDate string   `json:"deliveryDate"`
	OrderCount   *int     `json:"orderCount" binding:"required"`
}

// speak handles voice report requests
func (h *Handler) speak(c *gin.Context) {
	var req speakRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields: savings, orderCount",
			"details": err.Error(),
		})
		return
	}

	report := h.voice.GenerateVoiceReport(c.Request.Context(), narration.VoiceRequest{
		Savings:      *req.Savings,
		DeliveryDate: req.DeliveryDate,
		OrderCount:   *req.OrderCount,
	})

	if len(report.Audio) > 0 {
		c.Data(http.StatusOK, "audio/mpeg", report.Audio)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audio": nil,
		"text":  report.Text,
	})
}

// corsMiddleware applies permissive CORS headers and resolves preflight
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
