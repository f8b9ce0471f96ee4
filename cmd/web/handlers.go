package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"portfolio-tracker-go/internal/portfolio"
	"portfolio-tracker-go/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log *zap.Logger
	svc *portfolio.Service
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, svc *portfolio.Service) *APIHandler {
	return &APIHandler{log: log, svc: svc}
}

// TradeInput is the request body for creating a trade.
type TradeInput struct {
	Symbol   string  `json:"symbol" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Date     string  `json:"date"` // optional, "2006-01-02 15:04"
}

// AlertInput is the request body for setting a price alert.
type AlertInput struct {
	Symbol    string  `json:"symbol" binding:"required"`
	Threshold float64 `json:"threshold" binding:"required,gt=0"`
}

const dateLayout = "2006-01-02 15:04"

// ListTrades returns all trades, oldest first, optionally filtered by symbol.
func (h *APIHandler) ListTrades(c *gin.Context) {
	trades, err := h.svc.ListTrades(c.Query("symbol"))
	if err != nil {
		h.log.Error("Failed to list trades", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list trades"})
		return
	}
	c.JSON(http.StatusOK, trades)
}

// CreateTrade records a new buy trade.
func (h *APIHandler) CreateTrade(c *gin.Context) {
	var input TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date time.Time
	if input.Date != "" {
		var err error
		date, err = time.Parse(dateLayout, input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected \"" + dateLayout + "\""})
			return
		}
	}

	trade, err := h.svc.CreateTrade(input.Symbol, input.Quantity, input.Price, date)
	if err != nil {
		if errors.Is(err, store.ErrInvalidTrade) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("Failed to create trade", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create trade"})
		return
	}
	c.JSON(http.StatusCreated, trade)
}

// DeleteTrade removes a trade by id; 404 when the id was never recorded.
func (h *APIHandler) DeleteTrade(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trade id"})
		return
	}

	removed, err := h.svc.DeleteTrade(uint(id))
	if err != nil {
		h.log.Error("Failed to delete trade", zap.Uint64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete trade"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "trade not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// Metrics returns the per-symbol aggregation without live prices.
func (h *APIHandler) Metrics(c *gin.Context) {
	ms, err := h.svc.ComputeMetrics()
	if err != nil {
		h.log.Error("Failed to compute metrics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute metrics"})
		return
	}
	c.JSON(http.StatusOK, ms)
}

// Valuation returns the per-symbol aggregation with live prices and ROI.
// Rows whose price could not be resolved carry null price and ROI.
func (h *APIHandler) Valuation(c *gin.Context) {
	rows, err := h.svc.ComputeValuedMetrics(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to compute valuation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute valuation"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListAlerts returns the registered alert rules.
func (h *APIHandler) ListAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.AlertRules())
}

// SetAlert registers (or replaces) a threshold alert for a symbol.
func (h *APIHandler) SetAlert(c *gin.Context) {
	var input AlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.svc.SetPriceAlert(input.Symbol, input.Threshold)
	c.JSON(http.StatusOK, gin.H{"symbol": store.NormalizeSymbol(input.Symbol), "threshold": input.Threshold})
}

// CheckAlerts evaluates every rule against a fresh valuation.
func (h *APIHandler) CheckAlerts(c *gin.Context) {
	messages, err := h.svc.CheckAlerts(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to check alerts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check alerts"})
		return
	}
	if messages == nil {
		messages = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"alerts": messages})
}
