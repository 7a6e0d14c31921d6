package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/card_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/card_inventory_app/internal/dto"
	"github.com/SscSPs/card_inventory_app/internal/middleware"
	"github.com/SscSPs/card_inventory_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for derived financial figures.
type reportHandler struct {
	metrics      portssvc.MetricsSvc
	cache        *SnapshotCache
	currencyCode string
}

// RegisterReportRoutes registers routes related to reports.
func RegisterReportRoutes(rg *gin.RouterGroup, metricsSvc portssvc.MetricsSvc, cache *SnapshotCache, currencyCode string) {
	h := &reportHandler{metrics: metricsSvc, cache: cache, currencyCode: currencyCode}

	reports := rg.Group("/reports")
	{
		reports.GET("/totals", h.totals)
		reports.GET("/status", h.status)
		reports.GET("/series", h.series)
	}
}

// totals godoc
// @Summary Spend, proceeds and profit
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.TotalsResponse
// @Failure 503 {object} map[string]string "Record store unavailable"
// @Security BearerAuth
// @Router /reports/totals [get]
func (h *reportHandler) totals(c *gin.Context) {
	snapshot, err := h.cache.Get(c.Request.Context(), false)
	if err != nil {
		respondError(c, "totals", err)
		return
	}

	t := h.metrics.Totals(snapshot)
	c.JSON(http.StatusOK, dto.TotalsResponse{
		Spent:    t.Spent,
		Proceeds: t.Proceeds,
		Profit:   t.Profit,
		Display: map[string]string{
			"spent":    utils.FormatCurrency(t.Spent, h.currencyCode),
			"proceeds": utils.FormatCurrency(t.Proceeds, h.currencyCode),
			"profit":   utils.FormatCurrency(t.Profit, h.currencyCode),
		},
		AsOf: snapshot.LoadedAt(),
	})
}

// status godoc
// @Summary In-inventory versus sold counts
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.StatusResponse
// @Failure 503 {object} map[string]string "Record store unavailable"
// @Security BearerAuth
// @Router /reports/status [get]
func (h *reportHandler) status(c *gin.Context) {
	snapshot, err := h.cache.Get(c.Request.Context(), false)
	if err != nil {
		respondError(c, "status split", err)
		return
	}

	split := h.metrics.StatusSplit(snapshot)
	c.JSON(http.StatusOK, dto.StatusResponse{InInventory: split.InInventory, Sold: split.Sold, AsOf: snapshot.LoadedAt()})
}

// series godoc
// @Summary Time series of a metric
// @Description Buckets spend (by purchase date) or profit and proceeds (by sold date) per day or month, oldest first
// @Tags reports
// @Produce  json
// @Param   bucket query string false "day or month" default(month)
// @Param   metric query string false "spend, profit or proceeds" default(spend)
// @Param   cumulative query bool false "Return running totals"
// @Success 200 {object} dto.SeriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 503 {object} map[string]string "Record store unavailable"
// @Security BearerAuth
// @Router /reports/series [get]
func (h *reportHandler) series(c *gin.Context) {
	var params dto.SeriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid series query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	snapshot, err := h.cache.Get(c.Request.Context(), false)
	if err != nil {
		respondError(c, "time series", err)
		return
	}

	s, err := h.metrics.TimeSeries(c.Request.Context(), snapshot, domain.Bucket(params.Bucket), domain.Metric(params.Metric))
	if err != nil {
		respondError(c, "time series", err)
		return
	}
	points := s.Points
	if params.Cumulative {
		points = h.metrics.Cumulative(points)
	}

	c.JSON(http.StatusOK, dto.SeriesResponse{
		Bucket:     s.Bucket,
		Metric:     s.Metric,
		Cumulative: params.Cumulative,
		Points:     points,
		Excluded:   s.Excluded,
		AsOf:       snapshot.LoadedAt(),
	})
}
