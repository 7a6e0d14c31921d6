package dto

import (
	"time"

	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TotalsResponse represents the aggregate financial figures with display text.
type TotalsResponse struct {
	Spent    decimal.Decimal   `json:"spent"`
	Proceeds decimal.Decimal   `json:"proceeds"`
	Profit   decimal.Decimal   `json:"profit"`
	Display  map[string]string `json:"display"`
	AsOf     time.Time         `json:"asOf"`
}

// StatusResponse represents the in-inventory / sold partition.
type StatusResponse struct {
	InInventory int       `json:"inInventory"`
	Sold        int       `json:"sold"`
	AsOf        time.Time `json:"asOf"`
}

// SeriesParams defines query parameters for the time-series report.
type SeriesParams struct {
	Bucket     string `form:"bucket,default=month" binding:"oneof=day month"`
	Metric     string `form:"metric,default=spend" binding:"oneof=spend profit proceeds"`
	Cumulative bool   `form:"cumulative"`
}

// SeriesResponse represents a chronologically ordered time series.
type SeriesResponse struct {
	Bucket     domain.Bucket        `json:"bucket"`
	Metric     domain.Metric        `json:"metric"`
	Cumulative bool                 `json:"cumulative"`
	Points     []domain.SeriesPoint `json:"points"`
	// Excluded counts records left out because their date was missing or unreadable.
	Excluded int       `json:"excluded"`
	AsOf     time.Time `json:"asOf"`
}
