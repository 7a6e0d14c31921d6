package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals holds the aggregate financial figures over a snapshot.
type Totals struct {
	Spent    decimal.Decimal `json:"spent"`
	Proceeds decimal.Decimal `json:"proceeds"`
	Profit   decimal.Decimal `json:"profit"`
}

// StatusSplit partitions records by whether they have been sold.
type StatusSplit struct {
	InInventory int `json:"inInventory"`
	Sold        int `json:"sold"`
}

// Bucket is the calendar granularity of a time series.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketMonth Bucket = "month"
)

// Truncate returns the start of the bucket containing t.
func (b Bucket) Truncate(t time.Time) time.Time {
	if b == BucketMonth {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Label renders a bucket key for display, e.g. "Jan 2025" or "2025-01-10".
func (b Bucket) Label(key time.Time) string {
	if b == BucketMonth {
		return key.Format("Jan 2006")
	}
	return key.Format(DateLayout)
}

// Valid reports whether b is a known bucket.
func (b Bucket) Valid() bool { return b == BucketDay || b == BucketMonth }

// Metric selects which per-record value a time series sums.
type Metric string

const (
	// MetricSpend sums purchase price grouped by purchase date.
	MetricSpend Metric = "spend"
	// MetricProfit sums takeaway minus purchase price grouped by sold date.
	MetricProfit Metric = "profit"
	// MetricProceeds sums sold price grouped by sold date.
	MetricProceeds Metric = "proceeds"
)

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	return m == MetricSpend || m == MetricProfit || m == MetricProceeds
}

// SeriesPoint is one bucket of a time series.
type SeriesPoint struct {
	Key   time.Time       `json:"key"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Series is a chronologically ordered time series. Excluded counts the
// records left out because the date the series groups by was absent or
// unparseable.
type Series struct {
	Bucket   Bucket        `json:"bucket"`
	Metric   Metric        `json:"metric"`
	Points   []SeriesPoint `json:"points"`
	Excluded int           `json:"excluded"`
}
