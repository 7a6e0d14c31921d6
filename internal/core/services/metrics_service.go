package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/card_inventory_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// metricsService implements the MetricsSvc interface. It is a pure function
// of the snapshot it is given.
type metricsService struct {
	BaseService
}

// NewMetricsService creates a new metrics service
func NewMetricsService() portssvc.MetricsSvc {
	return &metricsService{}
}

// Ensure metricsService implements the MetricsSvc interface
var _ portssvc.MetricsSvc = (*metricsService)(nil)

// Totals sums purchase price over all records, sold price over records that
// carry one, and profit over records with a sold date only.
func (s *metricsService) Totals(snapshot domain.StoreSnapshot) domain.Totals {
	totals := domain.Totals{
		Spent:    decimal.Zero,
		Proceeds: decimal.Zero,
		Profit:   decimal.Zero,
	}
	for _, rec := range snapshot.Records() {
		totals.Spent = totals.Spent.Add(rec.PurchasePrice)
		if rec.SoldPrice != nil {
			totals.Proceeds = totals.Proceeds.Add(*rec.SoldPrice)
		}
		// Profit is zero for unsold records even when stray sale amounts exist.
		totals.Profit = totals.Profit.Add(rec.Profit())
	}
	return totals
}

// StatusSplit counts records without and with a parseable sold date.
func (s *metricsService) StatusSplit(snapshot domain.StoreSnapshot) domain.StatusSplit {
	var split domain.StatusSplit
	for _, rec := range snapshot.Records() {
		if rec.IsSold() {
			split.Sold++
		} else {
			split.InInventory++
		}
	}
	return split
}

// TimeSeries buckets one metric by calendar day or month. Records whose
// grouping date is absent or unparseable are left out and counted in
// Series.Excluded. For the sold-date metrics an empty sold date means the card
// is unsold rather than missing data, so only malformed sold dates count.
func (s *metricsService) TimeSeries(ctx context.Context, snapshot domain.StoreSnapshot, bucket domain.Bucket, metric domain.Metric) (domain.Series, error) {
	if !bucket.Valid() {
		return domain.Series{}, fmt.Errorf("%w: unknown bucket %q", apperrors.ErrValidation, bucket)
	}
	if !metric.Valid() {
		return domain.Series{}, fmt.Errorf("%w: unknown metric %q", apperrors.ErrValidation, metric)
	}

	sums := make(map[time.Time]decimal.Decimal)
	excluded := 0
	for _, rec := range snapshot.Records() {
		date, value, ok := seriesValue(rec, metric)
		if !ok {
			continue
		}
		if date == nil {
			excluded++
			continue
		}
		key := bucket.Truncate(*date)
		sums[key] = sums[key].Add(value)
	}

	keys := make([]time.Time, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b time.Time) int { return a.Compare(b) })

	points := make([]domain.SeriesPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, domain.SeriesPoint{Key: k, Label: bucket.Label(k), Value: sums[k]})
	}

	if excluded > 0 {
		s.LogDebug(ctx, "Records excluded from time series",
			slog.String("bucket", string(bucket)),
			slog.String("metric", string(metric)),
			slog.Int("excluded", excluded))
	}

	return domain.Series{Bucket: bucket, Metric: metric, Points: points, Excluded: excluded}, nil
}

// seriesValue picks the grouping date and value of a record for a metric.
// ok is false when the record does not take part in the metric at all.
func seriesValue(rec domain.CardRecord, metric domain.Metric) (date *time.Time, value decimal.Decimal, ok bool) {
	switch metric {
	case domain.MetricSpend:
		return rec.PurchaseDate, rec.PurchasePrice, true
	case domain.MetricProfit, domain.MetricProceeds:
		if rec.SoldDate == nil {
			// Unsold unless the cell held something that failed to parse.
			if strings.TrimSpace(rec.Cells[domain.FieldSoldDate]) == "" {
				return nil, decimal.Zero, false
			}
			return nil, decimal.Zero, true
		}
		if metric == domain.MetricProfit {
			return rec.SoldDate, rec.Profit(), true
		}
		return rec.SoldDate, rec.SoldPriceOrZero(), true
	}
	return nil, decimal.Zero, false
}

// Cumulative returns the running total of an already date-sorted series.
func (s *metricsService) Cumulative(points []domain.SeriesPoint) []domain.SeriesPoint {
	out := make([]domain.SeriesPoint, len(points))
	running := decimal.Zero
	for i, p := range points {
		running = running.Add(p.Value)
		out[i] = domain.SeriesPoint{Key: p.Key, Label: p.Label, Value: running}
	}
	return out
}
