package services

import (
	"context"

	"github.com/SscSPs/card_inventory_app/internal/core/domain"
)

// LedgerReaderSvc defines read operations over the inventory.
type LedgerReaderSvc interface {
	// Load performs a fresh read of the store. It never serves cached data.
	Load(ctx context.Context) (domain.StoreSnapshot, error)

	// NextLotNumber suggests max(lot numbers)+1, or 1 when none parse.
	NextLotNumber(snapshot domain.StoreSnapshot) int

	// BuildDisplayLabel renders the selection label for a record at a position.
	BuildDisplayLabel(record domain.CardRecord, pos domain.PositionToken) string

	// Selections lists the label of every record in store order.
	Selections(snapshot domain.StoreSnapshot) []domain.Selection

	// ResolveSelection maps a label back to its position.
	ResolveSelection(snapshot domain.StoreSnapshot, label string) (domain.PositionToken, error)

	// RecordAt returns the record at a position within the snapshot.
	RecordAt(snapshot domain.StoreSnapshot, pos domain.PositionToken) (domain.CardRecord, error)
}

// LedgerWriterSvc defines write operations over the inventory. Every
// successful write makes previously loaded snapshots stale.
type LedgerWriterSvc interface {
	// AddRecord validates and appends a new card, returning its position.
	AddRecord(ctx context.Context, in domain.CardInput) (domain.PositionToken, error)

	// UpdateRecord writes a partial field-name keyed update to one row.
	UpdateRecord(ctx context.Context, pos domain.PositionToken, updates map[string]any) error

	// RecordSale writes the sold date, sold price and takeaway of one row.
	RecordSale(ctx context.Context, pos domain.PositionToken, sale domain.SaleInput) error
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}

// MetricsSvc derives financial figures from a snapshot.
type MetricsSvc interface {
	// Totals sums spend, proceeds and profit.
	Totals(snapshot domain.StoreSnapshot) domain.Totals

	// StatusSplit counts unsold and sold records.
	StatusSplit(snapshot domain.StoreSnapshot) domain.StatusSplit

	// TimeSeries groups a metric into calendar buckets in chronological order.
	TimeSeries(ctx context.Context, snapshot domain.StoreSnapshot, bucket domain.Bucket, metric domain.Metric) (domain.Series, error)

	// Cumulative turns a date-sorted series into running totals.
	Cumulative(points []domain.SeriesPoint) []domain.SeriesPoint
}
