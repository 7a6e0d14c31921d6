package repositories

import (
	"context"

	"github.com/SscSPs/card_inventory_app/internal/core/domain"
)

// CellUpdate is one positional cell write within a row.
type CellUpdate struct {
	// Column is the zero-based column index within the header.
	Column int
	Value  any
}

// RecordReader defines read operations over a row-oriented table with a header row.
type RecordReader interface {
	// ReadAll returns every row after the header, in store order, plus the header.
	// Fails with apperrors.ErrStoreUnavailable when the backing resource cannot be opened.
	ReadAll(ctx context.Context) (rows [][]string, header []string, err error)

	// Header returns only the header row.
	Header(ctx context.Context) ([]string, error)
}

// RecordWriter defines write operations over the same table.
type RecordWriter interface {
	// Append adds a row after the last record and returns its position.
	// Fails with apperrors.ErrStoreWrite (or ErrStoreLocked).
	Append(ctx context.Context, row []any) (domain.PositionToken, error)

	// UpdateCells writes the given cells of one row. Backends that support it
	// apply the whole set atomically, otherwise cell by cell.
	UpdateCells(ctx context.Context, pos domain.PositionToken, updates []CellUpdate) error
}

// RecordStore is the Record Store Adapter consumed by the ledger.
type RecordStore interface {
	RecordReader
	RecordWriter

	// Name identifies the backend in logs and metrics, e.g. "sheets" or "workbook".
	Name() string
}
