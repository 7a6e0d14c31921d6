// Package memstore is an in-process record store. It backs tests and the
// "memory" backend used for demos.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/card_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/card_inventory_app/internal/metrics"
	"github.com/SscSPs/card_inventory_app/internal/utils/mapping"
)

// BackendName is reported by Name.
const BackendName = "memory"

// Store keeps the header and rows as cell text, the way a spreadsheet
// displays them.
type Store struct {
	mu     sync.RWMutex
	header []string
	rows   [][]string
}

// New creates a store with the given header and rows. A nil header uses
// domain.DefaultHeader.
func New(header []string, rows ...[]string) *Store {
	if header == nil {
		header = domain.DefaultHeader
	}
	s := &Store{header: slices.Clone(header)}
	for _, r := range rows {
		s.rows = append(s.rows, slices.Clone(r))
	}
	return s
}

var _ portsrepo.RecordStore = (*Store)(nil)

func (s *Store) Name() string { return BackendName }

func (s *Store) ReadAll(ctx context.Context) (rows [][]string, header []string, err error) {
	defer metrics.ObserveStoreOp(BackendName, "read_all", time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rows = make([][]string, len(s.rows))
	for i, r := range s.rows {
		rows[i] = slices.Clone(r)
	}
	return rows, slices.Clone(s.header), nil
}

func (s *Store) Header(ctx context.Context) (header []string, err error) {
	defer metrics.ObserveStoreOp(BackendName, "header", time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.header), nil
}

func (s *Store) Append(ctx context.Context, row []any) (pos domain.PositionToken, err error) {
	defer metrics.ObserveStoreOp(BackendName, "append", time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
	}

	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = mapping.CellText(v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, cells)
	return domain.FirstPosition + domain.PositionToken(len(s.rows)-1), nil
}

// UpdateCells applies all cells under one lock. Positions past the last row
// fail with apperrors.ErrNotFound.
func (s *Store) UpdateCells(ctx context.Context, pos domain.PositionToken, updates []portsrepo.CellUpdate) (err error) {
	defer metrics.ObserveStoreOp(BackendName, "update_cells", time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := int(pos - domain.FirstPosition)
	if !pos.Valid() || i >= len(s.rows) {
		return fmt.Errorf("%w: no row at %s", apperrors.ErrNotFound, pos)
	}
	for _, u := range updates {
		if u.Column < 0 {
			return fmt.Errorf("%w: negative column %d", apperrors.ErrStoreWrite, u.Column)
		}
	}
	row := s.rows[i]
	for _, u := range updates {
		for len(row) <= u.Column {
			row = append(row, "")
		}
		row[u.Column] = mapping.CellText(u.Value)
	}
	s.rows[i] = row
	return nil
}

// Len returns the number of rows after the header.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
