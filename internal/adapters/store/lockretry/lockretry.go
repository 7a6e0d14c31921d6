// Package lockretry retries writes a record store rejects because its backing
// file is held open by another application. Every attempt goes to the same
// store, so reads always see what was written.
package lockretry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/card_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/card_inventory_app/internal/metrics"
	"github.com/sethvargo/go-retry"
)

// Store wraps a RecordStore. A write failing with apperrors.ErrStoreLocked is
// attempted again up to retries times, wait apart. Other errors return at once.
// A lock is detected before anything is written, so repeating an append is safe.
type Store struct {
	store   portsrepo.RecordStore
	retries uint64
	wait    time.Duration
	logger  *slog.Logger
}

// New wraps store. A nil logger uses slog.Default; a non-positive wait uses one second.
func New(store portsrepo.RecordStore, retries int, wait time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if retries < 0 {
		retries = 0
	}
	if wait <= 0 {
		wait = time.Second
	}
	return &Store{store: store, retries: uint64(retries), wait: wait, logger: logger}
}

var _ portsrepo.RecordStore = (*Store)(nil)

func (s *Store) Name() string { return s.store.Name() }

func (s *Store) ReadAll(ctx context.Context) ([][]string, []string, error) {
	return s.store.ReadAll(ctx)
}

func (s *Store) Header(ctx context.Context) ([]string, error) {
	return s.store.Header(ctx)
}

func (s *Store) Append(ctx context.Context, row []any) (domain.PositionToken, error) {
	var pos domain.PositionToken
	err := s.do(ctx, "append", func(ctx context.Context) error {
		var err error
		pos, err = s.store.Append(ctx, row)
		return err
	})
	return pos, err
}

func (s *Store) UpdateCells(ctx context.Context, pos domain.PositionToken, updates []portsrepo.CellUpdate) error {
	return s.do(ctx, "update_cells", func(ctx context.Context) error {
		return s.store.UpdateCells(ctx, pos, updates)
	})
}

func (s *Store) do(ctx context.Context, op string, write func(context.Context) error) error {
	attempt := 0
	backoff := retry.WithMaxRetries(s.retries, retry.NewConstant(s.wait))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := write(ctx)
		if !errors.Is(err, apperrors.ErrStoreLocked) {
			return err
		}
		metrics.StoreLockRetriesTotal.WithLabelValues(s.store.Name(), op).Inc()
		s.logger.WarnContext(ctx, "Record store locked, waiting to retry write",
			slog.String("op", op),
			slog.String("backend", s.store.Name()),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		return retry.RetryableError(err)
	})
}
