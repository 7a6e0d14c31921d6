package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/card_inventory_app/internal/adapters/store/lockretry"
	"github.com/SscSPs/card_inventory_app/internal/adapters/store/memstore"
	"github.com/SscSPs/card_inventory_app/internal/adapters/store/sheets"
	"github.com/SscSPs/card_inventory_app/internal/adapters/store/workbook"
	portsrepo "github.com/SscSPs/card_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/card_inventory_app/internal/platform/config"
)

// NewRecordStore builds the configured record store and checks that it is
// readable. A workbook store retries writes rejected while the file is open
// elsewhere; once the retries run out apperrors.ErrStoreLocked reaches the caller.
func NewRecordStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RecordStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := openBackend(ctx, cfg, cfg.StoreBackend)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}

	// Test the connection
	if _, err := store.Header(ctx); err != nil {
		return nil, fmt.Errorf("failed to read header from %s store: %w", store.Name(), err)
	}

	if cfg.StoreBackend == config.BackendWorkbook && cfg.StoreLockRetries > 0 {
		store = lockretry.New(store, cfg.StoreLockRetries, cfg.StoreLockWait, logger)
	}
	logger.Info("Record store ready", slog.String("backend", store.Name()), slog.Int("lock_retries", cfg.StoreLockRetries))
	return store, nil
}

func openBackend(ctx context.Context, cfg *config.Config, backend string) (portsrepo.RecordStore, error) {
	switch backend {
	case config.BackendMemory:
		return memstore.New(nil), nil
	case config.BackendWorkbook:
		wb := workbook.New(cfg.WorkbookPath, cfg.WorkbookSheet)
		if err := wb.EnsureWorkbook(ctx); err != nil {
			return nil, err
		}
		return wb, nil
	case config.BackendSheets:
		return sheets.New(ctx, sheets.Config{
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			Worksheet:       cfg.SheetsWorksheet,
			CredentialsFile: cfg.SheetsCredentialsFile,
			WritesPerMinute: cfg.SheetsWritesPerMinute,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
