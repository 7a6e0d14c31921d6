// Package workbook stores inventory records in a local .xlsx file.
//
// Every call opens the file, works on it and closes it again, so edits made
// in a spreadsheet application between calls are picked up. When the file is
// held open by such an application writes fail with apperrors.ErrStoreLocked.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/card_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/card_inventory_app/internal/metrics"
	"github.com/xuri/excelize/v2"
)

// BackendName is reported by Name.
const BackendName = "workbook"

// Store is a RecordStore over one worksheet of a workbook file.
type Store struct {
	mu    sync.Mutex
	path  string
	sheet string
}

// New creates a store for the named worksheet of the workbook at path.
func New(path, sheet string) *Store {
	return &Store{path: path, sheet: sheet}
}

var _ portsrepo.RecordStore = (*Store)(nil)

func (s *Store) Name() string { return BackendName }

// Path returns the workbook file path.
func (s *Store) Path() string { return s.path }

// EnsureWorkbook creates the workbook with a default header row if it does not
// exist, and adds the worksheet if the workbook lacks it. An existing sheet is
// never modified.
func (s *Store) EnsureWorkbook(ctx context.Context) (err error) {
	defer metrics.ObserveStoreOp(BackendName, "ensure", time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, statErr := os.Stat(s.path); errors.Is(statErr, fs.ErrNotExist) {
		if dir := filepath.Dir(s.path); dir != "" {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return fmt.Errorf("%w: create directory %s: %w", apperrors.ErrStoreUnavailable, dir, mkErr)
			}
		}
		f := excelize.NewFile()
		defer f.Close()
		if err = f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
		}
		if err = writeHeader(f, s.sheet); err != nil {
			return err
		}
		if err = f.SaveAs(s.path); err != nil {
			return classifyWriteErr(err)
		}
		return nil
	}

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(s.sheet)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrSchema, err)
	}
	if idx >= 0 {
		return nil
	}
	if _, err = f.NewSheet(s.sheet); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
	}
	if err = writeHeader(f, s.sheet); err != nil {
		return err
	}
	if err = s.save(f); err != nil {
		return err
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string) error {
	header := make([]any, len(domain.DefaultHeader))
	for i, h := range domain.DefaultHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%w: write header: %w", apperrors.ErrStoreWrite, err)
	}
	return nil
}

func (s *Store) ReadAll(ctx context.Context) (rows [][]string, header []string, err error) {
	defer metrics.ObserveStoreOp(BackendName, "read_all", time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.readRows()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[1:], all[0], nil
}

func (s *Store) Header(ctx context.Context) (header []string, err error) {
	defer metrics.ObserveStoreOp(BackendName, "header", time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.readRows()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (s *Store) readRows() ([][]string, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		var missing excelize.ErrSheetNotExist
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: workbook %s has no sheet %q", apperrors.ErrStoreUnavailable, s.path, s.sheet)
		}
		return nil, fmt.Errorf("%w: read %s: %w", apperrors.ErrStoreUnavailable, s.path, err)
	}
	return rows, nil
}

// Append writes row below the last non-empty row of the sheet.
func (s *Store) Append(ctx context.Context, row []any) (pos domain.PositionToken, err error) {
	defer metrics.ObserveStoreOp(BackendName, "append", time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err = s.checkLock(); err != nil {
		return 0, err
	}

	f, err := s.open()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %w", apperrors.ErrStoreUnavailable, s.path, err)
	}
	last := len(rows)
	for last > 0 && blank(rows[last-1]) {
		last--
	}
	sheetRow := last + 1

	cell, err := excelize.CoordinatesToCellName(1, sheetRow)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
	}
	values := append([]any(nil), row...)
	if err = f.SetSheetRow(s.sheet, cell, &values); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
	}
	if err = s.save(f); err != nil {
		return 0, err
	}
	return domain.PositionToken(sheetRow), nil
}

// UpdateCells writes the cells and saves once, so either all of them land or
// none do.
func (s *Store) UpdateCells(ctx context.Context, pos domain.PositionToken, updates []portsrepo.CellUpdate) (err error) {
	defer metrics.ObserveStoreOp(BackendName, "update_cells", time.Now(), &err)
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
	}
	if !pos.Valid() {
		return fmt.Errorf("%w: no row at %s", apperrors.ErrNotFound, pos)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err = s.checkLock(); err != nil {
		return err
	}

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", apperrors.ErrStoreUnavailable, s.path, err)
	}
	if int(pos) > len(rows) {
		return fmt.Errorf("%w: no row at %s", apperrors.ErrNotFound, pos)
	}

	for _, u := range updates {
		cell, cerr := excelize.CoordinatesToCellName(u.Column+1, int(pos))
		if cerr != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, cerr)
		}
		if err = f.SetCellValue(s.sheet, cell, u.Value); err != nil {
			return fmt.Errorf("%w: set %s: %w", apperrors.ErrStoreWrite, cell, err)
		}
	}
	return s.save(f)
}

func (s *Store) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", apperrors.ErrStoreUnavailable, s.path, err)
	}
	return f, nil
}

func (s *Store) save(f *excelize.File) error {
	if err := f.Save(); err != nil {
		return classifyWriteErr(err)
	}
	return nil
}

// checkLock looks for the owner file a spreadsheet application keeps next to
// a workbook it has open: "~$name.xlsx" for Excel, ".~lock.name.xlsx#" for
// LibreOffice.
func (s *Store) checkLock() error {
	dir, base := filepath.Dir(s.path), filepath.Base(s.path)
	for _, owner := range []string{"~$" + base, ".~lock." + base + "#"} {
		if _, err := os.Stat(filepath.Join(dir, owner)); err == nil {
			return fmt.Errorf("%w: %s is open in another application", apperrors.ErrStoreLocked, s.path)
		}
	}
	return nil
}

func classifyWriteErr(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", apperrors.ErrStoreLocked, err)
	}
	return fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
