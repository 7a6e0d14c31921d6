// Package sheets stores inventory records in a Google Sheets worksheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/card_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/card_inventory_app/internal/metrics"
	"github.com/SscSPs/card_inventory_app/internal/utils/mapping"
	"github.com/xuri/excelize/v2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// BackendName is reported by Name.
const BackendName = "sheets"

// Values are entered as if typed into the UI, so "$12.50" becomes a currency
// cell and "2024-11-05" a date.
const valueInputOption = "USER_ENTERED"

// Config identifies the worksheet and how to reach it.
type Config struct {
	SpreadsheetID   string
	Worksheet       string
	CredentialsFile string
	// WritesPerMinute throttles Append and UpdateCells. Zero disables throttling.
	WritesPerMinute int
}

// Store is a RecordStore over one worksheet of a spreadsheet.
type Store struct {
	values  *sheetsapi.SpreadsheetsValuesService
	cfg     Config
	limiter *rate.Limiter
}

var _ portsrepo.RecordStore = (*Store)(nil)

// New connects to the Sheets API. When no client options are given the
// service account key in cfg.CredentialsFile is used.
func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Store, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is required", apperrors.ErrStoreUnavailable)
	}
	if cfg.Worksheet == "" {
		return nil, fmt.Errorf("%w: worksheet name is required", apperrors.ErrStoreUnavailable)
	}

	if len(opts) == 0 {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: read credentials %s: %w", apperrors.ErrStoreUnavailable, cfg.CredentialsFile, err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("%w: parse credentials: %w", apperrors.ErrStoreUnavailable, err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets client: %w", apperrors.ErrStoreUnavailable, err)
	}

	limit := rate.Inf
	if cfg.WritesPerMinute > 0 {
		limit = rate.Limit(float64(cfg.WritesPerMinute) / 60)
	}

	return &Store{
		values:  svc.Spreadsheets.Values,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

func (s *Store) Name() string { return BackendName }

// a1 qualifies a range with the quoted worksheet name.
func (s *Store) a1(rng string) string {
	sheet := "'" + strings.ReplaceAll(s.cfg.Worksheet, "'", "''") + "'"
	if rng == "" {
		return sheet
	}
	return sheet + "!" + rng
}

func (s *Store) ReadAll(ctx context.Context) (rows [][]string, header []string, err error) {
	defer metrics.ObserveStoreOp(BackendName, "read_all", time.Now(), &err)

	all, err := s.get(ctx, s.a1(""))
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

	all, err := s.get(ctx, s.a1("1:1"))
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (s *Store) get(ctx context.Context, rng string) ([][]string, error) {
	resp, err := s.values.Get(s.cfg.SpreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(apperrors.ErrStoreUnavailable, "read "+rng, err)
	}

	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = mapping.CellText(v)
		}
		out[i] = cells
	}
	return out, nil
}

// Append inserts row after the last row of the sheet's table. The position
// is read back from the range the API reports as updated.
func (s *Store) Append(ctx context.Context, row []any) (pos domain.PositionToken, err error) {
	defer metrics.ObserveStoreOp(BackendName, "append", time.Now(), &err)
	if err = s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
	}

	resp, err := s.values.Append(s.cfg.SpreadsheetID, s.a1("A1"), &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]any{row},
	}).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, classify(apperrors.ErrStoreWrite, "append", err)
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("%w: append response has no updated range", apperrors.ErrStoreWrite)
	}

	sheetRow, err := firstRow(resp.Updates.UpdatedRange)
	if err != nil {
		return 0, fmt.Errorf("%w: row was appended at an unknown position: %w", apperrors.ErrStoreWrite, err)
	}
	return domain.PositionToken(sheetRow), nil
}

// UpdateCells sends every cell in one batch request, which the API applies
// atomically.
func (s *Store) UpdateCells(ctx context.Context, pos domain.PositionToken, updates []portsrepo.CellUpdate) (err error) {
	defer metrics.ObserveStoreOp(BackendName, "update_cells", time.Now(), &err)
	if !pos.Valid() {
		return fmt.Errorf("%w: no row at %s", apperrors.ErrNotFound, pos)
	}

	data := make([]*sheetsapi.ValueRange, 0, len(updates))
	for _, u := range updates {
		cell, cerr := excelize.CoordinatesToCellName(u.Column+1, int(pos))
		if cerr != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, cerr)
		}
		data = append(data, &sheetsapi.ValueRange{
			Range:  s.a1(cell),
			Values: [][]any{{u.Value}},
		})
	}

	if err = s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStoreWrite, err)
	}
	_, err = s.values.BatchUpdate(s.cfg.SpreadsheetID, &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: valueInputOption,
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return classify(apperrors.ErrStoreWrite, "update "+pos.String(), err)
	}
	return nil
}

// firstRow extracts the starting row from an A1 range such as "'Inventory'!A5:P5".
func firstRow(a1 string) (int, error) {
	rng := a1
	if i := strings.LastIndex(rng, "!"); i >= 0 {
		rng = rng[i+1:]
	}
	start, _, _ := strings.Cut(rng, ":")
	_, row, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return 0, fmt.Errorf("parse range %q: %w", a1, err)
	}
	return row, nil
}

// classify tags an API failure with kind: ErrStoreUnavailable for reads and
// ErrStoreWrite for writes. The HTTP status, when there is one, goes into the message.
func classify(kind error, op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s: status %d: %w", kind, op, apiErr.Code, err)
	}
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}
