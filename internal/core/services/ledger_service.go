package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/card_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/card_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/card_inventory_app/internal/metrics"
	"github.com/SscSPs/card_inventory_app/internal/utils"
	"github.com/SscSPs/card_inventory_app/internal/utils/mapping"
	"github.com/SscSPs/card_inventory_app/internal/utils/normalize"
	"github.com/go-playground/validator/v10"
)

// ledgerService holds no state between calls: every read goes to the store
// and snapshots are returned to the caller, which owns caching.
type ledgerService struct {
	BaseService
	store        portsrepo.RecordStore
	validate     *validator.Validate
	currencyCode string
	now          func() time.Time
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithCurrencyCode sets the currency used to render amounts written to the store.
func WithCurrencyCode(code string) LedgerServiceOption {
	return func(s *ledgerService) {
		if code != "" {
			s.currencyCode = code
		}
	}
}

// WithClock overrides the time source used for defaults and year bounds.
func WithClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new ledger service over a record store.
func NewLedgerService(store portsrepo.RecordStore, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		store:        store,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		currencyCode: utils.DefaultCurrencyCode,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Load reads every row from the store and decodes it into a snapshot.
// Rows with no content are skipped but still consume a position.
func (s *ledgerService) Load(ctx context.Context) (domain.StoreSnapshot, error) {
	rows, header, err := s.store.ReadAll(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read records", slog.String("backend", s.store.Name()))
		return domain.StoreSnapshot{}, fmt.Errorf("load records: %w", err)
	}

	records := make([]domain.CardRecord, 0, len(rows))
	warnings := 0
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		pos := domain.FirstPosition + domain.PositionToken(i)
		rec, parseWarnings := mapping.RowToCardRecord(header, row, pos)
		for _, w := range parseWarnings {
			warnings++
			field := ""
			var pw *apperrors.ParseWarning
			if errors.As(w, &pw) {
				field = pw.Field
			}
			metrics.ParseWarningsTotal.WithLabelValues(field).Inc()
			s.LogWarn(ctx, "Unparseable cell, using default",
				slog.String("position", pos.String()),
				slog.String("warning", w.Error()))
		}
		records = append(records, rec)
	}

	metrics.LedgerRecordsLoaded.Set(float64(len(records)))
	s.LogDebug(ctx, "Records loaded",
		slog.String("backend", s.store.Name()),
		slog.Int("record_count", len(records)),
		slog.Int("parse_warnings", warnings))

	return domain.NewStoreSnapshot(records, header, s.now()), nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// NextLotNumber returns one more than the largest parseable lot number.
func (s *ledgerService) NextLotNumber(snapshot domain.StoreSnapshot) int {
	maxLot, found := 0, false
	for _, rec := range snapshot.Records() {
		lot, err := normalize.Integer(rec.LotNumber)
		if err != nil {
			continue
		}
		if !found || lot > maxLot {
			maxLot, found = lot, true
		}
	}
	if !found || maxLot < 0 {
		return 1
	}
	return maxLot + 1
}

// BuildDisplayLabel composes the identity fields and always ends with the
// position, so labels of distinct positions never collide.
func (s *ledgerService) BuildDisplayLabel(record domain.CardRecord, pos domain.PositionToken) string {
	year := record.Cells[domain.FieldYear]
	if record.Year > 0 {
		year = fmt.Sprint(record.Year)
	}

	parts := []string{record.PlayerName, year, record.SetName}
	if n := strings.TrimSpace(record.NumberedParallel); n != "" && n != domain.DefaultNumberedParallel && n != "Base" {
		parts = append(parts, "("+n+")")
	}
	if record.Auto.Bool() {
		parts = append(parts, "(Auto)")
	}
	if record.Patch.Bool() {
		parts = append(parts, "(Patch)")
	}
	if record.Graded.Bool() {
		parts = append(parts, "(Graded)")
	}
	if lot := strings.TrimSpace(record.LotNumber); lot != "" {
		parts = append(parts, "[Lot: "+lot+"]")
	}

	parts = slices.DeleteFunc(parts, func(p string) bool { return strings.TrimSpace(p) == "" })
	name := strings.Join(parts, " - ")
	if name == "" {
		return fmt.Sprintf("(%s)", pos)
	}
	return fmt.Sprintf("%s (%s)", name, pos)
}

// Selections lists every record's label in store order.
func (s *ledgerService) Selections(snapshot domain.StoreSnapshot) []domain.Selection {
	records := snapshot.Records()
	out := make([]domain.Selection, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.Selection{
			Label:    s.BuildDisplayLabel(rec, rec.Position),
			Position: rec.Position,
		})
	}
	return out
}

// ResolveSelection maps a label from Selections back to its position.
func (s *ledgerService) ResolveSelection(snapshot domain.StoreSnapshot, label string) (domain.PositionToken, error) {
	for _, sel := range s.Selections(snapshot) {
		if sel.Label == label {
			return sel.Position, nil
		}
	}
	return 0, fmt.Errorf("%w: no card matches selection %q", apperrors.ErrNotFound, label)
}

// RecordAt returns the record at pos in the snapshot.
func (s *ledgerService) RecordAt(snapshot domain.StoreSnapshot, pos domain.PositionToken) (domain.CardRecord, error) {
	rec, ok := snapshot.Record(pos)
	if !ok {
		return domain.CardRecord{}, fmt.Errorf("%w: no card at %s", apperrors.ErrNotFound, pos)
	}
	return rec, nil
}

// AddRecord validates the input, lays it out in header order and appends it.
// Appends are never retried: a failed attempt may already have written a row.
func (s *ledgerService) AddRecord(ctx context.Context, in domain.CardInput) (domain.PositionToken, error) {
	in.PlayerName = strings.TrimSpace(in.PlayerName)
	if err := s.validateCardInput(in); err != nil {
		s.LogWarn(ctx, "Rejected new card", slog.String("error", err.Error()))
		return 0, err
	}
	if in.PurchaseDate.IsZero() {
		in.PurchaseDate = s.now()
	}

	header, err := s.store.Header(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read header for new card")
		return 0, fmt.Errorf("add record: %w", err)
	}

	row, err := mapping.CardInputToRow(header, in, s.currencyCode)
	if err != nil {
		s.LogError(ctx, err, "Store header cannot hold a new card")
		return 0, fmt.Errorf("add record: %w", err)
	}

	pos, err := s.store.Append(ctx, row)
	if err != nil {
		s.LogError(ctx, err, "Failed to append card",
			slog.String("backend", s.store.Name()),
			slog.String("player", in.PlayerName))
		return 0, fmt.Errorf("add record: %w", err)
	}

	s.LogInfo(ctx, "Card added",
		slog.String("position", pos.String()),
		slog.String("player", in.PlayerName),
		slog.Int("lot_number", in.LotNumber))
	return pos, nil
}

func (s *ledgerService) validateCardInput(in domain.CardInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, describeValidation(err))
	}
	if in.Year > s.now().Year() {
		return fmt.Errorf("%w: Year must not be after %d", apperrors.ErrValidation, s.now().Year())
	}
	if in.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: PurchasePrice must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// UpdateRecord resolves every field name against the header and writes the
// cells in one call. Any unknown field fails the whole update. Currency and
// date values are written in their canonical cell form.
func (s *ledgerService) UpdateRecord(ctx context.Context, pos domain.PositionToken, updates map[string]any) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: %s does not address a card row", apperrors.ErrValidation, pos)
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}

	header, err := s.store.Header(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read header for update", slog.String("position", pos.String()))
		return fmt.Errorf("update record: %w", err)
	}

	idx := mapping.NewHeaderIndex(header)
	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	if err := idx.Require(fields...); err != nil {
		s.LogError(ctx, err, "Update names unknown fields", slog.String("position", pos.String()))
		return fmt.Errorf("update record: %w", err)
	}

	cells := make([]portsrepo.CellUpdate, 0, len(updates))
	for _, field := range fields {
		cells = append(cells, portsrepo.CellUpdate{Column: idx[field], Value: mapping.CanonicalCell(field, updates[field], s.currencyCode)})
	}
	slices.SortFunc(cells, func(a, b portsrepo.CellUpdate) int { return a.Column - b.Column })

	if err := s.store.UpdateCells(ctx, pos, cells); err != nil {
		s.LogError(ctx, err, "Failed to update card",
			slog.String("backend", s.store.Name()),
			slog.String("position", pos.String()))
		return fmt.Errorf("update record: %w", err)
	}

	s.LogInfo(ctx, "Card updated",
		slog.String("position", pos.String()),
		slog.Any("fields", fields))
	return nil
}

// RecordSale writes the disposition fields of a sold card.
func (s *ledgerService) RecordSale(ctx context.Context, pos domain.PositionToken, sale domain.SaleInput) error {
	if err := s.validate.Struct(sale); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, describeValidation(err))
	}
	if sale.SoldPrice.IsNegative() || sale.Takeaway.IsNegative() {
		return fmt.Errorf("%w: sale amounts must not be negative", apperrors.ErrValidation)
	}
	return s.UpdateRecord(ctx, pos, mapping.SaleToUpdates(sale, s.currencyCode))
}

// describeValidation flattens validator errors into one readable line.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

