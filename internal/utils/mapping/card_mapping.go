package mapping

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	"github.com/SscSPs/card_inventory_app/internal/utils"
	"github.com/SscSPs/card_inventory_app/internal/utils/normalize"
	"github.com/shopspring/decimal"
)

// HeaderIndex maps header field names to zero-based column indexes.
type HeaderIndex map[string]int

// NewHeaderIndex indexes a header row. Names are trimmed and the first
// occurrence of a duplicated name wins.
func NewHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

// Require fails with apperrors.ErrSchema naming every missing field.
func (h HeaderIndex) Require(fields ...string) error {
	var missing []string
	for _, f := range fields {
		if _, ok := h[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: header is missing %s", apperrors.ErrSchema, strings.Join(missing, ", "))
	}
	return nil
}

// RowToCardRecord decodes one store row. Malformed cells never fail the
// decode; each is returned as a *apperrors.ParseWarning and the field falls
// back to its zero value.
func RowToCardRecord(header []string, row []string, pos domain.PositionToken) (domain.CardRecord, []error) {
	cells := make(map[string]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := cells[name]; dup {
			continue
		}
		if i < len(row) {
			cells[name] = strings.TrimSpace(row[i])
		} else {
			cells[name] = ""
		}
	}

	var warnings []error
	warn := func(field string, err error) {
		if pw, ok := err.(*apperrors.ParseWarning); ok {
			pw.Field = field
		}
		warnings = append(warnings, err)
	}

	rec := domain.CardRecord{
		Position:         pos,
		PlayerName:       cells[domain.FieldPlayerName],
		SetName:          cells[domain.FieldSetName],
		NumberedParallel: cells[domain.FieldNumberedParallel],
		Auto:             yesNo(cells[domain.FieldAuto]),
		Patch:            yesNo(cells[domain.FieldPatch]),
		Graded:           yesNo(cells[domain.FieldGraded]),
		Listed:           yesNo(cells[domain.FieldListed]),
		BoughtFrom:       cells[domain.FieldBoughtFrom],
		SellerName:       cells[domain.FieldSellerName],
		LotNumber:        cells[domain.FieldLotNumber],
		Cells:            cells,
	}

	if raw := cells[domain.FieldYear]; raw != "" {
		year, err := normalize.Integer(raw)
		if err != nil {
			warn(domain.FieldYear, err)
		}
		rec.Year = year
	}

	price, err := normalize.ParseCurrency(cells[domain.FieldPurchasePrice])
	if err != nil {
		warn(domain.FieldPurchasePrice, err)
	}
	rec.PurchasePrice = price

	if rec.PurchaseDate, err = normalize.Date(cells[domain.FieldDatePurchased]); err != nil {
		warn(domain.FieldDatePurchased, err)
	}
	if rec.SoldDate, err = normalize.Date(cells[domain.FieldSoldDate]); err != nil {
		warn(domain.FieldSoldDate, err)
	}

	rec.SoldPrice = optionalCurrency(cells[domain.FieldSoldPrice], domain.FieldSoldPrice, warn)
	rec.Takeaway = optionalCurrency(cells[domain.FieldTakeaway], domain.FieldTakeaway, warn)

	return rec, warnings
}

func optionalCurrency(raw, field string, warn func(string, error)) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := normalize.ParseCurrency(raw)
	if err != nil {
		warn(field, err)
	}
	return &d
}

func yesNo(raw string) domain.YesNo {
	if strings.EqualFold(strings.TrimSpace(raw), string(domain.Yes)) {
		return domain.Yes
	}
	return domain.No
}

// CardInputToRow lays out a new record in header order. Every entry field must
// have a column; columns the input does not fill are left empty.
func CardInputToRow(header []string, in domain.CardInput, currencyCode string) ([]any, error) {
	idx := NewHeaderIndex(header)
	if err := idx.Require(domain.EntryFields...); err != nil {
		return nil, err
	}

	numbered := strings.TrimSpace(in.NumberedParallel)
	if numbered == "" {
		numbered = domain.DefaultNumberedParallel
	}

	values := map[string]any{
		domain.FieldPlayerName:       strings.TrimSpace(in.PlayerName),
		domain.FieldSetName:          strings.TrimSpace(in.SetName),
		domain.FieldNumberedParallel: numbered,
		domain.FieldAuto:             string(domain.YesNoFrom(in.Auto)),
		domain.FieldPatch:            string(domain.YesNoFrom(in.Patch)),
		domain.FieldYear:             in.Year,
		domain.FieldGraded:           string(domain.YesNoFrom(in.Graded)),
		domain.FieldBoughtFrom:       strings.TrimSpace(in.BoughtFrom),
		domain.FieldSellerName:       strings.TrimSpace(in.SellerName),
		domain.FieldPurchasePrice:    utils.FormatCurrency(in.PurchasePrice, currencyCode),
		domain.FieldDatePurchased:    in.PurchaseDate.Format(domain.DateLayout),
		domain.FieldListed:           string(domain.YesNoFrom(in.Listed)),
		domain.FieldLotNumber:        in.LotNumber,
	}

	row := make([]any, len(header))
	for i := range row {
		row[i] = ""
	}
	for field, v := range values {
		row[idx[field]] = v
	}
	return row, nil
}

// SaleToUpdates renders a sale as field-name keyed cell values.
func SaleToUpdates(sale domain.SaleInput, currencyCode string) map[string]any {
	return map[string]any{
		domain.FieldSoldDate:  sale.SoldDate.Format(domain.DateLayout),
		domain.FieldSoldPrice: utils.FormatCurrency(sale.SoldPrice, currencyCode),
		domain.FieldTakeaway:  utils.FormatCurrency(sale.Takeaway, currencyCode),
	}
}

// CanonicalCell rewrites a currency or date value into the text AddRecord and
// RecordSale would write, e.g. 80 becomes "$80.00" and "2025-01-10T00:00:00"
// becomes "2025-01-10". Other fields and unreadable values pass through as given.
func CanonicalCell(field string, v any, currencyCode string) any {
	switch field {
	case domain.FieldPurchasePrice, domain.FieldSoldPrice, domain.FieldTakeaway:
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return v
		}
		if amount, err := normalize.ParseCurrency(v); err == nil && v != nil {
			return utils.FormatCurrency(amount, currencyCode)
		}
	case domain.FieldDatePurchased, domain.FieldSoldDate:
		if d := normalize.DateOr(v, nil); d != nil {
			return d.Format(domain.DateLayout)
		}
	}
	return v
}

// CellText renders a cell value as the text a spreadsheet would display.
func CellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(domain.DateLayout)
	case decimal.Decimal:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
