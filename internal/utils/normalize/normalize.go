// Package normalize converts loosely typed spreadsheet cells into canonical
// numeric and date values. Cells predate any validation, so nothing here panics
// or fails hard on bad input.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	domain.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Currency converts raw into a decimal amount, returning zero for anything it
// cannot read.
func Currency(raw any) decimal.Decimal {
	d, _ := ParseCurrency(raw)
	return d
}

// ParseCurrency is Currency with the parse failure reported as a
// *apperrors.ParseWarning. The returned amount is always usable.
func ParseCurrency(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, nil
		}
		return *v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, &apperrors.ParseWarning{Raw: fmt.Sprint(v), Err: errors.New("not a finite number")}
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		return ParseCurrency(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return ParseCurrency(string(v))
	case string:
		cleaned := stripCurrency(v)
		if cleaned == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.Zero, &apperrors.ParseWarning{Raw: v, Err: err}
		}
		return d, nil
	default:
		return decimal.Zero, &apperrors.ParseWarning{Raw: fmt.Sprint(v), Err: fmt.Errorf("unsupported type %T", v)}
	}
}

// stripCurrency drops currency symbols, grouping separators and whitespace.
func stripCurrency(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Date parses an ISO-8601 date. Empty input yields (nil, nil). Non-empty input
// that does not parse yields a *apperrors.ParseWarning; callers decide whether
// that matters.
func Date(raw any) (*time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		if v.IsZero() {
			return nil, nil
		}
		d := truncateDay(v)
		return &d, nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return Date(*v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		var lastErr error
		for _, layout := range dateLayouts {
			t, err := time.Parse(layout, s)
			if err == nil {
				d := truncateDay(t)
				return &d, nil
			}
			lastErr = err
		}
		return nil, &apperrors.ParseWarning{Raw: v, Err: lastErr}
	default:
		return nil, &apperrors.ParseWarning{Raw: fmt.Sprint(v), Err: fmt.Errorf("unsupported type %T", v)}
	}
}

// DateOr parses raw and falls back to def when the value is absent or malformed.
func DateOr(raw any, def *time.Time) *time.Time {
	d, err := Date(raw)
	if err != nil || d == nil {
		return def
	}
	return d
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Integer parses a whole number cell such as a lot number or year. Spreadsheet
// exports sometimes render integers as "7.0", which is accepted.
func Integer(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &apperrors.ParseWarning{Raw: raw, Err: errors.New("empty")}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &apperrors.ParseWarning{Raw: raw, Err: err}
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, &apperrors.ParseWarning{Raw: raw, Err: errors.New("not a whole number")}
	}
	return int(d.IntPart()), nil
}
