package normalize_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/utils/normalize"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{name: "symbol and grouping", raw: "$1,234.50", want: "1234.5"},
		{name: "empty string", raw: "", want: "0"},
		{name: "nil", raw: nil, want: "0"},
		{name: "int", raw: 42, want: "42"},
		{name: "float", raw: 19.99, want: "19.99"},
		{name: "plain number text", raw: "75", want: "75"},
		{name: "negative with symbol", raw: "-$5.25", want: "-5.25"},
		{name: "padded", raw: "  $ 80.00 ", want: "80"},
		{name: "euro symbol", raw: "€12", want: "12"},
		{name: "garbage", raw: "abc", want: "0"},
		{name: "symbol only", raw: "$", want: "0"},
		{name: "json number", raw: json.Number("3.10"), want: "3.1"},
		{name: "slice", raw: []string{"1"}, want: "0"},
		{name: "struct", raw: struct{}{}, want: "0"},
		{name: "nan", raw: math.NaN(), want: "0"},
		{name: "positive infinity", raw: math.Inf(1), want: "0"},
		{name: "negative infinity", raw: math.Inf(-1), want: "0"},
		{name: "float32 infinity", raw: float32(math.Inf(1)), want: "0"},
		{name: "nan text", raw: "NaN", want: "0"},
		{name: "infinity text", raw: "-Inf", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.Currency(tt.raw)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestParseCurrency_NonFiniteFloatWarns(t *testing.T) {
	for _, raw := range []any{math.NaN(), math.Inf(1), float32(math.Inf(-1))} {
		d, err := normalize.ParseCurrency(raw)
		assert.True(t, d.IsZero())
		assert.ErrorIs(t, err, apperrors.ErrParse)
	}
}

func TestParseCurrency_ReportsWarning(t *testing.T) {
	d, err := normalize.ParseCurrency("twelve")
	assert.True(t, d.IsZero())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrParse)

	var warning *apperrors.ParseWarning
	require.ErrorAs(t, err, &warning)
	assert.Equal(t, "twelve", warning.Raw)

	_, err = normalize.ParseCurrency("")
	assert.NoError(t, err)
}

func TestDate(t *testing.T) {
	t.Run("iso date", func(t *testing.T) {
		d, err := normalize.Date("2024-03-01")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("datetime text truncates to day", func(t *testing.T) {
		d, err := normalize.Date("2024-03-01 15:04:05")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("empty is absent", func(t *testing.T) {
		d, err := normalize.Date("")
		assert.NoError(t, err)
		assert.Nil(t, d)

		d, err = normalize.Date("   ")
		assert.NoError(t, err)
		assert.Nil(t, d)

		d, err = normalize.Date(nil)
		assert.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("malformed is a parse warning", func(t *testing.T) {
		d, err := normalize.Date("not-a-date")
		assert.Nil(t, d)
		assert.ErrorIs(t, err, apperrors.ErrParse)
	})

	t.Run("time value", func(t *testing.T) {
		in := time.Date(2025, time.January, 10, 18, 30, 0, 0, time.UTC)
		d, err := normalize.Date(in)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), *d)
	})
}

func TestDateOr(t *testing.T) {
	def := time.Date(2020, time.May, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, &def, normalize.DateOr("not-a-date", &def))
	assert.Equal(t, &def, normalize.DateOr("", &def))
	assert.Nil(t, normalize.DateOr("garbage", nil))

	got := normalize.DateOr("2024-12-15", &def)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC), *got)
}

func TestInteger(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "7", want: 7},
		{raw: " 12 ", want: 12},
		{raw: "3.0", want: 3},
		{raw: "3.5", wantErr: true},
		{raw: "bad", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalize.Integer(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
