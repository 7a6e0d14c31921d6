package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrencyCode is used when a configured code is unknown to go-money.
const DefaultCurrencyCode = money.USD

// FormatCurrency renders an amount the way it is written into a currency cell,
// e.g. 1234.5 with USD returns "$1,234.50".
func FormatCurrency(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrencyCode)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
