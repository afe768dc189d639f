package claims

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ValidCurrency reports whether code is a well-formed ISO 4217 currency
// code. Used at ingest boundaries; stored transactions keep the code as-is.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}

// FormatAmount renders a decimal amount with the currency's symbol and
// fraction rules, for display only. Stored values are exact decimals and
// never pass through this.
func FormatAmount(v decimal.Decimal, code string) string {
	// The money constructor always yields a non-nil currency, falling
	// back to a generic formatter for unknown codes.
	cur := money.New(0, code).Currency()
	minor := v.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.Round(0).IntPart())
}
