package claims

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ShareAmount returns the participation-share value of a gross (100%)
// amount: gross × sharePercent / 100.
func ShareAmount(gross, sharePercent decimal.Decimal) decimal.Decimal {
	return gross.Mul(sharePercent).Div(hundred)
}

// NormalizeSharePercent resolves the two encodings of a participation
// share found in upstream data: a fraction (0.95) or a whole percentage
// (95). Values <= 1 are treated as fractions and scaled by 100; values
// above 1 pass through unchanged.
//
// Apply exactly once, at the boundary where a raw share value enters the
// system. Normalizing an already-normalized fraction corrupts it
// (Normalize(Normalize(0.95)) = 9500), so callers must track whether a
// value has been normalized; the service layer rejects fractional shares
// outright to keep the rule at the ingest edge.
func NormalizeSharePercent(v decimal.Decimal) decimal.Decimal {
	if v.LessThanOrEqual(decimal.NewFromInt(1)) {
		return v.Mul(hundred)
	}
	return v
}
