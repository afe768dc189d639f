package claims

import "github.com/shopspring/decimal"

// Totals are the aggregated financial figures of a claim, at full (100%)
// value and at the holder's participation share.
type Totals struct {
	IncurredGross  decimal.Decimal `json:"incurred_gross"`
	IncurredShare  decimal.Decimal `json:"incurred_share"`
	PaidGross      decimal.Decimal `json:"paid_gross"`
	PaidShare      decimal.Decimal `json:"paid_share"`
	RecoveredGross decimal.Decimal `json:"recovered_gross"`
	RecoveredShare decimal.Decimal `json:"recovered_share"`

	// Outstanding = incurred - paid + recovered. It can be negative
	// (over-payment) or exceed incurred (pending recoveries); no clamping.
	OutstandingGross decimal.Decimal `json:"outstanding_gross"`
	OutstandingShare decimal.Decimal `json:"outstanding_share"`
}

// Categorization of transaction types into totals. Fixed, not configurable.
var (
	incurredTypes = map[TransactionType]bool{
		TxReserveSet:    true,
		TxReserveAdjust: true,
		TxImportBalance: true,
	}
	paidTypes = map[TransactionType]bool{
		TxPayment:     true,
		TxLegalFee:    true,
		TxAdjusterFee: true,
	}
	recoveredTypes = map[TransactionType]bool{
		TxRecovery: true,
	}
)

// Aggregate folds a claim's ledger into Totals.
//
// The fold is commutative: totals are identical regardless of list order,
// even though display ordering is by date. Totals are always recomputed
// from the ledger, never stored where they could drift.
func Aggregate(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch {
		case incurredTypes[tx.Type]:
			t.IncurredGross = t.IncurredGross.Add(tx.AmountGross)
			t.IncurredShare = t.IncurredShare.Add(tx.AmountShare)
		case paidTypes[tx.Type]:
			t.PaidGross = t.PaidGross.Add(tx.AmountGross)
			t.PaidShare = t.PaidShare.Add(tx.AmountShare)
		case recoveredTypes[tx.Type]:
			t.RecoveredGross = t.RecoveredGross.Add(tx.AmountGross)
			t.RecoveredShare = t.RecoveredShare.Add(tx.AmountShare)
		}
	}
	t.OutstandingGross = t.IncurredGross.Sub(t.PaidGross).Add(t.RecoveredGross)
	t.OutstandingShare = t.IncurredShare.Sub(t.PaidShare).Add(t.RecoveredShare)
	return t
}

// ImportedTotals builds Totals from the lump-sum figures of an
// informational claim, which carries no itemized ledger. Portfolio import
// files have no recovery column, so recovered stays zero. The imported
// figures are already share-level amounts.
func ImportedTotals(c Claim) Totals {
	var t Totals
	t.IncurredShare = c.ImportedIncurred
	t.PaidShare = c.ImportedPaid
	t.OutstandingShare = t.IncurredShare.Sub(t.PaidShare)
	return t
}
