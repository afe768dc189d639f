package claims

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tx(typ TransactionType, gross, share string) Transaction {
	return Transaction{
		Type:        typ,
		AmountGross: dec(gross),
		AmountShare: dec(share),
		Currency:    "USD",
	}
}

// TestAggregate_Categorization tests that each transaction type lands in
// exactly one bucket.
func TestAggregate_Categorization(t *testing.T) {
	txs := []Transaction{
		tx(TxReserveSet, "10000", "5000"),
		tx(TxReserveAdjust, "-2000", "-1000"),
		tx(TxImportBalance, "500", "250"),
		tx(TxPayment, "4000", "2000"),
		tx(TxLegalFee, "600", "300"),
		tx(TxAdjusterFee, "400", "200"),
		tx(TxRecovery, "1000", "500"),
	}

	got := Aggregate(txs)

	assert.True(t, got.IncurredGross.Equal(dec("8500")), "incurred gross %s", got.IncurredGross)
	assert.True(t, got.IncurredShare.Equal(dec("4250")), "incurred share %s", got.IncurredShare)
	assert.True(t, got.PaidGross.Equal(dec("5000")), "paid gross %s", got.PaidGross)
	assert.True(t, got.PaidShare.Equal(dec("2500")), "paid share %s", got.PaidShare)
	assert.True(t, got.RecoveredGross.Equal(dec("1000")), "recovered gross %s", got.RecoveredGross)
	assert.True(t, got.RecoveredShare.Equal(dec("500")), "recovered share %s", got.RecoveredShare)
	// outstanding = incurred - paid + recovered
	assert.True(t, got.OutstandingGross.Equal(dec("4500")), "outstanding gross %s", got.OutstandingGross)
	assert.True(t, got.OutstandingShare.Equal(dec("2250")), "outstanding share %s", got.OutstandingShare)
}

// TestAggregate_NegativeOutstanding tests that over-payment yields a
// negative outstanding, surfaced rather than clamped.
func TestAggregate_NegativeOutstanding(t *testing.T) {
	txs := []Transaction{
		tx(TxReserveSet, "1000", "500"),
		tx(TxPayment, "3000", "1500"),
	}

	got := Aggregate(txs)
	assert.True(t, got.OutstandingGross.Equal(dec("-2000")), "outstanding gross %s", got.OutstandingGross)
	assert.True(t, got.OutstandingShare.Equal(dec("-1000")), "outstanding share %s", got.OutstandingShare)
}

// TestAggregate_PermutationInvariant tests commutativity: totals must be
// identical regardless of input order.
func TestAggregate_PermutationInvariant(t *testing.T) {
	txs := []Transaction{
		tx(TxReserveSet, "10000", "5000"),
		tx(TxPayment, "4000", "2000"),
		tx(TxReserveAdjust, "-1500", "-750"),
		tx(TxRecovery, "800", "400"),
		tx(TxLegalFee, "250", "125"),
		tx(TxImportBalance, "300", "150"),
	}
	want := Aggregate(txs)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Transaction, len(txs))
		copy(shuffled, txs)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Aggregate(shuffled), "permutation %d", i)
	}
}

// TestAggregate_Empty tests the zero-ledger case.
func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	assert.True(t, got.IncurredGross.IsZero())
	assert.True(t, got.OutstandingShare.IsZero())
}

// TestImportedTotals tests the lump-figure path for informational claims.
func TestImportedTotals(t *testing.T) {
	c := Claim{
		Liability:        LiabilityInformational,
		ImportedIncurred: dec("12000"),
		ImportedPaid:     dec("7500"),
	}

	got := ImportedTotals(c)
	assert.True(t, got.IncurredShare.Equal(dec("12000")))
	assert.True(t, got.PaidShare.Equal(dec("7500")))
	assert.True(t, got.OutstandingShare.Equal(dec("4500")))
	assert.True(t, got.RecoveredShare.IsZero())
	assert.True(t, got.IncurredGross.IsZero(), "lump figures carry no gross breakdown")
}
