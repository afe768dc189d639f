package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MamurS/InsurTech-sub004/internal/claims"
)

func testTxn(claimID, id string) claims.Transaction {
	return claims.Transaction{
		ID:           id,
		ClaimID:      claimID,
		Type:         claims.TxReserveSet,
		Date:         claims.NewDate(2024, time.July, 1),
		AmountGross:  decimal.NewFromInt(10000),
		Currency:     "USD",
		SharePercent: decimal.NewFromInt(50),
		AmountShare:  decimal.NewFromInt(5000),
		CreatedBy:    "tester",
		CreatedAt:    time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC),
	}
}

// TestInsertClaim_DuplicateNumber tests the DUPLICATE_KEY mapping on the
// (policy, claim number) pair.
func TestInsertClaim_DuplicateNumber(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)
	c := seedClaim(t, s, "clm-1")

	dup := c
	dup.ID = "clm-other"
	err := s.InsertClaim(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, claims.IsDuplicateKey(err))
}

// TestInsertClaim_IdempotentRetry tests that re-inserting the same claim
// ID is a silent no-op.
func TestInsertClaim_IdempotentRetry(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)
	c := seedClaim(t, s, "clm-1")

	require.NoError(t, s.InsertClaim(context.Background(), c))

	list, err := s.ListClaims(context.Background(), "pol-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// TestAppendTransaction_AssignsSeq tests insertion-order seq assignment.
func TestAppendTransaction_AssignsSeq(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)
	seedClaim(t, s, "clm-1")
	ctx := context.Background()

	first, err := s.AppendTransaction(ctx, testTxn("clm-1", "tx-1"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Seq)

	second, err := s.AppendTransaction(ctx, testTxn("clm-1", "tx-2"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Seq)
}

// TestAppendTransaction_GuardBlocksWrite tests that a failing guard leaves
// the ledger untouched.
func TestAppendTransaction_GuardBlocksWrite(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)
	seedClaim(t, s, "clm-1")
	ctx := context.Background()

	guard := func(c claims.Claim) error {
		return claims.NewInvalidOperation(c.ID, "claim is not open")
	}
	_, err := s.AppendTransaction(ctx, testTxn("clm-1", "tx-1"), guard)
	require.Error(t, err)
	assert.True(t, claims.IsInvalidOperation(err))

	ledger, err := s.ListTransactions(ctx, "clm-1")
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

// TestAppendTransaction_GuardSeesCurrentRow tests that the guard runs
// against the claim's current status, not a stale snapshot.
func TestAppendTransaction_GuardSeesCurrentRow(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)
	seedClaim(t, s, "clm-1")
	ctx := context.Background()

	// Close the claim through the status path.
	_, err := s.UpdateClaimStatus(ctx, "clm-1", func(c claims.Claim) (claims.Claim, error) {
		return claims.ApplyTransition(c, claims.StatusClosed, time.Now())
	})
	require.NoError(t, err)

	_, err = s.AppendTransaction(ctx, testTxn("clm-1", "tx-1"), func(c claims.Claim) error {
		return claims.CanAppend(c, claims.TxPayment)
	})
	require.Error(t, err)
	assert.True(t, claims.IsInvalidOperation(err))
}

// TestAppendTransaction_IdempotentRetry tests replaying the same entry ID.
func TestAppendTransaction_IdempotentRetry(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)
	seedClaim(t, s, "clm-1")
	ctx := context.Background()

	txn := testTxn("clm-1", "tx-1")
	first, err := s.AppendTransaction(ctx, txn, nil)
	require.NoError(t, err)

	again, err := s.AppendTransaction(ctx, txn, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Seq, again.Seq)

	ledger, err := s.ListTransactions(ctx, "clm-1")
	require.NoError(t, err)
	assert.Len(t, ledger, 1)
}

// TestAppendTransaction_UnknownClaim tests the NOT_FOUND path.
func TestAppendTransaction_UnknownClaim(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)

	_, err := s.AppendTransaction(context.Background(), testTxn("missing", "tx-1"), nil)
	require.Error(t, err)
	assert.True(t, claims.IsNotFound(err))
}

// TestUpdateClaimStatus_RoundTrip tests the closed-date column through a
// close/reopen cycle.
func TestUpdateClaimStatus_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)
	seedClaim(t, s, "clm-1")
	ctx := context.Background()
	now := time.Date(2024, time.August, 1, 15, 0, 0, 0, time.UTC)

	closed, err := s.UpdateClaimStatus(ctx, "clm-1", func(c claims.Claim) (claims.Claim, error) {
		return claims.ApplyTransition(c, claims.StatusClosed, now)
	})
	require.NoError(t, err)
	require.NotNil(t, closed.ClosedDate)

	got, err := s.GetClaim(ctx, "clm-1")
	require.NoError(t, err)
	assert.Equal(t, claims.StatusClosed, got.Status)
	require.NotNil(t, got.ClosedDate)
	assert.True(t, got.ClosedDate.Equal(now))

	reopened, err := s.UpdateClaimStatus(ctx, "clm-1", func(c claims.Claim) (claims.Claim, error) {
		return claims.ApplyTransition(c, claims.StatusReopened, now.Add(time.Hour))
	})
	require.NoError(t, err)
	assert.Nil(t, reopened.ClosedDate)

	got, err = s.GetClaim(ctx, "clm-1")
	require.NoError(t, err)
	assert.Nil(t, got.ClosedDate)
}

// TestUpdateClaimStatus_ApplyErrorAborts tests that a rejected transition
// writes nothing.
func TestUpdateClaimStatus_ApplyErrorAborts(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)
	seedClaim(t, s, "clm-1")
	ctx := context.Background()

	_, err := s.UpdateClaimStatus(ctx, "clm-1", func(c claims.Claim) (claims.Claim, error) {
		return claims.ApplyTransition(c, claims.StatusReopened, time.Now())
	})
	require.Error(t, err)
	assert.True(t, claims.IsInvalidTransition(err))

	got, err := s.GetClaim(ctx, "clm-1")
	require.NoError(t, err)
	assert.Equal(t, claims.StatusOpen, got.Status)
}

// TestSetImportedFigures tests the informational lump-figure path and its
// rejection for active claims.
func TestSetImportedFigures(t *testing.T) {
	s := newTestStore(t)
	seedPolicy(t, s)
	ctx := context.Background()

	info := claims.Claim{
		ID:          "clm-info",
		PolicyID:    "pol-1",
		ClaimNumber: "CLM-INFO",
		Liability:   claims.LiabilityInformational,
		Status:      claims.StatusOpen,
		LossDate:    claims.NewDate(2025, time.January, 10),
		ReportDate:  claims.NewDate(2025, time.January, 12),
		CreatedBy:   "tester",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.InsertClaim(ctx, info))

	require.NoError(t, s.SetImportedFigures(ctx, "clm-info",
		decimal.NewFromInt(12000), decimal.NewFromInt(7500)))

	got, err := s.GetClaim(ctx, "clm-info")
	require.NoError(t, err)
	assert.True(t, got.ImportedIncurred.Equal(decimal.NewFromInt(12000)))
	assert.True(t, got.ImportedPaid.Equal(decimal.NewFromInt(7500)))

	active := seedClaim(t, s, "clm-act")
	err = s.SetImportedFigures(ctx, active.ID, decimal.NewFromInt(1), decimal.Zero)
	require.Error(t, err)
	assert.True(t, claims.IsInvalidOperation(err))
}
