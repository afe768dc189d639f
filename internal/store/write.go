package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MamurS/InsurTech-sub004/internal/claims"
)

// timeFormat is the storage format for timestamps.
const timeFormat = time.RFC3339Nano

// PutPolicy inserts or refreshes a policy coverage projection. The
// projection is owned by the policy subsystem; this store only mirrors
// the fields the claims core reads.
func (s *Store) PutPolicy(ctx context.Context, cov claims.Coverage) error {
	var retro any
	if !cov.Retroactive.IsZero() {
		retro = cov.Retroactive.String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO policies
		(id, inception_date, expiry_date, currency, share_percent, basis, retroactive_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			inception_date = excluded.inception_date,
			expiry_date = excluded.expiry_date,
			currency = excluded.currency,
			share_percent = excluded.share_percent,
			basis = excluded.basis,
			retroactive_date = excluded.retroactive_date
	`,
		cov.PolicyID,
		cov.Inception.String(),
		cov.Expiry.String(),
		cov.Currency,
		cov.SharePercent.String(),
		string(cov.Basis),
		retro,
	)
	if err != nil {
		return fmt.Errorf("put policy: %w", err)
	}
	return nil
}

// InsertClaim inserts a new claim.
//
// Re-inserting the same claim ID is a no-op (caller-supplied idempotency
// keys make retries safe). A different claim reusing a (policy, number)
// pair fails with DUPLICATE_KEY.
func (s *Store) InsertClaim(ctx context.Context, c claims.Claim) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	defer tx.Rollback()

	// The single-writer connection serializes this check with the insert.
	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM claims WHERE policy_id = ? AND claim_number = ?`,
		c.PolicyID, c.ClaimNumber,
	).Scan(&existingID)
	switch {
	case err == nil:
		if existingID == c.ID {
			return nil // idempotent retry
		}
		return claims.NewDuplicateKey(c.PolicyID, c.ClaimNumber)
	case errors.Is(err, sql.ErrNoRows):
		// free to insert
	default:
		return fmt.Errorf("insert claim: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO claims
		(id, policy_id, claim_number, liability_type, liability_reason, status,
		 loss_date, report_date, closed_date, description, claimant, location,
		 imported_incurred, imported_paid, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID, c.PolicyID, c.ClaimNumber,
		string(c.Liability), c.LiabilityReason, string(c.Status),
		dateValue(c.LossDate), c.ReportDate.String(), closedDateValue(c.ClosedDate),
		c.Description, c.Claimant, c.Location,
		c.ImportedIncurred.String(), c.ImportedPaid.String(),
		c.CreatedBy, c.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

// AppendTransaction appends a ledger entry after re-running the guard
// against the claim's current row, all inside one database transaction.
// This is the atomicity boundary that keeps a concurrent status change
// from slipping between the guard check and the insert.
//
// Re-appending the same transaction ID is a no-op, making caller-supplied
// idempotency keys safe to retry. On success the stored entry (with its
// assigned seq) is returned.
func (s *Store) AppendTransaction(ctx context.Context, txn claims.Transaction, guard func(claims.Claim) error) (claims.Transaction, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return txn, fmt.Errorf("append transaction: %w", err)
	}
	defer tx.Rollback()

	claim, err := getClaimTx(ctx, tx, txn.ClaimID)
	if err != nil {
		return txn, err
	}
	if guard != nil {
		if err := guard(claim); err != nil {
			return txn, err
		}
	}

	// Idempotent retry: if this entry already exists, return it unchanged.
	var existingSeq int64
	err = tx.QueryRowContext(ctx,
		`SELECT seq FROM transactions WHERE id = ?`, txn.ID,
	).Scan(&existingSeq)
	if err == nil {
		txn.Seq = existingSeq
		return txn, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return txn, fmt.Errorf("append transaction: %w", err)
	}

	// Seq breaks ordering ties between entries sharing a transaction date.
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM transactions WHERE claim_id = ?`,
		txn.ClaimID,
	).Scan(&txn.Seq); err != nil {
		return txn, fmt.Errorf("append transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions
		(id, claim_id, type, transaction_date, amount_gross, currency,
		 share_percent, amount_share, notes, payee, created_by, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		txn.ID, txn.ClaimID, string(txn.Type), txn.Date.String(),
		txn.AmountGross.String(), txn.Currency,
		txn.SharePercent.String(), txn.AmountShare.String(),
		txn.Notes, txn.Payee,
		txn.CreatedBy, txn.CreatedAt.UTC().Format(timeFormat), txn.Seq,
	)
	if err != nil {
		return txn, fmt.Errorf("append transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return txn, fmt.Errorf("append transaction: %w", err)
	}
	return txn, nil
}

// UpdateClaimStatus applies a validated status change inside one database
// transaction: read current row, run apply (which validates the transition
// and maintains the closed-date invariant), write the result.
func (s *Store) UpdateClaimStatus(ctx context.Context, claimID string, apply func(claims.Claim) (claims.Claim, error)) (claims.Claim, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return claims.Claim{}, fmt.Errorf("update claim status: %w", err)
	}
	defer tx.Rollback()

	claim, err := getClaimTx(ctx, tx, claimID)
	if err != nil {
		return claims.Claim{}, err
	}

	updated, err := apply(claim)
	if err != nil {
		return claims.Claim{}, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE claims SET status = ?, closed_date = ? WHERE id = ?`,
		string(updated.Status), closedDateValue(updated.ClosedDate), claimID,
	)
	if err != nil {
		return claims.Claim{}, fmt.Errorf("update claim status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return claims.Claim{}, fmt.Errorf("update claim status: %w", err)
	}
	return updated, nil
}

// SetImportedFigures updates the lump-sum incurred/paid figures of an
// informational claim. This is the importer's bulk path; active claims
// carry an itemized ledger instead and are rejected here.
func (s *Store) SetImportedFigures(ctx context.Context, claimID string, incurred, paid decimal.Decimal) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return fmt.Errorf("set imported figures: %w", err)
	}
	defer tx.Rollback()

	claim, err := getClaimTx(ctx, tx, claimID)
	if err != nil {
		return err
	}
	if claim.Liability != claims.LiabilityInformational {
		return claims.NewInvalidOperation(claimID, "claim carries an itemized ledger, not lump figures")
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE claims SET imported_incurred = ?, imported_paid = ? WHERE id = ?`,
		incurred.String(), paid.String(), claimID,
	)
	if err != nil {
		return fmt.Errorf("set imported figures: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set imported figures: %w", err)
	}
	return nil
}

// closedDateValue converts the closed date to its nullable column value.
func closedDateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeFormat)
}

// dateValue renders a date column; an unknown (zero) date is stored empty.
// Registration soft-classifies an unparseable loss date rather than
// rejecting the claim, so the column must tolerate "unknown".
func dateValue(d claims.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
