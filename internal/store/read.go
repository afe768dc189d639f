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

// querier abstracts *sql.DB and *sql.Tx so reads can run standalone or
// inside a write transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const claimColumns = `id, policy_id, claim_number, liability_type, liability_reason, status,
	loss_date, report_date, closed_date, description, claimant, location,
	imported_incurred, imported_paid, created_by, created_at`

// GetPolicy returns the coverage projection for a policy ID.
func (s *Store) GetPolicy(ctx context.Context, policyID string) (claims.Coverage, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, inception_date, expiry_date, currency, share_percent, basis, retroactive_date
		FROM policies WHERE id = ?
	`, policyID)

	var cov claims.Coverage
	var inception, expiry, share, basis string
	var retro sql.NullString
	err := row.Scan(&cov.PolicyID, &inception, &expiry, &cov.Currency, &share, &basis, &retro)
	if errors.Is(err, sql.ErrNoRows) {
		return claims.Coverage{}, claims.NewNotFound("policy", policyID)
	}
	if err != nil {
		return claims.Coverage{}, fmt.Errorf("get policy: %w", err)
	}

	if cov.Inception, err = claims.ParseDate(inception); err != nil {
		return claims.Coverage{}, fmt.Errorf("get policy: %w", err)
	}
	if cov.Expiry, err = claims.ParseDate(expiry); err != nil {
		return claims.Coverage{}, fmt.Errorf("get policy: %w", err)
	}
	if cov.SharePercent, err = decimal.NewFromString(share); err != nil {
		return claims.Coverage{}, fmt.Errorf("get policy: %w", err)
	}
	cov.Basis = claims.Basis(basis)
	if retro.Valid {
		if cov.Retroactive, err = claims.ParseDate(retro.String); err != nil {
			return claims.Coverage{}, fmt.Errorf("get policy: %w", err)
		}
	}
	return cov, nil
}

// GetClaim returns a claim by ID.
func (s *Store) GetClaim(ctx context.Context, claimID string) (claims.Claim, error) {
	return getClaimTx(ctx, s.db, claimID)
}

// getClaimTx reads a claim through any querier; used by the write paths to
// re-read inside their transaction boundary.
func getClaimTx(ctx context.Context, q querier, claimID string) (claims.Claim, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE id = ?`, claimID)
	c, err := scanClaim(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return claims.Claim{}, claims.NewNotFound("claim", claimID)
	}
	if err != nil {
		return claims.Claim{}, fmt.Errorf("get claim: %w", err)
	}
	return c, nil
}

// ListClaims returns all claims for a policy, newest loss first.
func (s *Store) ListClaims(ctx context.Context, policyID string) ([]claims.Claim, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE policy_id = ?
		 ORDER BY loss_date DESC, claim_number`, policyID)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	var out []claims.Claim
	for rows.Next() {
		c, err := scanClaim(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list claims: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return out, nil
}

// ListTransactions returns a claim's ledger ordered by transaction date,
// ties broken by insertion order.
func (s *Store) ListTransactions(ctx context.Context, claimID string) ([]claims.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, claim_id, type, transaction_date, amount_gross, currency,
		       share_percent, amount_share, notes, payee, created_by, created_at, seq
		FROM transactions
		WHERE claim_id = ?
		ORDER BY transaction_date, seq
	`, claimID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []claims.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// scanClaim decodes a claim row from any scan function.
func scanClaim(scan func(dest ...any) error) (claims.Claim, error) {
	var c claims.Claim
	var liability, status, lossDate, reportDate string
	var closedDate sql.NullString
	var incurred, paid, createdAt string

	err := scan(
		&c.ID, &c.PolicyID, &c.ClaimNumber, &liability, &c.LiabilityReason, &status,
		&lossDate, &reportDate, &closedDate, &c.Description, &c.Claimant, &c.Location,
		&incurred, &paid, &c.CreatedBy, &createdAt,
	)
	if err != nil {
		return claims.Claim{}, err
	}

	if c.Liability, err = claims.ParseLiabilityType(liability); err != nil {
		return claims.Claim{}, err
	}
	if c.Status, err = claims.ParseStatus(status); err != nil {
		return claims.Claim{}, err
	}
	// An empty loss date marks a claim registered with an unparseable
	// date (soft-classified INFORMATIONAL at registration).
	if lossDate != "" {
		if c.LossDate, err = claims.ParseDate(lossDate); err != nil {
			return claims.Claim{}, err
		}
	}
	if c.ReportDate, err = claims.ParseDate(reportDate); err != nil {
		return claims.Claim{}, err
	}
	if closedDate.Valid {
		t, err := time.Parse(timeFormat, closedDate.String)
		if err != nil {
			return claims.Claim{}, err
		}
		c.ClosedDate = &t
	}
	if c.ImportedIncurred, err = decimal.NewFromString(incurred); err != nil {
		return claims.Claim{}, err
	}
	if c.ImportedPaid, err = decimal.NewFromString(paid); err != nil {
		return claims.Claim{}, err
	}
	if c.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return claims.Claim{}, err
	}
	return c, nil
}

// scanTransaction decodes a ledger row.
func scanTransaction(rows *sql.Rows) (claims.Transaction, error) {
	var txn claims.Transaction
	var typ, date, gross, share, shareAmount, createdAt string

	err := rows.Scan(
		&txn.ID, &txn.ClaimID, &typ, &date, &gross, &txn.Currency,
		&share, &shareAmount, &txn.Notes, &txn.Payee,
		&txn.CreatedBy, &createdAt, &txn.Seq,
	)
	if err != nil {
		return claims.Transaction{}, err
	}

	if txn.Type, err = claims.ParseTransactionType(typ); err != nil {
		return claims.Transaction{}, err
	}
	if txn.Date, err = claims.ParseDate(date); err != nil {
		return claims.Transaction{}, err
	}
	if txn.AmountGross, err = decimal.NewFromString(gross); err != nil {
		return claims.Transaction{}, err
	}
	if txn.SharePercent, err = decimal.NewFromString(share); err != nil {
		return claims.Transaction{}, err
	}
	if txn.AmountShare, err = decimal.NewFromString(shareAmount); err != nil {
		return claims.Transaction{}, err
	}
	if txn.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return claims.Transaction{}, err
	}
	return txn, nil
}
