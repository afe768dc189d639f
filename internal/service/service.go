// Package service orchestrates the claims core against the store: it
// composes the coverage evaluator, share allocator, ledger aggregator, and
// lifecycle guard into the four operations callers (CLI, reporting, batch
// import) use.
//
// Every mutating operation takes an explicit actor and returns the
// authoritative updated claim snapshot, so callers never need an
// out-of-band refresh.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MamurS/InsurTech-sub004/internal/claims"
	"github.com/MamurS/InsurTech-sub004/internal/store"
)

// Service exposes the claim operations. It holds no mutable state of its
// own; consistency comes from the store's transaction boundary.
type Service struct {
	store *store.Store
	ids   IDGenerator
	now   func() time.Time
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator replaces the production UUIDv7 generator (tests).
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// WithClock replaces the wall clock (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New creates a Service over the given store.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		ids:   UUIDv7Generator{},
		now:   time.Now,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClaimView is a consistent point-in-time snapshot of a claim: the claim
// itself, its ordered ledger, and totals recomputed from that ledger.
type ClaimView struct {
	Claim        claims.Claim         `json:"claim"`
	Coverage     claims.Coverage      `json:"coverage"`
	Transactions []claims.Transaction `json:"transactions,omitempty"`
	Totals       claims.Totals        `json:"totals"`
}

// RegisterClaimParams are the inputs to RegisterClaim. Dates arrive raw:
// the loss date is soft-classified by the coverage evaluator, never
// hard-rejected here.
type RegisterClaimParams struct {
	PolicyID    string
	ClaimNumber string
	LossDate    string
	ReportDate  string // defaults to today when empty
	Description string
	Claimant    string
	Location    string

	// Actor is the user performing the registration, threaded explicitly
	// rather than read from ambient state.
	Actor string

	// IdempotencyKey, when set, is used as the claim ID so retries are
	// safe. Left empty, a fresh UUIDv7 is generated.
	IdempotencyKey string
}

// RegisterClaim registers a loss against a policy.
//
// The coverage evaluator fixes the liability type at this moment; it is
// never silently changed afterwards. The claim number must be unique per
// policy (DUPLICATE_KEY otherwise). Initial status is OPEN.
func (s *Service) RegisterClaim(ctx context.Context, p RegisterClaimParams) (*ClaimView, error) {
	if p.PolicyID == "" {
		return nil, claims.NewInvalidInput("policy id is required")
	}
	if p.ClaimNumber == "" {
		return nil, claims.NewInvalidInput("claim number is required")
	}
	if p.Actor == "" {
		return nil, claims.NewInvalidInput("actor is required")
	}

	cov, err := s.store.GetPolicy(ctx, p.PolicyID)
	if err != nil {
		return nil, err
	}

	reportDate := p.ReportDate
	if reportDate == "" {
		reportDate = claims.DateOf(s.now()).String()
	}
	report, err := claims.ParseDate(reportDate)
	if err != nil {
		return nil, claims.NewInvalidInput("report date: %v", err)
	}

	decision := claims.EvaluateLiability(cov, p.LossDate, reportDate)

	// The loss date stays unknown when it cannot be parsed; the decision
	// reason records why.
	loss, _ := claims.ParseDate(p.LossDate)

	id := p.IdempotencyKey
	if id == "" {
		id = s.ids.Generate()
	}
	c := claims.Claim{
		ID:              id,
		PolicyID:        p.PolicyID,
		ClaimNumber:     p.ClaimNumber,
		Liability:       decision.Liability,
		LiabilityReason: decision.Reason,
		Status:          claims.StatusOpen,
		LossDate:        loss,
		ReportDate:      report,
		Description:     p.Description,
		Claimant:        p.Claimant,
		Location:        p.Location,
		CreatedBy:       p.Actor,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.store.InsertClaim(ctx, c); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "claim registered",
		"claim_id", c.ID,
		"policy_id", c.PolicyID,
		"claim_number", c.ClaimNumber,
		"liability", string(c.Liability),
		"actor", p.Actor,
	)
	return s.view(ctx, c.ID)
}

// AddTransactionParams are the inputs to AddTransaction.
type AddTransactionParams struct {
	ClaimID     string
	Type        string
	Date        string
	AmountGross decimal.Decimal

	// Currency defaults to the policy currency when empty.
	Currency string

	// SharePercent must arrive already expressed in percent (0-100).
	// The service never normalizes: the fraction-vs-percent rule is
	// applied exactly once, at the import boundary. Nil defaults to the
	// policy's participation share.
	SharePercent *decimal.Decimal

	Notes string
	Payee string
	Actor string

	// IdempotencyKey, when set, is used as the transaction ID so retries
	// are safe.
	IdempotencyKey string
}

// AddTransaction appends an immutable ledger entry to a claim.
//
// The lifecycle guard requires the claim to be OPEN or REOPENED and its
// liability ACTIVE; the guard is re-run inside the store transaction so a
// racing status change cannot let an entry through. The participation
// share is copied onto the entry at this moment and never re-derived.
func (s *Service) AddTransaction(ctx context.Context, p AddTransactionParams) (*ClaimView, error) {
	if p.Actor == "" {
		return nil, claims.NewInvalidInput("actor is required")
	}
	txType, err := claims.ParseTransactionType(p.Type)
	if err != nil {
		return nil, err
	}
	date, err := claims.ParseDate(p.Date)
	if err != nil {
		return nil, claims.NewInvalidInput("transaction date: %v", err)
	}
	if p.AmountGross.IsNegative() && txType != claims.TxReserveAdjust {
		return nil, claims.NewInvalidInput("negative amount is only legal for %s", claims.TxReserveAdjust)
	}

	c, err := s.store.GetClaim(ctx, p.ClaimID)
	if err != nil {
		return nil, err
	}
	// Fast pre-flight; the authoritative check re-runs in the store
	// transaction below.
	if err := claims.CanAppend(c, txType); err != nil {
		return nil, err
	}

	cov, err := s.store.GetPolicy(ctx, c.PolicyID)
	if err != nil {
		return nil, err
	}

	currency := p.Currency
	if currency == "" {
		currency = cov.Currency
	}
	if !claims.ValidCurrency(currency) {
		return nil, claims.NewInvalidInput("invalid currency code %q", currency)
	}

	share := cov.SharePercent
	if p.SharePercent != nil {
		share = *p.SharePercent
		if share.IsNegative() || share.GreaterThan(decimal.NewFromInt(100)) {
			return nil, claims.NewInvalidInput("share percent %s out of range 0-100", share)
		}
	}

	id := p.IdempotencyKey
	if id == "" {
		id = s.ids.Generate()
	}
	txn := claims.Transaction{
		ID:           id,
		ClaimID:      p.ClaimID,
		Type:         txType,
		Date:         date,
		AmountGross:  p.AmountGross,
		Currency:     currency,
		SharePercent: share,
		AmountShare:  claims.ShareAmount(p.AmountGross, share),
		Notes:        p.Notes,
		Payee:        p.Payee,
		CreatedBy:    p.Actor,
		CreatedAt:    s.now().UTC(),
	}

	txn, err = s.store.AppendTransaction(ctx, txn, func(current claims.Claim) error {
		return claims.CanAppend(current, txType)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "transaction appended",
		"claim_id", p.ClaimID,
		"transaction_id", txn.ID,
		"type", string(txType),
		"amount_gross", txn.AmountGross.String(),
		"actor", p.Actor,
	)
	return s.view(ctx, p.ClaimID)
}

// ChangeStatus applies an explicitly confirmed status transition and
// returns the updated snapshot. Illegal transitions fail with
// INVALID_TRANSITION and change nothing.
func (s *Service) ChangeStatus(ctx context.Context, claimID, newStatus, actor string) (*ClaimView, error) {
	if actor == "" {
		return nil, claims.NewInvalidInput("actor is required")
	}
	target, err := claims.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	updated, err := s.store.UpdateClaimStatus(ctx, claimID, func(current claims.Claim) (claims.Claim, error) {
		return claims.ApplyTransition(current, target, now)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "claim status changed",
		"claim_id", claimID,
		"status", string(updated.Status),
		"actor", actor,
	)
	return s.view(ctx, claimID)
}

// GetClaimView returns the claim, its ordered ledger, and totals as one
// consistent snapshot.
func (s *Service) GetClaimView(ctx context.Context, claimID string) (*ClaimView, error) {
	return s.view(ctx, claimID)
}

// ListClaimViews returns a snapshot for every claim on a policy, ordered
// newest loss first.
func (s *Service) ListClaimViews(ctx context.Context, policyID string) ([]*ClaimView, error) {
	cs, err := s.store.ListClaims(ctx, policyID)
	if err != nil {
		return nil, err
	}
	views := make([]*ClaimView, 0, len(cs))
	for _, c := range cs {
		v, err := s.view(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// view assembles a snapshot. Informational claims carry lump-sum figures
// instead of an itemized ledger, so their totals come from those figures.
func (s *Service) view(ctx context.Context, claimID string) (*ClaimView, error) {
	c, err := s.store.GetClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	cov, err := s.store.GetPolicy(ctx, c.PolicyID)
	if err != nil {
		return nil, fmt.Errorf("claim %s: %w", claimID, err)
	}

	v := &ClaimView{Claim: c, Coverage: cov}
	if c.Liability == claims.LiabilityInformational {
		v.Totals = claims.ImportedTotals(c)
		return v, nil
	}

	txs, err := s.store.ListTransactions(ctx, claimID)
	if err != nil {
		return nil, err
	}
	v.Transactions = txs
	v.Totals = claims.Aggregate(txs)
	return v, nil
}
