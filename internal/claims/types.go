package claims

import (
	"time"

	"github.com/shopspring/decimal"
)

// LiabilityType states whether a claim creates a real payable obligation
// (ACTIVE) or is tracked for record purposes only (INFORMATIONAL).
//
// The type is fixed by the coverage evaluator at registration and never
// silently changed afterwards.
type LiabilityType string

const (
	LiabilityActive        LiabilityType = "ACTIVE"
	LiabilityInformational LiabilityType = "INFORMATIONAL"
)

// ParseLiabilityType parses a stored liability type value.
func ParseLiabilityType(s string) (LiabilityType, error) {
	switch LiabilityType(s) {
	case LiabilityActive, LiabilityInformational:
		return LiabilityType(s), nil
	default:
		return "", NewInvalidInput("unknown liability type %q", s)
	}
}

// Status is the lifecycle status of a claim.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusClosed   Status = "CLOSED"
	StatusDenied   Status = "DENIED"
	StatusReopened Status = "REOPENED"
)

// ParseStatus parses a stored status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClosed, StatusDenied, StatusReopened:
		return Status(s), nil
	default:
		return "", NewInvalidInput("unknown claim status %q", s)
	}
}

// TransactionType is the closed set of ledger entry types. Unknown types
// are rejected at the boundary, never passed through.
type TransactionType string

const (
	TxReserveSet    TransactionType = "RESERVE_SET"
	TxReserveAdjust TransactionType = "RESERVE_ADJUST"
	TxPayment       TransactionType = "PAYMENT"
	TxLegalFee      TransactionType = "LEGAL_FEE"
	TxAdjusterFee   TransactionType = "ADJUSTER_FEE"
	TxRecovery      TransactionType = "RECOVERY"
	TxImportBalance TransactionType = "IMPORT_BALANCE"
)

// TransactionTypes lists every valid transaction type in display order.
var TransactionTypes = []TransactionType{
	TxReserveSet, TxReserveAdjust, TxPayment,
	TxLegalFee, TxAdjusterFee, TxRecovery, TxImportBalance,
}

// ParseTransactionType parses a transaction type, rejecting unknown values.
func ParseTransactionType(s string) (TransactionType, error) {
	for _, t := range TransactionTypes {
		if TransactionType(s) == t {
			return t, nil
		}
	}
	return "", NewInvalidInput("unknown transaction type %q", s)
}

// Claim identifies a loss event against one policy.
type Claim struct {
	ID          string `json:"id"`
	PolicyID    string `json:"policy_id"`
	ClaimNumber string `json:"claim_number"`

	Liability       LiabilityType `json:"liability_type"`
	LiabilityReason string        `json:"liability_reason"`
	Status          Status        `json:"status"`

	LossDate   Date `json:"loss_date"`
	ReportDate Date `json:"report_date"`

	// ClosedDate is non-nil iff Status is CLOSED or DENIED; reopening
	// clears it.
	ClosedDate *time.Time `json:"closed_date,omitempty"`

	Description string `json:"description,omitempty"`
	Claimant    string `json:"claimant,omitempty"`
	Location    string `json:"location,omitempty"`

	// ImportedIncurred and ImportedPaid carry the lump-sum figures of an
	// informational claim brought in by the portfolio importer.
	// Informational claims have no itemized ledger.
	ImportedIncurred decimal.Decimal `json:"imported_incurred"`
	ImportedPaid     decimal.Decimal `json:"imported_paid"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// IsOpen reports whether the claim accepts ledger activity by status.
func (c Claim) IsOpen() bool {
	return c.Status == StatusOpen || c.Status == StatusReopened
}

// Transaction is an immutable ledger entry belonging to exactly one claim.
// Once appended it is never mutated, reordered, or deleted.
type Transaction struct {
	ID      string          `json:"id"`
	ClaimID string          `json:"claim_id"`
	Type    TransactionType `json:"type"`
	Date    Date            `json:"date"`

	// AmountGross is the 100% value. Negative amounts are legal for
	// RESERVE_ADJUST.
	AmountGross decimal.Decimal `json:"amount_gross"`
	Currency    string          `json:"currency"`

	// SharePercent is the participation share at the time of entry,
	// copied rather than re-derived so historical entries are insulated
	// from later policy-share changes.
	SharePercent decimal.Decimal `json:"share_percent"`
	AmountShare  decimal.Decimal `json:"amount_share"`

	Notes string `json:"notes,omitempty"`
	Payee string `json:"payee,omitempty"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Seq is the insertion order, breaking ties between entries that
	// share a transaction date.
	Seq int64 `json:"seq"`
}
