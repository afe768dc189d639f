package claims

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Basis is the coverage trigger of a policy.
type Basis string

const (
	// BasisOccurrence covers losses that occur within the policy period.
	BasisOccurrence Basis = "occurrence"

	// BasisClaimsMade covers losses reported within the policy period,
	// optionally bounded by a retroactive date.
	BasisClaimsMade Basis = "claims_made"
)

// Coverage is a read-only projection of a policy: the fields the claims
// core needs to classify a loss and allocate shares. It is owned by the
// policy subsystem; this package only reads it.
type Coverage struct {
	PolicyID     string          `json:"policy_id"`
	Inception    Date            `json:"inception"`
	Expiry       Date            `json:"expiry"`
	Currency     string          `json:"currency"`
	SharePercent decimal.Decimal `json:"share_percent"`
	Basis        Basis           `json:"basis"`

	// Retroactive bounds claims-made coverage; zero means unbounded.
	Retroactive Date `json:"retroactive,omitempty"`
}

// Decision is the outcome of a liability evaluation.
type Decision struct {
	Liability LiabilityType `json:"liability"`
	Reason    string        `json:"reason"`
}

// EvaluateLiability classifies a reported loss under the given coverage.
//
// It never fails: classification must always produce a decision, so bad
// input degrades to INFORMATIONAL with an explanatory reason rather than
// blocking. Callers that need a hard failure validate dates first.
//
// Occurrence basis: ACTIVE iff inception <= loss <= expiry, inclusive on
// both ends. Claims-made basis: the report date must fall within the
// policy period, and the loss must not precede the retroactive date when
// one is set. Any unrecognized basis is a deliberate safe default to
// INFORMATIONAL, never silently ACTIVE.
func EvaluateLiability(cov Coverage, lossDate, reportDate string) Decision {
	loss, err := ParseDate(lossDate)
	if err != nil {
		return Decision{Liability: LiabilityInformational, Reason: "Invalid Loss Date"}
	}

	switch cov.Basis {
	case BasisClaimsMade:
		report, err := ParseDate(reportDate)
		if err != nil {
			return Decision{Liability: LiabilityInformational, Reason: "Invalid Report Date"}
		}
		if report.Before(cov.Inception) || report.After(cov.Expiry) {
			return Decision{
				Liability: LiabilityInformational,
				Reason: fmt.Sprintf("Report date %s outside policy period %s to %s",
					report, cov.Inception, cov.Expiry),
			}
		}
		if !cov.Retroactive.IsZero() && loss.Before(cov.Retroactive) {
			return Decision{
				Liability: LiabilityInformational,
				Reason: fmt.Sprintf("Loss date %s precedes retroactive date %s",
					loss, cov.Retroactive),
			}
		}
		return Decision{Liability: LiabilityActive, Reason: "Reported within policy period"}

	case BasisOccurrence, "":
		if loss.Before(cov.Inception) || loss.After(cov.Expiry) {
			return Decision{
				Liability: LiabilityInformational,
				Reason: fmt.Sprintf("Loss date %s outside policy period %s to %s",
					loss, cov.Inception, cov.Expiry),
			}
		}
		return Decision{Liability: LiabilityActive, Reason: "Loss within policy period"}

	default:
		return Decision{
			Liability: LiabilityInformational,
			Reason:    fmt.Sprintf("Unrecognized coverage basis %q; recorded for information only", cov.Basis),
		}
	}
}
