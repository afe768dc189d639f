package claims

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCoverage() Coverage {
	return Coverage{
		PolicyID:     "pol-1",
		Inception:    NewDate(2024, time.January, 1),
		Expiry:       NewDate(2024, time.December, 31),
		Currency:     "USD",
		SharePercent: decimal.NewFromInt(50),
		Basis:        BasisOccurrence,
	}
}

// TestEvaluateLiability_OccurrenceWithinWindow tests the happy path.
func TestEvaluateLiability_OccurrenceWithinWindow(t *testing.T) {
	d := EvaluateLiability(testCoverage(), "2024-06-15", "2024-06-20")
	assert.Equal(t, LiabilityActive, d.Liability)
	assert.NotEmpty(t, d.Reason)
}

// TestEvaluateLiability_OccurrenceBoundaries tests that the policy window
// is inclusive on both ends.
func TestEvaluateLiability_OccurrenceBoundaries(t *testing.T) {
	cov := testCoverage()

	tests := []struct {
		name string
		loss string
		want LiabilityType
	}{
		{"inception day", "2024-01-01", LiabilityActive},
		{"expiry day", "2024-12-31", LiabilityActive},
		{"day before inception", "2023-12-31", LiabilityInformational},
		{"day after expiry", "2025-01-01", LiabilityInformational},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluateLiability(cov, tt.loss, "2025-01-15")
			assert.Equal(t, tt.want, d.Liability)
		})
	}
}

// TestEvaluateLiability_OutsideWindowReason tests that the reason names
// the policy window.
func TestEvaluateLiability_OutsideWindowReason(t *testing.T) {
	d := EvaluateLiability(testCoverage(), "2025-01-10", "2025-01-15")
	require.Equal(t, LiabilityInformational, d.Liability)
	assert.Contains(t, d.Reason, "2024-01-01")
	assert.Contains(t, d.Reason, "2024-12-31")
}

// TestEvaluateLiability_InvalidLossDate tests the soft classification of
// unparseable dates: no error, INFORMATIONAL with a fixed reason.
func TestEvaluateLiability_InvalidLossDate(t *testing.T) {
	d := EvaluateLiability(testCoverage(), "not-a-date", "2024-06-20")
	assert.Equal(t, LiabilityInformational, d.Liability)
	assert.Equal(t, "Invalid Loss Date", d.Reason)
}

// TestEvaluateLiability_ClaimsMade tests the claims-made trigger: keyed on
// report date, bounded by the retroactive date.
func TestEvaluateLiability_ClaimsMade(t *testing.T) {
	cov := testCoverage()
	cov.Basis = BasisClaimsMade
	cov.Retroactive = NewDate(2023, time.June, 1)

	tests := []struct {
		name   string
		loss   string
		report string
		want   LiabilityType
	}{
		{"reported in period, loss after retro", "2023-09-01", "2024-03-01", LiabilityActive},
		{"reported after expiry", "2024-06-01", "2025-02-01", LiabilityInformational},
		{"reported before inception", "2023-09-01", "2023-12-01", LiabilityInformational},
		{"loss before retroactive date", "2023-01-15", "2024-03-01", LiabilityInformational},
		{"loss on retroactive date", "2023-06-01", "2024-03-01", LiabilityActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluateLiability(cov, tt.loss, tt.report)
			assert.Equal(t, tt.want, d.Liability)
		})
	}
}

// TestEvaluateLiability_ClaimsMadeNoRetroactive tests that a zero
// retroactive date means unbounded.
func TestEvaluateLiability_ClaimsMadeNoRetroactive(t *testing.T) {
	cov := testCoverage()
	cov.Basis = BasisClaimsMade

	d := EvaluateLiability(cov, "1999-01-01", "2024-03-01")
	assert.Equal(t, LiabilityActive, d.Liability)
}

// TestEvaluateLiability_UnrecognizedBasis tests the safe default: an
// unknown basis classifies INFORMATIONAL, never silently ACTIVE.
func TestEvaluateLiability_UnrecognizedBasis(t *testing.T) {
	cov := testCoverage()
	cov.Basis = "aggregate"

	d := EvaluateLiability(cov, "2024-06-15", "2024-06-20")
	assert.Equal(t, LiabilityInformational, d.Liability)
	assert.Contains(t, d.Reason, "aggregate")
}

// TestEvaluateLiability_EmptyBasisDefaultsToOccurrence tests that a
// missing basis behaves as occurrence.
func TestEvaluateLiability_EmptyBasisDefaultsToOccurrence(t *testing.T) {
	cov := testCoverage()
	cov.Basis = ""

	d := EvaluateLiability(cov, "2024-06-15", "2024-06-20")
	assert.Equal(t, LiabilityActive, d.Liability)
}

// TestEvaluateLiability_Deterministic tests idempotence: identical inputs
// always yield identical decisions.
func TestEvaluateLiability_Deterministic(t *testing.T) {
	cov := testCoverage()
	first := EvaluateLiability(cov, "2024-06-15", "2024-06-20")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, EvaluateLiability(cov, "2024-06-15", "2024-06-20"))
	}
}
