package claims

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestError_Message tests error message formatting with and without a claim id.
func TestError_Message(t *testing.T) {
	err := NewInvalidOperation("clm-1", "claim is not open")
	assert.Equal(t, "INVALID_OPERATION: claim is not open (claim=clm-1)", err.Error())

	err2 := NewInvalidInput("unknown transaction type %q", "BONUS")
	assert.Equal(t, `INVALID_INPUT: unknown transaction type "BONUS"`, err2.Error())
}

// TestErrorPredicates_Wrapped tests that predicates see through wrapping.
func TestErrorPredicates_Wrapped(t *testing.T) {
	base := NewDuplicateKey("pol-1", "CLM-2024-001")
	wrapped := fmt.Errorf("register claim: %w", base)

	assert.True(t, IsDuplicateKey(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsInvalidTransition(wrapped))
}

// TestErrorPredicates_NonDomain tests that plain errors match nothing.
func TestErrorPredicates_NonDomain(t *testing.T) {
	err := fmt.Errorf("disk full")
	assert.False(t, IsInvalidInput(err))
	assert.False(t, IsInvalidOperation(err))
	assert.False(t, IsDuplicateKey(err))
	assert.False(t, IsNotFound(err))
}

// TestParseTransactionType_ClosedEnum tests boundary rejection of unknown
// ledger entry types.
func TestParseTransactionType_ClosedEnum(t *testing.T) {
	for _, typ := range TransactionTypes {
		got, err := ParseTransactionType(string(typ))
		assert.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := ParseTransactionType("SALVAGE")
	assert.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}
