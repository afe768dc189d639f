package claims

import "time"

// legalTransitions is the claim lifecycle table. There is no terminal
// state: CLOSED and DENIED can always be reopened.
var legalTransitions = map[Status][]Status{
	StatusOpen:     {StatusClosed, StatusDenied},
	StatusReopened: {StatusClosed, StatusDenied},
	StatusClosed:   {StatusReopened},
	StatusDenied:   {StatusReopened},
}

// CanTransition validates a status change against the lifecycle table.
// The core performs no implicit transitions; every change is an explicit,
// caller-confirmed request.
func CanTransition(claimID string, from, to Status) error {
	for _, next := range legalTransitions[from] {
		if next == to {
			return nil
		}
	}
	return NewInvalidTransition(claimID, from, to)
}

// ApplyTransition validates and applies a status change, maintaining the
// closed-date invariant: non-nil iff the new status is CLOSED or DENIED,
// cleared on reopen.
func ApplyTransition(c Claim, to Status, at time.Time) (Claim, error) {
	if err := CanTransition(c.ID, c.Status, to); err != nil {
		return c, err
	}
	c.Status = to
	switch to {
	case StatusClosed, StatusDenied:
		closed := at
		c.ClosedDate = &closed
	case StatusReopened:
		c.ClosedDate = nil
	}
	return c, nil
}

// CanAppend is the ledger guard: appending any transaction requires the
// claim to be OPEN or REOPENED and its liability to be ACTIVE.
// Informational claims carry a single lump figure maintained by the bulk
// importer, not an itemized ledger.
func CanAppend(c Claim, _ TransactionType) error {
	if !c.IsOpen() {
		return NewInvalidOperation(c.ID, "claim is not open")
	}
	if c.Liability != LiabilityActive {
		return NewInvalidOperation(c.ID, "claim is informational-only")
	}
	return nil
}
