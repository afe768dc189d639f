// Package claims implements the liability and financial ledger rules for
// the claims subsystem: coverage evaluation, participation-share
// allocation, ledger aggregation, and the claim lifecycle state machine.
//
// Everything in this package is pure and store-agnostic. Persistence and
// orchestration live in internal/store and internal/service.
package claims
