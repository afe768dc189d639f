// Package store persists claims, their append-only ledgers, and policy
// coverage projections in SQLite.
//
// The transactions table is append-only: no UPDATE or DELETE statement in
// this package touches it. Totals are never stored; they are recomputed
// from the ledger on every read so they cannot drift.
package store
