// Package store provides thin database/sql wrappers over the SQLite schema.
// Each store works against a DBTX so the chore engine can bind a set of
// stores to a single transaction for its check-and-transition operations.
package store

import "database/sql"

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type scanner interface{ Scan(dest ...any) error }
