// Package repository contains the query store implementations of the
// annotation gateway.
//
// # Stores
//
//   - postgres: the production store, backed by a pgx connection pool
//   - sqlite: the embedded store for local mode and tests, backed by sqlx
//
// Both stores run the SQL text held in the statements package, rebound to
// their placeholder style, so they answer every query identically.
//
// # Thread Safety
//
// All store implementations are safe for concurrent use.
// Connection pools are managed at the database layer.
package repository
