// Package postgres contains the PostgreSQL-backed implementations of the
// store interfaces. All SQL lives here; the rest of the application only
// sees the store package's contracts and sentinel errors.
package postgres
