// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, together with the
// embedded goose migrations that create their schema.
//
// Stores accept a store.DBTX so they can run against a connection pool or a
// transaction, and map driver errors onto the store package's sentinel errors
// with MapError.
package postgres
