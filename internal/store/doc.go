// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the credit-limit engine and the ingestion path, so the business rules
// stay independent of the database in use.
package store
