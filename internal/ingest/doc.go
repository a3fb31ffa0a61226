// Package ingest decodes behavioral signals arriving from outside the service
// and routes them to the signal service.
//
// Signals arrive as JSON payloads keyed by type ("emotion" or "thought"),
// either from the broker consumer or from the brain-data HTTP endpoint.
// Payloads are validated here so that malformed input never reaches storage.
package ingest
