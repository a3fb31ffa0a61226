// Package auth verifies the operator credentials that guard the HTTP API.
// The service has a single configured account checked with HTTP basic auth;
// the password is held only as a bcrypt hash.
package auth
