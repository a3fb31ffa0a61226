package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/mindcredit/mindcredit-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier compares a bcrypt hash with a plaintext candidate.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// Compare implements PasswordVerifier.
func (BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Authenticator checks a username/password pair.
type Authenticator interface {
	Authenticate(username, password string) error
}

// BasicAuthenticator authenticates against one configured account.
type BasicAuthenticator struct {
	username     string
	passwordHash string
	verifier     PasswordVerifier
}

// NewBasicAuthenticator builds an authenticator from configuration. A
// plaintext password is hashed once here so it is never compared directly.
func NewBasicAuthenticator(cfg config.AuthConfig, verifier PasswordVerifier) (*BasicAuthenticator, error) {
	if cfg.Username == "" {
		return nil, errors.New("auth username cannot be empty")
	}
	if verifier == nil {
		verifier = BcryptVerifier{}
	}

	hash := cfg.PasswordHash
	if hash == "" {
		if cfg.Password == "" {
			return nil, errors.New("auth password or password hash must be set")
		}
		generated, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash auth password: %w", err)
		}
		hash = string(generated)
	}

	return &BasicAuthenticator{
		username:     cfg.Username,
		passwordHash: hash,
		verifier:     verifier,
	}, nil
}

// Authenticate implements Authenticator.
func (a *BasicAuthenticator) Authenticate(username, password string) error {
	if username == "" && password == "" {
		return ErrMissingCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// The hash comparison runs whether or not the username matched.
	passErr := a.verifier.Compare(a.passwordHash, password)
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
