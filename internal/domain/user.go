package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID = errors.New("user ID cannot be empty")
	ErrEmptyEmail  = errors.New("email cannot be empty")
	ErrEmptyName   = errors.New("name cannot be empty")
)

// User is the identity that signals and credit limits belong to.
// CreditLimit and CreditLimitID are nil until a limit has been deployed.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	CreditLimit   *int64     `json:"credit_limit"`
	CreditLimitID *uuid.UUID `json:"credit_limit_id"`
	DeviceToken   *string    `json:"device_token,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewUser creates a new User with a generated ID and creation timestamps.
// Returns an error if validation fails.
func NewUser(name, email string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Name == "" {
		return ErrEmptyName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	return nil
}

// ApplyCreditLimit makes limit the user's active credit limit.
// The superseded record is left untouched; only the reference moves.
func (u *User) ApplyCreditLimit(limit *CreditLimit) {
	id := limit.ID
	value := limit.CreditLimit
	u.CreditLimitID = &id
	u.CreditLimit = &value
	u.UpdatedAt = time.Now().UTC()
}

// HasDeviceToken reports whether the user can receive push notifications.
func (u *User) HasDeviceToken() bool {
	return u.DeviceToken != nil && *u.DeviceToken != ""
}
