package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// User field constraints. The password bounds apply to the plaintext at
// registration; only the bcrypt hash is ever stored.
const (
	UserNameMin     = 5
	UserNameMax     = 50
	UserEmailMin    = 5
	UserEmailMax    = 50
	UserPasswordMin = 5
	UserPasswordMax = 1024
)

// User is an account that can authenticate against the API. Identity is
// permanent once created: this service never updates or deletes users.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique login email.
//  PasswordHash – bcrypt hash of the password; plaintext is never stored.
//  IsAdmin      – grants access to DELETE endpoints.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Validate checks the registration payload against the user constraints.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(UserNameMin, UserNameMax)),
		validation.Field(&in.Email, validation.Required, validation.Length(UserEmailMin, UserEmailMax), is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(UserPasswordMin, UserPasswordMax)),
	)
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload shape.
func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(UserPasswordMin, UserPasswordMax)),
	)
}
