package validator

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// LoginInput is the credential payload of POST /api/auth. Login is
// structural-only: no refinement may reveal whether a username exists.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}
