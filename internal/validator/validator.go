// Package validator implements the two-phase request validation shared by
// every mutating endpoint. Phase one is structural: declarative per-field
// schemas (type, presence, email shape) that short-circuit on failure.
// Phase two is refinement: cross-field and cross-table rules that consult
// storage through narrow lookup interfaces. Refinements never short-circuit;
// every violation is collected before reporting so the client sees the full
// picture in one round trip.
package validator

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FieldErrors maps a field name to its ordered list of human-readable
// violation messages. It is the payload of every 422 response.
type FieldErrors map[string][]string

// Add appends a message to the field's error list.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Structural runs the declarative schema of an input and converts the
// result into field errors. A nil return means the input passed.
func Structural(v validation.Validatable) FieldErrors {
	err := v.Validate()
	if err == nil {
		return nil
	}
	fe := FieldErrors{}
	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			fe.Add(field, ferr.Error())
		}
		return fe
	}
	fe.Add("body", err.Error())
	return fe
}

// Lookup interfaces keep refinements testable and decoupled from the
// concrete repositories that implement them.

type UserLookup interface {
	ExistsByID(ctx context.Context, id int) (bool, error)
	UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
}

type RoleLookup interface {
	ExistsByID(ctx context.Context, id int) (bool, error)
}

type StatusLookup interface {
	ExistsByID(ctx context.Context, id int) (bool, error)
}

type PostLookup interface {
	ExistsByID(ctx context.Context, id int) (bool, error)
}

// Refinement messages. Worded exactly as the API documents them.
const msgPasswordMismatch = "The password field and passwordConfirmation field must be the same"

func notExists(field string) string { return "The " + field + " is not exists" }
func notUnique(field string) string { return "The " + field + " is not unique" }
