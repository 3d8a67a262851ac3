package validator

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// UserStoreInput is the payload of POST /api/users. The password and its
// confirmation are both mandatory on create.
type UserStoreInput struct {
	UserRoleID           int    `json:"userRoleId"`
	UserStatusID         int    `json:"userStatusId"`
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
}

func (in UserStoreInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.UserRoleID, validation.Required),
		validation.Field(&in.UserStatusID, validation.Required),
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Password, validation.Required),
		validation.Field(&in.PasswordConfirmation, validation.Required),
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required, is.Email),
	)
}

// UserUpdateInput is the payload of PUT /api/users/:id and PUT /api/auth/user.
// Password is optional; when present the confirmation must match.
type UserUpdateInput struct {
	UserRoleID           int    `json:"userRoleId"`
	UserStatusID         int    `json:"userStatusId"`
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
}

func (in UserUpdateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.UserRoleID, validation.Required),
		validation.Field(&in.UserStatusID, validation.Required),
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required, is.Email),
	)
}

// UserValidator runs refinement checks for user mutations.
type UserValidator struct {
	Users    UserLookup
	Roles    RoleLookup
	Statuses StatusLookup
}

func NewUserValidator(users UserLookup, roles RoleLookup, statuses StatusLookup) *UserValidator {
	return &UserValidator{Users: users, Roles: roles, Statuses: statuses}
}

// ValidateStore checks a create payload. Field errors are returned as data,
// not as an error; the error return is reserved for storage faults during
// lookups.
func (v *UserValidator) ValidateStore(ctx context.Context, in UserStoreInput) (FieldErrors, error) {
	if fe := Structural(in); fe != nil {
		return fe, nil
	}

	fe := FieldErrors{}
	if in.Password != in.PasswordConfirmation {
		fe.Add("password", msgPasswordMismatch)
	}
	if err := v.checkRoleAndStatus(ctx, in.UserRoleID, in.UserStatusID, fe); err != nil {
		return nil, err
	}
	if err := v.checkUniqueness(ctx, in.Username, in.Email, 0, fe); err != nil {
		return nil, err
	}
	if len(fe) > 0 {
		return fe, nil
	}
	return nil, nil
}

// ValidateUpdate checks an update payload against an existing row id.
// Uniqueness checks exclude the row's own values, so resubmitting the
// current username or email passes.
func (v *UserValidator) ValidateUpdate(ctx context.Context, id int, in UserUpdateInput) (FieldErrors, error) {
	if fe := Structural(in); fe != nil {
		return fe, nil
	}

	fe := FieldErrors{}
	if in.Password != "" && in.Password != in.PasswordConfirmation {
		fe.Add("password", msgPasswordMismatch)
	}
	exists, err := v.Users.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		fe.Add("id", notExists("id"))
	} else if err := v.checkUniqueness(ctx, in.Username, in.Email, id, fe); err != nil {
		return nil, err
	}
	if err := v.checkRoleAndStatus(ctx, in.UserRoleID, in.UserStatusID, fe); err != nil {
		return nil, err
	}
	if len(fe) > 0 {
		return fe, nil
	}
	return nil, nil
}

func (v *UserValidator) checkRoleAndStatus(ctx context.Context, roleID, statusID int, fe FieldErrors) error {
	ok, err := v.Roles.ExistsByID(ctx, roleID)
	if err != nil {
		return err
	}
	if !ok {
		fe.Add("userRoleId", notExists("userRoleId"))
	}
	ok, err = v.Statuses.ExistsByID(ctx, statusID)
	if err != nil {
		return err
	}
	if !ok {
		fe.Add("userStatusId", notExists("userStatusId"))
	}
	return nil
}

func (v *UserValidator) checkUniqueness(ctx context.Context, username, email string, excludeID int, fe FieldErrors) error {
	taken, err := v.Users.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		fe.Add("username", notUnique("username"))
	}
	taken, err = v.Users.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		fe.Add("email", notUnique("email"))
	}
	return nil
}
