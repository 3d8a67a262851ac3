package validator

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
)

type UserRoleStoreInput struct {
	UserRoleName        string  `json:"userRoleName"`
	UserRoleDescription *string `json:"userRoleDescription"`
}

func (in UserRoleStoreInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.UserRoleName, validation.Required),
	)
}

type UserRoleUpdateInput struct {
	UserRoleName        string  `json:"userRoleName"`
	UserRoleDescription *string `json:"userRoleDescription"`
}

func (in UserRoleUpdateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.UserRoleName, validation.Required),
	)
}

type UserRoleValidator struct {
	Roles RoleLookup
}

func NewUserRoleValidator(roles RoleLookup) *UserRoleValidator {
	return &UserRoleValidator{Roles: roles}
}

func (v *UserRoleValidator) ValidateStore(ctx context.Context, in UserRoleStoreInput) (FieldErrors, error) {
	return Structural(in), nil
}

// ValidateUpdate refines the route id: updating a missing role is a field
// error on "id", not a 404.
func (v *UserRoleValidator) ValidateUpdate(ctx context.Context, id int, in UserRoleUpdateInput) (FieldErrors, error) {
	if fe := Structural(in); fe != nil {
		return fe, nil
	}
	exists, err := v.Roles.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		fe := FieldErrors{}
		fe.Add("id", notExists("id"))
		return fe, nil
	}
	return nil, nil
}
