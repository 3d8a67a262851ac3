package validator

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
)

type UserStatusStoreInput struct {
	UserStatusName        string  `json:"userStatusName"`
	UserStatusDescription *string `json:"userStatusDescription"`
}

func (in UserStatusStoreInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.UserStatusName, validation.Required),
	)
}

type UserStatusUpdateInput struct {
	UserStatusName        string  `json:"userStatusName"`
	UserStatusDescription *string `json:"userStatusDescription"`
}

func (in UserStatusUpdateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.UserStatusName, validation.Required),
	)
}

type UserStatusValidator struct {
	Statuses StatusLookup
}

func NewUserStatusValidator(statuses StatusLookup) *UserStatusValidator {
	return &UserStatusValidator{Statuses: statuses}
}

func (v *UserStatusValidator) ValidateStore(ctx context.Context, in UserStatusStoreInput) (FieldErrors, error) {
	return Structural(in), nil
}

func (v *UserStatusValidator) ValidateUpdate(ctx context.Context, id int, in UserStatusUpdateInput) (FieldErrors, error) {
	if fe := Structural(in); fe != nil {
		return fe, nil
	}
	exists, err := v.Statuses.ExistsByID(ctx, id)
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
