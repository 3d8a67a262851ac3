package validator

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
)

// PostStoreInput carries only title and body; the owning user id always
// comes from the authenticated principal, never from the client.
type PostStoreInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (in PostStoreInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Body, validation.Required),
	)
}

type PostUpdateInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (in PostUpdateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Body, validation.Required),
	)
}

type PostValidator struct {
	Posts PostLookup
}

func NewPostValidator(posts PostLookup) *PostValidator {
	return &PostValidator{Posts: posts}
}

func (v *PostValidator) ValidateStore(ctx context.Context, in PostStoreInput) (FieldErrors, error) {
	return Structural(in), nil
}

func (v *PostValidator) ValidateUpdate(ctx context.Context, id int, in PostUpdateInput) (FieldErrors, error) {
	if fe := Structural(in); fe != nil {
		return fe, nil
	}
	exists, err := v.Posts.ExistsByID(ctx, id)
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
