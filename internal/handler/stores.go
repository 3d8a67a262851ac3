// Package handler implements the HTTP resource pipelines. Each mutating
// endpoint follows the same shape: parse and coerce input, validate
// (structural then refinement), execute the transactional mutation, respond
// with the uniform envelope. Handlers depend on the narrow store interfaces
// below, implemented by the repository package and stubbed in tests.
package handler

import (
	"context"

	"github.com/pandhuwib/go-blog-api/internal/model"
)

// CacheInvalidator drops a group of cached responses after a mutation
// commits. Implemented by the middleware response cache and stubbed in
// tests.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, group string)
}

type UserStore interface {
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, data model.UserData) (model.User, error)
	Update(ctx context.Context, id int, data model.UserData) (model.User, error)
	Delete(ctx context.Context, id int) error
}

type UserRoleStore interface {
	FindAll(ctx context.Context) ([]model.UserRole, error)
	FindByID(ctx context.Context, id int) (model.UserRole, error)
	Create(ctx context.Context, data model.UserRoleData) (model.UserRole, error)
	Update(ctx context.Context, id int, data model.UserRoleData) (model.UserRole, error)
	Delete(ctx context.Context, id int) error
}

type UserStatusStore interface {
	FindAll(ctx context.Context) ([]model.UserStatus, error)
	FindByID(ctx context.Context, id int) (model.UserStatus, error)
	Create(ctx context.Context, data model.UserStatusData) (model.UserStatus, error)
	Update(ctx context.Context, id int, data model.UserStatusData) (model.UserStatus, error)
	Delete(ctx context.Context, id int) error
}

type PostStore interface {
	FindAll(ctx context.Context) ([]model.Post, error)
	FindByID(ctx context.Context, id int) (model.Post, error)
	Create(ctx context.Context, data model.PostData) (model.Post, error)
	Update(ctx context.Context, id int, data model.PostData) (model.Post, error)
	Delete(ctx context.Context, id int) error
}
