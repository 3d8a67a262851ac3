package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/model"
	"github.com/pandhuwib/go-blog-api/internal/utils"
	"github.com/pandhuwib/go-blog-api/internal/validator"
)

type UserRoleHandler struct {
	Roles    UserRoleStore
	Validate *validator.UserRoleValidator
	Cache    CacheInvalidator
}

func NewUserRoleHandler(roles UserRoleStore, v *validator.UserRoleValidator, cache CacheInvalidator) *UserRoleHandler {
	return &UserRoleHandler{Roles: roles, Validate: v, Cache: cache}
}

func (h *UserRoleHandler) List(c echo.Context) error {
	roles, err := h.Roles.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return utils.OK(c, "Get user roles successfully", roles)
}

func (h *UserRoleHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	role, err := h.Roles.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return utils.OK(c, "Get user role successfully", role)
}

func (h *UserRoleHandler) Store(c echo.Context) error {
	var in validator.UserRoleStoreInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	ctx := c.Request().Context()
	fe, err := h.Validate.ValidateStore(ctx, in)
	if err != nil {
		return err
	}
	if fe != nil {
		return validationError(c, fe)
	}

	role, err := h.Roles.Create(ctx, model.UserRoleData{
		UserRoleName:        in.UserRoleName,
		UserRoleDescription: in.UserRoleDescription,
	})
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "user-roles")
	return utils.OK(c, "User role created successfully", role)
}

func (h *UserRoleHandler) Update(c echo.Context) error {
	id, fe := updateID(c)
	if fe != nil {
		return validationError(c, fe)
	}
	var in validator.UserRoleUpdateInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	ctx := c.Request().Context()
	fe, err := h.Validate.ValidateUpdate(ctx, id, in)
	if err != nil {
		return err
	}
	if fe != nil {
		return validationError(c, fe)
	}

	role, err := h.Roles.Update(ctx, id, model.UserRoleData{
		UserRoleName:        in.UserRoleName,
		UserRoleDescription: in.UserRoleDescription,
	})
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "user-roles")
	return utils.OK(c, "User role updated successfully", role)
}

// Delete removes a role unless a user still references it; the foreign key
// surfaces that case as a conflict, never a raw driver error.
func (h *UserRoleHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Roles.Delete(ctx, id); err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "user-roles")
	return utils.OK(c, "Delete user role successfully", nil)
}
