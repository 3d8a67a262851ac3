package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/model"
	"github.com/pandhuwib/go-blog-api/internal/utils"
	"github.com/pandhuwib/go-blog-api/internal/validator"
)

type UserStatusHandler struct {
	Statuses UserStatusStore
	Validate *validator.UserStatusValidator
	Cache    CacheInvalidator
}

func NewUserStatusHandler(statuses UserStatusStore, v *validator.UserStatusValidator, cache CacheInvalidator) *UserStatusHandler {
	return &UserStatusHandler{Statuses: statuses, Validate: v, Cache: cache}
}

func (h *UserStatusHandler) List(c echo.Context) error {
	statuses, err := h.Statuses.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return utils.OK(c, "Get user statuses successfully", statuses)
}

func (h *UserStatusHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	status, err := h.Statuses.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return utils.OK(c, "Get user status successfully", status)
}

func (h *UserStatusHandler) Store(c echo.Context) error {
	var in validator.UserStatusStoreInput
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

	status, err := h.Statuses.Create(ctx, model.UserStatusData{
		UserStatusName:        in.UserStatusName,
		UserStatusDescription: in.UserStatusDescription,
	})
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "user-statuses")
	return utils.OK(c, "User status created successfully", status)
}

func (h *UserStatusHandler) Update(c echo.Context) error {
	id, fe := updateID(c)
	if fe != nil {
		return validationError(c, fe)
	}
	var in validator.UserStatusUpdateInput
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

	status, err := h.Statuses.Update(ctx, id, model.UserStatusData{
		UserStatusName:        in.UserStatusName,
		UserStatusDescription: in.UserStatusDescription,
	})
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "user-statuses")
	return utils.OK(c, "User status updated successfully", status)
}

func (h *UserStatusHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Statuses.Delete(ctx, id); err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "user-statuses")
	return utils.OK(c, "Delete user status successfully", nil)
}
