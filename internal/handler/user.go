package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/config"
	"github.com/pandhuwib/go-blog-api/internal/model"
	"github.com/pandhuwib/go-blog-api/internal/queue"
	"github.com/pandhuwib/go-blog-api/internal/service"
	"github.com/pandhuwib/go-blog-api/internal/utils"
	"github.com/pandhuwib/go-blog-api/internal/validator"
)

// UserHandler bundles dependencies for the /users endpoints. Create and
// update arrive as multipart forms because of the optional photo.
type UserHandler struct {
	Cfg      config.Config
	Users    UserStore
	Validate *validator.UserValidator
	Cache    CacheInvalidator
	Events   *service.EventPublisher
}

func NewUserHandler(cfg config.Config, users UserStore, v *validator.UserValidator, cache CacheInvalidator, events *service.EventPublisher) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Validate: v, Cache: cache, Events: events}
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return utils.OK(c, "Get users successfully", users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := h.Users.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return utils.OK(c, "Get user successfully", u)
}

// Store handles POST /api/users. The photo, when present, is persisted by
// the upload collaborator before validation; a validation failure removes
// the freshly stored file again.
func (h *UserHandler) Store(c echo.Context) error {
	in := validator.UserStoreInput{
		UserRoleID:           formInt(c, "userRoleId"),
		UserStatusID:         formInt(c, "userStatusId"),
		Username:             c.FormValue("username"),
		Password:             c.FormValue("password"),
		PasswordConfirmation: c.FormValue("passwordConfirmation"),
		Name:                 c.FormValue("name"),
		Email:                c.FormValue("email"),
	}

	var photo *string
	if fh, err := c.FormFile("photo"); err == nil {
		name, err := utils.SavePhoto(fh, h.Cfg.UploadDir)
		if err != nil {
			return h.photoError(c, err)
		}
		photo = &name
	}

	ctx := c.Request().Context()
	fe, err := h.Validate.ValidateStore(ctx, in)
	if err != nil {
		if photo != nil {
			_ = utils.RemovePhoto(h.Cfg.UploadDir, *photo)
		}
		return err
	}
	if fe != nil {
		if photo != nil {
			if err := utils.RemovePhoto(h.Cfg.UploadDir, *photo); err != nil {
				return err
			}
		}
		return validationError(c, fe)
	}

	hash, err := utils.HashPassword(in.Password, h.Cfg.BcryptCost)
	if err != nil {
		return err
	}
	data := model.UserData{
		UserRoleID:   in.UserRoleID,
		UserStatusID: in.UserStatusID,
		Username:     in.Username,
		Password:     hash,
		Name:         in.Name,
		Photo:        photo,
		Email:        in.Email,
	}

	u, err := h.Users.Create(ctx, data)
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "users")
	h.publishCreated(u)
	return utils.OK(c, "User created successfully", u)
}

// Update handles PUT /api/users/:id. The previous photo file is removed
// only after the row mutation committed; file cleanup never rolls the
// mutation back.
func (h *UserHandler) Update(c echo.Context) error {
	id, fe := updateID(c)
	if fe != nil {
		return validationError(c, fe)
	}

	in := validator.UserUpdateInput{
		UserRoleID:           formInt(c, "userRoleId"),
		UserStatusID:         formInt(c, "userStatusId"),
		Username:             c.FormValue("username"),
		Password:             c.FormValue("password"),
		PasswordConfirmation: c.FormValue("passwordConfirmation"),
		Name:                 c.FormValue("name"),
		Email:                c.FormValue("email"),
	}

	var photo *string
	if fh, err := c.FormFile("photo"); err == nil {
		name, err := utils.SavePhoto(fh, h.Cfg.UploadDir)
		if err != nil {
			return h.photoError(c, err)
		}
		photo = &name
	}

	ctx := c.Request().Context()
	fe, err := h.Validate.ValidateUpdate(ctx, id, in)
	if err != nil {
		if photo != nil {
			_ = utils.RemovePhoto(h.Cfg.UploadDir, *photo)
		}
		return err
	}
	if fe != nil {
		if photo != nil {
			if err := utils.RemovePhoto(h.Cfg.UploadDir, *photo); err != nil {
				return err
			}
		}
		return validationError(c, fe)
	}

	var oldPhoto string
	if photo != nil {
		prev, err := h.Users.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if prev.Photo != nil {
			oldPhoto = *prev.Photo
		}
	}

	data := model.UserData{
		UserRoleID:   in.UserRoleID,
		UserStatusID: in.UserStatusID,
		Username:     in.Username,
		Name:         in.Name,
		Photo:        photo,
		Email:        in.Email,
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password, h.Cfg.BcryptCost)
		if err != nil {
			return err
		}
		data.Password = hash
	}

	u, err := h.Users.Update(ctx, id, data)
	if err != nil {
		return err
	}
	if err := utils.RemovePhoto(h.Cfg.UploadDir, oldPhoto); err != nil {
		return err
	}
	// cached post lists embed author fields, so they go stale too
	h.Cache.Invalidate(ctx, "users")
	h.Cache.Invalidate(ctx, "posts")
	return utils.OK(c, "User updated successfully", u)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Users.Delete(ctx, id); err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "users")
	return utils.OK(c, "Delete user successfully", nil)
}

// photoError maps typed upload failures to a field error on "photo".
func (h *UserHandler) photoError(c echo.Context, err error) error {
	switch err {
	case utils.ErrPhotoTooLarge, utils.ErrPhotoBadType:
		fe := validator.FieldErrors{}
		fe.Add("photo", err.Error())
		return validationError(c, fe)
	default:
		return err
	}
}

func (h *UserHandler) publishCreated(u model.User) {
	if h.Events == nil {
		return
	}
	ev := queue.UserCreatedEvent{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		_ = h.Events.Publish(context.Background(), queue.UserCreatedQueue, ev)
	}()
}
