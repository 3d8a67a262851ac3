package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
	"github.com/pandhuwib/go-blog-api/internal/config"
	"github.com/pandhuwib/go-blog-api/internal/middleware"
	"github.com/pandhuwib/go-blog-api/internal/model"
	"github.com/pandhuwib/go-blog-api/internal/utils"
	"github.com/pandhuwib/go-blog-api/internal/validator"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    UserStore
	Validate *validator.UserValidator
	Cache    CacheInvalidator
}

func NewAuthHandler(cfg config.Config, users UserStore, v *validator.UserValidator, cache CacheInvalidator) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Validate: v, Cache: cache}
}

// tokenResp pairs the sanitized user with a freshly issued bearer token.
type tokenResp struct {
	User      model.User      `json:"user"`
	UserToken utils.UserToken `json:"user_token"`
}

// Login handles POST /api/auth. An unknown username and a wrong password
// produce the same generic message so the response never reveals which
// check failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var in validator.LoginInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	if fe := validator.Structural(in); fe != nil {
		return validationError(c, fe)
	}

	ctx := c.Request().Context()
	u, err := h.Users.FindByUsername(ctx, in.Username)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return apperr.New(apperr.Unauthorized, "Invalid credentials")
		}
		return err
	}
	if !utils.VerifyPassword(u.Password, in.Password) {
		return apperr.New(apperr.Unauthorized, "Invalid credentials")
	}

	token, err := utils.NewUserToken(h.Cfg.JWTSecret, u, h.Cfg.TokenTTLDays)
	if err != nil {
		return err
	}
	return utils.OK(c, "Login successfully", tokenResp{User: u, UserToken: token})
}

// User handles GET /api/auth/user. The row is re-fetched by the principal's
// id rather than trusting token claims, so the response reflects current
// state.
func (h *AuthHandler) User(c echo.Context) error {
	principal, ok := middleware.AuthUser(c)
	if !ok {
		return apperr.New(apperr.Unauthorized, "Unauthorized access")
	}
	u, err := h.Users.FindByID(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	u.Posts = nil
	return utils.OK(c, "Get user successfully", u)
}

// UpdateUser handles PUT /api/auth/user: the principal updates their own
// record. A supplied password is re-hashed; an absent one stays unchanged.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	principal, ok := middleware.AuthUser(c)
	if !ok {
		return apperr.New(apperr.Unauthorized, "Unauthorized access")
	}
	var in validator.UserUpdateInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	ctx := c.Request().Context()
	fe, err := h.Validate.ValidateUpdate(ctx, principal.ID, in)
	if err != nil {
		return err
	}
	if fe != nil {
		return validationError(c, fe)
	}

	data := model.UserData{
		UserRoleID:   in.UserRoleID,
		UserStatusID: in.UserStatusID,
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password, h.Cfg.BcryptCost)
		if err != nil {
			return err
		}
		data.Password = hash
	}

	u, err := h.Users.Update(ctx, principal.ID, data)
	if err != nil {
		return err
	}
	// cached post lists embed author fields, so they go stale too
	h.Cache.Invalidate(ctx, "users")
	h.Cache.Invalidate(ctx, "posts")
	u.Posts = nil
	return utils.OK(c, "User updated successfully", u)
}

// RefreshToken handles GET /api/auth/refresh-token: re-fetches the user and
// issues a fresh 30-day token from the current record.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	principal, ok := middleware.AuthUser(c)
	if !ok {
		return apperr.New(apperr.Unauthorized, "Unauthorized access")
	}
	u, err := h.Users.FindByID(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	token, err := utils.NewUserToken(h.Cfg.JWTSecret, u, h.Cfg.TokenTTLDays)
	if err != nil {
		return err
	}
	u.Posts = nil
	return utils.OK(c, "Refresh token successfully", tokenResp{User: u, UserToken: token})
}
