package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
	"github.com/pandhuwib/go-blog-api/internal/model"
	"github.com/pandhuwib/go-blog-api/internal/utils"
)

const authUserKey = "authUser"

// PrincipalSource re-fetches the authenticated user on every request so
// stale token claims never leak outdated state into handlers.
type PrincipalSource interface {
	FindByID(ctx context.Context, id int) (model.User, error)
}

// AuthGuard protects a route group. Every request resolves to exactly one
// of: principal attached and the chain continues, or a 401 — a missing or
// malformed header yields "Token not found", while a bad signature, an
// expired token or a vanished user yields "Unauthorized access".
func AuthGuard(secret string, users PrincipalSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return apperr.New(apperr.Unauthorized, "Token not found")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := utils.VerifyUserToken(secret, raw)
			if err != nil {
				return apperr.Wrap(apperr.Unauthorized, "Unauthorized access", err)
			}
			u, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return apperr.Wrap(apperr.Unauthorized, "Unauthorized access", err)
			}

			c.Set(authUserKey, u)
			return next(c)
		}
	}
}

// AuthUser returns the principal attached by AuthGuard.
func AuthUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(authUserKey).(model.User)
	return u, ok
}
