package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
	"github.com/pandhuwib/go-blog-api/internal/middleware"
	"github.com/pandhuwib/go-blog-api/internal/model"
	"github.com/pandhuwib/go-blog-api/internal/utils"
)

const guardSecret = "guard-secret"

type fakePrincipalSource struct {
	users map[int]model.User
}

func (f *fakePrincipalSource) FindByID(_ context.Context, id int) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, apperr.New(apperr.NotFound, "Data row not found!")
	}
	return u, nil
}

func guardedEcho(source middleware.PrincipalSource) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		u, ok := middleware.AuthUser(c)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "no principal")
		}
		return c.String(http.StatusOK, u.Username)
	}, middleware.AuthGuard(guardSecret, source))
	return e
}

func TestAuthGuardMissingHeader(t *testing.T) {
	e := guardedEcho(&fakePrincipalSource{})

	for _, header := range []string{"", "Basic abc", "bearer lowercase"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := middleware.AuthGuard(guardSecret, &fakePrincipalSource{})(func(echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})(c)

		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, apperr.Unauthorized, ae.Kind)
		assert.Equal(t, "Token not found", ae.Message)
	}
}

func TestAuthGuardBadToken(t *testing.T) {
	e := guardedEcho(&fakePrincipalSource{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := middleware.AuthGuard(guardSecret, &fakePrincipalSource{})(func(echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(c)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.Unauthorized, ae.Kind)
	assert.Equal(t, "Unauthorized access", ae.Message)
}

func TestAuthGuardVanishedUser(t *testing.T) {
	tok, err := utils.NewUserToken(guardSecret, model.User{ID: 9, Username: "ghost"}, 1)
	require.NoError(t, err)

	e := guardedEcho(&fakePrincipalSource{})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	gerr := middleware.AuthGuard(guardSecret, &fakePrincipalSource{users: map[int]model.User{}})(func(echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})(c)

	var ae *apperr.Error
	require.ErrorAs(t, gerr, &ae)
	assert.Equal(t, "Unauthorized access", ae.Message)
}

func TestAuthGuardAttachesPrincipal(t *testing.T) {
	u := model.User{ID: 5, Username: "alice", Name: "Alice", Email: "alice@example.com"}
	tok, err := utils.NewUserToken(guardSecret, u, 1)
	require.NoError(t, err)

	e := guardedEcho(&fakePrincipalSource{users: map[int]model.User{5: u}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}
