package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
	"github.com/pandhuwib/go-blog-api/internal/router"
)

func failingEcho(env string, err error) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = router.NewErrorHandler(env)
	e.GET("/boom", func(echo.Context) error { return err })
	return e
}

func do(e *echo.Echo, method, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestErrorHandlerKinds(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{apperr.New(apperr.Unauthorized, "Unauthorized access"), http.StatusUnauthorized, "Unauthorized access"},
		{apperr.New(apperr.NotFound, "Data row not found!"), http.StatusNotFound, "Data row not found!"},
		{apperr.New(apperr.ConflictReferenced, "Data that has been used cannot be deleted!"), http.StatusConflict, "Data that has been used cannot be deleted!"},
		{apperr.New(apperr.Driver, "Failed to process!"), http.StatusInternalServerError, "Failed to process!"},
		{apperr.New(apperr.Generic, "Error!"), http.StatusInternalServerError, "Error!"},
	}

	for _, tc := range cases {
		rec, body := do(failingEcho("production", tc.err), http.MethodGet, "/boom")
		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.message, body["message"])
		assert.NotContains(t, body, "stack")
	}
}

func TestErrorHandlerRouteNotFound(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = router.NewErrorHandler("production")

	rec, body := do(e, http.MethodGet, "/api/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found - /api/nowhere", body["message"])
}

func TestErrorHandlerMethodNotAllowedBecomesNotFound(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = router.NewErrorHandler("production")
	e.GET("/only-get", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec, body := do(e, http.MethodPost, "/only-get")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found - /only-get", body["message"])
}

func TestErrorHandlerDevStack(t *testing.T) {
	rec, body := do(failingEcho("development", apperr.New(apperr.Generic, "Error!")), http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	frames, ok := body["stack"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, frames)
}

func TestErrorHandlerUnknownErrorIsGeneric(t *testing.T) {
	rec, body := do(failingEcho("production", assert.AnError), http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error!", body["message"])
}
