package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
	"github.com/pandhuwib/go-blog-api/internal/handler"
	"github.com/pandhuwib/go-blog-api/internal/utils"
	"github.com/pandhuwib/go-blog-api/internal/validator"
)

func newUserHandler(t *testing.T) (*handler.UserHandler, *stubUserStore) {
	store := newStubUserStore(seededUser(t))
	return handler.NewUserHandler(testConfig(), store, userValidatorFor(store), &stubCache{}, nil), store
}

func storeForm() url.Values {
	return url.Values{
		"userRoleId":           {"1"},
		"userStatusId":         {"1"},
		"username":             {"bob"},
		"password":             {"secret"},
		"passwordConfirmation": {"secret"},
		"name":                 {"Bob"},
		"email":                {"bob@example.com"},
	}
}

func TestUserStoreSuccess(t *testing.T) {
	h, store := newUserHandler(t)
	e := echo.New()

	c, rec := formCtx(e, http.MethodPost, "/api/users", storeForm())
	require.NoError(t, h.Store(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "User created successfully", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "bob", data["username"])
	assert.NotContains(t, data, "password")

	require.Len(t, store.created, 1)
	assert.True(t, utils.VerifyPassword(store.created[0].Password, "secret"))
}

func TestUserStorePasswordMismatch(t *testing.T) {
	h, store := newUserHandler(t)
	e := echo.New()

	form := storeForm()
	form.Set("passwordConfirmation", "other")
	c, rec := formCtx(e, http.MethodPost, "/api/users", form)
	require.NoError(t, h.Store(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Validation Error", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "password")
	assert.Empty(t, store.created)
}

func TestUserStoreAccumulatesViolations(t *testing.T) {
	h, store := newUserHandler(t)
	e := echo.New()

	form := storeForm()
	form.Set("username", "alice")
	form.Set("email", "alice@example.com")
	form.Set("userRoleId", "99")
	c, rec := formCtx(e, http.MethodPost, "/api/users", form)
	require.NoError(t, h.Store(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "username")
	assert.Contains(t, data, "email")
	assert.Contains(t, data, "userRoleId")
	assert.Empty(t, store.created)
}

func TestUserStoreMalformedRoleID(t *testing.T) {
	h, _ := newUserHandler(t)
	e := echo.New()

	// non-numeric id coerces to zero and fails the required check
	form := storeForm()
	form.Set("userRoleId", "abc")
	c, rec := formCtx(e, http.MethodPost, "/api/users", form)
	require.NoError(t, h.Store(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "userRoleId")
}

func TestUserUpdateOwnValues(t *testing.T) {
	h, store := newUserHandler(t)
	e := echo.New()

	form := url.Values{
		"userRoleId":   {"1"},
		"userStatusId": {"1"},
		"username":     {"alice"},
		"name":         {"Alice Renamed"},
		"email":        {"alice@example.com"},
	}
	c, rec := formCtx(e, http.MethodPut, "/api/users/5", form)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "User updated successfully", body["message"])

	require.Len(t, store.updated, 1)
	assert.Equal(t, "Alice Renamed", store.updated[0].Name)
	// no password supplied means no hash written
	assert.Empty(t, store.updated[0].Password)

	// cached post lists embed author fields
	cache := h.Cache.(*stubCache)
	assert.Contains(t, cache.invalidated, "users")
	assert.Contains(t, cache.invalidated, "posts")
}

// errUserLookup fails every uniqueness lookup with a storage fault.
type errUserLookup struct{}

func (errUserLookup) ExistsByID(context.Context, int) (bool, error) {
	return false, assert.AnError
}

func (errUserLookup) UsernameTaken(context.Context, string, int) (bool, error) {
	return false, assert.AnError
}

func (errUserLookup) EmailTaken(context.Context, string, int) (bool, error) {
	return false, assert.AnError
}

func multipartCtx(t *testing.T, e *echo.Echo, method, path string, fields url.Values, photoName string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	if photoName != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="photo"; filename="`+photoName+`"`)
		hdr.Set("Content-Type", "image/png")
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserStoreWithPhoto(t *testing.T) {
	store := newStubUserStore(seededUser(t))
	cfg := testConfig()
	cfg.UploadDir = t.TempDir()
	h := handler.NewUserHandler(cfg, store, userValidatorFor(store), &stubCache{}, nil)
	e := echo.New()

	c, rec := multipartCtx(t, e, http.MethodPost, "/api/users", storeForm(), "avatar.png")
	require.NoError(t, h.Store(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.created, 1)
	require.NotNil(t, store.created[0].Photo)
	assert.Contains(t, *store.created[0].Photo, "avatar.png")

	_, err := os.Stat(filepath.Join(cfg.UploadDir, "user-photo", *store.created[0].Photo))
	assert.NoError(t, err)
}

func TestUserStoreValidationFailureRemovesPhoto(t *testing.T) {
	store := newStubUserStore(seededUser(t))
	cfg := testConfig()
	cfg.UploadDir = t.TempDir()
	h := handler.NewUserHandler(cfg, store, userValidatorFor(store), &stubCache{}, nil)
	e := echo.New()

	form := storeForm()
	form.Set("passwordConfirmation", "other")
	c, rec := multipartCtx(t, e, http.MethodPost, "/api/users", form, "avatar.png")
	require.NoError(t, h.Store(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	entries, err := os.ReadDir(filepath.Join(cfg.UploadDir, "user-photo"))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, store.created)
}

func TestUserStoreLookupFaultRemovesPhoto(t *testing.T) {
	store := newStubUserStore(seededUser(t))
	cfg := testConfig()
	cfg.UploadDir = t.TempDir()
	v := validator.NewUserValidator(errUserLookup{}, existsSet{1: true}, existsSet{1: true})
	h := handler.NewUserHandler(cfg, store, v, &stubCache{}, nil)
	e := echo.New()

	c, _ := multipartCtx(t, e, http.MethodPost, "/api/users", storeForm(), "avatar.png")
	require.Error(t, h.Store(c))

	// the stored file must not outlive the failed request
	entries, err := os.ReadDir(filepath.Join(cfg.UploadDir, "user-photo"))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, store.created)
}

func TestUserUpdateBadID(t *testing.T) {
	h, store := newUserHandler(t)
	e := echo.New()

	c, rec := formCtx(e, http.MethodPut, "/api/users/abc", storeForm())
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "id")
	assert.Empty(t, store.updated)
}

func TestUserDelete(t *testing.T) {
	h, store := newUserHandler(t)
	e := echo.New()

	c, rec := jsonCtx(e, http.MethodDelete, "/api/users/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.Delete(c))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Delete user successfully", body["message"])
	assert.Equal(t, []int{5}, store.deleted)
}

func TestUserDeleteBadID(t *testing.T) {
	h, _ := newUserHandler(t)
	e := echo.New()

	c, _ := jsonCtx(e, http.MethodDelete, "/api/users/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := h.Delete(c)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.NotFound, ae.Kind)
}
