package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
	"github.com/pandhuwib/go-blog-api/internal/model"
	"github.com/pandhuwib/go-blog-api/internal/validator"
)

// stubUserStore is an in-memory UserStore that records mutations.
type stubUserStore struct {
	byID       map[int]model.User
	byUsername map[string]model.User
	created    []model.UserData
	updated    []model.UserData
	deleted    []int
}

func newStubUserStore(users ...model.User) *stubUserStore {
	s := &stubUserStore{
		byID:       map[int]model.User{},
		byUsername: map[string]model.User{},
	}
	for _, u := range users {
		s.byID[u.ID] = u
		s.byUsername[u.Username] = u
	}
	return s
}

func (s *stubUserStore) FindAll(context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(s.byID))
	for _, u := range s.byID {
		users = append(users, u)
	}
	return users, nil
}

func (s *stubUserStore) FindByID(_ context.Context, id int) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, apperr.New(apperr.NotFound, "Data row not found!")
	}
	return u, nil
}

func (s *stubUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := s.byUsername[username]
	if !ok {
		return model.User{}, apperr.New(apperr.NotFound, "Data row not found!")
	}
	return u, nil
}

func (s *stubUserStore) Create(_ context.Context, data model.UserData) (model.User, error) {
	s.created = append(s.created, data)
	return model.User{
		ID:           len(s.byID) + 1,
		UserRoleID:   data.UserRoleID,
		UserStatusID: data.UserStatusID,
		Username:     data.Username,
		Password:     data.Password,
		Name:         data.Name,
		Photo:        data.Photo,
		Email:        data.Email,
	}, nil
}

func (s *stubUserStore) Update(_ context.Context, id int, data model.UserData) (model.User, error) {
	s.updated = append(s.updated, data)
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, apperr.New(apperr.NotFound, "Data row not found!")
	}
	u.UserRoleID = data.UserRoleID
	u.UserStatusID = data.UserStatusID
	u.Username = data.Username
	u.Name = data.Name
	u.Email = data.Email
	if data.Password != "" {
		u.Password = data.Password
	}
	if data.Photo != nil {
		u.Photo = data.Photo
	}
	return u, nil
}

func (s *stubUserStore) Delete(_ context.Context, id int) error {
	if _, ok := s.byID[id]; !ok {
		return apperr.New(apperr.NotFound, "Data row not found!")
	}
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

// stubPostStore records post mutations.
type stubPostStore struct {
	byID    map[int]model.Post
	created []model.PostData
	updated []model.PostData
	deleted []int
}

func newStubPostStore(posts ...model.Post) *stubPostStore {
	s := &stubPostStore{byID: map[int]model.Post{}}
	for _, p := range posts {
		s.byID[p.ID] = p
	}
	return s
}

func (s *stubPostStore) FindAll(context.Context) ([]model.Post, error) {
	posts := make([]model.Post, 0, len(s.byID))
	for _, p := range s.byID {
		posts = append(posts, p)
	}
	return posts, nil
}

func (s *stubPostStore) FindByID(_ context.Context, id int) (model.Post, error) {
	p, ok := s.byID[id]
	if !ok {
		return model.Post{}, apperr.New(apperr.NotFound, "Data row not found!")
	}
	return p, nil
}

func (s *stubPostStore) Create(_ context.Context, data model.PostData) (model.Post, error) {
	s.created = append(s.created, data)
	return model.Post{ID: len(s.byID) + 1, UserID: data.UserID, Title: data.Title, Body: data.Body}, nil
}

func (s *stubPostStore) Update(_ context.Context, id int, data model.PostData) (model.Post, error) {
	s.updated = append(s.updated, data)
	p, ok := s.byID[id]
	if !ok {
		return model.Post{}, apperr.New(apperr.NotFound, "Data row not found!")
	}
	p.Title = data.Title
	p.Body = data.Body
	return p, nil
}

func (s *stubPostStore) Delete(_ context.Context, id int) error {
	if _, ok := s.byID[id]; !ok {
		return apperr.New(apperr.NotFound, "Data row not found!")
	}
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

// stubCache records which cache groups were invalidated.
type stubCache struct{ invalidated []string }

func (s *stubCache) Invalidate(_ context.Context, group string) {
	s.invalidated = append(s.invalidated, group)
}

// existsSet is a lookup fake for role/status/post refinements.
type existsSet map[int]bool

func (e existsSet) ExistsByID(_ context.Context, id int) (bool, error) { return e[id], nil }

// storeLookup adapts a stubUserStore to the validator's UserLookup.
type storeLookup struct{ store *stubUserStore }

func (l storeLookup) ExistsByID(_ context.Context, id int) (bool, error) {
	_, ok := l.store.byID[id]
	return ok, nil
}

func (l storeLookup) UsernameTaken(_ context.Context, username string, excludeID int) (bool, error) {
	u, ok := l.store.byUsername[username]
	return ok && u.ID != excludeID, nil
}

func (l storeLookup) EmailTaken(_ context.Context, email string, excludeID int) (bool, error) {
	for _, u := range l.store.byID {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func userValidatorFor(store *stubUserStore) *validator.UserValidator {
	return validator.NewUserValidator(storeLookup{store}, existsSet{1: true}, existsSet{1: true})
}

func jsonCtx(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func formCtx(e *echo.Echo, method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func setPrincipal(c echo.Context, u model.User) {
	c.Set("authUser", u)
}
