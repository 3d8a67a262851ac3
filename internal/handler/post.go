package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
	"github.com/pandhuwib/go-blog-api/internal/middleware"
	"github.com/pandhuwib/go-blog-api/internal/model"
	"github.com/pandhuwib/go-blog-api/internal/queue"
	"github.com/pandhuwib/go-blog-api/internal/service"
	"github.com/pandhuwib/go-blog-api/internal/utils"
	"github.com/pandhuwib/go-blog-api/internal/validator"
)

type PostHandler struct {
	Posts    PostStore
	Validate *validator.PostValidator
	Cache    CacheInvalidator
	Events   *service.EventPublisher
}

func NewPostHandler(posts PostStore, v *validator.PostValidator, cache CacheInvalidator, events *service.EventPublisher) *PostHandler {
	return &PostHandler{Posts: posts, Validate: v, Cache: cache, Events: events}
}

func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.Posts.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return utils.OK(c, "Get posts successfully", posts)
}

func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	post, err := h.Posts.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return utils.OK(c, "Get post successfully", post)
}

// Store handles POST /api/posts. The owning user id is always the
// authenticated principal; a userId in the request body is ignored.
func (h *PostHandler) Store(c echo.Context) error {
	principal, ok := middleware.AuthUser(c)
	if !ok {
		return apperr.New(apperr.Unauthorized, "Unauthorized access")
	}
	var in validator.PostStoreInput
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

	post, err := h.Posts.Create(ctx, model.PostData{
		UserID: principal.ID,
		Title:  in.Title,
		Body:   in.Body,
	})
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "posts")
	h.Cache.Invalidate(ctx, "users")
	h.publishCreated(post)
	return utils.OK(c, "Post created successfully", post)
}

func (h *PostHandler) Update(c echo.Context) error {
	id, fe := updateID(c)
	if fe != nil {
		return validationError(c, fe)
	}
	var in validator.PostUpdateInput
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

	post, err := h.Posts.Update(ctx, id, model.PostData{Title: in.Title, Body: in.Body})
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "posts")
	h.Cache.Invalidate(ctx, "users")
	return utils.OK(c, "Post updated successfully", post)
}

func (h *PostHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Posts.Delete(ctx, id); err != nil {
		return err
	}
	h.Cache.Invalidate(ctx, "posts")
	h.Cache.Invalidate(ctx, "users")
	return utils.OK(c, "Delete post successfully", nil)
}

func (h *PostHandler) publishCreated(p model.Post) {
	if h.Events == nil {
		return
	}
	ev := queue.PostCreatedEvent{
		PostID:    p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		_ = h.Events.Publish(context.Background(), queue.PostCreatedQueue, ev)
	}()
}
