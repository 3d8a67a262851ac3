package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// ResponseCache stores successful GET responses in Redis, grouped per
// entity so mutations can drop exactly the stale entries. A nil cache or a
// nil client disables caching; every request then falls through to the
// handler.
type ResponseCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{Client: client, TTL: ttl, Prefix: "blogapi"}
}

// captureWriter captures the response body while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.status == http.StatusOK {
		cw.buf.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

// Middleware serves cached bodies for GET requests in the given group and
// captures fresh 200 responses for later hits.
func (rc *ResponseCache) Middleware(group string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rc == nil || rc.Client == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			key := rc.key(group, c)

			if body, err := rc.Client.Get(ctx, key).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				if err := rc.Client.Set(ctx, key, cw.buf.Bytes(), rc.TTL).Err(); err != nil {
					log.Printf("cache: store %s: %v", key, err)
				}
			}
			return nil
		}
	}
}

// Invalidate drops every cached response of a group. Called after a
// successful mutation; failures are logged, never surfaced.
func (rc *ResponseCache) Invalidate(ctx context.Context, group string) {
	if rc == nil || rc.Client == nil {
		return
	}
	iter := rc.Client.Scan(ctx, 0, rc.Prefix+":"+group+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rc.Client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("cache: invalidate %s: %v", group, err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache: invalidate scan %s: %v", group, err)
	}
}

func (rc *ResponseCache) key(group string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Request().URL.Path + "|" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%s:%x", rc.Prefix, group, sum)
}
