package router

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
	"github.com/pandhuwib/go-blog-api/internal/utils"
)

// NewErrorHandler builds the terminal normalizer every failure funnels
// into. It switches on the tagged error kind — never on strings or driver
// codes — and always answers with the standard envelope, so no framework
// default error page ever reaches a client. Internal details stay in the
// server log; development mode additionally attaches a parsed stack trace
// to the response.
func NewErrorHandler(env string) echo.HTTPErrorHandler {
	dev := env == "development"
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Error!"

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			message = ae.Message
			switch ae.Kind {
			case apperr.Unauthorized:
				status = http.StatusUnauthorized
			case apperr.NotFound:
				status = http.StatusNotFound
			case apperr.ConflictReferenced:
				status = http.StatusConflict
			default:
				status = http.StatusInternalServerError
			}
		case errors.As(err, &he):
			status = he.Code
			if status == http.StatusNotFound || status == http.StatusMethodNotAllowed {
				status = http.StatusNotFound
				message = "Route not found - " + c.Request().URL.Path
			}
		}

		log.Printf("request failed: %v", err)

		resp := utils.Envelope{Success: false, Message: message}
		if dev {
			resp.Stack = utils.ParseStack(debug.Stack())
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}
