package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response wrapper used by every endpoint. Stack is
// only populated in development mode by the terminal error handler.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Stack   []StackFrame `json:"stack,omitempty"`
}

// OK writes a 200 success envelope. A nil data omits the data key.
func OK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given status.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message})
}

// FailData writes a failure envelope carrying a data payload, e.g. the
// field-error map of a 422.
func FailData(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: false, Message: message, Data: data})
}
