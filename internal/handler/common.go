package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/apperr"
	"github.com/pandhuwib/go-blog-api/internal/utils"
	"github.com/pandhuwib/go-blog-api/internal/validator"
)

// pathID coerces the :id route parameter for read/delete endpoints. A
// non-numeric id addresses no row, so it maps to the not-found taxonomy.
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.NotFound, "Data row not found!")
	}
	return id, nil
}

// updateID coerces the :id route parameter for update endpoints, where a
// bad id is a validation failure on the id field rather than a 404.
func updateID(c echo.Context) (int, validator.FieldErrors) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fe := validator.FieldErrors{}
		fe.Add("id", "The id is not exists")
		return 0, fe
	}
	return id, nil
}

// formInt coerces a multipart form field to an integer; malformed values
// become zero and fail the required check structurally.
func formInt(c echo.Context, field string) int {
	n, _ := strconv.Atoi(c.FormValue(field))
	return n
}

// validationError writes the standard 422 envelope.
func validationError(c echo.Context, fe validator.FieldErrors) error {
	return utils.FailData(c, http.StatusUnprocessableEntity, "Validation Error", fe)
}
