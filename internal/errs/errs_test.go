package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	notFound := NewNotFoundError("quote not found", true, nil)
	assert.Equal(t, "NOT_FOUND", notFound.Code)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, "quote not found", notFound.Error())

	code := "INVALID_ID"
	badRequest := NewBadRequestError("bad id", true, &code, []FieldError{{Field: "id", Error: "must be an integer"}})
	assert.Equal(t, "INVALID_ID", badRequest.Code)
	assert.Equal(t, http.StatusBadRequest, badRequest.Status)
	assert.Len(t, badRequest.Errors, 1)

	internal := NewInternalServerError()
	assert.Equal(t, "INTERNAL_SERVER_ERROR", internal.Code)
	assert.Equal(t, "Internal Server Error", internal.Message)
	assert.False(t, internal.Override)
}

func TestHTTPError_IsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("gone", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestValidationError(t *testing.T) {
	err := ValidationError([]FieldError{{Field: "book", Error: "is required"}})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, "Validation failed", err.Message)
	assert.True(t, err.Override)
	assert.Equal(t, []FieldError{{Field: "book", Error: "is required"}}, err.Errors)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
}
