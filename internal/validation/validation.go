// Package validation binds request data and validates it.
//
// It converts echo binding failures (malformed JSON, non-integer path
// parameters) and go-playground/validator errors into a 400 *errs.HTTPError
// with field-level details the client can understand.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/menu-service/internal/errs"
)

// Validatable is implemented by request types that validate themselves.
type Validatable interface {
	Validate() error
}

// Bindable is implemented by request types that bind themselves from
// several sources (path parameters and body). Types that do not implement
// it are bound from the request body only.
type Bindable interface {
	Bind(c echo.Context) error
}

var validate = validator.New()

// BindAndValidate binds request data into payload and validates it.
//
// payload must be a pointer. Binding failures and validation failures
// both return a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload any) error {
	var err error
	if b, ok := payload.(Bindable); ok {
		err = b.Bind(c)
	} else {
		err = BindBody(c, payload)
	}
	if err != nil {
		return bindError(err)
	}

	if v, ok := payload.(Validatable); ok {
		if verr := v.Validate(); verr != nil {
			var httpErr *errs.HTTPError
			if errors.As(verr, &httpErr) {
				return verr
			}
			return errs.NewBadRequestError("Validation failed: "+verr.Error(), false, nil, nil)
		}
	}

	return nil
}

// BindBody decodes a JSON object body into dest, ignoring path and query parameters.
//
// The request must be sent as application/json and every JSON key of dest
// must be present and non-null. Values themselves are not checked, so ""
// and 0 are accepted.
func BindBody(c echo.Context, dest any) error {
	req := c.Request()
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return errs.NewBadRequestError("Expected request with `Content-Type: application/json`", true, nil, nil)
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return errs.NewBadRequestError("Failed to read request body", true, nil, nil)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return errs.NewBadRequestError("Request body must be a JSON object", true, nil, nil)
	}

	if fieldErrors := missingFields(fields, RequiredKeys(dest)); len(fieldErrors) > 0 {
		return errs.ValidationError(fieldErrors)
	}

	req.Body = io.NopCloser(bytes.NewReader(body))
	return (&echo.DefaultBinder{}).BindBody(c, dest)
}

// RequiredKeys lists the JSON keys of the struct dest points to, in field
// order. Embedded structs are flattened; fields tagged "-" or omitempty
// are skipped.
func RequiredKeys(dest any) []string {
	t := reflect.TypeOf(dest)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return structKeys(t)
}

func structKeys(t reflect.Type) []string {
	var keys []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")

		if field.Anonymous && tag == "" && field.Type.Kind() == reflect.Struct {
			keys = append(keys, structKeys(field.Type)...)
			continue
		}
		if !field.IsExported() || tag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if strings.Contains(opts, "omitempty") {
			continue
		}
		if name == "" {
			name = field.Name
		}
		keys = append(keys, name)
	}

	return keys
}

// missingFields runs a "required" rule over every key. JSON null counts as missing.
func missingFields(fields map[string]json.RawMessage, keys []string) []errs.FieldError {
	data := make(map[string]any, len(keys))
	rules := make(map[string]any, len(keys))

	for _, key := range keys {
		rules[key] = "required"
		if raw, ok := fields[key]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			data[key] = raw
		}
	}

	failed := validate.ValidateMap(data, rules)

	var fieldErrors []errs.FieldError
	for _, key := range keys {
		if _, ok := failed[key]; ok {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: key, Error: "is required"})
		}
	}
	return fieldErrors
}

// bindError converts echo binding errors into a client-facing HTTPError.
func bindError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) {
		return errs.NewBadRequestError("Invalid path parameter", true, nil, []errs.FieldError{
			{Field: bindingErr.Field, Error: "must be an integer"},
		})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message := fmt.Sprint(echoErr.Message)
		if echoErr.Code == http.StatusBadRequest || echoErr.Code == 0 {
			return errs.NewBadRequestError(message, true, nil, nil)
		}

		code := errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code))
		return &errs.HTTPError{
			Code:     code,
			Message:  message,
			Status:   echoErr.Code,
			Override: true,
		}
	}

	return errs.NewBadRequestError("Invalid request", false, nil, nil)
}
