package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/menu-service/internal/errs"
)

type bookPayload struct {
	Book  string `json:"book"`
	Pages int    `json:"pages"`
}

type pageBody struct {
	Limit int `json:"limit"`
}

type pagedRequest struct {
	ID   int64
	Body pageBody
}

func (r *pagedRequest) Bind(c echo.Context) error {
	if err := echo.PathParamsBinder(c).MustInt64("id", &r.ID).BindError(); err != nil {
		return err
	}
	return BindBody(c, &r.Body)
}

func (r *pagedRequest) Validate() error {
	if r.Body.Limit > 10 {
		return errs.ValidationError([]errs.FieldError{{Field: "limit", Error: "must not exceed 10"}})
	}
	return nil
}

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBindAndValidate_Body(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"book":"Dune","pages":412}`)

	var payload bookPayload
	require.NoError(t, BindAndValidate(c, &payload))
	assert.Equal(t, bookPayload{Book: "Dune", Pages: 412}, payload)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "broken json", body: `{"book":`},
		{name: "wrong type", body: `{"book":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, tt.body)

			var payload bookPayload
			err := BindAndValidate(c, &payload)

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, "BAD_REQUEST", httpErr.Code)
		})
	}
}

func TestBindAndValidate_PathParam(t *testing.T) {
	c, _ := newContext(http.MethodPut, `{"limit":5}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	var req pagedRequest
	err := BindAndValidate(c, &req)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "id", httpErr.Errors[0].Field)

	c, _ = newContext(http.MethodPut, `{"limit":5}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	req = pagedRequest{}
	require.NoError(t, BindAndValidate(c, &req))
	assert.Equal(t, int64(7), req.ID)
	assert.Equal(t, 5, req.Body.Limit)
}

func TestBindAndValidate_ValidationFailure(t *testing.T) {
	c, _ := newContext(http.MethodPut, `{"limit":50}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	var req pagedRequest
	err := BindAndValidate(c, &req)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Validation failed", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "limit", httpErr.Errors[0].Field)
	assert.Equal(t, "must not exceed 10", httpErr.Errors[0].Error)
}

func TestBindBody_ZeroValuesAccepted(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"book":"","pages":0}`)

	var payload bookPayload
	require.NoError(t, BindAndValidate(c, &payload))
	assert.Equal(t, bookPayload{}, payload)
}

func TestBindBody_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		missing []string
	}{
		{name: "empty object", body: `{}`, missing: []string{"book", "pages"}},
		{name: "partial", body: `{"book":"Dune"}`, missing: []string{"pages"}},
		{name: "null value", body: `{"book":null,"pages":1}`, missing: []string{"book"}},
		{name: "null body", body: `null`, missing: []string{"book", "pages"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, tt.body)

			var payload bookPayload
			err := BindAndValidate(c, &payload)

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, "Validation failed", httpErr.Message)

			var fields []string
			for _, fe := range httpErr.Errors {
				fields = append(fields, fe.Field)
				assert.Equal(t, "is required", fe.Error)
			}
			assert.Equal(t, tt.missing, fields)
		})
	}
}

func TestBindBody_RejectsNonObjectBodies(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{name: "empty body", body: "", contentType: echo.MIMEApplicationJSON},
		{name: "array", body: `[]`, contentType: echo.MIMEApplicationJSON},
		{name: "no content type", body: `{"book":"Dune","pages":1}`, contentType: ""},
		{name: "form content type", body: `book=Dune&pages=1`, contentType: echo.MIMEApplicationForm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			var payload bookPayload
			err := BindAndValidate(c, &payload)

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, bookPayload{}, payload)
		})
	}
}

type stamped struct {
	Created string `json:"created"`
}

type embeddedPayload struct {
	Name    string `json:"name"`
	Note    string `json:"note,omitempty"`
	Ignored string `json:"-"`
	Plain   string
	stamped
	hidden string
}

func TestRequiredKeys(t *testing.T) {
	assert.Equal(t, []string{"name", "Plain", "created"}, RequiredKeys(&embeddedPayload{}))
	assert.Equal(t, []string{"book", "pages"}, RequiredKeys(bookPayload{}))
	assert.Nil(t, RequiredKeys(new(int)))
}
