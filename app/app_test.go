package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobd/valerror"
	"github.com/Gobd/valerror/app"
	"github.com/Gobd/valerror/openapi"
	"github.com/Gobd/valerror/transform"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test types ---

type signup struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Tags  []string `json:"tags"`
	Pet   *pet     `json:"pet"`
}

type pet struct {
	Name string `json:"name"`
}

func (s signup) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(2, 0)),
		validation.Field(&s.Email, validation.Required),
	)
}

func (s *signup) Sanitize() {
	transform.TrimSpace(s)
}

type ctxSignup struct {
	Name string `json:"name"`
	seen bool
}

func (c *ctxSignup) Sanitize(ctx context.Context) {
	c.seen = ctx != nil
}

func (c ctxSignup) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, &c,
		validation.Field(&c.Name, validation.Required),
	)
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(t *testing.T, h http.Handler, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func failureFields(t *testing.T, err error) []string {
	t.Helper()
	var re *valerror.RequestError
	require.ErrorAs(t, err, &re)
	out := make([]string, len(re.Failures))
	for i, f := range re.Failures {
		out[i] = valerror.FieldPath(f.Location)
	}
	return out
}

// --- Bind ---

func TestBind_Valid(t *testing.T) {
	a := app.New(app.Config{Logger: quiet()})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"  Ann ","email":"a@b.co","tags":[" x "],"pet":{"name":" Rex"}}`))

	var s signup
	require.NoError(t, a.Bind(req, &s))
	assert.Equal(t, "Ann", s.Name)
	assert.Equal(t, []string{"x"}, s.Tags)
	assert.Equal(t, "Rex", s.Pet.Name)
}

func TestBind_SanitizeBeforeValidate(t *testing.T) {
	a := app.New(app.Config{Logger: quiet()})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"   ","email":"a@b.co"}`))

	var s signup
	err := a.Bind(req, &s)
	assert.Equal(t, []string{"name"}, failureFields(t, err))
}

func TestBind_EmptyBody(t *testing.T) {
	a := app.New(app.Config{Logger: quiet()})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("  "))

	var s signup
	err := a.Bind(req, &s)
	assert.Equal(t, []string{"name", "email"}, failureFields(t, err))
}

func TestBind_DecodeErrorSkipsValidation(t *testing.T) {
	a := app.New(app.Config{Logger: quiet()})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":1}`))

	var s signup
	err := a.Bind(req, &s)
	assert.Equal(t, []string{"name"}, failureFields(t, err))

	var re *valerror.RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "str type expected", re.Failures[0].Message)
}

func TestBind_DisallowUnknownFields(t *testing.T) {
	a := app.New(app.Config{Logger: quiet(), DisallowUnknownFields: true})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ann","email":"a@b.co","nickname":"x"}`))

	var s signup
	err := a.Bind(req, &s)
	assert.Equal(t, []string{"nickname"}, failureFields(t, err))
}

func TestBind_BodyTooLarge(t *testing.T) {
	a := app.New(app.Config{Logger: quiet(), MaxBodySize: 16})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Annabelle","email":"a@b.co"}`))

	var s signup
	err := a.Bind(req, &s)

	var re *valerror.RequestError
	require.ErrorAs(t, err, &re)
	require.Len(t, re.Failures, 1)
	assert.Equal(t, "request body exceeds 16 bytes", re.Failures[0].Message)
	assert.Equal(t, "", valerror.FieldPath(re.Failures[0].Location))

	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestApp_BodyTooLargeEnvelope(t *testing.T) {
	a := app.New(app.Config{Logger: quiet(), MaxBodySize: 16})
	valerror.Setup(a)
	a.Post("/signup", "signup", openapi.Endpoint{Request: signup{}}, func(w http.ResponseWriter, r *http.Request) error {
		var s signup
		return a.Bind(r, &s)
	})

	rec := post(t, a, "/signup", `{"name":"Annabelle","email":"a@b.co"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"VALIDATION_ERROR","details":[{"field":"","message":"request body exceeds 16 bytes"}]}}`, rec.Body.String())
}

func TestBind_ContextHooks(t *testing.T) {
	a := app.New(app.Config{Logger: quiet()})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))

	var c ctxSignup
	err := a.Bind(req, &c)
	assert.True(t, c.seen)
	assert.Equal(t, []string{"name"}, failureFields(t, err))
}

func TestBind_ConfigValidate(t *testing.T) {
	called := false
	a := app.New(app.Config{
		Logger: quiet(),
		Validate: func(_ context.Context, dst any) error {
			called = true
			return validation.Errors{"email": validation.NewError("validation_taken", "is already registered")}
		},
	})

	var s signup
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ann","email":"a@b.co"}`))
	err := a.Bind(req, &s)
	assert.True(t, called)
	assert.Equal(t, []string{"email"}, failureFields(t, err))

	// Not reached while ozzo-validation fails.
	called = false
	var empty signup
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	require.Error(t, a.Bind(req, &empty))
	assert.False(t, called)
}

// --- Exception handlers ---

func TestApp_DefaultValidationResponse(t *testing.T) {
	a := app.New(app.Config{Logger: quiet()})
	a.Post("/signup", "signup", openapi.Endpoint{Request: signup{}}, func(w http.ResponseWriter, r *http.Request) error {
		var s signup
		return a.Bind(r, &s)
	})

	rec := post(t, a, "/signup", `{"email":"a@b.co"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":[{"loc":["body","name"],"msg":"cannot be blank","type":"validation_required"}]}`, rec.Body.String())
}

func TestApp_LatestHandlerWins(t *testing.T) {
	a := app.New(app.Config{Logger: quiet()})
	a.Get("/fail", "fail", openapi.Endpoint{}, func(http.ResponseWriter, *http.Request) error {
		return &valerror.RequestError{Failures: []valerror.Failure{{Location: valerror.Loc("body"), Message: "bad"}}}
	})

	a.AddExceptionHandler(valerror.IsValidation, func(w http.ResponseWriter, _ *http.Request, _ error) {
		w.WriteHeader(http.StatusTeapot)
	})
	a.AddExceptionHandler(valerror.IsValidation, func(w http.ResponseWriter, _ *http.Request, _ error) {
		w.WriteHeader(http.StatusConflict)
	})

	assert.Equal(t, http.StatusConflict, get(t, a, "/fail").Code)
}

func TestApp_UnhandledError(t *testing.T) {
	a := app.New(app.Config{Logger: quiet()})
	a.Get("/boom", "boom", openapi.Endpoint{}, func(http.ResponseWriter, *http.Request) error {
		return errors.New("database down")
	})

	rec := get(t, a, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, rec.Body.String())
}

// --- Parameters ---

func paramsApp(t *testing.T) *app.App {
	t.Helper()
	a := app.New(app.Config{Logger: quiet(), ValidateParams: true})
	valerror.Setup(a)

	a.Get("/items/{item_id}", "readItem", openapi.Endpoint{
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewPathParameter("item_id").WithSchema(openapi3.NewIntegerSchema())},
		},
	}, func(w http.ResponseWriter, _ *http.Request) error {
		return app.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	a.Get("/search", "search", openapi.Endpoint{
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewQueryParameter("q").WithRequired(true).WithSchema(openapi3.NewStringSchema().WithMinLength(3))},
		},
	}, func(w http.ResponseWriter, _ *http.Request) error {
		return app.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	a.Post("/headers-test", "headersTest", openapi.Endpoint{
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewHeaderParameter("custom-header").WithRequired(true).WithSchema(openapi3.NewStringSchema())},
		},
	}, func(w http.ResponseWriter, _ *http.Request) error {
		return app.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	return a
}

func TestApp_Params(t *testing.T) {
	a := paramsApp(t)

	tests := []struct {
		name  string
		rec   *httptest.ResponseRecorder
		field string
	}{
		{"missing query", get(t, a, "/search"), "query.q"},
		{"short query", get(t, a, "/search?q=ab"), "query.q"},
		{"bad path", get(t, a, "/items/abc"), "path.item_id"},
		{"missing header", post(t, a, "/headers-test", ""), "header.custom-header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, tt.rec.Code)
			assert.Contains(t, tt.rec.Body.String(), `"field":"`+tt.field+`"`)
			assert.Contains(t, tt.rec.Body.String(), `"code":"VALIDATION_ERROR"`)
		})
	}

	assert.Equal(t, http.StatusOK, get(t, a, "/search?q=abc").Code)
	assert.Equal(t, http.StatusOK, get(t, a, "/items/42").Code)
	assert.Equal(t, http.StatusOK, post(t, a, "/headers-test", "", "custom-header", "x").Code)
}

func TestApp_ParamsNotValidatedByDefault(t *testing.T) {
	a := app.New(app.Config{Logger: quiet()})
	a.Get("/search", "search", openapi.Endpoint{
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewQueryParameter("q").WithRequired(true).WithSchema(openapi3.NewStringSchema())},
		},
	}, func(w http.ResponseWriter, _ *http.Request) error {
		return app.JSON(w, http.StatusOK, nil)
	})

	assert.Equal(t, http.StatusOK, get(t, a, "/search").Code)
}

// --- Document ---

func TestApp_OpenAPICached(t *testing.T) {
	a := app.New(app.Config{Title: "Cache", Version: "1", Logger: quiet()})
	a.Post("/signup", "signup", openapi.Endpoint{Request: signup{}}, func(http.ResponseWriter, *http.Request) error { return nil })

	calls := 0
	a.AddDocHook(func(*openapi3.T) error {
		calls++
		return nil
	})

	first, err := a.OpenAPI(context.Background())
	require.NoError(t, err)
	second, err := a.OpenAPI(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	a.Get("/other", "other", openapi.Endpoint{}, func(http.ResponseWriter, *http.Request) error { return nil })
	third, err := a.OpenAPI(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, calls)
	assert.NotNil(t, third.Paths.Value("/other"))
}

func TestApp_OpenAPIHookFailure(t *testing.T) {
	a := app.New(app.Config{Title: "Broken", Version: "1", Logger: quiet()})
	a.AddDocHook(func(*openapi3.T) error { return errors.New("no") })

	_, err := a.OpenAPI(context.Background())
	require.Error(t, err)

	rec := get(t, a, "/openapi.json")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestApp_ServesDocument(t *testing.T) {
	a := app.New(app.Config{Title: "Served", Version: "1", Logger: quiet()})
	a.Post("/signup", "signup", openapi.Endpoint{Request: signup{}}, func(http.ResponseWriter, *http.Request) error { return nil })

	rec := get(t, a, "/openapi.json")
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := openapi3.NewLoader().LoadFromData(rec.Body.Bytes())
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Value("/signup").Post.Responses.Value("422"))

	rec = get(t, a, "/openapi.yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "title: Served")
}
