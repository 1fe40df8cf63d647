package app

import (
	"net/http"

	"github.com/Gobd/valerror"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/go-chi/chi/v5"
)

// validateParams checks the request's parameters against rt's documented
// parameters. The body is left to [App.Bind].
func (a *App) validateParams(r *http.Request, rt *route) error {
	if len(rt.op.Parameters) == 0 {
		return nil
	}

	pathParams := map[string]string{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			pathParams[key] = rctx.URLParams.Values[i]
		}
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route: &routers.Route{
			Spec:      rt.doc,
			Path:      rt.path,
			PathItem:  rt.doc.Paths.Value(rt.path),
			Method:    rt.method,
			Operation: rt.op,
		},
		Options: &openapi3filter.Options{
			ExcludeRequestBody: true,
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return valerror.NewRequestError(err, nil)
	}
	return nil
}
