package openapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// LegacyValidationDescription is the description of the default 422 response.
const LegacyValidationDescription = "Validation Error"

// Response describes an HTTP response with a description and body types for schema generation.
type Response struct {
	Desc   string
	Bodies []any
}

// Endpoint describes a single API operation for the convenience helpers
// [Get], [Post], [Put], [Patch], and [Delete].
//
// Endpoints with parameters or a request body also document the default 422
// validation response unless Responses already names one.
type Endpoint struct {
	Summary     string
	Description string
	Parameters  openapi3.Parameters
	Request     any                 // single request body type (convenience)
	Requests    []any               // multiple request body types (oneOf)
	Response    any                 // single 200 response type (convenience)
	Responses   map[string]Response // full response map (overrides Response if both set)
}

// NewRequestMust is like [NewRequest] but panics on error.
func NewRequestMust(vs ...any) *openapi3.RequestBodyRef {
	o, err := NewRequest(vs...)
	if err != nil {
		panic(err)
	}
	return o
}

// NewRequest generates an OpenAPI request body schema from the given value types.
func NewRequest(vs ...any) (*openapi3.RequestBodyRef, error) {
	if len(vs) == 0 {
		return nil, errors.New("no values given")
	}

	refs := make(openapi3.SchemaRefs, 0, len(vs))
	for i := range vs {
		schema, err := NewSchemaRefForValue(vs[i])
		if err != nil {
			return nil, err
		}
		refs = append(refs, schema)
	}

	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithJSONSchemaRef(oneOf(refs))),
	}, nil
}

// NewResponseMust is like [NewResponse] but panics on error.
// Map key is status code (e.g. "200", "4xx").
func NewResponseMust(vs map[string]Response) *openapi3.Responses {
	o, err := NewResponse(vs)
	if err != nil {
		panic(err)
	}
	return o
}

// NewResponse creates an OpenAPI responses object.
// Map key is status code (e.g. "200", "4xx").
func NewResponse(vs map[string]Response) (*openapi3.Responses, error) {
	if len(vs) == 0 {
		return nil, errors.New("no values given")
	}

	opts := make([]openapi3.NewResponsesOption, 0, len(vs))

	for statusCode, r := range vs {
		var refs openapi3.SchemaRefs
		for _, body := range r.Bodies {
			schema, err := NewSchemaRefForValue(body)
			if err != nil {
				return nil, fmt.Errorf("response %s: %w", statusCode, err)
			}
			refs = append(refs, schema)
		}

		resp := openapi3.NewResponse().WithDescription(r.Desc)
		if len(refs) > 0 {
			resp.WithContent(openapi3.NewContentWithJSONSchemaRef(oneOf(refs)))
		}
		opts = append(opts, openapi3.WithName(statusCode, resp))
	}

	return openapi3.NewResponses(opts...), nil
}

func oneOf(refs openapi3.SchemaRefs) *openapi3.SchemaRef {
	if len(refs) == 1 {
		return refs[0]
	}
	return &openapi3.SchemaRef{Value: &openapi3.Schema{OneOf: refs}}
}

// LegacyValidationResponse is the host's default validation failure
// response, documented under 422 until [Patcher.Patch] replaces it.
func LegacyValidationResponse() *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(LegacyValidationDescription).
			WithJSONSchema(legacyValidationSchema()),
	}
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
}

// AddPath adds an operation to the document at the given path and method.
func AddPath(path, method string, s *openapi3.T, op *openapi3.Operation) {
	s.AddOperation(path, method, op)
}

// NewOperation builds an [openapi3.Operation] from ep.
func NewOperation(operationID string, ep Endpoint) (*openapi3.Operation, error) {
	op := &openapi3.Operation{
		OperationID: operationID,
		Summary:     ep.Summary,
		Description: ep.Description,
		Parameters:  ep.Parameters,
	}

	// Request body
	var err error
	switch {
	case len(ep.Requests) > 0:
		op.RequestBody, err = NewRequest(ep.Requests...)
	case ep.Request != nil:
		op.RequestBody, err = NewRequest(ep.Request)
	}
	if err != nil {
		return nil, fmt.Errorf("operation %s request: %w", operationID, err)
	}

	// Responses
	responses := ep.Responses
	if responses == nil && ep.Response != nil {
		responses = map[string]Response{
			"200": {Desc: "OK", Bodies: []any{ep.Response}},
		}
	}
	if responses != nil {
		op.Responses, err = NewResponse(responses)
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", operationID, err)
		}
	} else {
		op.Responses = openapi3.NewResponses()
	}

	legacy := strconv.Itoa(http.StatusUnprocessableEntity)
	if (op.RequestBody != nil || len(op.Parameters) > 0) && op.Responses.Value(legacy) == nil {
		op.Responses.Set(legacy, LegacyValidationResponse())
	}

	return op, nil
}

// addEndpoint builds an [openapi3.Operation] from ep and registers it at path+method.
func addEndpoint(doc *openapi3.T, path, method, operationID string, ep Endpoint) {
	op, err := NewOperation(operationID, ep)
	if err != nil {
		panic(err)
	}
	AddPath(path, method, doc, op)
}

// Get registers a GET endpoint on doc.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodGet, operationID, ep)
}

// Post registers a POST endpoint on doc.
func Post(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPost, operationID, ep)
}

// Put registers a PUT endpoint on doc.
func Put(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPut, operationID, ep)
}

// Patch registers a PATCH endpoint on doc.
func Patch(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPatch, operationID, ep)
}

// Delete registers a DELETE endpoint on doc.
func Delete(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodDelete, operationID, ep)
}
