package openapi

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	// DefaultErrorCode is the envelope code documented when Patcher.Code is empty.
	DefaultErrorCode = "VALIDATION_ERROR"
	// DefaultErrorDescription describes the documented 400 response.
	DefaultErrorDescription = "Validation Error"
)

var (
	statusBadRequest  = strconv.Itoa(http.StatusBadRequest)
	statusUnprocessed = strconv.Itoa(http.StatusUnprocessableEntity)
)

// ErrMalformedDocument is returned by [Patcher.Patch] when the document does
// not have the shape a generator produces.
var ErrMalformedDocument = errors.New("malformed OpenAPI document")

// Patcher rewrites the documented validation failure response of every
// operation from the host's 422 to the 400 envelope.
type Patcher struct {
	// Code is the envelope's error.code, pinned in the schema.
	Code string
	// IncludeType documents the optional "type" of each detail.
	IncludeType bool
	// EveryOperation adds the 400 envelope to operations that never
	// documented a 422 response.
	EveryOperation bool
	// Description of the 400 response.
	Description string
}

// Patch modifies doc in place; callers keep using the same pointer.
//
// Every operation of every path, and of every callback nested below them,
// loses its 422 response. An operation that lost a 422 response, or every
// operation when EveryOperation is set, gains the 400 envelope unless it
// already documents a 400 response, which is left untouched.
//
// A nil document, nil paths, path items, responses, response references or
// callbacks fail with an error wrapping [ErrMalformedDocument], and the
// document is left unmodified. Patching an already patched document changes
// nothing.
func (p Patcher) Patch(doc *openapi3.T) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrMalformedDocument)
	}
	if doc.Paths == nil {
		return fmt.Errorf("%w: document has no paths object", ErrMalformedDocument)
	}

	var ops []*openapi3.Operation
	if err := collectOperations("", doc.Paths.Map(), &ops); err != nil {
		return err
	}
	for _, op := range ops {
		p.patchOperation(op)
	}
	return nil
}

// PatchDocument patches doc with the default [Patcher].
func PatchDocument(doc *openapi3.T) error {
	return Patcher{}.Patch(doc)
}

// collectOperations checks the shape of every path item, operation,
// response and callback below items and appends the operations to ops.
// Nothing is modified, so a malformed document is left as it was.
func collectOperations(prefix string, items map[string]*openapi3.PathItem, ops *[]*openapi3.Operation) error {
	for _, path := range sortedKeys(items) {
		item := items[path]
		where := prefix + path
		if item == nil {
			return fmt.Errorf("%w: path %q has no path item", ErrMalformedDocument, where)
		}

		byMethod := item.Operations()
		for _, method := range sortedKeys(byMethod) {
			op := byMethod[method]
			if op.Responses == nil {
				return fmt.Errorf("%w: %s %s has no responses", ErrMalformedDocument, method, where)
			}
			for status, ref := range op.Responses.Map() {
				if ref == nil {
					return fmt.Errorf("%w: %s %s response %s is nil", ErrMalformedDocument, method, where, status)
				}
			}
			*ops = append(*ops, op)

			for _, name := range sortedKeys(op.Callbacks) {
				cb := op.Callbacks[name]
				if cb == nil || cb.Value == nil {
					return fmt.Errorf("%w: %s %s callback %q is nil", ErrMalformedDocument, method, where, name)
				}
				if err := collectOperations(fmt.Sprintf("%s %s callback %s ", method, where, name), cb.Value.Map(), ops); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (p Patcher) patchOperation(op *openapi3.Operation) {
	legacy := op.Responses.Value(statusUnprocessed) != nil
	if legacy {
		op.Responses.Delete(statusUnprocessed)
	}
	if (legacy || p.EveryOperation) && op.Responses.Value(statusBadRequest) == nil {
		op.Responses.Set(statusBadRequest, p.response())
	}
}

func (p Patcher) response() *openapi3.ResponseRef {
	code := p.Code
	if code == "" {
		code = DefaultErrorCode
	}
	desc := p.Description
	if desc == "" {
		desc = DefaultErrorDescription
	}

	media := openapi3.NewMediaType().WithSchema(ErrorResponseSchema(code, p.IncludeType))
	media.Example = ErrorResponseExample(code)

	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(desc).
			WithContent(openapi3.Content{"application/json": media}),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
