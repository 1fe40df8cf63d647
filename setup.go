package valerror

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Host is the extension surface a web framework exposes for [Setup]: an
// exception-handler table and a documentation-generation hook.
type Host interface {
	// AddExceptionHandler registers handler for errors that match reports.
	AddExceptionHandler(match func(error) bool, handler func(http.ResponseWriter, *http.Request, error))
	// AddDocHook registers a function run on the generated document before
	// it is cached and served.
	AddDocHook(hook func(*openapi3.T) error)
}

// Setup installs a [Normalizer] on host: validation errors are answered with
// the 400 envelope, and the generated document is patched to describe it.
// The Normalizer is returned for handlers that write failures themselves.
func Setup(host Host, opts ...Option) *Normalizer {
	n := New(opts...)
	host.AddExceptionHandler(IsValidation, func(w http.ResponseWriter, r *http.Request, err error) {
		n.Handle(w, r, err)
	})
	host.AddDocHook(n.Patch)
	return n
}
