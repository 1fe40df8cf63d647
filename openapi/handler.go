package openapi

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding [Handler] serves.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Loader returns the document to serve. It is called on every request so
// hosts can build and cache the document lazily.
type Loader func(ctx context.Context) (*openapi3.T, error)

// Handler serves the document returned by load, encoded as format.
//
//	http.Handle("/openapi.json", openapi.Handler(a.OpenAPI, openapi.JSON))
func Handler(load Loader, format Format) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, err := load(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		b, contentType, err := Marshal(doc, format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	})
}

// Marshal encodes doc as format and returns the matching content type.
func Marshal(doc *openapi3.T, format Format) ([]byte, string, error) {
	if format == YAML {
		b, err := yaml.Marshal(doc)
		return b, "application/yaml", err
	}
	b, err := doc.MarshalJSON()
	return b, "application/json", err
}
