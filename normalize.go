package valerror

import (
	"encoding/json"
	"net/http"

	"github.com/Gobd/valerror/openapi"
	"github.com/getkin/kin-openapi/openapi3"
)

// Normalizer turns validation failures into the 400 [ErrorResponse] envelope
// and carries the matching documentation patcher. It holds no mutable state
// and is safe for concurrent use.
type Normalizer struct {
	cfg config
}

var defaultNormalizer = New()

// New returns a Normalizer configured by opts.
func New(opts ...Option) *Normalizer {
	return &Normalizer{cfg: newConfig(opts)}
}

// Normalize converts failures with the default configuration.
func Normalize(failures []Failure) (int, ErrorResponse) {
	return defaultNormalizer.Normalize(failures)
}

// Code returns the envelope's error.code.
func (n *Normalizer) Code() string {
	return n.cfg.code
}

// Normalize returns [StatusCode] and one detail per failure, in input order.
// An empty input yields an empty details list.
func (n *Normalizer) Normalize(failures []Failure) (int, ErrorResponse) {
	details := make([]FieldError, 0, len(failures))
	for _, f := range failures {
		fe := FieldError{
			Field:   FieldPath(f.Location),
			Message: f.Message,
		}
		if n.cfg.includeType {
			fe.Type = f.Type
		}
		details = append(details, fe)
	}
	return StatusCode, ErrorResponse{
		Error: ErrorBody{
			Code:    n.cfg.code,
			Details: details,
		},
	}
}

// Write sends the envelope for failures as a JSON response.
func (n *Normalizer) Write(w http.ResponseWriter, failures []Failure) error {
	status, body := n.Normalize(failures)
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}

// Handle converts err with [FromError] and writes the envelope. It returns
// false, writing nothing, when err carries no validation failures.
func (n *Normalizer) Handle(w http.ResponseWriter, _ *http.Request, err error) bool {
	failures, ok := FromError(err)
	if !ok {
		return false
	}
	_ = n.Write(w, failures)
	return true
}

// Patcher returns the documentation patcher matching this Normalizer's
// envelope.
func (n *Normalizer) Patcher() openapi.Patcher {
	return openapi.Patcher{
		Code:           n.cfg.code,
		IncludeType:    n.cfg.includeType,
		EveryOperation: n.cfg.everyOperation,
		Description:    n.cfg.description,
	}
}

// Patch rewrites doc in place so every operation documents this Normalizer's
// 400 envelope instead of the legacy 422 response. See [openapi.Patcher.Patch].
func (n *Normalizer) Patch(doc *openapi3.T) error {
	return n.Patcher().Patch(doc)
}
