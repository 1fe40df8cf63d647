package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Gobd/valerror"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultMaxBodySize is the request body limit of [App.Bind] when
// Config.MaxBodySize is not set.
const DefaultMaxBodySize = 10 << 20

type (
	// Sanitizer is implemented by request types that clean themselves up
	// after decoding and before validation, e.g. trimming whitespace.
	Sanitizer interface {
		Sanitize()
	}

	// ContextSanitizer is like Sanitizer but receives the request context.
	ContextSanitizer interface {
		Sanitize(context.Context)
	}
)

// Bind decodes the JSON request body into dst, sanitizes it, then validates
// it with ozzo-validation and [Config.Validate].
//
// A body over the size limit is reported as a failure at the body root.
// An empty body leaves dst at its zero value, so a struct with required
// fields reports each of them. Decode and validation failures are returned
// as a *valerror.RequestError ordered by dst's field declaration.
func (a *App) Bind(r *http.Request, dst any) error {
	ctx := r.Context()

	limit := a.cfg.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &valerror.RequestError{
				Failures: []valerror.Failure{{
					Location: valerror.Loc(valerror.BodyRoot),
					Message:  fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
					Type:     "value_error.body_too_large",
				}},
				Err: err,
			}
		}
		return fmt.Errorf("read request body: %w", err)
	}

	if len(bytes.TrimSpace(body)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		if a.cfg.DisallowUnknownFields {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(dst); err != nil {
			return valerror.NewRequestError(err, dst)
		}
	}

	sanitize(ctx, dst)

	if err := validate(ctx, dst); err != nil {
		return valerror.NewRequestError(err, dst)
	}
	if a.cfg.Validate != nil {
		if err := a.cfg.Validate(ctx, dst); err != nil {
			return valerror.NewRequestError(err, dst)
		}
	}
	return nil
}

func sanitize(ctx context.Context, v any) {
	if s, ok := v.(ContextSanitizer); ok {
		s.Sanitize(ctx)
		return
	}
	if s, ok := v.(Sanitizer); ok {
		s.Sanitize()
	}
}

func validate(ctx context.Context, v any) error {
	if vc, ok := v.(validation.ValidatableWithContext); ok {
		return vc.ValidateWithContext(ctx)
	}
	if vv, ok := v.(validation.Validatable); ok {
		return vv.Validate()
	}
	return nil
}
