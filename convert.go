package valerror

import (
	"errors"
	"reflect"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-playground/validator/v10"
)

// RequestError carries the failures found while binding a request. Hosts
// return it from handlers; [Normalizer.Handle] turns it into the envelope.
type RequestError struct {
	Failures []Failure
	// Err is the error the failures were converted from, if any.
	Err error
}

// NewRequestError converts err into a *RequestError, ordering struct field
// failures by the declaration order of dst's type. Errors that carry no
// validation failures are returned unchanged.
func NewRequestError(err error, dst any) error {
	failures, ok := FromErrorFor(err, dst)
	if !ok {
		return err
	}
	return &RequestError{Failures: failures, Err: err}
}

func (e *RequestError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		if p := FieldPath(f.Location); p != "" {
			parts[i] = p + ": " + f.Message
		} else {
			parts[i] = f.Message
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// FromError extracts validation failures from err. The boolean is false when
// err is nil or is not a validation error of a supported library.
//
// Supported: *RequestError, ozzo-validation Errors/Error, govalidator
// Errors/Error, go-playground ValidationErrors and kin-openapi request filter
// errors. encoding/json decode errors are only read by [FromErrorFor].
func FromError(err error) ([]Failure, bool) {
	return convert(err, nil, false)
}

// FromErrorFor is like [FromError] for errors met while binding a request
// into dst: struct field failures are ordered by the declaration order of
// dst's type, and encoding/json decode errors are converted too.
func FromErrorFor(err error, dst any) ([]Failure, bool) {
	return convert(err, reflect.TypeOf(dst), true)
}

// IsValidation reports whether err carries validation failures.
func IsValidation(err error) bool {
	_, ok := FromError(err)
	return ok
}

func convert(err error, t reflect.Type, decode bool) ([]Failure, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			return convertAll(joined.Unwrap(), t, decode)
		}
		if failures, ok := convertOne(e, t, decode); ok {
			return failures, true
		}
	}
	return nil, false
}

// convertAll converts every error of a joined error. It fails unless each
// of them is a validation error.
func convertAll(errs []error, t reflect.Type, decode bool) ([]Failure, bool) {
	var out []Failure
	for _, e := range errs {
		failures, ok := convert(e, t, decode)
		if !ok {
			return nil, false
		}
		out = append(out, failures...)
	}
	return out, len(errs) > 0
}

// convertOne matches err itself, without unwrapping. Matching on concrete
// types keeps MultiError from collapsing to its first element, as
// errors.As would.
func convertOne(err error, t reflect.Type, decode bool) ([]Failure, bool) {
	body := Loc(BodyRoot)

	switch e := err.(type) {
	case *RequestError:
		return e.Failures, true
	case openapi3.MultiError:
		return fromMultiError(e, body)
	case *openapi3filter.RequestError:
		return fromFilterError(e)
	case *openapi3.SchemaError:
		return []Failure{fromSchemaError(e, body)}, true
	case validation.Errors:
		return fromOzzoErrors(e, body, t), true
	case validation.Error:
		return []Failure{fromOzzoError(e, body)}, true
	case validator.ValidationErrors:
		return fromPlaygroundErrors(e), true
	case govalidator.Errors:
		return fromGovalidatorErrors(e, body), true
	case govalidator.Error:
		return []Failure{fromGovalidatorError(e, body)}, true
	}

	if !decode {
		return nil, false
	}
	if f, ok := fromDecodeError(err, body, t); ok {
		return []Failure{f}, true
	}
	return nil, false
}
