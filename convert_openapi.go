package valerror

import (
	"errors"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
)

// fromMultiError converts every error of me; it fails if any of them, such
// as a security requirement error, is not a validation error.
func fromMultiError(me openapi3.MultiError, body Location) ([]Failure, bool) {
	var out []Failure
	for _, err := range me {
		if se, ok := err.(*openapi3.SchemaError); ok {
			out = append(out, fromSchemaError(se, body))
			continue
		}
		failures, ok := convert(err, nil, false)
		if !ok {
			return nil, false
		}
		out = append(out, failures...)
	}
	return out, len(me) > 0
}

// fromFilterError converts a kin-openapi request validation error. Parameter
// failures are located as <in>.<name>, body failures under [BodyRoot].
func fromFilterError(err *openapi3filter.RequestError) ([]Failure, bool) {
	loc := Loc(BodyRoot)
	if p := err.Parameter; p != nil {
		loc = Loc(p.In, p.Name)
	}

	var me openapi3.MultiError
	if errors.As(err.Err, &me) {
		out := make([]Failure, 0, len(me))
		for _, e := range me {
			out = append(out, filterCause(e, err.Reason, loc))
		}
		return out, true
	}
	return []Failure{filterCause(err.Err, err.Reason, loc)}, true
}

func filterCause(cause error, reason string, loc Location) Failure {
	var schemaErr *openapi3.SchemaError
	var parseErr *openapi3filter.ParseError

	switch {
	case cause == nil:
		return Failure{Location: loc, Message: reason, Type: "value_error"}
	case errors.Is(cause, openapi3filter.ErrInvalidRequired):
		return Failure{Location: loc, Message: "field required", Type: "value_error.missing"}
	case errors.Is(cause, openapi3filter.ErrInvalidEmptyValue):
		return Failure{Location: loc, Message: "empty value is not allowed", Type: "value_error.empty"}
	case errors.As(cause, &schemaErr):
		return fromSchemaError(schemaErr, loc)
	case errors.As(cause, &parseErr):
		return Failure{Location: loc, Message: parseErr.Error(), Type: "type_error"}
	}
	return Failure{Location: loc, Message: cause.Error(), Type: "value_error"}
}

func fromSchemaError(err *openapi3.SchemaError, loc Location) Failure {
	for _, part := range err.JSONPointer() {
		if i, perr := strconv.Atoi(part); perr == nil && i >= 0 {
			loc = loc.Append(Index(i))
		} else {
			loc = loc.Append(Name(part))
		}
	}

	typ := "value_error.schema"
	switch err.SchemaField {
	case "type":
		typ = "type_error"
	case "required":
		typ = "value_error.missing"
	case "":
	default:
		typ = "value_error." + err.SchemaField
	}

	msg := err.Reason
	if msg == "" {
		msg = err.Error()
	}
	return Failure{Location: loc, Message: msg, Type: typ}
}
