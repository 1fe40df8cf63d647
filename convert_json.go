package valerror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

const unknownFieldPrefix = "json: unknown field "

// fromDecodeError converts errors returned by encoding/json while decoding a
// request body. *json.InvalidUnmarshalError and other errors are programming
// mistakes, not client input, and are not converted.
func fromDecodeError(err error, loc Location, t reflect.Type) (Failure, bool) {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &typeErr):
		return fromUnmarshalTypeError(typeErr, loc, t), true
	case errors.As(err, &syntaxErr):
		return Failure{
			Location: loc,
			Message:  fmt.Sprintf("invalid JSON at offset %d: %s", syntaxErr.Offset, syntaxErr.Error()),
			Type:     "value_error.jsondecode",
		}, true
	case errors.Is(err, io.ErrUnexpectedEOF):
		return Failure{Location: loc, Message: "invalid JSON: unexpected end of input", Type: "value_error.jsondecode"}, true
	case errors.Is(err, io.EOF):
		return Failure{Location: loc, Message: "field required", Type: "value_error.missing"}, true
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		name, uerr := strconv.Unquote(strings.TrimPrefix(err.Error(), unknownFieldPrefix))
		if uerr != nil {
			return Failure{}, false
		}
		return Failure{
			Location: loc.Append(Name(name)),
			Message:  "extra fields not permitted",
			Type:     "value_error.extra",
		}, true
	}
	return Failure{}, false
}

func fromUnmarshalTypeError(err *json.UnmarshalTypeError, loc Location, t reflect.Type) Failure {
	if err.Field != "" {
		t = deref(t)
		for _, part := range strings.Split(err.Field, ".") {
			var seg Segment
			seg, t = keySegment(part, t)
			t = deref(t)
			loc = loc.Append(seg)
		}
	}
	msg, typ := typeMessage(err.Type)
	return Failure{Location: loc, Message: msg, Type: typ}
}

// typeMessage describes what the decoder expected for a Go type.
func typeMessage(t reflect.Type) (string, string) {
	if t == nil {
		return "value is not valid", "type_error"
	}
	switch deref(t).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "value is not a valid integer", "type_error.integer"
	case reflect.Float32, reflect.Float64:
		return "value is not a valid float", "type_error.float"
	case reflect.String:
		return "str type expected", "type_error.str"
	case reflect.Bool:
		return "value could not be parsed to a boolean", "type_error.bool"
	case reflect.Slice, reflect.Array:
		return "value is not a valid list", "type_error.list"
	case reflect.Map, reflect.Struct:
		return "value is not a valid dict", "type_error.dict"
	}
	return "value is not a valid " + t.String(), "type_error"
}
