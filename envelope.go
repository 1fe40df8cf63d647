package valerror

import "net/http"

const (
	// StatusCode is the status every validation failure is answered with.
	StatusCode = http.StatusBadRequest
	// LegacyStatusCode is the host's default validation status, replaced by
	// StatusCode in responses and documentation.
	LegacyStatusCode = http.StatusUnprocessableEntity
	// DefaultCode is the envelope's error.code unless overridden with [WithCode].
	DefaultCode = "VALIDATION_ERROR"
)

type (
	// FieldError is one entry of the envelope's details list.
	FieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
		Type    string `json:"type,omitempty"`
	}

	// ErrorBody is the value of the envelope's "error" key.
	ErrorBody struct {
		Code    string       `json:"code"`
		Details []FieldError `json:"details"`
	}

	// ErrorResponse is the JSON body sent for a validation failure:
	//
	//	{"error": {"code": "VALIDATION_ERROR", "details": [{"field": "age", "message": "..."}]}}
	ErrorResponse struct {
		Error ErrorBody `json:"error"`
	}
)
