// Package valerror turns request validation failures into a stable JSON
// envelope answered with status 400, and patches the generated OpenAPI 3
// document so it describes that envelope instead of the framework's default
// 422 response.
//
// Failures come from the host's own libraries. [FromError] understands
// ozzo-validation, govalidator, go-playground/validator, encoding/json
// decoding errors and kin-openapi request filter errors:
//
//	failures, ok := valerror.FromError(err)
//	if ok {
//	    status, body := valerror.Normalize(failures)
//	    // status == 400
//	}
//
// Field paths drop the leading "body" segment and render list indexes in
// brackets, so a failure at body → addresses → 0 → zip_code is reported as
// "addresses[0].zip_code".
//
// With a host framework, [Setup] wires both halves in one call:
//
//	a := app.New(app.Config{Title: "Shop API", Version: "1.0.0"})
//	valerror.Setup(a, valerror.WithCode("INVALID_REQUEST"))
//
// Sub-packages:
//   - openapi – document building, the validation response patcher, and a document handler
//   - app – a small chi-based host with exception handlers and documentation hooks
//   - transform – string rewriting for Sanitize hooks
package valerror
