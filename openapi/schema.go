package openapi

import (
	"reflect"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// NewSchemaRefForValue generates an OpenAPI schema for the given value.
//
// Struct fields tagged validate:"required" (go-playground/validator) or
// valid:"required" (govalidator) are listed as required, fields tagged
// docs:"skip" are left out, and a doc:"..." tag becomes the description.
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	g := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(schemaDoc))
	return g.NewSchemaRefForValue(value, nil)
}

func schemaDoc(_ string, t reflect.Type, tag reflect.StructTag, schema *openapi3.Schema) error {
	if desc := tag.Get("doc"); desc != "" {
		schema.Description = desc
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	applyStructTags(t, schema)
	return nil
}

// applyStructTags marks required properties and removes skipped ones.
// Recurses into embedded (anonymous) struct fields.
func applyStructTags(t reflect.Type, schema *openapi3.Schema) {
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous {
			ft := sf.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				applyStructTags(ft, schema)
			}
			continue
		}

		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		if first, _, _ := strings.Cut(sf.Tag.Get("docs"), ","); first == "skip" {
			delete(schema.Properties, name)
			schema.Required = slices.DeleteFunc(schema.Required, func(s string) bool { return s == name })
			continue
		}
		if isRequired(sf.Tag) && !slices.Contains(schema.Required, name) {
			schema.Required = append(schema.Required, name)
		}
	}
}

func isRequired(tag reflect.StructTag) bool {
	for _, key := range []string{"validate", "valid"} {
		for _, rule := range strings.Split(tag.Get(key), ",") {
			if rule == "required" {
				return true
			}
		}
	}
	return false
}

// ErrorResponseSchema describes the validation envelope:
//
//	{"error": {"code": <code>, "details": [{"field": "...", "message": "..."}]}}
//
// code is pinned with a single-value enum. With includeType each detail also
// documents an optional "type".
func ErrorResponseSchema(code string, includeType bool) *openapi3.Schema {
	detail := openapi3.NewObjectSchema().
		WithProperty("field", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithRequired([]string{"field", "message"})
	if includeType {
		detail.WithProperty("type", openapi3.NewStringSchema())
	}

	body := openapi3.NewObjectSchema().
		WithProperty("code", openapi3.NewStringSchema().WithEnum(code)).
		WithProperty("details", openapi3.NewArraySchema().WithItems(detail)).
		WithRequired([]string{"code", "details"})

	return openapi3.NewObjectSchema().
		WithProperty("error", body).
		WithRequired([]string{"error"})
}

// ErrorResponseExample is a sample envelope for documentation.
func ErrorResponseExample(code string) map[string]any {
	return map[string]any{
		"error": map[string]any{
			"code": code,
			"details": []any{
				map[string]any{"field": "age", "message": "value is not a valid integer"},
			},
		},
	}
}

// legacyValidationSchema is the host's default 422 body:
//
//	{"detail": [{"loc": ["body", "age"], "msg": "...", "type": "..."}]}
func legacyValidationSchema() *openapi3.Schema {
	loc := openapi3.NewArraySchema().WithItems(&openapi3.Schema{
		AnyOf: openapi3.SchemaRefs{
			openapi3.NewStringSchema().NewRef(),
			openapi3.NewIntegerSchema().NewRef(),
		},
	})
	item := openapi3.NewObjectSchema().
		WithProperty("loc", loc).
		WithProperty("msg", openapi3.NewStringSchema()).
		WithProperty("type", openapi3.NewStringSchema()).
		WithRequired([]string{"loc", "msg", "type"})

	return openapi3.NewObjectSchema().
		WithProperty("detail", openapi3.NewArraySchema().WithItems(item))
}
