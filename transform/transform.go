package transform

import (
	"reflect"
	"strings"
)

// TrimSpace runs [strings.TrimSpace] on every settable string reachable
// from v.
func TrimSpace(v any) {
	StringFunc(v, strings.TrimSpace)
}

// StringFunc applies f to every settable string reachable from the pointer
// v: struct fields, pointers, interfaces, slice and array elements. Map
// values are not addressable and are left alone, as are unexported fields.
// Non-pointer and nil values are ignored.
func StringFunc(v any, f func(string) string) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	walk(rv.Elem(), f)
}

func walk(v reflect.Value, f func(string) string) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(f(v.String()))
		}
	case reflect.Ptr:
		if !v.IsNil() {
			walk(v.Elem(), f)
		}
	case reflect.Interface:
		// The dynamic value behind an interface is never settable in place.
		if !v.IsNil() && v.Elem().Kind() == reflect.Ptr {
			walk(v.Elem(), f)
		}
	case reflect.Struct:
		for i := range v.NumField() {
			if v.Type().Field(i).IsExported() {
				walk(v.Field(i), f)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			walk(v.Index(i), f)
		}
	}
}
