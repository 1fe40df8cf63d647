package valerror

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// fromOzzoErrors flattens a nested ozzo-validation error map. Keys are
// ordered by t when it is known: struct fields by declaration, slice
// indexes numerically, everything else lexically.
func fromOzzoErrors(errs validation.Errors, loc Location, t reflect.Type) []Failure {
	t = deref(t)

	var out []Failure
	for _, key := range orderedKeys(errs, t) {
		err := errs[key]
		if err == nil {
			continue
		}
		seg, child := keySegment(key, t)
		next := loc.Append(seg)

		switch e := err.(type) {
		case validation.Errors:
			out = append(out, fromOzzoErrors(e, next, child)...)
		case validation.Error:
			out = append(out, fromOzzoError(e, next))
		default:
			out = append(out, Failure{Location: next, Message: err.Error(), Type: "value_error"})
		}
	}
	return out
}

func fromOzzoError(err validation.Error, loc Location) Failure {
	typ := err.Code()
	if typ == "" {
		typ = "value_error"
	}
	return Failure{Location: loc, Message: err.Error(), Type: typ}
}

// keySegment maps an error key to a location segment and the type found
// under it.
func keySegment(key string, t reflect.Type) (Segment, reflect.Type) {
	if t == nil {
		if i, err := strconv.Atoi(key); err == nil && i >= 0 {
			return Index(i), nil
		}
		return Name(key), nil
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if i, err := strconv.Atoi(key); err == nil {
			return Index(i), t.Elem()
		}
		return Name(key), nil
	case reflect.Map:
		return Name(key), t.Elem()
	case reflect.Struct:
		if sf, ok := structFields(t)[key]; ok {
			return Name(key), sf.Type
		}
	}
	return Name(key), nil
}

func orderedKeys(errs validation.Errors, t reflect.Type) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if t == nil {
		return keys
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		sort.SliceStable(keys, func(i, j int) bool {
			a, errA := strconv.Atoi(keys[i])
			b, errB := strconv.Atoi(keys[j])
			if errA != nil || errB != nil {
				return errA == nil && errB != nil
			}
			return a < b
		})
	case reflect.Struct:
		order := fieldOrder(t)
		rank := func(k string) int {
			if r, ok := order[k]; ok {
				return r
			}
			return len(order)
		}
		sort.SliceStable(keys, func(i, j int) bool {
			return rank(keys[i]) < rank(keys[j])
		})
	}
	return keys
}

// fieldOrder ranks the error names of t's fields by declaration, with
// anonymous struct fields flattened in place.
func fieldOrder(t reflect.Type) map[string]int {
	order := map[string]int{}
	var walk func(reflect.Type)
	walk = func(t reflect.Type) {
		for i := range t.NumField() {
			sf := t.Field(i)
			if sf.Anonymous {
				if ft := deref(sf.Type); ft.Kind() == reflect.Struct {
					walk(ft)
					continue
				}
			}
			name := errorFieldName(sf)
			if _, ok := order[name]; !ok {
				order[name] = len(order)
			}
		}
	}
	walk(t)
	return order
}

// structFields indexes t's fields by error name, anonymous structs flattened.
func structFields(t reflect.Type) map[string]reflect.StructField {
	fields := map[string]reflect.StructField{}
	var walk func(reflect.Type)
	walk = func(t reflect.Type) {
		for i := range t.NumField() {
			sf := t.Field(i)
			if sf.Anonymous {
				if ft := deref(sf.Type); ft.Kind() == reflect.Struct {
					walk(ft)
					continue
				}
			}
			name := errorFieldName(sf)
			if _, ok := fields[name]; !ok {
				fields[name] = sf
			}
		}
	}
	walk(t)
	return fields
}

// errorFieldName mirrors how ozzo-validation names a struct field in its
// error map: the first part of the json tag, else the Go field name.
func errorFieldName(sf reflect.StructField) string {
	if tag := sf.Tag.Get(validation.ErrorTag); tag != "" && tag != "-" {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}
	return sf.Name
}

func deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
