package valerror

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/go-playground/validator/v10"
)

func fromGovalidatorErrors(errs govalidator.Errors, loc Location) []Failure {
	var out []Failure
	for _, err := range errs {
		switch e := err.(type) {
		case govalidator.Errors:
			out = append(out, fromGovalidatorErrors(e, loc)...)
		case govalidator.Error:
			out = append(out, fromGovalidatorError(e, loc))
		case *govalidator.Error:
			out = append(out, fromGovalidatorError(*e, loc))
		default:
			out = append(out, Failure{Location: loc, Message: err.Error(), Type: "value_error"})
		}
	}
	return out
}

func fromGovalidatorError(err govalidator.Error, loc Location) Failure {
	for _, p := range err.Path {
		loc = loc.Append(Name(p))
	}
	if err.Name != "" {
		loc = loc.Append(Name(err.Name))
	}

	msg := "value is not valid"
	if err.Err != nil {
		msg = err.Err.Error()
	}
	typ := "value_error"
	switch {
	case err.Validator == "required":
		typ = "value_error.missing"
	case err.Validator != "":
		typ = "value_error." + err.Validator
	}
	return Failure{Location: loc, Message: msg, Type: typ}
}

func fromPlaygroundErrors(errs validator.ValidationErrors) []Failure {
	out := make([]Failure, 0, len(errs))
	for _, fe := range errs {
		loc := Loc(BodyRoot).Append(parseNamespace(fe.Namespace())...)
		out = append(out, Failure{
			Location: loc,
			Message:  playgroundMessage(fe),
			Type:     playgroundType(fe.Tag()),
		})
	}
	return out
}

// parseNamespace turns a go-playground namespace such as
// "User.addresses[0].zip_code" into segments, dropping the leading struct
// type name. Bracketed numbers become indexes, other bracketed keys names.
func parseNamespace(ns string) []Segment {
	_, rest, ok := strings.Cut(ns, ".")
	if !ok {
		return nil
	}

	var segs []Segment
	var name strings.Builder
	flush := func() {
		if name.Len() > 0 {
			segs = append(segs, Name(name.String()))
			name.Reset()
		}
	}
	for i := 0; i < len(rest); i++ {
		switch c := rest[i]; c {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(rest[i:], ']')
			if end < 0 {
				name.WriteString(rest[i:])
				i = len(rest)
				continue
			}
			key := rest[i+1 : i+end]
			if n, err := strconv.Atoi(key); err == nil && n >= 0 {
				segs = append(segs, Index(n))
			} else {
				segs = append(segs, Name(key))
			}
			i += end
		default:
			name.WriteByte(c)
		}
	}
	flush()
	return segs
}

func playgroundMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	}
	if p := fe.Param(); p != "" {
		return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), p)
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

func playgroundType(tag string) string {
	if tag == "required" {
		return "value_error.missing"
	}
	return "value_error." + tag
}
