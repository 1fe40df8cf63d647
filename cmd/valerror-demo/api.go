package main

import (
	"context"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/Gobd/valerror"
	"github.com/Gobd/valerror/app"
	"github.com/Gobd/valerror/openapi"
	"github.com/Gobd/valerror/transform"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/go-playground/validator/v10"
)

var zipCode = regexp.MustCompile(`^\d{5}$`)

// Address is validated with ozzo-validation.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

func (a Address) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Street, validation.Required),
		validation.Field(&a.City, validation.Required),
		validation.Field(&a.ZipCode, validation.Required, validation.Match(zipCode).Error("must be five digits")),
	)
}

// User is validated with ozzo-validation, addresses included.
type User struct {
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Name      string    `json:"name"`
	Addresses []Address `json:"addresses,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Age, validation.Required, validation.Min(1)),
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Addresses),
	)
}

func (u *User) Sanitize() {
	transform.TrimSpace(u)
	u.Email = strings.ToLower(u.Email)
}

// Item is validated with go-playground/validator tags.
type Item struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

// playground returns a go-playground validator reporting JSON field names.
func playground() func(context.Context, any) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return func(ctx context.Context, dst any) error {
		t := reflect.TypeOf(dst)
		for t != nil && t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t == nil || t.Kind() != reflect.Struct {
			return nil
		}
		return v.StructCtx(ctx, dst)
	}
}

// newAPI builds the demo API from cfg.
func newAPI(cfg fileConfig) (*app.App, *valerror.Normalizer) {
	appCfg := cfg.App
	appCfg.Validate = playground()
	appCfg.Logger = cfg.logger()
	a := app.New(appCfg)

	var opts []valerror.Option
	if cfg.Errors.Code != "" {
		opts = append(opts, valerror.WithCode(cfg.Errors.Code))
	}
	if cfg.Errors.IncludeTypes {
		opts = append(opts, valerror.WithTypes())
	}
	if cfg.Errors.EveryOperation {
		opts = append(opts, valerror.WithEveryOperation())
	}
	n := valerror.Setup(a, opts...)

	a.Post("/users", "createUser", openapi.Endpoint{
		Summary:  "Create a user",
		Request:  User{},
		Response: User{},
	}, func(w http.ResponseWriter, r *http.Request) error {
		var u User
		if err := a.Bind(r, &u); err != nil {
			return err
		}
		return app.JSON(w, http.StatusOK, u)
	})

	a.Post("/items", "createItem", openapi.Endpoint{
		Summary:  "Create an item",
		Request:  Item{},
		Response: Item{},
	}, func(w http.ResponseWriter, r *http.Request) error {
		var it Item
		if err := a.Bind(r, &it); err != nil {
			return err
		}
		return app.JSON(w, http.StatusOK, it)
	})

	a.Get("/items/{item_id}", "readItem", openapi.Endpoint{
		Summary: "Read an item",
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewPathParameter("item_id").WithSchema(openapi3.NewIntegerSchema())},
		},
	}, func(w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.Atoi(chi.URLParam(r, "item_id"))
		if err != nil {
			return err
		}
		return app.JSON(w, http.StatusOK, map[string]int{"item_id": id})
	})

	a.Get("/search", "search", openapi.Endpoint{
		Summary: "Search items",
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewQueryParameter("q").WithRequired(true).WithSchema(openapi3.NewStringSchema().WithMinLength(3))},
			{Value: openapi3.NewQueryParameter("page").WithSchema(openapi3.NewIntegerSchema().WithMin(1))},
		},
	}, func(w http.ResponseWriter, r *http.Request) error {
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			var err error
			if page, err = strconv.Atoi(p); err != nil {
				return err
			}
		}
		return app.JSON(w, http.StatusOK, map[string]any{"q": r.URL.Query().Get("q"), "page": page})
	})

	a.Post("/headers-test", "headersTest", openapi.Endpoint{
		Summary: "Echo a required header",
		Parameters: openapi3.Parameters{
			{Value: openapi3.NewHeaderParameter("custom-header").WithRequired(true).WithSchema(openapi3.NewStringSchema())},
		},
	}, func(w http.ResponseWriter, r *http.Request) error {
		return app.JSON(w, http.StatusOK, map[string]string{"custom_header": r.Header.Get("custom-header")})
	})

	return a, n
}
