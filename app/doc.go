// Package app is a small JSON API host built on chi and kin-openapi.
//
// Endpoints are registered together with their documentation. Handlers
// return errors, which are dispatched through an exception-handler table;
// the generated OpenAPI document passes through documentation hooks before
// it is cached and served at /openapi.json and /openapi.yaml.
//
//	a := app.New(app.Config{Title: "Shop API", Version: "1.0.0"})
//	a.Post("/items", "createItem", openapi.Endpoint{Request: Item{}, Response: Item{}},
//	    func(w http.ResponseWriter, r *http.Request) error {
//	        var it Item
//	        if err := a.Bind(r, &it); err != nil {
//	            return err
//	        }
//	        return app.JSON(w, http.StatusOK, it)
//	    })
//
// Out of the box, validation errors are answered with 422 and a
// {"detail": [...]} body. valerror.Setup replaces both the response and
// its documentation with the 400 envelope.
package app
