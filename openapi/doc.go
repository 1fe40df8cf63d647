// Package openapi builds OpenAPI 3 documents and rewrites their validation
// failure responses.
//
// Use [DocBase] to create a base document and register endpoints with [Get],
// [Post], [Put], [Patch], or [Delete]. Endpoints that take parameters or a
// request body document the framework's default 422 response, which
// [Patcher.Patch] replaces with the 400 envelope:
//
//	doc := openapi.DocBase("my-api", "My API", "1.0")
//	openapi.Post(doc, "/orders", "createOrder", openapi.Endpoint{
//	    Request:  Order{},
//	    Response: Order{},
//	})
//	if err := openapi.PatchDocument(doc); err != nil {
//	    log.Fatal(err)
//	}
//	http.Handle("/openapi.json", openapi.Handler(func(context.Context) (*openapi3.T, error) {
//	    return doc, nil
//	}, openapi.JSON))
package openapi
