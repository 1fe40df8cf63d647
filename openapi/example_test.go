package openapi_test

import (
	"fmt"

	"github.com/Gobd/valerror/openapi"
)

type Item struct {
	Name  string  `json:"name" validate:"required" doc:"display name"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

func ExamplePost() {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")

	openapi.Post(doc, "/items", "createItem", openapi.Endpoint{
		Summary:  "Create an item",
		Request:  Item{},
		Response: Item{},
	})

	op := doc.Paths.Value("/items").Post
	fmt.Println(op.OperationID)
	fmt.Println(op.Responses.Value("422") != nil)
	// Output:
	// createItem
	// true
}

func ExampleDocBase() {
	doc := openapi.DocBase("My Service", "A cool service", "0.1.0")
	fmt.Println(doc.Info.Title)
	fmt.Println(doc.OpenAPI)
	// Output:
	// My Service
	// 3.0.3
}

func ExampleGet() {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")

	openapi.Get(doc, "/items", "listItems", openapi.Endpoint{
		Summary:  "List all items",
		Response: []Item{},
	})

	fmt.Println(doc.Paths.Value("/items").Get.OperationID)
	// Output: listItems
}

func ExamplePatcher_Patch() {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	openapi.Post(doc, "/items", "createItem", openapi.Endpoint{Request: Item{}, Response: Item{}})

	p := openapi.Patcher{Code: "INVALID_REQUEST"}
	if err := p.Patch(doc); err != nil {
		panic(err)
	}

	responses := doc.Paths.Value("/items").Post.Responses
	fmt.Println(responses.Value("422") == nil)
	fmt.Println(*responses.Value("400").Value.Description)
	// Output:
	// true
	// Validation Error
}

func ExampleNewSchemaRefForValue() {
	ref, err := openapi.NewSchemaRefForValue(Item{})
	if err != nil {
		panic(err)
	}
	fmt.Println(ref.Value.Required)
	fmt.Println(ref.Value.Properties["name"].Value.Description)
	// Output:
	// [name price]
	// display name
}
