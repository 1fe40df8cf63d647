package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Gobd/valerror/openapi"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

type (
	// Config configures an [App].
	Config struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Version     string `yaml:"version"`

		// ValidateParams checks path, query, header and cookie parameters
		// against each endpoint's documented parameters before the handler runs.
		ValidateParams bool `yaml:"validate_params"`
		// DisallowUnknownFields makes [App.Bind] reject body fields dst does not declare.
		DisallowUnknownFields bool `yaml:"disallow_unknown_fields"`
		// MaxBodySize limits the bytes [App.Bind] reads; 0 means [DefaultMaxBodySize].
		MaxBodySize int64 `yaml:"max_body_size"`
		// Validate runs after ozzo-validation in [App.Bind], e.g. a
		// go-playground validator's StructCtx.
		Validate func(ctx context.Context, dst any) error `yaml:"-"`

		Logger *slog.Logger `yaml:"-"`
	}

	// HandlerFunc serves a request. A returned error is passed to the
	// exception handlers.
	HandlerFunc func(w http.ResponseWriter, r *http.Request) error

	// ErrorHandler writes the response for an error a handler returned.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

	// DocHook runs on the generated document before it is cached.
	DocHook func(doc *openapi3.T) error

	exceptionHandler struct {
		match  func(error) bool
		handle ErrorHandler
	}

	route struct {
		method      string
		path        string
		operationID string
		endpoint    openapi.Endpoint
		// doc holds only this route's operation, for parameter validation.
		doc *openapi3.T
		op  *openapi3.Operation
	}
)

// App is a small JSON API host: a chi router whose endpoints are documented
// as they are registered, an exception-handler table, and documentation
// hooks applied when the OpenAPI document is first requested.
type App struct {
	cfg    Config
	log    *slog.Logger
	router chi.Router

	mu       sync.Mutex
	routes   []*route
	handlers []exceptionHandler
	hooks    []DocHook
	doc      *openapi3.T
}

// New returns an App serving its document at /openapi.json and /openapi.yaml.
func New(cfg Config) *App {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	a := &App{
		cfg:    cfg,
		log:    cfg.Logger,
		router: chi.NewRouter(),
	}

	a.router.Method(http.MethodGet, "/openapi.json", openapi.Handler(a.OpenAPI, openapi.JSON))
	a.router.Method(http.MethodGet, "/openapi.yaml", openapi.Handler(a.OpenAPI, openapi.YAML))
	a.AddExceptionHandler(isValidation, writeLegacyValidation)

	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router exposes the underlying router for middleware and routes that are
// not part of the document.
func (a *App) Router() chi.Router {
	return a.router
}

// Handle registers h at method and path and documents it as operationID.
// It panics if ep cannot be documented.
func (a *App) Handle(method, path, operationID string, ep openapi.Endpoint, h HandlerFunc) {
	op, err := openapi.NewOperation(operationID, ep)
	if err != nil {
		panic(err)
	}
	doc := openapi.DocBase(a.cfg.Title, a.cfg.Description, a.cfg.Version)
	openapi.AddPath(path, method, doc, op)

	rt := &route{
		method:      method,
		path:        path,
		operationID: operationID,
		endpoint:    ep,
		doc:         doc,
		op:          op,
	}

	a.mu.Lock()
	a.routes = append(a.routes, rt)
	a.doc = nil
	a.mu.Unlock()

	a.router.Method(method, path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.cfg.ValidateParams {
			if err := a.validateParams(r, rt); err != nil {
				a.handleError(w, r, err)
				return
			}
		}
		if err := h(w, r); err != nil {
			a.handleError(w, r, err)
		}
	}))
}

// Get registers a GET endpoint.
func (a *App) Get(path, operationID string, ep openapi.Endpoint, h HandlerFunc) {
	a.Handle(http.MethodGet, path, operationID, ep, h)
}

// Post registers a POST endpoint.
func (a *App) Post(path, operationID string, ep openapi.Endpoint, h HandlerFunc) {
	a.Handle(http.MethodPost, path, operationID, ep, h)
}

// Put registers a PUT endpoint.
func (a *App) Put(path, operationID string, ep openapi.Endpoint, h HandlerFunc) {
	a.Handle(http.MethodPut, path, operationID, ep, h)
}

// Patch registers a PATCH endpoint.
func (a *App) Patch(path, operationID string, ep openapi.Endpoint, h HandlerFunc) {
	a.Handle(http.MethodPatch, path, operationID, ep, h)
}

// Delete registers a DELETE endpoint.
func (a *App) Delete(path, operationID string, ep openapi.Endpoint, h HandlerFunc) {
	a.Handle(http.MethodDelete, path, operationID, ep, h)
}

// AddDocHook appends hook to the functions run on a freshly generated
// document. Hooks run in registration order.
func (a *App) AddDocHook(hook func(*openapi3.T) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, hook)
	a.doc = nil
}

// OpenAPI returns the API document: generated from the registered
// endpoints, passed through the doc hooks, then cached until another
// endpoint or hook is registered. A failing hook is reported and nothing is
// cached.
func (a *App) OpenAPI(_ context.Context) (*openapi3.T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.doc != nil {
		return a.doc, nil
	}

	doc, err := a.generate()
	if err != nil {
		return nil, err
	}
	for i, hook := range a.hooks {
		if err := hook(doc); err != nil {
			a.log.Error("openapi document hook failed", "hook", i, "error", err)
			return nil, fmt.Errorf("openapi hook %d: %w", i, err)
		}
	}
	a.doc = doc
	return doc, nil
}

// generate builds a new document so hooks never see a document they
// already modified.
func (a *App) generate() (*openapi3.T, error) {
	doc := openapi.DocBase(a.cfg.Title, a.cfg.Description, a.cfg.Version)
	for _, rt := range a.routes {
		op, err := openapi.NewOperation(rt.operationID, rt.endpoint)
		if err != nil {
			return nil, err
		}
		openapi.AddPath(rt.path, rt.method, doc, op)
	}
	return doc, nil
}
