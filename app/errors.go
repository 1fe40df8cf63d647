package app

import (
	"encoding/json"
	"net/http"

	"github.com/Gobd/valerror"
)

// legacyDetail is one entry of the default 422 validation response.
type legacyDetail struct {
	Loc  valerror.Location `json:"loc"`
	Msg  string            `json:"msg"`
	Type string            `json:"type"`
}

// AddExceptionHandler registers handler for errors match reports true for.
// When several handlers match, the most recently registered one wins, so
// registrations override the built-in defaults.
func (a *App) AddExceptionHandler(match func(error) bool, handler func(http.ResponseWriter, *http.Request, error)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers = append(a.handlers, exceptionHandler{match: match, handle: handler})
}

func (a *App) handleError(w http.ResponseWriter, r *http.Request, err error) {
	a.mu.Lock()
	handlers := make([]exceptionHandler, len(a.handlers))
	copy(handlers, a.handlers)
	a.mu.Unlock()

	for i := len(handlers) - 1; i >= 0; i-- {
		if handlers[i].match(err) {
			a.log.Debug("handled request error", "method", r.Method, "path", r.URL.Path, "error", err)
			handlers[i].handle(w, r, err)
			return
		}
	}

	a.log.Error("unhandled request error", "method", r.Method, "path", r.URL.Path, "error", err)
	_ = JSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal Server Error"})
}

func isValidation(err error) bool {
	return valerror.IsValidation(err)
}

// writeLegacyValidation is the built-in answer to validation errors:
// status 422 with {"detail": [{"loc": [...], "msg": "...", "type": "..."}]}.
func writeLegacyValidation(w http.ResponseWriter, _ *http.Request, err error) {
	failures, _ := valerror.FromError(err)
	detail := make([]legacyDetail, 0, len(failures))
	for _, f := range failures {
		detail = append(detail, legacyDetail{Loc: f.Location, Msg: f.Message, Type: f.Type})
	}
	_ = JSON(w, valerror.LegacyStatusCode, map[string]any{"detail": detail})
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
