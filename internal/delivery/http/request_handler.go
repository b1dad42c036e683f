package http

import (
	"fmt"
	"net/http"

	"github.com/cardealer-labs/dealerships-api/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type HandlerFunc func(w http.ResponseWriter, r *http.Request) *HandlerError

// HandlerError is what a handler returns instead of writing a failure itself.
// Message goes to the client; Err stays in the server log.
type HandlerError struct {
	Message    string
	StatusCode int
	Err        error
}

func NewHandlerError(message string, code int, err error) *HandlerError {
	return &HandlerError{
		Message:    message,
		StatusCode: code,
		Err:        err,
	}
}

func (fn HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			handleHTTPError(w, r, HandlerError{
				Message:    "Internal Server Error",
				StatusCode: http.StatusInternalServerError,
				Err:        fmt.Errorf("panic: %v", rec),
			})
		}
	}()

	if handlerError := fn(w, r); handlerError != nil {
		handleHTTPError(w, r, *handlerError)
	}
}

func handleHTTPError(w http.ResponseWriter, r *http.Request, err HandlerError) {
	fields := logging.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     err.StatusCode,
		"request_id": middleware.GetReqID(r.Context()),
	}
	if err.Err != nil {
		fields["error"] = err.Err.Error()
	}
	logging.FromContext(r.Context()).Error(err.Message, fields)

	render.Status(r, err.StatusCode)
	render.JSON(w, r, map[string]string{
		"error": err.Message,
	})
}
