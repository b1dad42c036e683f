package api_middleware

import (
	"net/http"

	"github.com/go-chi/render"
)

// DefaultMaxBodyBytes matches the 100kb body limit the API has always had.
const DefaultMaxBodyBytes int64 = 100 * 1024

type BodyLimitMiddleware struct {
	MaxBytes int64
}

// LimitRequestBody rejects requests that declare a body over MaxBytes and caps
// the rest, so a chunked body can't grow past the limit while being decoded.
func (bl *BodyLimitMiddleware) LimitRequestBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bl.MaxBytes <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.ContentLength > bl.MaxBytes {
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, map[string]string{
				"error": "Request body too large",
			})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, bl.MaxBytes)
		next.ServeHTTP(w, r)
	})
}
