package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const welcomeMessage = "Welcome to the Dealerships API"

func NewHomeHandler(r *chi.Mux) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, welcomeMessage)
	})
}
