package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cardealer-labs/dealerships-api/internal/database/usecase"
	"github.com/cardealer-labs/dealerships-api/internal/models"
	"github.com/cardealer-labs/dealerships-api/internal/monitoring"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const (
	errFetchingDocuments = "Error fetching documents"
	errInsertingReview   = "Error inserting review"
	errInvalidReview     = "Invalid review payload"
)

type reviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
	metrics       *monitoring.Metrics
}

func NewReviewHandler(r *chi.Mux, reviewUseCase *usecase.ReviewUseCase, metrics *monitoring.Metrics) {
	handler := &reviewHandler{
		reviewUseCase: reviewUseCase,
		metrics:       metrics,
	}

	r.Route("/fetchReviews", func(r chi.Router) {
		r.Get("/", HandlerFunc(handler.GetAllReviews).ServeHTTP)
		r.Get("/dealer/{id}", HandlerFunc(handler.GetReviewsByDealership).ServeHTTP)
	})
	// Reads the reviews collection, not dealerships, despite the route name.
	// Clients already depend on this so it stays as is.
	r.Get("/fetchDealer/{id}", HandlerFunc(handler.GetReviewsById).ServeHTTP)
	r.Post("/insert_review", HandlerFunc(handler.InsertReview).ServeHTTP)
}

func (h *reviewHandler) GetAllReviews(w http.ResponseWriter, r *http.Request) *HandlerError {
	return h.renderReviews(w, r, nil)
}

func (h *reviewHandler) GetReviewsByDealership(w http.ResponseWriter, r *http.Request) *HandlerError {
	dealership, err := intURLParam(r, "id")
	if err != nil {
		return NewHandlerError(errFetchingDocuments, http.StatusInternalServerError, err)
	}
	return h.renderReviews(w, r, &models.ReviewModelFilters{Dealership: &dealership})
}

func (h *reviewHandler) GetReviewsById(w http.ResponseWriter, r *http.Request) *HandlerError {
	id, err := intURLParam(r, "id")
	if err != nil {
		return NewHandlerError(errFetchingDocuments, http.StatusInternalServerError, err)
	}
	return h.renderReviews(w, r, &models.ReviewModelFilters{ID: &id})
}

func (h *reviewHandler) renderReviews(w http.ResponseWriter, r *http.Request, filters *models.ReviewModelFilters) *HandlerError {
	reviews, err := h.reviewUseCase.GetReviewsByFilters(r.Context(), filters)
	if err != nil {
		return NewHandlerError(errFetchingDocuments, http.StatusInternalServerError, err)
	}

	render.JSON(w, r, reviews)
	return nil
}

// InsertReview stores the posted review under the next review id and responds
// with the stored document. JSON and url-encoded bodies are read; an empty body
// or any other content type stores a review holding only its id.
func (h *reviewHandler) InsertReview(w http.ResponseWriter, r *http.Request) *HandlerError {
	input, err := decodeReviewInput(r)
	if err != nil {
		return NewHandlerError(errInvalidReview, http.StatusBadRequest, err)
	}

	review, err := h.reviewUseCase.CreateReview(r.Context(), input)
	if err != nil {
		return NewHandlerError(errInsertingReview, http.StatusInternalServerError, err)
	}
	h.metrics.RecordReviewInserted()

	render.JSON(w, r, review)
	return nil
}

func decodeReviewInput(r *http.Request) (*models.ReviewInput, error) {
	input := &models.ReviewInput{}
	if r.ContentLength == 0 {
		return input, nil
	}

	switch render.GetRequestContentType(r) {
	case render.ContentTypeJSON:
		if err := render.DecodeJSON(r.Body, input); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case render.ContentTypeForm:
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		if err := input.DecodeForm(r.PostForm); err != nil {
			return nil, err
		}
	}
	return input, nil
}

// intURLParam reads an integer path parameter. Values that aren't integers
// can't match any stored document and are reported as query failures.
func intURLParam(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cast to number failed for value %q at path %q: %w", raw, key, err)
	}
	return value, nil
}
