package http

import (
	"net/http"

	"github.com/cardealer-labs/dealerships-api/internal/database/usecase"
	"github.com/cardealer-labs/dealerships-api/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const (
	errFetchingDealerships        = "Error fetching dealerships"
	errFetchingDealershipsByState = "Error fetching dealerships by state"
)

type dealershipHandler struct {
	dealershipUseCase *usecase.DealershipUseCase
}

func NewDealershipHandler(r *chi.Mux, dealershipUseCase *usecase.DealershipUseCase) {
	handler := &dealershipHandler{
		dealershipUseCase: dealershipUseCase,
	}

	r.Route("/fetchDealers", func(r chi.Router) {
		r.Get("/", HandlerFunc(handler.GetAllDealerships).ServeHTTP)
		r.Get("/{state}", HandlerFunc(handler.GetDealershipsByState).ServeHTTP)
	})
}

func (h *dealershipHandler) GetAllDealerships(w http.ResponseWriter, r *http.Request) *HandlerError {
	dealerships, err := h.dealershipUseCase.GetAllDealerships(r.Context())
	if err != nil {
		return NewHandlerError(errFetchingDealerships, http.StatusInternalServerError, err)
	}

	render.JSON(w, r, dealerships)
	return nil
}

func (h *dealershipHandler) GetDealershipsByState(w http.ResponseWriter, r *http.Request) *HandlerError {
	state := chi.URLParam(r, "state")
	dealerships, err := h.dealershipUseCase.GetDealershipsByFilters(r.Context(), &models.DealershipModelFilters{State: &state})
	if err != nil {
		return NewHandlerError(errFetchingDealershipsByState, http.StatusInternalServerError, err)
	}

	render.JSON(w, r, dealerships)
	return nil
}
