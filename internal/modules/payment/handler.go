package payment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

// Handler exposes payment HTTP endpoints, addressed by order id since
// payments are one-to-one with orders.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Get("/order/{order_id}", h.getByOrder)            // GET  /api/v1/payments/order/{order_id}
		r.Post("/order/{order_id}/process", h.process)      // POST /api/v1/payments/order/{order_id}/process
		r.Post("/order/{order_id}/refund", h.refund)        // POST /api/v1/payments/order/{order_id}/refund
	})
}

func (h *Handler) getByOrder(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetByOrder(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.Process(r.Context(), chi.URLParam(r, "order_id"), req.Method)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) refund(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Refund(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
}
