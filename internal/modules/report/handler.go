package report

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mchisenga/storefront-backend/internal/apperr"
)

// Handler exposes reporting HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/top-products", h.topProducts)             // GET /api/v1/reports/top-products?limit=5
		r.Get("/revenue", h.revenue)                      // GET /api/v1/reports/revenue
		r.Get("/orders-per-customer", h.ordersPerCustomer) // GET /api/v1/reports/orders-per-customer
		r.Get("/frequent-customers", h.frequentCustomers) // GET /api/v1/reports/frequent-customers?min=2
	})
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	out, err := h.service.TopProducts(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.RevenueLastMonth(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) ordersPerCustomer(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.OrdersPerCustomer(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) frequentCustomers(w http.ResponseWriter, r *http.Request) {
	min, _ := strconv.Atoi(r.URL.Query().Get("min"))
	out, err := h.service.FrequentCustomers(r.Context(), min)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
}
