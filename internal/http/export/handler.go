package export

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/export"
	"github.com/bowlnow/crm/internal/http/respond"
	"github.com/bowlnow/crm/internal/revenue"
)

type Handler struct {
	clients *client.Service
	revenue *revenue.Service
}

func NewHandler(clients *client.Service, rev *revenue.Service) *Handler {
	return &Handler{clients: clients, revenue: rev}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/clients", h.clientsCSV)
	r.Get("/revenue", h.revenueCSV)
}

func (h *Handler) clientsCSV(w http.ResponseWriter, r *http.Request) {
	cs, err := h.clients.List(r.Context(), client.ListFilter{})
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	writeCSV(w, "clients.csv", export.ClientsCSV(cs))
}

func (h *Handler) revenueCSV(w http.ResponseWriter, r *http.Request) {
	rs, err := h.revenue.List(r.Context())
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	writeCSV(w, "revenue.csv", export.RevenueCSV(rs))
}

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(body))
}
