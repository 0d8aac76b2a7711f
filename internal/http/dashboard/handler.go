package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/http/respond"
	"github.com/bowlnow/crm/internal/revenue"
)

// Handler serves the dashboard summary, composing client counts with
// the live revenue aggregate.
type Handler struct {
	clients *client.Service
}

func NewHandler(clients *client.Service) *Handler {
	return &Handler{clients: clients}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/metrics", h.metrics)
}

type metricsResponse struct {
	TotalClients  int     `json:"totalClients"`
	ActiveClients int     `json:"activeClients"`
	Prospects     int     `json:"prospects"`
	Overdue       int     `json:"overdue"`
	TotalMRR      float64 `json:"totalMRR"`
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	counts, err := h.clients.Metrics(r.Context())
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	cs, err := h.clients.List(r.Context(), client.ListFilter{})
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	agg := revenue.AggregateClients(cs)

	respond.JSON(w, http.StatusOK, metricsResponse{
		TotalClients:  counts.TotalClients,
		ActiveClients: counts.ActiveClients,
		Prospects:     counts.Prospects,
		Overdue:       counts.Overdue,
		TotalMRR:      agg.TotalMRR,
	})
}
