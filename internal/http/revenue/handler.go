package revenue

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/http/respond"
	"github.com/bowlnow/crm/internal/revenue"
)

type Handler struct {
	svc     *revenue.Service
	clients *client.Service
}

func NewHandler(svc *revenue.Service, clients *client.Service) *Handler {
	return &Handler{svc: svc, clients: clients}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Get("/client/{clientId}", h.listByClient)
	r.Get("/metrics", h.metrics)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rs, err := h.svc.List(r.Context())
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(rs))
}

type createRevenueRequest struct {
	ClientID                uuid.UUID       `json:"clientId"`
	PackageType             string          `json:"packageType"`
	StartDate               *time.Time      `json:"startDate,omitempty"`
	MonthlyRecurringRevenue decimal.Decimal `json:"monthlyRecurringRevenue"`
	OneTimeCharges          decimal.Decimal `json:"oneTimeCharges"`
	TotalPaid               decimal.Decimal `json:"totalPaid"`
	IsActive                *bool           `json:"isActive,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRevenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	params := revenue.CreateParams{
		ClientID:                req.ClientID,
		PackageType:             req.PackageType,
		MonthlyRecurringRevenue: req.MonthlyRecurringRevenue,
		OneTimeCharges:          req.OneTimeCharges,
		TotalPaid:               req.TotalPaid,
		IsActive:                req.IsActive,
	}
	if req.StartDate != nil {
		params.StartDate = *req.StartDate
	}

	rec, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rec))
}

type updateRevenueRequest struct {
	PackageType             *string          `json:"packageType,omitempty"`
	StartDate               *time.Time       `json:"startDate,omitempty"`
	MonthlyRecurringRevenue *decimal.Decimal `json:"monthlyRecurringRevenue,omitempty"`
	OneTimeCharges          *decimal.Decimal `json:"oneTimeCharges,omitempty"`
	TotalPaid               *decimal.Decimal `json:"totalPaid,omitempty"`
	IsActive                *bool            `json:"isActive,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateRevenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.Update(r.Context(), id, revenue.UpdateParams{
		PackageType:             req.PackageType,
		StartDate:               req.StartDate,
		MonthlyRecurringRevenue: req.MonthlyRecurringRevenue,
		OneTimeCharges:          req.OneTimeCharges,
		TotalPaid:               req.TotalPaid,
		IsActive:                req.IsActive,
	})
	if err != nil {
		respond.ServiceError(w, err, revenue.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec))
}

func (h *Handler) listByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientId"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}

	rs, err := h.svc.ListByClient(r.Context(), clientID)
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(rs))
}

// metrics reports the live aggregate derived from client payment
// fields, not from the ledger.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	cs, err := h.clients.List(r.Context(), client.ListFilter{})
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	m := revenue.AggregateClients(cs)

	respond.JSON(w, http.StatusOK, metricsResponse{
		TotalMRR:        m.TotalMRR,
		UpsellPotential: m.UpsellPotential,
		TotalRevenue:    m.TotalRevenue,
		PayingClients:   m.PayingClients,
	})
}
