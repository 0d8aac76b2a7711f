package invoice

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/http/respond"
	"github.com/bowlnow/crm/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Get("/client/{clientId}", h.listByClient)
}

type createInvoiceRequest struct {
	ClientID    uuid.UUID       `json:"clientId"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Create(r.Context(), invoice.CreateParams{
		ClientID:    req.ClientID,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	resp := createResponse{Invoice: toResponse(res.Invoice)}
	if res.GatewayErr != nil {
		resp.GatewayError = "invoice created locally; payment gateway registration failed"
	}

	respond.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.List(r.Context())
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(invs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.ServiceError(w, err, invoice.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

type updateInvoiceRequest struct {
	Status      *string    `json:"status,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.svc.Update(r.Context(), id, invoice.UpdateParams{
		Status:      req.Status,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respond.ServiceError(w, err, invoice.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) listByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientId"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}

	invs, err := h.svc.ListByClient(r.Context(), clientID)
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(invs))
}
