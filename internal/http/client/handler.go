package client

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/http/respond"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Put("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type createClientRequest struct {
	BusinessName           string   `json:"businessName"`
	ContactName            string   `json:"contactName"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	Status                 string   `json:"status"`
	ClientType             string   `json:"clientType"`
	Tags                   []string `json:"tags"`
	WebSlug                string   `json:"webSlug"`
	Notes                  string   `json:"notes"`
	PreferredCommunication string   `json:"preferredCommunication"`
	CurrentPayment         string   `json:"currentPayment"`
	ProposedPayment        string   `json:"proposedPayment"`
	UpsellAmount           string   `json:"upsellAmount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Create(r.Context(), client.CreateParams{
		BusinessName:           req.BusinessName,
		ContactName:            req.ContactName,
		Email:                  req.Email,
		Phone:                  req.Phone,
		Status:                 client.Status(req.Status),
		ClientType:             client.ClientType(req.ClientType),
		Tags:                   req.Tags,
		WebSlug:                req.WebSlug,
		Notes:                  req.Notes,
		PreferredCommunication: req.PreferredCommunication,
		CurrentPayment:         req.CurrentPayment,
		ProposedPayment:        req.ProposedPayment,
		UpsellAmount:           req.UpsellAmount,
	})
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := client.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status, err := client.ParseStatus(s)
		if err != nil {
			respond.ServiceError(w, err, nil)
			return
		}

		filter.Status = &status
	}

	cs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(cs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.ServiceError(w, err, client.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type updateClientRequest struct {
	BusinessName           *string  `json:"businessName,omitempty"`
	ContactName            *string  `json:"contactName,omitempty"`
	Email                  *string  `json:"email,omitempty"`
	Phone                  *string  `json:"phone,omitempty"`
	Status                 *string  `json:"status,omitempty"`
	ClientType             *string  `json:"clientType,omitempty"`
	Tags                   []string `json:"tags,omitempty"`
	WebSlug                *string  `json:"webSlug,omitempty"`
	Notes                  *string  `json:"notes,omitempty"`
	PreferredCommunication *string  `json:"preferredCommunication,omitempty"`
	CurrentPayment         *string  `json:"currentPayment,omitempty"`
	ProposedPayment        *string  `json:"proposedPayment,omitempty"`
	UpsellAmount           *string  `json:"upsellAmount,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.ServiceError(w, err, client.ErrNotFound)
		return
	}

	applyUpdate(c, req)

	if err := h.svc.Update(r.Context(), c); err != nil {
		respond.ServiceError(w, err, client.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func applyUpdate(c *client.Client, req updateClientRequest) {
	if req.BusinessName != nil {
		c.BusinessName = *req.BusinessName
	}
	if req.ContactName != nil {
		c.ContactName = *req.ContactName
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Status != nil {
		c.Status = client.Status(*req.Status)
	}
	if req.ClientType != nil {
		c.ClientType = client.ClientType(*req.ClientType)
	}
	if req.Tags != nil {
		c.Tags = req.Tags
	}
	if req.WebSlug != nil {
		c.WebSlug = *req.WebSlug
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.PreferredCommunication != nil {
		c.PreferredCommunication = *req.PreferredCommunication
	}
	if req.CurrentPayment != nil {
		c.CurrentPayment = *req.CurrentPayment
	}
	if req.ProposedPayment != nil {
		c.ProposedPayment = *req.ProposedPayment
	}
	if req.UpsellAmount != nil {
		c.UpsellAmount = *req.UpsellAmount
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respond.ServiceError(w, err, client.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.ServiceError(w, err, client.ErrNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
