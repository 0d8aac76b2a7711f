package onboarding

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/http/respond"
	"github.com/bowlnow/crm/internal/onboarding"
)

type Handler struct {
	svc *onboarding.Service
}

func NewHandler(svc *onboarding.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.save)
	r.Post("/{id}/submit", h.submit)
	r.Get("/client/{clientId}", h.getByClient)
}

// saveFormRequest is shared by create and save: both accept a partial
// form.
type saveFormRequest struct {
	ClientID               *uuid.UUID                     `json:"clientId,omitempty"`
	BusinessName           *string                        `json:"businessName,omitempty"`
	ContactName            *string                        `json:"contactName,omitempty"`
	Phone                  *string                        `json:"phone,omitempty"`
	Email                  *string                        `json:"email,omitempty"`
	ClientType             *string                        `json:"clientType,omitempty"`
	PreferredCommunication *string                        `json:"preferredCommunication,omitempty"`
	WebSlug                *string                        `json:"webSlug,omitempty"`
	Goals                  *string                        `json:"goals,omitempty"`
	MonthlyAdBudget        *decimal.Decimal               `json:"monthlyAdBudget,omitempty"`
	Promotions             *string                        `json:"promotions,omitempty"`
	AssetFileNames         *string                        `json:"assetFileNames,omitempty"`
	LandingPageChoice      *string                        `json:"landingPageChoice,omitempty"`
	Customizations         *string                        `json:"customizations,omitempty"`
	AdChannels             []string                       `json:"adChannels,omitempty"`
	FullWebsite            *bool                          `json:"fullWebsite,omitempty"`
	AdditionalContacts     []onboarding.AdditionalContact `json:"additionalContacts,omitempty"`
}

func (r saveFormRequest) params() onboarding.SaveParams {
	return onboarding.SaveParams{
		ClientID:               r.ClientID,
		BusinessName:           r.BusinessName,
		ContactName:            r.ContactName,
		Phone:                  r.Phone,
		Email:                  r.Email,
		ClientType:             r.ClientType,
		PreferredCommunication: r.PreferredCommunication,
		WebSlug:                r.WebSlug,
		Goals:                  r.Goals,
		MonthlyAdBudget:        r.MonthlyAdBudget,
		Promotions:             r.Promotions,
		AssetFileNames:         r.AssetFileNames,
		LandingPageChoice:      r.LandingPageChoice,
		Customizations:         r.Customizations,
		AdChannels:             r.AdChannels,
		FullWebsite:            r.FullWebsite,
		AdditionalContacts:     r.AdditionalContacts,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req saveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(f))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	fs, err := h.svc.List(r.Context())
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(fs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	f, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.ServiceError(w, err, onboarding.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(f))
}

func (h *Handler) getByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientId"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}

	f, err := h.svc.GetByClient(r.Context(), clientID)
	if err != nil {
		respond.ServiceError(w, err, onboarding.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(f))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req saveFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.svc.Save(r.Context(), id, req.params())
	if err != nil {
		respond.ServiceError(w, err, onboarding.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(f))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	f, err := h.svc.Submit(r.Context(), id)
	if err != nil {
		respond.ServiceError(w, err, onboarding.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(f))
}
