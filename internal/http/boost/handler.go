package boost

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/boost"
	"github.com/bowlnow/crm/internal/http/respond"
)

type Handler struct {
	svc *boost.Service
}

func NewHandler(svc *boost.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{clientId}", h.getByClient)
	r.Put("/{clientId}", h.updateByClient)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bs, err := h.svc.List(r.Context())
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(bs))
}

type createBoostRequest struct {
	ClientID uuid.UUID `json:"clientId"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBoostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.svc.Create(r.Context(), req.ClientID)
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) getByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientId"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}

	b, err := h.svc.GetByClient(r.Context(), clientID)
	if err != nil {
		respond.ServiceError(w, err, boost.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

type updateBoostRequest struct {
	KickoffCallCompleted *bool      `json:"kickoffCallCompleted,omitempty"`
	KickoffCallDate      *time.Time `json:"kickoffCallDate,omitempty"`
	LandingPagesLive     *bool      `json:"landingPagesLive,omitempty"`
	LandingPagesDate     *time.Time `json:"landingPagesDate,omitempty"`
	MetaAdsLive          *bool      `json:"metaAdsLive,omitempty"`
	MetaAdsDate          *time.Time `json:"metaAdsDate,omitempty"`
	GoogleAdsLive        *bool      `json:"googleAdsLive,omitempty"`
	GoogleAdsDate        *time.Time `json:"googleAdsDate,omitempty"`
	WebsiteLive          *bool      `json:"websiteLive,omitempty"`
	WebsiteDate          *time.Time `json:"websiteDate,omitempty"`
}

func (h *Handler) updateByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientId"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid client id")
		return
	}

	var req updateBoostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.svc.UpdateByClient(r.Context(), clientID, boost.UpdateParams{
		KickoffCallCompleted: req.KickoffCallCompleted,
		KickoffCallDate:      req.KickoffCallDate,
		LandingPagesLive:     req.LandingPagesLive,
		LandingPagesDate:     req.LandingPagesDate,
		MetaAdsLive:          req.MetaAdsLive,
		MetaAdsDate:          req.MetaAdsDate,
		GoogleAdsLive:        req.GoogleAdsLive,
		GoogleAdsDate:        req.GoogleAdsDate,
		WebsiteLive:          req.WebsiteLive,
		WebsiteDate:          req.WebsiteDate,
	})
	if err != nil {
		respond.ServiceError(w, err, boost.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}
