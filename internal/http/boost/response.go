package boost

import (
	"time"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/boost"
)

type boostResponse struct {
	ID                   uuid.UUID  `json:"id"`
	ClientID             uuid.UUID  `json:"clientId"`
	ClientName           string     `json:"clientName,omitempty"`
	KickoffCallCompleted bool       `json:"kickoffCallCompleted"`
	KickoffCallDate      *time.Time `json:"kickoffCallDate,omitempty"`
	LandingPagesLive     bool       `json:"landingPagesLive"`
	LandingPagesDate     *time.Time `json:"landingPagesDate,omitempty"`
	MetaAdsLive          bool       `json:"metaAdsLive"`
	MetaAdsDate          *time.Time `json:"metaAdsDate,omitempty"`
	GoogleAdsLive        bool       `json:"googleAdsLive"`
	GoogleAdsDate        *time.Time `json:"googleAdsDate,omitempty"`
	WebsiteLive          bool       `json:"websiteLive"`
	WebsiteDate          *time.Time `json:"websiteDate,omitempty"`
	ProgressPercentage   int        `json:"progressPercentage"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(b *boost.BoostClient) boostResponse {
	return boostResponse{
		ID:                   b.ID,
		ClientID:             b.ClientID,
		ClientName:           b.ClientName,
		KickoffCallCompleted: b.KickoffCallCompleted,
		KickoffCallDate:      b.KickoffCallDate,
		LandingPagesLive:     b.LandingPagesLive,
		LandingPagesDate:     b.LandingPagesDate,
		MetaAdsLive:          b.MetaAdsLive,
		MetaAdsDate:          b.MetaAdsDate,
		GoogleAdsLive:        b.GoogleAdsLive,
		GoogleAdsDate:        b.GoogleAdsDate,
		WebsiteLive:          b.WebsiteLive,
		WebsiteDate:          b.WebsiteDate,
		ProgressPercentage:   b.ProgressPercentage,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

func toResponseList(bs []*boost.BoostClient) []boostResponse {
	resp := make([]boostResponse, len(bs))
	for i, b := range bs {
		resp[i] = toResponse(b)
	}

	return resp
}
