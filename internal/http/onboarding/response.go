package onboarding

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/onboarding"
)

type formResponse struct {
	ID                     uuid.UUID                      `json:"id"`
	ClientID               *uuid.UUID                     `json:"clientId,omitempty"`
	BusinessName           string                         `json:"businessName,omitempty"`
	ContactName            string                         `json:"contactName,omitempty"`
	Phone                  string                         `json:"phone,omitempty"`
	Email                  string                         `json:"email,omitempty"`
	ClientType             string                         `json:"clientType,omitempty"`
	PreferredCommunication string                         `json:"preferredCommunication,omitempty"`
	WebSlug                string                         `json:"webSlug,omitempty"`
	Goals                  string                         `json:"goals,omitempty"`
	MonthlyAdBudget        *decimal.Decimal               `json:"monthlyAdBudget,omitempty"`
	Promotions             string                         `json:"promotions,omitempty"`
	AssetFileNames         string                         `json:"assetFileNames,omitempty"`
	LandingPageChoice      string                         `json:"landingPageChoice,omitempty"`
	Customizations         string                         `json:"customizations,omitempty"`
	AdChannels             []string                       `json:"adChannels,omitempty"`
	FullWebsite            *bool                          `json:"fullWebsite,omitempty"`
	AdditionalContacts     []onboarding.AdditionalContact `json:"additionalContacts,omitempty"`
	CompletionProgress     int                            `json:"completionProgress"`
	IsCompleted            bool                           `json:"isCompleted"`
	CreatedAt              time.Time                      `json:"createdAt"`
	UpdatedAt              *time.Time                     `json:"updatedAt,omitempty"`
}

func toResponse(f *onboarding.Form) formResponse {
	return formResponse{
		ID:                     f.ID,
		ClientID:               f.ClientID,
		BusinessName:           f.BusinessName,
		ContactName:            f.ContactName,
		Phone:                  f.Phone,
		Email:                  f.Email,
		ClientType:             f.ClientType,
		PreferredCommunication: f.PreferredCommunication,
		WebSlug:                f.WebSlug,
		Goals:                  f.Goals,
		MonthlyAdBudget:        f.MonthlyAdBudget,
		Promotions:             f.Promotions,
		AssetFileNames:         f.AssetFileNames,
		LandingPageChoice:      f.LandingPageChoice,
		Customizations:         f.Customizations,
		AdChannels:             f.AdChannels,
		FullWebsite:            f.FullWebsite,
		AdditionalContacts:     f.AdditionalContacts,
		CompletionProgress:     f.CompletionProgress,
		IsCompleted:            f.IsCompleted,
		CreatedAt:              f.CreatedAt,
		UpdatedAt:              f.UpdatedAt,
	}
}

func toResponseList(fs []*onboarding.Form) []formResponse {
	resp := make([]formResponse, len(fs))
	for i, f := range fs {
		resp[i] = toResponse(f)
	}

	return resp
}
