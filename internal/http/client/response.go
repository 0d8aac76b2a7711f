package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/client"
)

type clientResponse struct {
	ID                     uuid.UUID         `json:"id"`
	BusinessName           string            `json:"businessName"`
	ContactName            string            `json:"contactName"`
	Email                  string            `json:"email"`
	Phone                  string            `json:"phone,omitempty"`
	Status                 client.Status     `json:"status"`
	ClientType             client.ClientType `json:"clientType,omitempty"`
	Tags                   []string          `json:"tags,omitempty"`
	WebSlug                string            `json:"webSlug,omitempty"`
	Notes                  string            `json:"notes,omitempty"`
	PreferredCommunication string            `json:"preferredCommunication,omitempty"`
	CurrentPayment         string            `json:"currentPayment,omitempty"`
	ProposedPayment        string            `json:"proposedPayment,omitempty"`
	UpsellAmount           string            `json:"upsellAmount,omitempty"`
	CreatedAt              time.Time         `json:"createdAt"`
	UpdatedAt              *time.Time        `json:"updatedAt,omitempty"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:                     c.ID,
		BusinessName:           c.BusinessName,
		ContactName:            c.ContactName,
		Email:                  c.Email,
		Phone:                  c.Phone,
		Status:                 c.Status,
		ClientType:             c.ClientType,
		Tags:                   c.Tags,
		WebSlug:                c.WebSlug,
		Notes:                  c.Notes,
		PreferredCommunication: c.PreferredCommunication,
		CurrentPayment:         c.CurrentPayment,
		ProposedPayment:        c.ProposedPayment,
		UpsellAmount:           c.UpsellAmount,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

func toResponseList(cs []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}
