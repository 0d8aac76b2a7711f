package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/validate"
)

var ErrNotFound = errors.New("client not found")

// Status represents the lifecycle state of a client. The pipeline is a
// closed set: any other value is rejected at the write boundary.
type Status string

const (
	StatusProspect Status = "prospect"
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
)

var validStatuses = []Status{StatusProspect, StatusActive, StatusPastDue, StatusCanceled}

// ParseStatus validates s against the known lifecycle states.
func ParseStatus(s string) (Status, error) {
	for _, st := range validStatuses {
		if Status(s) == st {
			return st, nil
		}
	}

	return "", validate.NewError("status",
		fmt.Sprintf("must be one of: %s, %s, %s, %s",
			StatusProspect, StatusActive, StatusPastDue, StatusCanceled))
}

// ClientType represents the service package a client is on.
type ClientType string

const (
	TypeCRM         ClientType = "crm"
	TypeCRMAds      ClientType = "crm_ads"
	TypeWebsiteOnly ClientType = "website_only"
	TypeFullService ClientType = "full_service"
)

// ParseClientType validates t against the known package types. An empty
// string is allowed: the package type is optional on intake.
func ParseClientType(t string) (ClientType, error) {
	switch ClientType(t) {
	case "", TypeCRM, TypeCRMAds, TypeWebsiteOnly, TypeFullService:
		return ClientType(t), nil
	}

	return "", validate.NewError("clientType",
		fmt.Sprintf("must be one of: %s, %s, %s, %s",
			TypeCRM, TypeCRMAds, TypeWebsiteOnly, TypeFullService))
}

// Client represents a business under management.
//
// The payment fields are free-text currency strings ("$1,550.00") taken
// verbatim from intake; they are parsed defensively at read time by the
// revenue aggregator and never validated as numeric on write.
type Client struct {
	ID                     uuid.UUID
	BusinessName           string
	ContactName            string
	Email                  string
	Phone                  string
	Status                 Status
	ClientType             ClientType
	Tags                   []string
	WebSlug                string
	Notes                  string
	PreferredCommunication string
	CurrentPayment         string
	ProposedPayment        string
	UpsellAmount           string
	CreatedAt              time.Time
	UpdatedAt              *time.Time
}

// Metrics summarises the client book for the dashboard.
type Metrics struct {
	TotalClients  int
	ActiveClients int
	Prospects     int
	Overdue       int
}
