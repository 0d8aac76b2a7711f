// Package invoice implements billing documents and their synchronization
// with the external payment gateway. Invoices are created gateway-first:
// the gateway call happens before the local insert, and a gateway failure
// degrades to a local-only invoice rather than failing the request.
package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/validate"
)

var ErrNotFound = errors.New("invoice not found")

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusOverdue  Status = "overdue"
	StatusCanceled Status = "canceled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusOverdue, StatusCanceled:
		return Status(s), nil
	default:
		return "", validate.NewError("status", "must be one of pending, paid, overdue, canceled")
	}
}

type Frequency string

const (
	FrequencyOneTime Frequency = "one_time"
	FrequencyMonthly Frequency = "monthly"
)

func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyOneTime, FrequencyMonthly:
		return Frequency(s), nil
	default:
		return "", validate.NewError("frequency", "must be one of one_time, monthly")
	}
}

type Invoice struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	InvoiceNumber string
	Amount        decimal.Decimal
	Status        Status
	Frequency     Frequency
	Description   string
	DueDate       *time.Time
	PaidDate      *time.Time

	// Gateway identifiers are empty for local-only invoices.
	GatewayInvoiceID  string
	GatewayCustomerID string

	ClientName string // Loaded via JOIN
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// GatewayInvoice is the gateway's view of an invoice, decoupled from the
// provider SDK types.
type GatewayInvoice struct {
	ID            string
	CustomerID    string
	CustomerEmail string
	AmountDue     decimal.Decimal
	Status        string
	HostedURL     string
	CreatedAt     time.Time
}
