package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/invoice"
)

type invoiceResponse struct {
	ID                uuid.UUID         `json:"id"`
	ClientID          uuid.UUID         `json:"clientId"`
	ClientName        string            `json:"clientName,omitempty"`
	InvoiceNumber     string            `json:"invoiceNumber"`
	Amount            decimal.Decimal   `json:"amount"`
	Status            invoice.Status    `json:"status"`
	Frequency         invoice.Frequency `json:"frequency"`
	Description       string            `json:"description,omitempty"`
	DueDate           *time.Time        `json:"dueDate,omitempty"`
	PaidDate          *time.Time        `json:"paidDate,omitempty"`
	GatewayInvoiceID  string            `json:"gatewayInvoiceId,omitempty"`
	GatewayCustomerID string            `json:"gatewayCustomerId,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         *time.Time        `json:"updatedAt,omitempty"`
}

type createResponse struct {
	Invoice      invoiceResponse `json:"invoice"`
	GatewayError string          `json:"gatewayError,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:                inv.ID,
		ClientID:          inv.ClientID,
		ClientName:        inv.ClientName,
		InvoiceNumber:     inv.InvoiceNumber,
		Amount:            inv.Amount,
		Status:            inv.Status,
		Frequency:         inv.Frequency,
		Description:       inv.Description,
		DueDate:           inv.DueDate,
		PaidDate:          inv.PaidDate,
		GatewayInvoiceID:  inv.GatewayInvoiceID,
		GatewayCustomerID: inv.GatewayCustomerID,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

func toResponseList(invs []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv)
	}

	return resp
}
