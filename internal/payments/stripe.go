// Package payments implements the Stripe-backed payment gateway.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	stripeclient "github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	crmclient "github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/invoice"
	"github.com/bowlnow/crm/internal/metrics"
)

// syncPageSize caps how many invoices a single sync pass pulls.
const syncPageSize = 100

// StripeGateway implements invoice.Gateway against the Stripe API.
type StripeGateway struct {
	api     *stripeclient.API
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewStripeGateway(secretKey string, logger *slog.Logger, m *metrics.Metrics) *StripeGateway {
	api := &stripeclient.API{}
	api.Init(secretKey, nil)

	return &StripeGateway{
		api:     api,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

func (g *StripeGateway) observe(operation string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	g.metrics.GatewayRequests.WithLabelValues(operation, status).Inc()
	g.metrics.GatewayLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// EnsureCustomer finds the Stripe customer matching the client's email
// or creates one tagged with the CRM client id.
func (g *StripeGateway) EnsureCustomer(ctx context.Context, c *crmclient.Client) (string, error) {
	started := g.now()

	listParams := &stripe.CustomerListParams{Email: stripe.String(c.Email)}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	iter := g.api.Customers.List(listParams)
	for iter.Next() {
		g.observe("ensure_customer", started, nil)
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		g.observe("ensure_customer", started, err)
		return "", fmt.Errorf("listing stripe customers: %w", err)
	}

	createParams := &stripe.CustomerParams{
		Email: stripe.String(c.Email),
		Name:  stripe.String(c.BusinessName),
	}
	createParams.Context = ctx
	createParams.AddMetadata("bowlnow_client_id", c.ID.String())

	cus, err := g.api.Customers.New(createParams)
	if err != nil {
		g.observe("ensure_customer", started, err)
		return "", fmt.Errorf("creating stripe customer: %w", err)
	}

	g.logger.Info("created stripe customer", "customer_id", cus.ID, "client_id", c.ID)
	g.observe("ensure_customer", started, nil)

	return cus.ID, nil
}

// CreateInvoice opens a draft invoice, attaches the amount as a single
// line item and finalizes it so Stripe emails the customer.
func (g *StripeGateway) CreateInvoice(ctx context.Context, customerID string, inv *invoice.Invoice) (*invoice.GatewayInvoice, error) {
	started := g.now()

	gi, err := g.createInvoice(ctx, customerID, inv)
	g.observe("create_invoice", started, err)

	return gi, err
}

func (g *StripeGateway) createInvoice(ctx context.Context, customerID string, inv *invoice.Invoice) (*invoice.GatewayInvoice, error) {
	invoiceParams := &stripe.InvoiceParams{
		Customer:         stripe.String(customerID),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(daysUntilDue(inv.DueDate, g.now())),
	}
	invoiceParams.Context = ctx
	if inv.Description != "" {
		invoiceParams.Description = stripe.String(inv.Description)
	}

	draft, err := g.api.Invoices.New(invoiceParams)
	if err != nil {
		return nil, fmt.Errorf("creating stripe invoice: %w", err)
	}

	itemParams := &stripe.InvoiceItemParams{
		Customer:    stripe.String(customerID),
		Invoice:     stripe.String(draft.ID),
		Amount:      stripe.Int64(amountCents(inv.Amount)),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Description: stripe.String(lineDescription(inv)),
	}
	itemParams.Context = ctx

	if _, err := g.api.InvoiceItems.New(itemParams); err != nil {
		return nil, fmt.Errorf("adding stripe invoice item: %w", err)
	}

	finalizeParams := &stripe.InvoiceFinalizeInvoiceParams{}
	finalizeParams.Context = ctx

	finalized, err := g.api.Invoices.FinalizeInvoice(draft.ID, finalizeParams)
	if err != nil {
		return nil, fmt.Errorf("finalizing stripe invoice: %w", err)
	}

	return toGatewayInvoice(finalized), nil
}

// ListInvoices returns the most recent invoices known to Stripe.
func (g *StripeGateway) ListInvoices(ctx context.Context) ([]*invoice.GatewayInvoice, error) {
	started := g.now()

	params := &stripe.InvoiceListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(syncPageSize)

	var gis []*invoice.GatewayInvoice

	iter := g.api.Invoices.List(params)
	for iter.Next() {
		gis = append(gis, toGatewayInvoice(iter.Invoice()))

		if len(gis) >= syncPageSize {
			break
		}
	}
	if err := iter.Err(); err != nil {
		g.observe("list_invoices", started, err)
		return nil, fmt.Errorf("listing stripe invoices: %w", err)
	}

	g.observe("list_invoices", started, nil)

	return gis, nil
}

func toGatewayInvoice(inv *stripe.Invoice) *invoice.GatewayInvoice {
	gi := &invoice.GatewayInvoice{
		ID:            inv.ID,
		CustomerEmail: inv.CustomerEmail,
		AmountDue:     decimal.NewFromInt(inv.AmountDue).Div(decimal.NewFromInt(100)),
		Status:        string(inv.Status),
		HostedURL:     inv.HostedInvoiceURL,
		CreatedAt:     time.Unix(inv.Created, 0).UTC(),
	}
	if inv.Customer != nil {
		gi.CustomerID = inv.Customer.ID
	}

	return gi
}

func amountCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func daysUntilDue(due *time.Time, now time.Time) int64 {
	if due == nil {
		return 30
	}

	days := int64(due.Sub(now).Hours() / 24)
	if days < 1 {
		return 1
	}

	return days
}

func lineDescription(inv *invoice.Invoice) string {
	if inv.Description != "" {
		return inv.Description
	}

	return fmt.Sprintf("Invoice %s", inv.InvoiceNumber)
}

// Webhook event types the CRM reacts to.
const (
	EventPaymentSucceeded = "invoice.payment_succeeded"
	EventPaymentFailed    = "invoice.payment_failed"
)

// WebhookEvent is the distilled form of a Stripe webhook notification.
type WebhookEvent struct {
	Type             string
	GatewayInvoiceID string
}

// ParseWebhookEvent verifies the webhook signature and extracts the
// invoice reference for payment events. Other event types come back
// with an empty invoice id and are ignored upstream.
func ParseWebhookEvent(payload []byte, signature, secret string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		return nil, fmt.Errorf("verifying webhook signature: %w", err)
	}

	we := &WebhookEvent{Type: string(event.Type)}

	switch we.Type {
	case EventPaymentSucceeded, EventPaymentFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("decoding webhook invoice: %w", err)
		}

		we.GatewayInvoiceID = inv.ID
	}

	return we, nil
}
