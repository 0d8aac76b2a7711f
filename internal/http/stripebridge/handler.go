// Package stripebridge exposes the inbound Stripe surface: the webhook
// receiver and the manual invoice sync trigger.
package stripebridge

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/bowlnow/crm/internal/http/respond"
	"github.com/bowlnow/crm/internal/invoice"
	"github.com/bowlnow/crm/internal/payments"
)

// maxWebhookBody bounds webhook payload reads. Stripe events are small;
// anything larger is not a legitimate event.
const maxWebhookBody = 1 << 16

type Handler struct {
	invoices      *invoice.Service
	webhookSecret string
	logger        *slog.Logger
}

func NewHandler(invoices *invoice.Service, webhookSecret string, logger *slog.Logger) *Handler {
	return &Handler{
		invoices:      invoices,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "unreadable payload")
		return
	}

	event, err := payments.ParseWebhookEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		h.logger.Warn("rejected stripe webhook", "error", err)
		respond.Error(w, http.StatusBadRequest, "invalid webhook signature")

		return
	}

	switch event.Type {
	case payments.EventPaymentSucceeded:
		_, err = h.invoices.MarkPaidByGatewayID(r.Context(), event.GatewayInvoiceID)
	case payments.EventPaymentFailed:
		_, err = h.invoices.MarkOverdueByGatewayID(r.Context(), event.GatewayInvoiceID)
	default:
		// Unhandled event types are acknowledged so Stripe stops
		// retrying them.
		h.logger.Debug("ignoring stripe event", "type", event.Type)
	}

	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *Handler) SyncInvoices(w http.ResponseWriter, r *http.Request) {
	res, err := h.invoices.SyncFromGateway(r.Context())
	if err != nil {
		respond.ServiceError(w, err, nil)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]int{
		"imported": res.Imported,
		"skipped":  res.Skipped,
	})
}
