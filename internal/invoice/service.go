package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/validate"
)

type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindInvoiceByNumber(ctx context.Context, number string) (*Invoice, error)
	FindInvoiceByGatewayID(ctx context.Context, gatewayID string) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	CountInvoices(ctx context.Context) (int, error)
}

// Gateway is the payment provider surface the service needs. A nil
// gateway means invoicing runs local-only.
type Gateway interface {
	EnsureCustomer(ctx context.Context, c *client.Client) (customerID string, err error)
	CreateInvoice(ctx context.Context, customerID string, inv *Invoice) (*GatewayInvoice, error)
	ListInvoices(ctx context.Context) ([]*GatewayInvoice, error)
}

// ClientDirectory is the slice of the client service invoicing needs.
type ClientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*client.Client, error)
	FindByEmail(ctx context.Context, email string) (*client.Client, error)
}

type Service struct {
	repo    Repository
	gateway Gateway
	clients ClientDirectory
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo Repository, gateway Gateway, clients ClientDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		clients: clients,
		logger:  logger,
		now:     time.Now,
	}
}

type CreateParams struct {
	ClientID    uuid.UUID `validate:"required"`
	Amount      decimal.Decimal
	Frequency   string
	Description string
	DueDate     *time.Time
}

// CreateResult carries the created invoice plus the gateway error, if
// any. A non-nil GatewayErr means the invoice exists locally but was not
// registered with the payment provider.
type CreateResult struct {
	Invoice    *Invoice
	GatewayErr error
}

// Create builds the next invoice number, registers the invoice with the
// payment gateway when one is configured, then persists it locally. The
// gateway step is best-effort.
func (s *Service) Create(ctx context.Context, p CreateParams) (*CreateResult, error) {
	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	if !p.Amount.IsPositive() {
		return nil, validate.NewError("amount", "must be greater than zero")
	}

	frequency := FrequencyOneTime
	if p.Frequency != "" {
		var err error
		if frequency, err = ParseFrequency(p.Frequency); err != nil {
			return nil, err
		}
	}

	c, err := s.clients.Get(ctx, p.ClientID)
	if err != nil {
		return nil, fmt.Errorf("looking up invoice client: %w", err)
	}

	count, err := s.repo.CountInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting invoices: %w", err)
	}

	inv := &Invoice{
		ClientID:      c.ID,
		InvoiceNumber: fmt.Sprintf("INV-%d-%03d", s.now().Year(), count+1),
		Amount:        p.Amount,
		Status:        StatusPending,
		Frequency:     frequency,
		Description:   p.Description,
		DueDate:       p.DueDate,
	}

	res := &CreateResult{Invoice: inv}

	if s.gateway != nil {
		res.GatewayErr = s.registerWithGateway(ctx, c, inv)
		if res.GatewayErr != nil {
			s.logger.Warn("invoice gateway registration failed, keeping local-only",
				"invoice_number", inv.InvoiceNumber,
				"client_id", c.ID,
				"error", res.GatewayErr,
			)
		}
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return res, nil
}

func (s *Service) registerWithGateway(ctx context.Context, c *client.Client, inv *Invoice) error {
	customerID, err := s.gateway.EnsureCustomer(ctx, c)
	if err != nil {
		return fmt.Errorf("ensuring gateway customer: %w", err)
	}

	gi, err := s.gateway.CreateInvoice(ctx, customerID, inv)
	if err != nil {
		return fmt.Errorf("creating gateway invoice: %w", err)
	}

	inv.GatewayCustomerID = customerID
	inv.GatewayInvoiceID = gi.ID

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Invoice, error) {
	return s.repo.ListInvoicesByClient(ctx, clientID)
}

type UpdateParams struct {
	Status      *string
	Description *string
	DueDate     *time.Time
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status != nil {
		status, err := ParseStatus(*p.Status)
		if err != nil {
			return nil, err
		}

		s.applyStatus(inv, status)
	}
	if p.Description != nil {
		inv.Description = *p.Description
	}
	if p.DueDate != nil {
		inv.DueDate = p.DueDate
	}

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("updating invoice: %w", err)
	}

	return inv, nil
}

// applyStatus stamps the paid date on the transition into paid and
// clears it on the way out.
func (s *Service) applyStatus(inv *Invoice, status Status) {
	if status == StatusPaid && inv.Status != StatusPaid {
		paid := s.now()
		inv.PaidDate = &paid
	}
	if status != StatusPaid {
		inv.PaidDate = nil
	}

	inv.Status = status
}

// MarkPaidByGatewayID resolves a gateway payment notification to the
// local invoice. Notifications for invoices the CRM never issued are
// ignored.
func (s *Service) MarkPaidByGatewayID(ctx context.Context, gatewayID string) (*Invoice, error) {
	return s.markByGatewayID(ctx, gatewayID, StatusPaid)
}

// MarkOverdueByGatewayID handles failed-payment notifications.
func (s *Service) MarkOverdueByGatewayID(ctx context.Context, gatewayID string) (*Invoice, error) {
	return s.markByGatewayID(ctx, gatewayID, StatusOverdue)
}

func (s *Service) markByGatewayID(ctx context.Context, gatewayID string, status Status) (*Invoice, error) {
	inv, err := s.repo.FindInvoiceByGatewayID(ctx, gatewayID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Debug("ignoring gateway notification for unknown invoice", "gateway_id", gatewayID)
			return nil, nil
		}

		return nil, err
	}

	s.applyStatus(inv, status)

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("updating invoice from gateway notification: %w", err)
	}

	return inv, nil
}

// SyncResult summarizes a gateway import pass.
type SyncResult struct {
	Imported int
	Skipped  int
}

// SyncFromGateway pulls invoices from the payment provider and imports
// the ones the CRM does not know yet. Gateway invoices are matched to
// clients by customer email; invoices whose customer has no matching
// client are skipped.
func (s *Service) SyncFromGateway(ctx context.Context) (*SyncResult, error) {
	if s.gateway == nil {
		return nil, errors.New("no payment gateway configured")
	}

	gis, err := s.gateway.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing gateway invoices: %w", err)
	}

	count, err := s.repo.CountInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting invoices: %w", err)
	}

	res := &SyncResult{}

	for _, gi := range gis {
		if _, err := s.repo.FindInvoiceByGatewayID(ctx, gi.ID); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("checking invoice %s: %w", gi.ID, err)
		}

		c, err := s.clients.FindByEmail(ctx, gi.CustomerEmail)
		if err != nil {
			if errors.Is(err, client.ErrNotFound) {
				s.logger.Debug("skipping gateway invoice without matching client",
					"gateway_id", gi.ID,
					"customer_email", gi.CustomerEmail,
				)
				res.Skipped++
				continue
			}

			return nil, fmt.Errorf("matching gateway invoice %s: %w", gi.ID, err)
		}

		count++

		inv := &Invoice{
			ClientID:         c.ID,
			InvoiceNumber:    fmt.Sprintf("STRIPE-%d-%03d", s.now().Year(), count),
			Amount:           gi.AmountDue,
			Status:           importedStatus(gi.Status),
			Frequency:        FrequencyOneTime,
			Description:      "Imported from payment gateway",
			GatewayInvoiceID: gi.ID,
		}
		inv.GatewayCustomerID = gi.CustomerID

		if inv.Status == StatusPaid {
			paid := gi.CreatedAt
			inv.PaidDate = &paid
		}

		if err := s.repo.CreateInvoice(ctx, inv); err != nil {
			return nil, fmt.Errorf("importing gateway invoice %s: %w", gi.ID, err)
		}

		res.Imported++
	}

	return res, nil
}

func importedStatus(gatewayStatus string) Status {
	switch strings.ToLower(gatewayStatus) {
	case "paid":
		return StatusPaid
	case "void", "uncollectible":
		return StatusCanceled
	default:
		return StatusPending
	}
}
