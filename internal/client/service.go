package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	FindClientByEmail(ctx context.Context, email string) (*Client, error)
	ListClients(ctx context.Context, filter ListFilter) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	GetMetrics(ctx context.Context) (*Metrics, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

// ImportTx is a transactional scope for batch imports. The store takes an
// advisory lock for the duration so concurrent imports cannot race the
// find-existing step.
type ImportTx interface {
	FindByEmails(ctx context.Context, emails []string) ([]*Client, error)
	CreateClients(ctx context.Context, cs []*Client) error
	UpdateClients(ctx context.Context, cs []*Client) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams carries intake data for a new client. Status is caller
// supplied because the entry points disagree on the default: the CRM
// pipeline creates prospects while the client-management screen creates
// active clients.
type CreateParams struct {
	BusinessName           string `validate:"required"`
	ContactName            string `validate:"required"`
	Email                  string `validate:"required,email"`
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
}

type ListFilter struct {
	Status *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if params.Status == "" {
		params.Status = StatusProspect
	}

	if _, err := ParseStatus(string(params.Status)); err != nil {
		return nil, err
	}

	if _, err := ParseClientType(string(params.ClientType)); err != nil {
		return nil, err
	}

	c := newClient(params)
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*Client, error) {
	return s.repo.FindClientByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Client, error) {
	return s.repo.ListClients(ctx, filter)
}

func (s *Service) Update(ctx context.Context, c *Client) error {
	if _, err := ParseStatus(string(c.Status)); err != nil {
		return err
	}

	if _, err := ParseClientType(string(c.ClientType)); err != nil {
		return err
	}

	return s.repo.UpdateClient(ctx, c)
}

// UpdateStatus moves a client through the pipeline. Transitions are
// user-driven and unconditional; the only guard is membership in the
// closed status set.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Client, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, parsed); err != nil {
		return nil, err
	}

	return s.repo.GetClient(ctx, id)
}

// Delete removes the client row only. Child rows (boost progress,
// invoices, contacts, revenue) keep their foreign keys and are orphaned.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, id)
}

func (s *Service) Metrics(ctx context.Context) (*Metrics, error) {
	return s.repo.GetMetrics(ctx)
}

// ImportResult reports the outcome of a batch import.
type ImportResult struct {
	Created []*Client
	Updated []*Client
}

// ImportBatch creates or updates clients keyed by email, the way the
// one-off tracker imports do: rows whose email already exists refresh the
// payment fields, status and notes; the rest are created.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	for i, p := range params {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	emails := make([]string, len(params))
	for i, p := range params {
		emails[i] = normalizeEmail(p.Email)
	}

	existing, err := itx.FindByEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("find existing clients: %w", err)
	}

	byEmail := make(map[string]*Client, len(existing))
	for _, c := range existing {
		byEmail[normalizeEmail(c.Email)] = c
	}

	var created, updated []*Client

	for _, p := range params {
		c, found := byEmail[normalizeEmail(p.Email)]
		if !found {
			created = append(created, newClient(p))
			continue
		}

		c.Status = p.Status
		c.ClientType = p.ClientType
		c.CurrentPayment = p.CurrentPayment
		c.ProposedPayment = p.ProposedPayment
		c.UpsellAmount = p.UpsellAmount
		c.Notes = p.Notes

		updated = append(updated, c)
	}

	if len(created) > 0 {
		if err := itx.CreateClients(ctx, created); err != nil {
			return nil, fmt.Errorf("create clients: %w", err)
		}
	}

	if len(updated) > 0 {
		if err := itx.UpdateClients(ctx, updated); err != nil {
			return nil, fmt.Errorf("update clients: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Created: created, Updated: updated}, nil
}

func newClient(p CreateParams) *Client {
	preferred := p.PreferredCommunication
	if preferred == "" {
		preferred = "email"
	}

	if p.Status == "" {
		p.Status = StatusProspect
	}

	return &Client{
		BusinessName:           p.BusinessName,
		ContactName:            p.ContactName,
		Email:                  p.Email,
		Phone:                  p.Phone,
		Status:                 p.Status,
		ClientType:             p.ClientType,
		Tags:                   p.Tags,
		WebSlug:                p.WebSlug,
		Notes:                  p.Notes,
		PreferredCommunication: preferred,
		CurrentPayment:         p.CurrentPayment,
		ProposedPayment:        p.ProposedPayment,
		UpsellAmount:           p.UpsellAmount,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
