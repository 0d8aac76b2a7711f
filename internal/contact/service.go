package contact

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/validate"
)

type Repository interface {
	CreateContact(ctx context.Context, c *Contact) error
	GetContact(ctx context.Context, id uuid.UUID) (*Contact, error)
	ListContactsByClient(ctx context.Context, clientID uuid.UUID) ([]*Contact, error)
	UpdateContact(ctx context.Context, c *Contact) error
	DeleteContact(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID  uuid.UUID `validate:"required"`
	Name      string    `validate:"required"`
	Email     string    `validate:"omitempty,email"`
	Phone     string
	Role      string
	IsPrimary bool
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*Contact, error) {
	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	c := &Contact{
		ClientID:  p.ClientID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Role:      p.Role,
		IsPrimary: p.IsPrimary,
	}

	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	return c, nil
}

func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Contact, error) {
	return s.repo.ListContactsByClient(ctx, clientID)
}

type UpdateParams struct {
	Name      *string
	Email     *string `validate:"omitempty"`
	Phone     *string
	Role      *string
	IsPrimary *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*Contact, error) {
	c, err := s.repo.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		if *p.Name == "" {
			return nil, validate.NewError("name", "cannot be empty")
		}
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Role != nil {
		c.Role = *p.Role
	}
	if p.IsPrimary != nil {
		c.IsPrimary = *p.IsPrimary
	}

	if err := s.repo.UpdateContact(ctx, c); err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, id)
}
