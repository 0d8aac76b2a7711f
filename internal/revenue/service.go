package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/validate"
)

type Repository interface {
	CreateRecord(ctx context.Context, r *Record) error
	GetRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	ListRecords(ctx context.Context) ([]*Record, error)
	ListRecordsByClient(ctx context.Context, clientID uuid.UUID) ([]*Record, error)
	UpdateRecord(ctx context.Context, r *Record) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID                uuid.UUID `validate:"required"`
	PackageType             string    `validate:"required"`
	StartDate               time.Time
	MonthlyRecurringRevenue decimal.Decimal
	OneTimeCharges          decimal.Decimal
	TotalPaid               decimal.Decimal
	IsActive                *bool
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*Record, error) {
	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	r := &Record{
		ClientID:                p.ClientID,
		PackageType:             p.PackageType,
		StartDate:               p.StartDate,
		MonthlyRecurringRevenue: p.MonthlyRecurringRevenue,
		OneTimeCharges:          p.OneTimeCharges,
		TotalPaid:               p.TotalPaid,
		IsActive:                true,
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}

	if r.StartDate.IsZero() {
		r.StartDate = time.Now()
	}

	if err := s.repo.CreateRecord(ctx, r); err != nil {
		return nil, fmt.Errorf("creating revenue record: %w", err)
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetRecord(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.ListRecords(ctx)
}

func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Record, error) {
	return s.repo.ListRecordsByClient(ctx, clientID)
}

type UpdateParams struct {
	PackageType             *string
	StartDate               *time.Time
	MonthlyRecurringRevenue *decimal.Decimal
	OneTimeCharges          *decimal.Decimal
	TotalPaid               *decimal.Decimal
	IsActive                *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*Record, error) {
	r, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.PackageType != nil {
		r.PackageType = *p.PackageType
	}
	if p.StartDate != nil {
		r.StartDate = *p.StartDate
	}
	if p.MonthlyRecurringRevenue != nil {
		r.MonthlyRecurringRevenue = *p.MonthlyRecurringRevenue
	}
	if p.OneTimeCharges != nil {
		r.OneTimeCharges = *p.OneTimeCharges
	}
	if p.TotalPaid != nil {
		r.TotalPaid = *p.TotalPaid
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}

	if err := s.repo.UpdateRecord(ctx, r); err != nil {
		return nil, fmt.Errorf("updating revenue record: %w", err)
	}

	return r, nil
}
