package onboarding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/validate"
)

type Repository interface {
	CreateForm(ctx context.Context, f *Form) error
	GetForm(ctx context.Context, id uuid.UUID) (*Form, error)
	GetFormByClient(ctx context.Context, clientID uuid.UUID) (*Form, error)
	ListForms(ctx context.Context) ([]*Form, error)
	UpdateForm(ctx context.Context, f *Form) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SaveParams carries a partial form state. Nil pointers leave the
// stored value untouched, which lets auto-save send only what changed.
type SaveParams struct {
	ClientID               *uuid.UUID
	BusinessName           *string
	ContactName            *string
	Phone                  *string
	Email                  *string
	ClientType             *string
	PreferredCommunication *string
	WebSlug                *string
	Goals                  *string
	MonthlyAdBudget        *decimal.Decimal
	Promotions             *string
	AssetFileNames         *string
	LandingPageChoice      *string
	Customizations         *string
	AdChannels             []string
	FullWebsite            *bool
	AdditionalContacts     []AdditionalContact
}

// Create opens a new draft form. Drafts start at whatever progress the
// provided fields already earn.
func (s *Service) Create(ctx context.Context, p SaveParams) (*Form, error) {
	f := &Form{}
	applyParams(f, p)
	f.CompletionProgress = f.Progress()

	if err := s.repo.CreateForm(ctx, f); err != nil {
		return nil, fmt.Errorf("creating onboarding form: %w", err)
	}

	return f, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Form, error) {
	return s.repo.GetForm(ctx, id)
}

func (s *Service) GetByClient(ctx context.Context, clientID uuid.UUID) (*Form, error) {
	return s.repo.GetFormByClient(ctx, clientID)
}

func (s *Service) List(ctx context.Context) ([]*Form, error) {
	return s.repo.ListForms(ctx)
}

// Save applies a partial update and recomputes the completion
// percentage. Saving never flips a form back to incomplete once it has
// been submitted.
func (s *Service) Save(ctx context.Context, id uuid.UUID, p SaveParams) (*Form, error) {
	f, err := s.repo.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}

	applyParams(f, p)

	if f.IsCompleted {
		f.CompletionProgress = 100
	} else {
		f.CompletionProgress = f.Progress()
	}

	if err := s.repo.UpdateForm(ctx, f); err != nil {
		return nil, fmt.Errorf("saving onboarding form: %w", err)
	}

	return f, nil
}

// Submit finalizes a form. Every required field must be filled; a
// submitted form reports 100 percent regardless of optional fields.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*Form, error) {
	f, err := s.repo.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}

	if !f.RequiredComplete() {
		return nil, validate.NewError("form", "all required fields must be filled before submission")
	}

	f.IsCompleted = true
	f.CompletionProgress = 100

	if err := s.repo.UpdateForm(ctx, f); err != nil {
		return nil, fmt.Errorf("submitting onboarding form: %w", err)
	}

	return f, nil
}

func applyParams(f *Form, p SaveParams) {
	if p.ClientID != nil {
		f.ClientID = p.ClientID
	}
	if p.BusinessName != nil {
		f.BusinessName = *p.BusinessName
	}
	if p.ContactName != nil {
		f.ContactName = *p.ContactName
	}
	if p.Phone != nil {
		f.Phone = *p.Phone
	}
	if p.Email != nil {
		f.Email = *p.Email
	}
	if p.ClientType != nil {
		f.ClientType = *p.ClientType
	}
	if p.PreferredCommunication != nil {
		f.PreferredCommunication = *p.PreferredCommunication
	}
	if p.WebSlug != nil {
		f.WebSlug = *p.WebSlug
	}
	if p.Goals != nil {
		f.Goals = *p.Goals
	}
	if p.MonthlyAdBudget != nil {
		f.MonthlyAdBudget = p.MonthlyAdBudget
	}
	if p.Promotions != nil {
		f.Promotions = *p.Promotions
	}
	if p.AssetFileNames != nil {
		f.AssetFileNames = *p.AssetFileNames
	}
	if p.LandingPageChoice != nil {
		f.LandingPageChoice = *p.LandingPageChoice
	}
	if p.Customizations != nil {
		f.Customizations = *p.Customizations
	}
	if p.AdChannels != nil {
		f.AdChannels = p.AdChannels
	}
	if p.FullWebsite != nil {
		f.FullWebsite = p.FullWebsite
	}
	if p.AdditionalContacts != nil {
		f.AdditionalContacts = p.AdditionalContacts
	}
}
