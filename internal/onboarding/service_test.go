package onboarding

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowlnow/crm/internal/validate"
)

type mockRepo struct {
	createFunc      func(ctx context.Context, f *Form) error
	getFunc         func(ctx context.Context, id uuid.UUID) (*Form, error)
	getByClientFunc func(ctx context.Context, clientID uuid.UUID) (*Form, error)
	listFunc        func(ctx context.Context) ([]*Form, error)
	updateFunc      func(ctx context.Context, f *Form) error
}

func (m *mockRepo) CreateForm(ctx context.Context, f *Form) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, f)
	}

	return nil
}

func (m *mockRepo) GetForm(ctx context.Context, id uuid.UUID) (*Form, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}

	return nil, ErrNotFound
}

func (m *mockRepo) GetFormByClient(ctx context.Context, clientID uuid.UUID) (*Form, error) {
	if m.getByClientFunc != nil {
		return m.getByClientFunc(ctx, clientID)
	}

	return nil, ErrNotFound
}

func (m *mockRepo) ListForms(ctx context.Context) ([]*Form, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}

	return nil, nil
}

func (m *mockRepo) UpdateForm(ctx context.Context, f *Form) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, f)
	}

	return nil
}

func str(s string) *string { return &s }

func fullForm() *Form {
	budget := decimal.NewFromInt(1500)
	website := true

	return &Form{
		BusinessName:      "Holiday Bowl",
		ContactName:       "Pat Smith",
		Phone:             "555-0101",
		Email:             "pat@holidaybowl.com",
		ClientType:        "bowling_center",
		WebSlug:           "holiday-bowl",
		Goals:             "More league sign-ups",
		MonthlyAdBudget:   &budget,
		Promotions:        "2-for-1 Tuesdays",
		AssetFileNames:    "logo.png, storefront.jpg",
		LandingPageChoice: "template_a",
		Customizations:    "Brand colors",
		AdChannels:        []string{"meta", "google"},
		FullWebsite:       &website,
	}
}

func TestForm_Progress(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, 0, (&Form{}).Progress())
	})

	t.Run("AllTwelve", func(t *testing.T) {
		assert.Equal(t, 100, fullForm().Progress())
	})

	t.Run("HalfFilled", func(t *testing.T) {
		f := &Form{
			BusinessName: "Holiday Bowl",
			ContactName:  "Pat Smith",
			Phone:        "555-0101",
			Email:        "pat@holidaybowl.com",
			ClientType:   "bowling_center",
			Goals:        "More league sign-ups",
		}
		assert.Equal(t, 50, f.Progress())
	})

	t.Run("ZeroBudgetDoesNotCount", func(t *testing.T) {
		zero := decimal.Zero
		f := &Form{MonthlyAdBudget: &zero}
		assert.Equal(t, 0, f.Progress())
	})

	t.Run("SlugAndAssetsCount", func(t *testing.T) {
		f := &Form{
			BusinessName:   "Holiday Bowl",
			ContactName:    "Pat Smith",
			Phone:          "555-0101",
			Email:          "pat@holidaybowl.com",
			ClientType:     "bowling_center",
			WebSlug:        "holiday-bowl",
			AssetFileNames: "logo.png",
		}
		assert.Equal(t, 58, f.Progress(), "7 of 12 fields")
	})

	t.Run("AdChannelsAndWebsiteFlagDoNotCount", func(t *testing.T) {
		website := true
		f := &Form{
			AdChannels:  []string{"meta", "google"},
			FullWebsite: &website,
		}
		assert.Equal(t, 0, f.Progress())
	})
}

func TestService_Save_RecomputesProgress(t *testing.T) {
	id := uuid.New()

	var persisted *Form

	svc := NewService(&mockRepo{
		getFunc: func(_ context.Context, _ uuid.UUID) (*Form, error) {
			return &Form{ID: id, BusinessName: "Holiday Bowl", CompletionProgress: 99}, nil
		},
		updateFunc: func(_ context.Context, f *Form) error {
			persisted = f
			return nil
		},
	})

	f, err := svc.Save(context.Background(), id, SaveParams{
		ContactName: str("Pat Smith"),
		Phone:       str("555-0101"),
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.Equal(t, 25, f.CompletionProgress, "3 of 12 fields")
	assert.Equal(t, "Holiday Bowl", f.BusinessName, "omitted fields keep their values")
}

func TestService_Save_CompletedFormStaysAtHundred(t *testing.T) {
	svc := NewService(&mockRepo{
		getFunc: func(_ context.Context, _ uuid.UUID) (*Form, error) {
			f := fullForm()
			f.IsCompleted = true
			f.CompletionProgress = 100
			return f, nil
		},
	})

	f, err := svc.Save(context.Background(), uuid.New(), SaveParams{
		Goals: str(""),
	})
	require.NoError(t, err)

	assert.Equal(t, 100, f.CompletionProgress)
	assert.True(t, f.IsCompleted)
}

func TestService_Submit(t *testing.T) {
	var persisted *Form

	svc := NewService(&mockRepo{
		getFunc: func(_ context.Context, _ uuid.UUID) (*Form, error) {
			return &Form{
				BusinessName: "Holiday Bowl",
				ContactName:  "Pat Smith",
				Phone:        "555-0101",
				Email:        "pat@holidaybowl.com",
				ClientType:   "bowling_center",
			}, nil
		},
		updateFunc: func(_ context.Context, f *Form) error {
			persisted = f
			return nil
		},
	})

	f, err := svc.Submit(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.True(t, f.IsCompleted)
	assert.Equal(t, 100, f.CompletionProgress, "submission overrides field-based progress")
}

func TestService_Submit_MissingRequiredField(t *testing.T) {
	svc := NewService(&mockRepo{
		getFunc: func(_ context.Context, _ uuid.UUID) (*Form, error) {
			return &Form{
				BusinessName: "Holiday Bowl",
				ContactName:  "Pat Smith",
			}, nil
		},
		updateFunc: func(_ context.Context, _ *Form) error {
			t.Fatal("incomplete forms must not be submitted")
			return nil
		},
	})

	_, err := svc.Submit(context.Background(), uuid.New())

	var verr *validate.Error
	assert.ErrorAs(t, err, &verr)
}

func TestService_Create(t *testing.T) {
	var persisted *Form

	svc := NewService(&mockRepo{
		createFunc: func(_ context.Context, f *Form) error {
			persisted = f
			return nil
		},
	})

	f, err := svc.Create(context.Background(), SaveParams{
		BusinessName: str("Holiday Bowl"),
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.Equal(t, 8, f.CompletionProgress, "1 of 12 fields rounds to 8")
	assert.False(t, f.IsCompleted)
}
