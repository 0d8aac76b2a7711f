package boost

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	getFunc    func(ctx context.Context, clientID uuid.UUID) (*BoostClient, error)
	updateFunc func(ctx context.Context, b *BoostClient) error
	createFunc func(ctx context.Context, b *BoostClient) error
	listFunc   func(ctx context.Context) ([]*BoostClient, error)
}

func (m *mockRepo) CreateBoostClient(ctx context.Context, b *BoostClient) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}

	return nil
}

func (m *mockRepo) GetBoostClient(ctx context.Context, clientID uuid.UUID) (*BoostClient, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, clientID)
	}

	return nil, ErrNotFound
}

func (m *mockRepo) ListBoostClients(ctx context.Context) ([]*BoostClient, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}

	return nil, nil
}

func (m *mockRepo) UpdateBoostClient(ctx context.Context, b *BoostClient) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, b)
	}

	return nil
}

func TestBoostClient_Progress(t *testing.T) {
	b := &BoostClient{}
	assert.Equal(t, 0, b.Progress())

	b.KickoffCallCompleted = true
	assert.Equal(t, 20, b.Progress())

	b.LandingPagesLive = true
	assert.Equal(t, 40, b.Progress())

	b.MetaAdsLive = true
	b.GoogleAdsLive = true
	b.WebsiteLive = true
	assert.Equal(t, 100, b.Progress())
}

func TestService_GetByClient_RecomputesStoredProgress(t *testing.T) {
	clientID := uuid.New()

	// The stored percentage is stale on purpose: consumers must never
	// trust it.
	repo := &mockRepo{
		getFunc: func(_ context.Context, id uuid.UUID) (*BoostClient, error) {
			require.Equal(t, clientID, id)

			return &BoostClient{
				ClientID:             clientID,
				KickoffCallCompleted: true,
				LandingPagesLive:     true,
				ProgressPercentage:   95,
			}, nil
		},
	}

	svc := NewService(repo)

	b, err := svc.GetByClient(context.Background(), clientID)
	require.NoError(t, err)
	assert.Equal(t, 40, b.ProgressPercentage)
}

func TestService_UpdateByClient(t *testing.T) {
	clientID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var persisted *BoostClient

	repo := &mockRepo{
		getFunc: func(_ context.Context, _ uuid.UUID) (*BoostClient, error) {
			return &BoostClient{
				ClientID:             clientID,
				KickoffCallCompleted: true,
			}, nil
		},
		updateFunc: func(_ context.Context, b *BoostClient) error {
			persisted = b
			return nil
		},
	}

	svc := NewService(repo)
	svc.now = func() time.Time { return now }

	flag := true

	b, err := svc.UpdateByClient(context.Background(), clientID, UpdateParams{
		LandingPagesLive: &flag,
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.True(t, b.LandingPagesLive)
	require.NotNil(t, b.LandingPagesDate)
	assert.Equal(t, now, *b.LandingPagesDate)
	assert.Equal(t, 40, persisted.ProgressPercentage)
}

func TestService_UpdateByClient_CallerSuppliedDate(t *testing.T) {
	supplied := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	repo := &mockRepo{
		getFunc: func(_ context.Context, _ uuid.UUID) (*BoostClient, error) {
			return &BoostClient{}, nil
		},
	}

	svc := NewService(repo)
	svc.now = func() time.Time {
		t.Fatal("a caller-supplied date must not be replaced")
		return time.Time{}
	}

	flag := true

	b, err := svc.UpdateByClient(context.Background(), uuid.New(), UpdateParams{
		MetaAdsLive: &flag,
		MetaAdsDate: &supplied,
	})
	require.NoError(t, err)

	require.NotNil(t, b.MetaAdsDate)
	assert.Equal(t, supplied, *b.MetaAdsDate)
}

func TestService_UpdateByClient_UnsettingMilestoneClearsDate(t *testing.T) {
	completed := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	repo := &mockRepo{
		getFunc: func(_ context.Context, _ uuid.UUID) (*BoostClient, error) {
			return &BoostClient{
				KickoffCallCompleted: true,
				KickoffCallDate:      &completed,
			}, nil
		},
	}

	svc := NewService(repo)

	flag := false

	b, err := svc.UpdateByClient(context.Background(), uuid.New(), UpdateParams{
		KickoffCallCompleted: &flag,
	})
	require.NoError(t, err)

	assert.False(t, b.KickoffCallCompleted)
	assert.Nil(t, b.KickoffCallDate)
	assert.Equal(t, 0, b.ProgressPercentage)
}
