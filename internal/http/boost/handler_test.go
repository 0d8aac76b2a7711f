package boost

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowlnow/crm/internal/boost"
)

type mockRepo struct {
	getFunc    func(ctx context.Context, clientID uuid.UUID) (*boost.BoostClient, error)
	updateFunc func(ctx context.Context, b *boost.BoostClient) error
}

func (m *mockRepo) CreateBoostClient(ctx context.Context, b *boost.BoostClient) error {
	return nil
}

func (m *mockRepo) GetBoostClient(ctx context.Context, clientID uuid.UUID) (*boost.BoostClient, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, clientID)
	}

	return nil, boost.ErrNotFound
}

func (m *mockRepo) ListBoostClients(ctx context.Context) ([]*boost.BoostClient, error) {
	return nil, nil
}

func (m *mockRepo) UpdateBoostClient(ctx context.Context, b *boost.BoostClient) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, b)
	}

	return nil
}

func TestHandler_UpdateByClient_MilestoneDates(t *testing.T) {
	clientID := uuid.New()
	kickoff := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	var persisted *boost.BoostClient

	repo := &mockRepo{
		getFunc: func(_ context.Context, id uuid.UUID) (*boost.BoostClient, error) {
			require.Equal(t, clientID, id)
			return &boost.BoostClient{ClientID: clientID}, nil
		},
		updateFunc: func(_ context.Context, b *boost.BoostClient) error {
			persisted = b
			return nil
		},
	}

	h := NewHandler(boost.NewService(repo))

	router := chi.NewRouter()
	router.Route("/boost-clients", h.Routes)

	body, err := json.Marshal(map[string]any{
		"kickoffCallCompleted": true,
		"kickoffCallDate":      kickoff,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/boost-clients/"+clientID.String(), bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, persisted)
	assert.True(t, persisted.KickoffCallCompleted)
	require.NotNil(t, persisted.KickoffCallDate)
	assert.True(t, persisted.KickoffCallDate.Equal(kickoff), "the supplied date must reach the service")

	var resp boostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 20, resp.ProgressPercentage)
}
