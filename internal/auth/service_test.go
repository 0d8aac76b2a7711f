package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepo struct {
	createFunc func(ctx context.Context, u *User) error
	findFunc   func(ctx context.Context, username string) (*User, error)
}

func (m *mockRepo) CreateUser(ctx context.Context, u *User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}

	return nil
}

func (m *mockRepo) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, username)
	}

	return nil, ErrUserNotFound
}

func userWithPassword(t *testing.T, password string) *User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &User{
		ID:           uuid.New(),
		Username:     "owner",
		PasswordHash: string(hash),
	}
}

func TestService_Authenticate(t *testing.T) {
	u := userWithPassword(t, "correct horse battery")

	svc := NewService(&mockRepo{
		findFunc: func(_ context.Context, username string) (*User, error) {
			require.Equal(t, "owner", username)
			return u, nil
		},
	}, "test-secret", time.Hour)

	token, err := svc.Authenticate(context.Background(), "owner", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "owner", claims.Username)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	u := userWithPassword(t, "correct horse battery")

	svc := NewService(&mockRepo{
		findFunc: func(_ context.Context, _ string) (*User, error) { return u, nil },
	}, "test-secret", time.Hour)

	_, err := svc.Authenticate(context.Background(), "owner", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	svc := NewService(&mockRepo{}, "test-secret", time.Hour)

	_, err := svc.Authenticate(context.Background(), "nobody", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown user reads the same as a bad password")
}

func TestService_VerifyToken_Expired(t *testing.T) {
	u := userWithPassword(t, "pw12345678")

	svc := NewService(&mockRepo{
		findFunc: func(_ context.Context, _ string) (*User, error) { return u, nil },
	}, "test-secret", time.Minute)

	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Authenticate(context.Background(), "owner", "pw12345678")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_VerifyToken_WrongSecret(t *testing.T) {
	u := userWithPassword(t, "pw12345678")

	issuer := NewService(&mockRepo{
		findFunc: func(_ context.Context, _ string) (*User, error) { return u, nil },
	}, "secret-a", time.Hour)

	token, err := issuer.Authenticate(context.Background(), "owner", "pw12345678")
	require.NoError(t, err)

	verifier := NewService(&mockRepo{}, "secret-b", time.Hour)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Register_Validation(t *testing.T) {
	svc := NewService(&mockRepo{
		createFunc: func(_ context.Context, _ *User) error {
			t.Fatal("invalid registrations must not reach the store")
			return nil
		},
	}, "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), RegisterParams{
		Username: "ab",
		Password: "short",
	})
	assert.Error(t, err)
}
