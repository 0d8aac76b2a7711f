package invoice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/validate"
)

type mockRepo struct {
	createFunc          func(ctx context.Context, inv *Invoice) error
	getFunc             func(ctx context.Context, id uuid.UUID) (*Invoice, error)
	findByNumberFunc    func(ctx context.Context, number string) (*Invoice, error)
	findByGatewayIDFunc func(ctx context.Context, gatewayID string) (*Invoice, error)
	listFunc            func(ctx context.Context) ([]*Invoice, error)
	listByClientFunc    func(ctx context.Context, clientID uuid.UUID) ([]*Invoice, error)
	updateFunc          func(ctx context.Context, inv *Invoice) error
	countFunc           func(ctx context.Context) (int, error)
}

func (m *mockRepo) CreateInvoice(ctx context.Context, inv *Invoice) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, inv)
	}

	return nil
}

func (m *mockRepo) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}

	return nil, ErrNotFound
}

func (m *mockRepo) FindInvoiceByNumber(ctx context.Context, number string) (*Invoice, error) {
	if m.findByNumberFunc != nil {
		return m.findByNumberFunc(ctx, number)
	}

	return nil, ErrNotFound
}

func (m *mockRepo) FindInvoiceByGatewayID(ctx context.Context, gatewayID string) (*Invoice, error) {
	if m.findByGatewayIDFunc != nil {
		return m.findByGatewayIDFunc(ctx, gatewayID)
	}

	return nil, ErrNotFound
}

func (m *mockRepo) ListInvoices(ctx context.Context) ([]*Invoice, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}

	return nil, nil
}

func (m *mockRepo) ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]*Invoice, error) {
	if m.listByClientFunc != nil {
		return m.listByClientFunc(ctx, clientID)
	}

	return nil, nil
}

func (m *mockRepo) UpdateInvoice(ctx context.Context, inv *Invoice) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, inv)
	}

	return nil
}

func (m *mockRepo) CountInvoices(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}

	return 0, nil
}

type mockDirectory struct {
	getFunc         func(ctx context.Context, id uuid.UUID) (*client.Client, error)
	findByEmailFunc func(ctx context.Context, email string) (*client.Client, error)
}

func (m *mockDirectory) Get(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}

	return nil, client.ErrNotFound
}

func (m *mockDirectory) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}

	return nil, client.ErrNotFound
}

type fakeGateway struct {
	customerID     string
	customerErr    error
	invoiceID      string
	invoiceErr     error
	listed         []*GatewayInvoice
	listErr        error
	createdInvoice *Invoice
}

func (g *fakeGateway) EnsureCustomer(_ context.Context, _ *client.Client) (string, error) {
	return g.customerID, g.customerErr
}

func (g *fakeGateway) CreateInvoice(_ context.Context, _ string, inv *Invoice) (*GatewayInvoice, error) {
	if g.invoiceErr != nil {
		return nil, g.invoiceErr
	}

	g.createdInvoice = inv

	return &GatewayInvoice{ID: g.invoiceID}, nil
}

func (g *fakeGateway) ListInvoices(_ context.Context) ([]*GatewayInvoice, error) {
	return g.listed, g.listErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func directoryFor(c *client.Client) *mockDirectory {
	return &mockDirectory{
		getFunc: func(_ context.Context, id uuid.UUID) (*client.Client, error) {
			if id == c.ID {
				return c, nil
			}

			return nil, client.ErrNotFound
		},
		findByEmailFunc: func(_ context.Context, email string) (*client.Client, error) {
			if email == c.Email {
				return c, nil
			}

			return nil, client.ErrNotFound
		},
	}
}

func TestService_Create(t *testing.T) {
	c := &client.Client{ID: uuid.New(), BusinessName: "Holiday Bowl", Email: "owner@holidaybowl.com"}

	var persisted *Invoice

	repo := &mockRepo{
		countFunc: func(_ context.Context) (int, error) { return 7, nil },
		createFunc: func(_ context.Context, inv *Invoice) error {
			persisted = inv
			return nil
		},
	}
	gw := &fakeGateway{customerID: "cus_123", invoiceID: "in_456"}

	svc := NewService(repo, gw, directoryFor(c), testLogger())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

	res, err := svc.Create(context.Background(), CreateParams{
		ClientID:  c.ID,
		Amount:    decimal.NewFromInt(550),
		Frequency: "monthly",
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.NoError(t, res.GatewayErr)
	assert.Equal(t, "INV-2025-008", res.Invoice.InvoiceNumber)
	assert.Equal(t, StatusPending, res.Invoice.Status)
	assert.Equal(t, FrequencyMonthly, res.Invoice.Frequency)
	assert.Equal(t, "cus_123", res.Invoice.GatewayCustomerID)
	assert.Equal(t, "in_456", res.Invoice.GatewayInvoiceID)
}

func TestService_Create_GatewayFailureDegradesToLocal(t *testing.T) {
	c := &client.Client{ID: uuid.New(), BusinessName: "Holiday Bowl"}

	var persisted *Invoice

	repo := &mockRepo{
		createFunc: func(_ context.Context, inv *Invoice) error {
			persisted = inv
			return nil
		},
	}
	gw := &fakeGateway{customerErr: errors.New("gateway unreachable")}

	svc := NewService(repo, gw, directoryFor(c), testLogger())

	res, err := svc.Create(context.Background(), CreateParams{
		ClientID: c.ID,
		Amount:   decimal.NewFromInt(100),
	})
	require.NoError(t, err, "gateway failure must not fail invoice creation")
	require.NotNil(t, persisted, "invoice is still persisted locally")

	assert.Error(t, res.GatewayErr)
	assert.Empty(t, res.Invoice.GatewayInvoiceID)
}

func TestService_Create_NoGateway(t *testing.T) {
	c := &client.Client{ID: uuid.New()}

	repo := &mockRepo{}
	svc := NewService(repo, nil, directoryFor(c), testLogger())

	res, err := svc.Create(context.Background(), CreateParams{
		ClientID: c.ID,
		Amount:   decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.NoError(t, res.GatewayErr)
	assert.Empty(t, res.Invoice.GatewayInvoiceID)
}

func TestService_Create_Invalid(t *testing.T) {
	svc := NewService(&mockRepo{}, nil, &mockDirectory{}, testLogger())

	_, err := svc.Create(context.Background(), CreateParams{
		ClientID: uuid.New(),
		Amount:   decimal.Zero,
	})

	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount")

	_, err = svc.Create(context.Background(), CreateParams{
		ClientID:  uuid.New(),
		Amount:    decimal.NewFromInt(10),
		Frequency: "weekly",
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "frequency")
}

func TestService_MarkPaidByGatewayID(t *testing.T) {
	now := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	var persisted *Invoice

	repo := &mockRepo{
		findByGatewayIDFunc: func(_ context.Context, gatewayID string) (*Invoice, error) {
			require.Equal(t, "in_456", gatewayID)

			return &Invoice{GatewayInvoiceID: gatewayID, Status: StatusPending}, nil
		},
		updateFunc: func(_ context.Context, inv *Invoice) error {
			persisted = inv
			return nil
		},
	}

	svc := NewService(repo, nil, &mockDirectory{}, testLogger())
	svc.now = func() time.Time { return now }

	inv, err := svc.MarkPaidByGatewayID(context.Background(), "in_456")
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.Equal(t, StatusPaid, inv.Status)
	require.NotNil(t, inv.PaidDate)
	assert.Equal(t, now, *inv.PaidDate)
}

func TestService_MarkPaidByGatewayID_UnknownInvoiceIgnored(t *testing.T) {
	repo := &mockRepo{
		updateFunc: func(_ context.Context, _ *Invoice) error {
			t.Fatal("nothing to update for an unknown gateway invoice")
			return nil
		},
	}

	svc := NewService(repo, nil, &mockDirectory{}, testLogger())

	inv, err := svc.MarkPaidByGatewayID(context.Background(), "in_unknown")
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestService_SyncFromGateway(t *testing.T) {
	c := &client.Client{ID: uuid.New(), Email: "owner@holidaybowl.com"}

	known := &Invoice{GatewayInvoiceID: "in_known"}
	var created []*Invoice

	repo := &mockRepo{
		findByGatewayIDFunc: func(_ context.Context, gatewayID string) (*Invoice, error) {
			if gatewayID == known.GatewayInvoiceID {
				return known, nil
			}

			return nil, ErrNotFound
		},
		countFunc: func(_ context.Context) (int, error) { return 2, nil },
		createFunc: func(_ context.Context, inv *Invoice) error {
			created = append(created, inv)
			return nil
		},
	}

	gw := &fakeGateway{
		listed: []*GatewayInvoice{
			{ID: "in_known", CustomerEmail: c.Email, AmountDue: decimal.NewFromInt(100)},
			{ID: "in_new", CustomerID: "cus_9", CustomerEmail: c.Email, AmountDue: decimal.NewFromInt(250), Status: "paid", CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "in_stranger", CustomerEmail: "nobody@example.com", AmountDue: decimal.NewFromInt(50)},
		},
	}

	svc := NewService(repo, gw, directoryFor(c), testLogger())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

	res, err := svc.SyncFromGateway(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Skipped)

	require.Len(t, created, 1)
	imported := created[0]
	assert.Equal(t, "STRIPE-2025-003", imported.InvoiceNumber)
	assert.Equal(t, c.ID, imported.ClientID)
	assert.Equal(t, StatusPaid, imported.Status)
	require.NotNil(t, imported.PaidDate)
	assert.Equal(t, "in_new", imported.GatewayInvoiceID)
}

func TestService_SyncFromGateway_NoGateway(t *testing.T) {
	svc := NewService(&mockRepo{}, nil, &mockDirectory{}, testLogger())

	_, err := svc.SyncFromGateway(context.Background())
	assert.Error(t, err)
}

func TestService_Update_StatusTransitions(t *testing.T) {
	paid := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := &mockRepo{
		getFunc: func(_ context.Context, _ uuid.UUID) (*Invoice, error) {
			return &Invoice{Status: StatusPaid, PaidDate: &paid}, nil
		},
	}

	svc := NewService(repo, nil, &mockDirectory{}, testLogger())

	status := "canceled"

	inv, err := svc.Update(context.Background(), uuid.New(), UpdateParams{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusCanceled, inv.Status)
	assert.Nil(t, inv.PaidDate, "leaving paid clears the paid date")
}
