package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/client"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectClientColumns = `
	id, business_name, contact_name, email, phone, status, client_type, tags,
	web_slug, notes, preferred_communication, current_payment, proposed_payment,
	upsell_amount, created_at, updated_at
`

// scanClient reads a client row in selectClientColumns order.
func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var phone, clientType, webSlug, notes sql.NullString

	var preferred, current, proposed, upsell sql.NullString

	var statusStr string

	var tags []byte

	if err := s.Scan(
		&c.ID, &c.BusinessName, &c.ContactName, &c.Email, &phone, &statusStr,
		&clientType, &tags, &webSlug, &notes, &preferred, &current, &proposed,
		&upsell, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = client.Status(statusStr)
	c.ClientType = client.ClientType(clientType.String)
	c.Phone = phone.String
	c.WebSlug = webSlug.String
	c.Notes = notes.String
	c.PreferredCommunication = preferred.String
	c.CurrentPayment = current.String
	c.ProposedPayment = proposed.String
	c.UpsellAmount = upsell.String

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &c.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
	}

	return &c, nil
}

func encodeTags(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}

	return data, nil
}

const insertClientQuery = `
	INSERT INTO clients (
		business_name, contact_name, email, phone, status, client_type, tags,
		web_slug, notes, preferred_communication, current_payment,
		proposed_payment, upsell_amount, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	tags, err := encodeTags(c.Tags)
	if err != nil {
		return err
	}

	err = s.db.QueryRowContext(ctx, insertClientQuery,
		c.BusinessName, c.ContactName, c.Email, nullable(c.Phone), c.Status,
		nullable(string(c.ClientType)), tags, nullable(c.WebSlug),
		nullable(c.Notes), c.PreferredCommunication, nullable(c.CurrentPayment),
		nullable(c.ProposedPayment), nullable(c.UpsellAmount),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) FindClientByEmail(ctx context.Context, email string) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE LOWER(email) = LOWER($1)`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("finding client by email: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients`

	var args []any

	if filter.Status != nil {
		query += ` WHERE status = $1`

		args = append(args, *filter.Status)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var cs []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		cs = append(cs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return cs, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	tags, err := encodeTags(c.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE clients
		SET business_name = $1, contact_name = $2, email = $3, phone = $4,
			status = $5, client_type = $6, tags = $7, web_slug = $8, notes = $9,
			preferred_communication = $10, current_payment = $11,
			proposed_payment = $12, upsell_amount = $13, updated_at = NOW()
		WHERE id = $14
	`

	_, err = s.db.ExecContext(ctx, query,
		c.BusinessName, c.ContactName, c.Email, nullable(c.Phone), c.Status,
		nullable(string(c.ClientType)), tags, nullable(c.WebSlug),
		nullable(c.Notes), c.PreferredCommunication, nullable(c.CurrentPayment),
		nullable(c.ProposedPayment), nullable(c.UpsellAmount), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status client.Status) error {
	query := `UPDATE clients SET status = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return client.ErrNotFound
	}

	return nil
}

// DeleteClient removes the client row only. Child rows reference the
// client id without ON DELETE actions and are deliberately orphaned.
func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}

func (s *Store) GetMetrics(ctx context.Context) (*client.Metrics, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'prospect'),
			COUNT(*) FILTER (WHERE status = 'past_due')
		FROM clients
	`

	var m client.Metrics
	if err := s.db.QueryRowContext(ctx, query).Scan(
		&m.TotalClients, &m.ActiveClients, &m.Prospects, &m.Overdue,
	); err != nil {
		return nil, fmt.Errorf("getting client metrics: %w", err)
	}

	return &m, nil
}

// importLockKey serialises batch imports across connections.
func importLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("clients-import"))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (client.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey()); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindByEmails(ctx context.Context, emails []string) ([]*client.Client, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(emails)
	if err != nil {
		return nil, fmt.Errorf("encoding emails: %w", err)
	}

	query := `SELECT ` + selectClientColumns + `
		FROM clients
		WHERE LOWER(email) IN (
			SELECT LOWER(value) FROM jsonb_array_elements_text($1::jsonb) AS t(value)
		)`

	rows, err := itx.tx.QueryContext(ctx, query, data)
	if err != nil {
		return nil, fmt.Errorf("finding clients by email: %w", err)
	}
	defer rows.Close()

	var cs []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		cs = append(cs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return cs, nil
}

func (itx *importTx) CreateClients(ctx context.Context, cs []*client.Client) error {
	for _, c := range cs {
		tags, err := encodeTags(c.Tags)
		if err != nil {
			return err
		}

		err = itx.tx.QueryRowContext(ctx, insertClientQuery,
			c.BusinessName, c.ContactName, c.Email, nullable(c.Phone), c.Status,
			nullable(string(c.ClientType)), tags, nullable(c.WebSlug),
			nullable(c.Notes), c.PreferredCommunication, nullable(c.CurrentPayment),
			nullable(c.ProposedPayment), nullable(c.UpsellAmount),
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}
	}

	return nil
}

func (itx *importTx) UpdateClients(ctx context.Context, cs []*client.Client) error {
	query := `
		UPDATE clients
		SET status = $1, client_type = $2, current_payment = $3,
			proposed_payment = $4, upsell_amount = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
	`

	for _, c := range cs {
		_, err := itx.tx.ExecContext(ctx, query,
			c.Status, nullable(string(c.ClientType)), nullable(c.CurrentPayment),
			nullable(c.ProposedPayment), nullable(c.UpsellAmount),
			nullable(c.Notes), c.ID,
		)
		if err != nil {
			return fmt.Errorf("updating client: %w", err)
		}
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
