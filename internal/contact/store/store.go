package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/contact"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectContactColumns = `id, client_id, name, email, phone, role, is_primary, created_at`

func scanContact(s scanner) (*contact.Contact, error) {
	var (
		c     contact.Contact
		email sql.NullString
		phone sql.NullString
		role  sql.NullString
	)

	if err := s.Scan(&c.ID, &c.ClientID, &c.Name, &email, &phone, &role, &c.IsPrimary, &c.CreatedAt); err != nil {
		return nil, err
	}

	c.Email = email.String
	c.Phone = phone.String
	c.Role = role.String

	return &c, nil
}

func (s *Store) CreateContact(ctx context.Context, c *contact.Contact) error {
	query := `
		INSERT INTO contacts (client_id, name, email, phone, role, is_primary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.ClientID, c.Name, nullable(c.Email), nullable(c.Phone), nullable(c.Role), c.IsPrimary,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating contact: %w", err)
	}

	return nil
}

func (s *Store) GetContact(ctx context.Context, id uuid.UUID) (*contact.Contact, error) {
	query := `SELECT ` + selectContactColumns + ` FROM contacts WHERE id = $1`

	c, err := scanContact(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contact.ErrNotFound
		}

		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return c, nil
}

func (s *Store) ListContactsByClient(ctx context.Context, clientID uuid.UUID) ([]*contact.Contact, error) {
	query := `SELECT ` + selectContactColumns + `
		FROM contacts
		WHERE client_id = $1
		ORDER BY is_primary DESC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var cs []*contact.Contact

	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		cs = append(cs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact rows: %w", err)
	}

	return cs, nil
}

func (s *Store) UpdateContact(ctx context.Context, c *contact.Contact) error {
	query := `
		UPDATE contacts
		SET name = $1, email = $2, phone = $3, role = $4, is_primary = $5
		WHERE id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		c.Name, nullable(c.Email), nullable(c.Phone), nullable(c.Role), c.IsPrimary, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}

	if n == 0 {
		return contact.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteContact(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	if n == 0 {
		return contact.ErrNotFound
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
