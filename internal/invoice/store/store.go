package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/invoice"
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

const selectInvoiceColumns = `
	i.id, i.client_id, i.invoice_number, i.amount, i.status, i.frequency,
	i.description, i.due_date, i.paid_date,
	i.gateway_invoice_id, i.gateway_customer_id,
	c.business_name, i.created_at, i.updated_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var (
		inv               invoice.Invoice
		description       sql.NullString
		gatewayInvoiceID  sql.NullString
		gatewayCustomerID sql.NullString
	)

	if err := s.Scan(
		&inv.ID, &inv.ClientID, &inv.InvoiceNumber, &inv.Amount, &inv.Status, &inv.Frequency,
		&description, &inv.DueDate, &inv.PaidDate,
		&gatewayInvoiceID, &gatewayCustomerID,
		&inv.ClientName, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Description = description.String
	inv.GatewayInvoiceID = gatewayInvoiceID.String
	inv.GatewayCustomerID = gatewayCustomerID.String

	return &inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (
			client_id, invoice_number, amount, status, frequency,
			description, due_date, paid_date,
			gateway_invoice_id, gateway_customer_id,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.ClientID, inv.InvoiceNumber, inv.Amount, inv.Status, inv.Frequency,
		nullable(inv.Description), inv.DueDate, inv.PaidDate,
		nullable(inv.GatewayInvoiceID), nullable(inv.GatewayCustomerID),
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN clients c ON i.client_id = c.id
		WHERE i.id = $1`

	return s.queryInvoice(ctx, query, id)
}

func (s *Store) FindInvoiceByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN clients c ON i.client_id = c.id
		WHERE i.invoice_number = $1`

	return s.queryInvoice(ctx, query, number)
}

func (s *Store) FindInvoiceByGatewayID(ctx context.Context, gatewayID string) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN clients c ON i.client_id = c.id
		WHERE i.gateway_invoice_id = $1`

	return s.queryInvoice(ctx, query, gatewayID)
}

func (s *Store) queryInvoice(ctx context.Context, query string, arg any) (*invoice.Invoice, error) {
	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN clients c ON i.client_id = c.id
		ORDER BY i.created_at DESC`

	return s.queryInvoices(ctx, query)
}

func (s *Store) ListInvoicesByClient(ctx context.Context, clientID uuid.UUID) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN clients c ON i.client_id = c.id
		WHERE i.client_id = $1
		ORDER BY i.created_at DESC`

	return s.queryInvoices(ctx, query, clientID)
}

func (s *Store) queryInvoices(ctx context.Context, query string, args ...any) ([]*invoice.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invs []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invs = append(invs, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invs, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET status = $1, description = $2, due_date = $3, paid_date = $4,
			gateway_invoice_id = $5, gateway_customer_id = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		inv.Status, nullable(inv.Description), inv.DueDate, inv.PaidDate,
		nullable(inv.GatewayInvoiceID), nullable(inv.GatewayCustomerID), inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

func (s *Store) CountInvoices(ctx context.Context) (int, error) {
	var n int

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}

	return n, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
