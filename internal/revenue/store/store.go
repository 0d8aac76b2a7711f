package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/revenue"
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

const selectRecordColumns = `
	r.id, r.client_id, r.package_type, r.start_date,
	r.monthly_recurring_revenue, r.one_time_charges, r.total_paid,
	r.is_active, c.business_name, r.created_at, r.updated_at
`

func scanRecord(s scanner) (*revenue.Record, error) {
	var r revenue.Record

	if err := s.Scan(
		&r.ID, &r.ClientID, &r.PackageType, &r.StartDate,
		&r.MonthlyRecurringRevenue, &r.OneTimeCharges, &r.TotalPaid,
		&r.IsActive, &r.ClientName, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &r, nil
}

func (s *Store) CreateRecord(ctx context.Context, r *revenue.Record) error {
	query := `
		INSERT INTO revenue (
			client_id, package_type, start_date,
			monthly_recurring_revenue, one_time_charges, total_paid,
			is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.ClientID, r.PackageType, r.StartDate,
		r.MonthlyRecurringRevenue, r.OneTimeCharges, r.TotalPaid,
		r.IsActive,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating revenue record: %w", err)
	}

	return nil
}

func (s *Store) GetRecord(ctx context.Context, id uuid.UUID) (*revenue.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM revenue r
		JOIN clients c ON r.client_id = c.id
		WHERE r.id = $1`

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, revenue.ErrNotFound
		}

		return nil, fmt.Errorf("getting revenue record: %w", err)
	}

	return r, nil
}

func (s *Store) ListRecords(ctx context.Context) ([]*revenue.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM revenue r
		JOIN clients c ON r.client_id = c.id
		ORDER BY r.start_date DESC`

	return s.queryRecords(ctx, query)
}

func (s *Store) ListRecordsByClient(ctx context.Context, clientID uuid.UUID) ([]*revenue.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM revenue r
		JOIN clients c ON r.client_id = c.id
		WHERE r.client_id = $1
		ORDER BY r.start_date DESC`

	return s.queryRecords(ctx, query, clientID)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]*revenue.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing revenue records: %w", err)
	}
	defer rows.Close()

	var rs []*revenue.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning revenue record: %w", err)
		}

		rs = append(rs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revenue rows: %w", err)
	}

	return rs, nil
}

func (s *Store) UpdateRecord(ctx context.Context, r *revenue.Record) error {
	query := `
		UPDATE revenue
		SET package_type = $1, start_date = $2,
			monthly_recurring_revenue = $3, one_time_charges = $4,
			total_paid = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		r.PackageType, r.StartDate,
		r.MonthlyRecurringRevenue, r.OneTimeCharges,
		r.TotalPaid, r.IsActive, r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating revenue record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating revenue record: %w", err)
	}

	if n == 0 {
		return revenue.ErrNotFound
	}

	return nil
}
