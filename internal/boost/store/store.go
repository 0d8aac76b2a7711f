package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/boost"
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

const selectBoostColumns = `
	b.id, b.client_id, b.kickoff_call_completed, b.kickoff_call_date,
	b.landing_pages_live, b.landing_pages_date, b.meta_ads_live, b.meta_ads_date,
	b.google_ads_live, b.google_ads_date, b.website_live, b.website_date,
	b.progress_percentage, c.business_name, b.created_at, b.updated_at
`

func scanBoostClient(s scanner) (*boost.BoostClient, error) {
	var b boost.BoostClient

	if err := s.Scan(
		&b.ID, &b.ClientID, &b.KickoffCallCompleted, &b.KickoffCallDate,
		&b.LandingPagesLive, &b.LandingPagesDate, &b.MetaAdsLive, &b.MetaAdsDate,
		&b.GoogleAdsLive, &b.GoogleAdsDate, &b.WebsiteLive, &b.WebsiteDate,
		&b.ProgressPercentage, &b.ClientName, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &b, nil
}

func (s *Store) CreateBoostClient(ctx context.Context, b *boost.BoostClient) error {
	query := `
		INSERT INTO boost_clients (
			client_id, kickoff_call_completed, kickoff_call_date,
			landing_pages_live, landing_pages_date, meta_ads_live, meta_ads_date,
			google_ads_live, google_ads_date, website_live, website_date,
			progress_percentage, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.ClientID, b.KickoffCallCompleted, b.KickoffCallDate,
		b.LandingPagesLive, b.LandingPagesDate, b.MetaAdsLive, b.MetaAdsDate,
		b.GoogleAdsLive, b.GoogleAdsDate, b.WebsiteLive, b.WebsiteDate,
		b.ProgressPercentage,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating boost client: %w", err)
	}

	return nil
}

func (s *Store) GetBoostClient(ctx context.Context, clientID uuid.UUID) (*boost.BoostClient, error) {
	query := `SELECT ` + selectBoostColumns + `
		FROM boost_clients b
		JOIN clients c ON b.client_id = c.id
		WHERE b.client_id = $1`

	b, err := scanBoostClient(s.db.QueryRowContext(ctx, query, clientID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, boost.ErrNotFound
		}

		return nil, fmt.Errorf("getting boost client: %w", err)
	}

	return b, nil
}

func (s *Store) ListBoostClients(ctx context.Context) ([]*boost.BoostClient, error) {
	query := `SELECT ` + selectBoostColumns + `
		FROM boost_clients b
		JOIN clients c ON b.client_id = c.id
		ORDER BY b.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing boost clients: %w", err)
	}
	defer rows.Close()

	var bs []*boost.BoostClient

	for rows.Next() {
		b, err := scanBoostClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning boost client: %w", err)
		}

		bs = append(bs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boost client rows: %w", err)
	}

	return bs, nil
}

func (s *Store) UpdateBoostClient(ctx context.Context, b *boost.BoostClient) error {
	query := `
		UPDATE boost_clients
		SET kickoff_call_completed = $1, kickoff_call_date = $2,
			landing_pages_live = $3, landing_pages_date = $4,
			meta_ads_live = $5, meta_ads_date = $6,
			google_ads_live = $7, google_ads_date = $8,
			website_live = $9, website_date = $10,
			progress_percentage = $11, updated_at = NOW()
		WHERE client_id = $12
	`

	_, err := s.db.ExecContext(ctx, query,
		b.KickoffCallCompleted, b.KickoffCallDate,
		b.LandingPagesLive, b.LandingPagesDate,
		b.MetaAdsLive, b.MetaAdsDate,
		b.GoogleAdsLive, b.GoogleAdsDate,
		b.WebsiteLive, b.WebsiteDate,
		b.ProgressPercentage, b.ClientID,
	)
	if err != nil {
		return fmt.Errorf("updating boost client: %w", err)
	}

	return nil
}
