package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/bowlnow/crm/internal/onboarding"
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

const selectFormColumns = `
	id, client_id, business_name, contact_name, phone, email, client_type,
	preferred_communication, web_slug, goals, monthly_ad_budget, promotions,
	asset_file_names, landing_page_choice, customizations, ad_channels,
	full_website, additional_contacts, completion_progress, is_completed,
	created_at, updated_at
`

func scanForm(s scanner) (*onboarding.Form, error) {
	var (
		f                  onboarding.Form
		businessName       sql.NullString
		contactName        sql.NullString
		phone              sql.NullString
		email              sql.NullString
		clientType         sql.NullString
		preferredComm      sql.NullString
		webSlug            sql.NullString
		goals              sql.NullString
		promotions         sql.NullString
		assetFileNames     sql.NullString
		landingPageChoice  sql.NullString
		customizations     sql.NullString
		adChannels         []byte
		additionalContacts []byte
	)

	if err := s.Scan(
		&f.ID, &f.ClientID, &businessName, &contactName, &phone, &email, &clientType,
		&preferredComm, &webSlug, &goals, &f.MonthlyAdBudget, &promotions,
		&assetFileNames, &landingPageChoice, &customizations, &adChannels,
		&f.FullWebsite, &additionalContacts, &f.CompletionProgress, &f.IsCompleted,
		&f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	f.BusinessName = businessName.String
	f.ContactName = contactName.String
	f.Phone = phone.String
	f.Email = email.String
	f.ClientType = clientType.String
	f.PreferredCommunication = preferredComm.String
	f.WebSlug = webSlug.String
	f.Goals = goals.String
	f.Promotions = promotions.String
	f.AssetFileNames = assetFileNames.String
	f.LandingPageChoice = landingPageChoice.String
	f.Customizations = customizations.String

	if len(adChannels) > 0 {
		if err := json.Unmarshal(adChannels, &f.AdChannels); err != nil {
			return nil, fmt.Errorf("decoding ad channels: %w", err)
		}
	}
	if len(additionalContacts) > 0 {
		if err := json.Unmarshal(additionalContacts, &f.AdditionalContacts); err != nil {
			return nil, fmt.Errorf("decoding additional contacts: %w", err)
		}
	}

	return &f, nil
}

func encodeJSON(v any, empty bool) (any, error) {
	if empty {
		return nil, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Store) CreateForm(ctx context.Context, f *onboarding.Form) error {
	adChannels, err := encodeJSON(f.AdChannels, len(f.AdChannels) == 0)
	if err != nil {
		return fmt.Errorf("encoding ad channels: %w", err)
	}

	contacts, err := encodeJSON(f.AdditionalContacts, len(f.AdditionalContacts) == 0)
	if err != nil {
		return fmt.Errorf("encoding additional contacts: %w", err)
	}

	query := `
		INSERT INTO onboarding_forms (
			client_id, business_name, contact_name, phone, email, client_type,
			preferred_communication, web_slug, goals, monthly_ad_budget, promotions,
			asset_file_names, landing_page_choice, customizations, ad_channels,
			full_website, additional_contacts, completion_progress, is_completed,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		f.ClientID, nullable(f.BusinessName), nullable(f.ContactName),
		nullable(f.Phone), nullable(f.Email), nullable(f.ClientType),
		nullable(f.PreferredCommunication), nullable(f.WebSlug), nullable(f.Goals),
		f.MonthlyAdBudget, nullable(f.Promotions),
		nullable(f.AssetFileNames), nullable(f.LandingPageChoice),
		nullable(f.Customizations), adChannels,
		f.FullWebsite, contacts, f.CompletionProgress, f.IsCompleted,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating onboarding form: %w", err)
	}

	return nil
}

func (s *Store) GetForm(ctx context.Context, id uuid.UUID) (*onboarding.Form, error) {
	query := `SELECT ` + selectFormColumns + ` FROM onboarding_forms WHERE id = $1`

	f, err := scanForm(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, onboarding.ErrNotFound
		}

		return nil, fmt.Errorf("getting onboarding form: %w", err)
	}

	return f, nil
}

func (s *Store) GetFormByClient(ctx context.Context, clientID uuid.UUID) (*onboarding.Form, error) {
	query := `SELECT ` + selectFormColumns + `
		FROM onboarding_forms
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	f, err := scanForm(s.db.QueryRowContext(ctx, query, clientID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, onboarding.ErrNotFound
		}

		return nil, fmt.Errorf("getting onboarding form by client: %w", err)
	}

	return f, nil
}

func (s *Store) ListForms(ctx context.Context) ([]*onboarding.Form, error) {
	query := `SELECT ` + selectFormColumns + ` FROM onboarding_forms ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing onboarding forms: %w", err)
	}
	defer rows.Close()

	var fs []*onboarding.Form

	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning onboarding form: %w", err)
		}

		fs = append(fs, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating onboarding form rows: %w", err)
	}

	return fs, nil
}

func (s *Store) UpdateForm(ctx context.Context, f *onboarding.Form) error {
	adChannels, err := encodeJSON(f.AdChannels, len(f.AdChannels) == 0)
	if err != nil {
		return fmt.Errorf("encoding ad channels: %w", err)
	}

	contacts, err := encodeJSON(f.AdditionalContacts, len(f.AdditionalContacts) == 0)
	if err != nil {
		return fmt.Errorf("encoding additional contacts: %w", err)
	}

	query := `
		UPDATE onboarding_forms
		SET client_id = $1, business_name = $2, contact_name = $3, phone = $4,
			email = $5, client_type = $6, preferred_communication = $7,
			web_slug = $8, goals = $9, monthly_ad_budget = $10, promotions = $11,
			asset_file_names = $12, landing_page_choice = $13, customizations = $14,
			ad_channels = $15, full_website = $16, additional_contacts = $17,
			completion_progress = $18, is_completed = $19, updated_at = NOW()
		WHERE id = $20
	`

	res, err := s.db.ExecContext(ctx, query,
		f.ClientID, nullable(f.BusinessName), nullable(f.ContactName),
		nullable(f.Phone), nullable(f.Email), nullable(f.ClientType),
		nullable(f.PreferredCommunication), nullable(f.WebSlug), nullable(f.Goals),
		f.MonthlyAdBudget, nullable(f.Promotions),
		nullable(f.AssetFileNames), nullable(f.LandingPageChoice),
		nullable(f.Customizations), adChannels,
		f.FullWebsite, contacts, f.CompletionProgress, f.IsCompleted, f.ID,
	)
	if err != nil {
		return fmt.Errorf("updating onboarding form: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating onboarding form: %w", err)
	}

	if n == 0 {
		return onboarding.ErrNotFound
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
