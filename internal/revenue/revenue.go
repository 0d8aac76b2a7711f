// Package revenue holds the two revenue representations the dashboard
// exposes: the historical ledger (Record rows) and the live aggregate
// derived from client payment fields. They are deliberately not unified;
// callers pick per screen, matching the dashboard's behavior.
package revenue

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("revenue record not found")

// Record is a ledger entry owned by one client.
type Record struct {
	ID                      uuid.UUID
	ClientID                uuid.UUID
	PackageType             string
	StartDate               time.Time
	MonthlyRecurringRevenue decimal.Decimal
	OneTimeCharges          decimal.Decimal
	TotalPaid               decimal.Decimal
	IsActive                bool
	ClientName              string // Loaded via JOIN
	CreatedAt               time.Time
	UpdatedAt               *time.Time
}
