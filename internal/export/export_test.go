package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/export"
	"github.com/bowlnow/crm/internal/revenue"
)

func TestClientsCSV(t *testing.T) {
	clients := []*client.Client{
		{
			BusinessName: "Holiday Bowl",
			ContactName:  "Pat Smith",
			Email:        "pat@holidaybowl.com",
			Phone:        "555-0101",
			Status:       client.StatusActive,
			ClientType:   client.TypeFullService,
		},
		{
			BusinessName: `Strikes "R" Us`,
			ContactName:  "Lee Jones",
			Email:        "lee@strikes.com",
			Status:       client.StatusProspect,
		},
	}

	got := export.ClientsCSV(clients)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Business Name,Contact,Email,Phone,Status,Client Type", lines[0])
	assert.Equal(t, `"Holiday Bowl","Pat Smith",pat@holidaybowl.com,555-0101,active,full_service`, lines[1])
	assert.Equal(t, `"Strikes ""R"" Us","Lee Jones",lee@strikes.com,,prospect,`, lines[2])
}

func TestClientsCSV_Empty(t *testing.T) {
	got := export.ClientsCSV(nil)
	assert.Equal(t, "Business Name,Contact,Email,Phone,Status,Client Type\n", got)
}

func TestRevenueCSV(t *testing.T) {
	records := []*revenue.Record{
		{
			ClientName:              "Holiday Bowl",
			PackageType:             "boost",
			StartDate:               time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
			MonthlyRecurringRevenue: decimal.NewFromFloat(550.5),
			OneTimeCharges:          decimal.NewFromInt(1200),
			TotalPaid:               decimal.NewFromFloat(3851.5),
		},
	}

	got := export.RevenueCSV(records)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "Client,Package Type,Start Date,MRR,One-Time,Total Paid", lines[0])
	assert.Equal(t, `"Holiday Bowl",boost,2025-01-15,550.50,1200.00,3851.50`, lines[1])
}
