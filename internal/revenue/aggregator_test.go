package revenue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/revenue"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name string
		in   string
		want float64
	}

	tests := []testCase{
		{name: "PlainDollars", in: "$100.00", want: 100},
		{name: "ThousandsSeparator", in: "$1,550.00", want: 1550},
		{name: "Negative", in: "-$50.00", want: -50},
		{name: "Empty", in: "", want: 0},
		{name: "Garbage", in: "call me", want: 0},
		{name: "BareNumber", in: "548", want: 548},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, revenue.ParseAmount(tt.in), 0.001)
		})
	}
}

func TestAggregateClients(t *testing.T) {
	clients := []*client.Client{
		{
			BusinessName:   "Holiday Bowl",
			Status:         client.StatusActive,
			CurrentPayment: "$100.00",
			UpsellAmount:   "$150.00",
		},
		{
			BusinessName:   "Valley Bowl",
			Status:         client.StatusActive,
			CurrentPayment: "$1,550.00",
			UpsellAmount:   "$1,550.00", // No additional upsell headroom.
		},
		{
			BusinessName:   "No Payment Yet",
			Status:         client.StatusActive,
			CurrentPayment: "",
			UpsellAmount:   "$548.00",
		},
		{
			BusinessName:   "Former Client",
			Status:         client.StatusCanceled,
			CurrentPayment: "$999.00",
		},
		{
			BusinessName:   "Zero Dollar",
			Status:         client.StatusActive,
			CurrentPayment: "$0.00",
		},
	}

	m := revenue.AggregateClients(clients)

	assert.Equal(t, 2, m.PayingClients)
	assert.InDelta(t, 1650.0, m.TotalMRR, 0.001)
	assert.InDelta(t, 50.0, m.UpsellPotential, 0.001)
	assert.InDelta(t, 1650.0, m.TotalRevenue, 0.001)
}

func TestAggregateClients_Empty(t *testing.T) {
	m := revenue.AggregateClients(nil)

	assert.Zero(t, m.TotalMRR)
	assert.Zero(t, m.UpsellPotential)
	assert.Zero(t, m.TotalRevenue)
	assert.Zero(t, m.PayingClients)
}
