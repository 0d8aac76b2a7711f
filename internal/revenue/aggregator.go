package revenue

import (
	"strconv"
	"strings"

	"github.com/bowlnow/crm/internal/client"
)

// ClientMetrics is the live revenue aggregate derived from client
// payment fields rather than the ledger.
type ClientMetrics struct {
	TotalMRR        float64
	UpsellPotential float64
	// TotalRevenue is actual recurring revenue only; upsell potential is
	// excluded until it converts.
	TotalRevenue  float64
	PayingClients int
}

// ParseAmount parses a free-text currency string ("$1,550.00") by
// stripping everything that is not a digit, dot or minus sign. The parse
// is lossy on malformed input by design, inherited from the intake
// format: unparseable or empty strings yield 0.
func ParseAmount(s string) float64 {
	var b strings.Builder

	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}

	return f
}

// AggregateClients computes the live metrics over the paying-client set:
// active clients whose current payment parses to a positive amount.
func AggregateClients(clients []*client.Client) ClientMetrics {
	var m ClientMetrics

	for _, c := range clients {
		if c.Status != client.StatusActive {
			continue
		}

		monthly := ParseAmount(c.CurrentPayment)
		if c.CurrentPayment == "" || monthly <= 0 {
			continue
		}

		m.PayingClients++
		m.TotalMRR += monthly

		upsell := ParseAmount(c.UpsellAmount)
		if additional := upsell - monthly; additional > 0 {
			m.UpsellPotential += additional
		}
	}

	m.TotalRevenue = m.TotalMRR

	return m
}
