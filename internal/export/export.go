// Package export renders CRM data as CSV downloads. Rows are built by
// hand rather than with encoding/csv to preserve the exact quoting the
// dashboard's spreadsheet consumers expect: name fields are always
// quoted, the rest only when they need it.
package export

import (
	"strings"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/revenue"
)

// Header cells are emitted bare; only data cells get quoted.
const clientsHeader = "Business Name,Contact,Email,Phone,Status,Client Type"

// ClientsCSV renders the client roster.
func ClientsCSV(clients []*client.Client) string {
	var b strings.Builder

	b.WriteString(clientsHeader)
	b.WriteByte('\n')

	for _, c := range clients {
		writeRow(&b,
			quote(c.BusinessName),
			quote(c.ContactName),
			field(c.Email),
			field(c.Phone),
			field(string(c.Status)),
			field(string(c.ClientType)),
		)
	}

	return b.String()
}

const revenueHeader = "Client,Package Type,Start Date,MRR,One-Time,Total Paid"

// RevenueCSV renders the revenue ledger.
func RevenueCSV(records []*revenue.Record) string {
	var b strings.Builder

	b.WriteString(revenueHeader)
	b.WriteByte('\n')

	for _, r := range records {
		writeRow(&b,
			quote(r.ClientName),
			field(r.PackageType),
			field(r.StartDate.Format("2006-01-02")),
			field(r.MonthlyRecurringRevenue.StringFixed(2)),
			field(r.OneTimeCharges.StringFixed(2)),
			field(r.TotalPaid.StringFixed(2)),
		)
	}

	return b.String()
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f)
	}
	b.WriteByte('\n')
}

// quote always wraps the value, doubling embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// field quotes only when the value would break the row otherwise.
func field(s string) string {
	if strings.ContainsAny(s, `",`+"\n") {
		return quote(s)
	}

	return s
}
