package tracker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowlnow/crm/internal/client"
	"github.com/bowlnow/crm/internal/importer/tracker"
)

func TestParser_SalesTracker(t *testing.T) {
	input := strings.Join([]string{
		`BowlNow Sales Tracker 2025,,,,,,,`,
		`,,,,,,,`,
		`Center Name,Contact,Email,Phone,Current Payment,Proposed Payment,Upsell Amount,Notes`,
		`Holiday Bowl,Pat Smith,pat@holidaybowl.com,555-0101,"$550.00","$550.00","$750.00",League focus`,
		`Valley Lanes,Lee Jones,lee@valleylanes.com,,,"$350.00",,Cold outreach`,
		`,,,,,,,`,
	}, "\n")

	params, err := tracker.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2, "title, blank and footer rows are skipped")

	holiday := params[0]
	assert.Equal(t, "Holiday Bowl", holiday.BusinessName)
	assert.Equal(t, "Pat Smith", holiday.ContactName)
	assert.Equal(t, "pat@holidaybowl.com", holiday.Email)
	assert.Equal(t, "$550.00", holiday.CurrentPayment)
	assert.Equal(t, "$750.00", holiday.UpsellAmount)
	assert.Equal(t, client.StatusActive, holiday.Status, "paying centers import as active")

	valley := params[1]
	assert.Equal(t, client.StatusProspect, valley.Status, "no current payment imports as prospect")
	assert.Equal(t, "$350.00", valley.ProposedPayment)
	assert.Equal(t, "Cold outreach", valley.Notes)
}

func TestParser_ClientRoster(t *testing.T) {
	input := strings.Join([]string{
		`Business Name,Contact Name,Email,Phone,Client Type,Notes`,
		`Holiday Bowl,Pat Smith,pat@holidaybowl.com,555-0101,crm_ads,`,
	}, "\n")

	params, err := tracker.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, client.TypeCRMAds, params[0].ClientType)
	assert.Equal(t, client.StatusProspect, params[0].Status, "roster format carries no payment data")
}

func TestParser_UnknownFormat(t *testing.T) {
	input := "Name,Value\nfoo,1\n"

	_, err := tracker.NewParser().Parse(strings.NewReader(input))
	assert.Error(t, err)
}
