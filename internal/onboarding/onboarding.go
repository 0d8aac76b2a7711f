// Package onboarding manages the client intake form. Forms are saved
// incrementally; completion progress is recomputed from field presence
// on every save and only an explicit submission marks a form complete.
package onboarding

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bowlnow/crm/internal/progress"
)

var ErrNotFound = errors.New("onboarding form not found")

// AdditionalContact is an extra person attached to the form, stored
// inline as JSON rather than as a contacts row until the form is
// submitted.
type AdditionalContact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

type Form struct {
	ID       uuid.UUID
	ClientID *uuid.UUID

	// Required section.
	BusinessName string
	ContactName  string
	Phone        string
	Email        string
	ClientType   string

	// Optional section.
	PreferredCommunication string
	WebSlug                string
	Goals                  string
	MonthlyAdBudget        *decimal.Decimal
	Promotions             string
	AssetFileNames         string
	LandingPageChoice      string
	Customizations         string
	AdChannels             []string
	FullWebsite            *bool
	AdditionalContacts     []AdditionalContact

	CompletionProgress int
	IsCompleted        bool
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// trackedFields returns presence flags for the fields that count toward
// completion, required section first.
func (f *Form) trackedFields() []bool {
	return []bool{
		f.BusinessName != "",
		f.ContactName != "",
		f.Phone != "",
		f.Email != "",
		f.ClientType != "",
		f.WebSlug != "",
		f.Goals != "",
		f.MonthlyAdBudget != nil && !f.MonthlyAdBudget.IsZero(),
		f.Promotions != "",
		f.AssetFileNames != "",
		f.LandingPageChoice != "",
		f.Customizations != "",
	}
}

// Progress computes the completion percentage from field presence.
func (f *Form) Progress() int {
	return progress.Percent(f.trackedFields())
}

// RequiredComplete reports whether every required field is filled.
func (f *Form) RequiredComplete() bool {
	return f.BusinessName != "" &&
		f.ContactName != "" &&
		f.Phone != "" &&
		f.Email != "" &&
		f.ClientType != ""
}
