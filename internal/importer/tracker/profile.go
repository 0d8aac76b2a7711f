package tracker

// Profile describes the column layout of one tracker spreadsheet
// format. Adding a new export layout is just adding a Profile to the
// profiles slice.
type Profile struct {
	Name        string
	BusinessCol string
	ContactCol  string
	EmailCol    string

	// Optional columns; empty means the format does not carry them.
	PhoneCol     string
	TypeCol      string
	CurrentCol   string
	ProposedCol  string
	UpsellCol    string
	NotesCol     string
	PreferredCol string
}

// requiredCols returns the columns a header row must carry for this
// profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.BusinessCol, p.ContactCol, p.EmailCol}
}

// profiles lists the tracker formats in detection order, most specific
// first.
var profiles = []Profile{
	{
		Name:         "sales tracker",
		BusinessCol:  "Center Name",
		ContactCol:   "Contact",
		EmailCol:     "Email",
		PhoneCol:     "Phone",
		CurrentCol:   "Current Payment",
		ProposedCol:  "Proposed Payment",
		UpsellCol:    "Upsell Amount",
		NotesCol:     "Notes",
		PreferredCol: "Preferred Communication",
	},
	{
		Name:        "client roster",
		BusinessCol: "Business Name",
		ContactCol:  "Contact Name",
		EmailCol:    "Email",
		PhoneCol:    "Phone",
		TypeCol:     "Client Type",
		NotesCol:    "Notes",
	},
}
