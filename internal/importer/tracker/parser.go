// Package tracker parses the sales tracker spreadsheets the agency kept
// before the CRM existed. The header row is found by scanning for a
// known column layout, so leading title rows and notes do not break the
// import.
package tracker

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bowlnow/crm/internal/client"
	enc "github.com/bowlnow/crm/internal/encoding"
	"github.com/bowlnow/crm/internal/revenue"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]client.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching tracker format found: expected sales tracker or client roster columns")
	}

	return parseRows(profile, cols, rows[headerIdx+1:])
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string) ([]client.CreateParams, error) {
	var params []client.CreateParams

	for _, row := range rows {
		business := cellValue(row, cols[p.BusinessCol])
		email := cellValue(row, optionalCol(cols, p.EmailCol))

		// Footer and separator rows carry no business name.
		if business == "" {
			continue
		}

		cp := client.CreateParams{
			BusinessName:           business,
			ContactName:            cellValue(row, cols[p.ContactCol]),
			Email:                  email,
			Phone:                  cellValue(row, optionalCol(cols, p.PhoneCol)),
			ClientType:             client.ClientType(cellValue(row, optionalCol(cols, p.TypeCol))),
			Notes:                  cellValue(row, optionalCol(cols, p.NotesCol)),
			PreferredCommunication: cellValue(row, optionalCol(cols, p.PreferredCol)),
			CurrentPayment:         cellValue(row, optionalCol(cols, p.CurrentCol)),
			ProposedPayment:        cellValue(row, optionalCol(cols, p.ProposedCol)),
			UpsellAmount:           cellValue(row, optionalCol(cols, p.UpsellCol)),
		}
		cp.Status = deriveStatus(cp.CurrentPayment)

		params = append(params, cp)
	}

	return params, nil
}

// deriveStatus classifies a tracker row: centers already paying are
// active clients, everyone else is a prospect.
func deriveStatus(currentPayment string) client.Status {
	if revenue.ParseAmount(currentPayment) > 0 {
		return client.StatusActive
	}

	return client.StatusProspect
}

// optionalCol resolves a column the profile may not define.
func optionalCol(cols colIndex, name string) int {
	if name == "" {
		return -1
	}

	idx, ok := cols[name]
	if !ok {
		return -1
	}

	return idx
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
