package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Conversly/community-api/internal/api/residents"
	"github.com/Conversly/community-api/internal/types"
)

// rosterColumns are the CSV headers a roster may use, matched case-insensitively.
var rosterColumns = []string{"name", "email", "phone", "block", "flatnumber", "ownership", "moveindate", "password"}

// ParseRoster decodes a resident roster. The format is picked from the file
// extension: .csv is read as a header row plus data rows, anything else as
// a JSON array.
func ParseRoster(content []byte, filename string) ([]residents.CreateResidentRequest, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(content)
	default:
		return parseJSON(content)
	}
}

func parseJSON(content []byte) ([]residents.CreateResidentRequest, error) {
	var rows []residents.CreateResidentRequest
	if err := json.Unmarshal(content, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode JSON roster: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}
	return rows, nil
}

func parseCSV(content []byte) ([]residents.CreateResidentRequest, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV roster: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV roster has no data rows")
	}

	index := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		index[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range rosterColumns[:6] {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("CSV roster is missing the %q column", required)
		}
	}

	rows := make([]residents.CreateResidentRequest, 0, len(records)-1)
	for n, record := range records[1:] {
		field := func(name string) string {
			if i, ok := index[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		row := residents.CreateResidentRequest{
			Name:       field("name"),
			Email:      field("email"),
			Phone:      field("phone"),
			Block:      field("block"),
			FlatNumber: field("flatnumber"),
			Ownership:  types.Ownership(strings.ToLower(field("ownership"))),
			Password:   field("password"),
		}
		if raw := field("moveindate"); raw != "" {
			moveIn, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: moveInDate must be YYYY-MM-DD", n+2)
			}
			row.MoveInDate = &moveIn
		}
		rows = append(rows, row)
	}
	return rows, nil
}
