// Package csvio parses the booths and signup CSV files into the raw
// records the registry and scheduler consume.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/arnavshah/booth-roster-go/pkg/models"
)

// Signup sheet column headers.
const (
	colFirstName = "Volunteer First Name"
	colLastName  = "Volunteer Last Name"
	colEmail     = "Email"
	colPhone     = "Phone"
	colWhat      = "What" // shift name
	colBooth     = "BoothName"
)

// LoadBooths reads a booths CSV (header BoothName, one name per row) in
// file order. Blank names are skipped; duplicate or empty booth sets
// are the scheduler's configuration check, not a parse error.
func LoadBooths(r io.Reader) ([]models.Booth, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read booths header: %w", err)
	}
	cols := headerIndex(header)
	idx, ok := cols[colBooth]
	if !ok {
		return nil, fmt.Errorf("booths file has no %q column", colBooth)
	}

	var booths []models.Booth
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read booths row: %w", err)
		}
		if idx >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[idx])
		if name != "" {
			booths = append(booths, models.Booth{Name: name})
		}
	}
	return booths, nil
}

// ReadSignups parses one signup CSV into raw records, one per row. The
// sheet format carries one shift per row in the "What" column; rows for
// the same email are merged later by the registry, not here.
func ReadSignups(r io.Reader) ([]models.SignupRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read signups header: %w", err)
	}
	cols := headerIndex(header)

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []models.SignupRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read signups row: %w", err)
		}
		rec := models.SignupRecord{
			FirstName: field(record, colFirstName),
			LastName:  field(record, colLastName),
			Email:     field(record, colEmail),
			Phone:     field(record, colPhone),
		}
		if what := field(record, colWhat); what != "" {
			rec.Shifts = []string{what}
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return cols
}
