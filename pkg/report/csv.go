package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/arnavshah/booth-roster-go/pkg/models"
)

// CSVRenderer writes the booth-focused and volunteer-focused rosters to
// two CSV files.
type CSVRenderer struct {
	BoothPath     string
	VolunteerPath string
}

func (c *CSVRenderer) Render(r *Roster) error {
	if err := writeFile(c.BoothPath, r, WriteBoothCSV); err != nil {
		return err
	}
	return writeFile(c.VolunteerPath, r, WriteVolunteerCSV)
}

func writeFile(path string, r *Roster, write func(io.Writer, *Roster) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteBoothCSV writes one row per (booth, shift) slot in declared
// booth order: BoothName, Shift, Volunteer1, Volunteer2.
func WriteBoothCSV(w io.Writer, r *Roster) error {
	byEmail := r.byEmail()
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"BoothName", "Shift", "Volunteer1", "Volunteer2"}); err != nil {
		return err
	}
	for _, b := range r.Booths {
		for _, shift := range models.AssignableShifts() {
			row := append([]string{b.Name, shift.String()}, r.slotNames(byEmail, b.Name, shift)...)
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteVolunteerCSV writes one row per volunteer with Shift/Booth column
// pairs for every shift they signed up for, padded to the widest signup.
func WriteVolunteerCSV(w io.Writer, r *Roster) error {
	maxShifts := 0
	for _, v := range r.Volunteers {
		if n := len(v.Shifts); n > maxShifts {
			maxShifts = n
		}
	}

	writer := csv.NewWriter(w)
	header := []string{"FirstName", "LastName", "Email", "Phone"}
	for i := 1; i <= maxShifts; i++ {
		header = append(header, "Shift"+strconv.Itoa(i), "Booth"+strconv.Itoa(i))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, v := range r.Volunteers {
		row := []string{v.FirstName, v.LastName, v.Email, v.Phone}
		shifts := v.SortedShifts()
		for _, shift := range shifts {
			booth := r.Result.VolunteerRoster[v.Email][shift]
			if booth == "" {
				booth = models.Unassigned
			}
			row = append(row, shift.String(), booth)
		}
		for i := len(shifts); i < maxShifts; i++ {
			row = append(row, "", "")
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
