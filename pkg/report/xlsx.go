package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/arnavshah/booth-roster-go/pkg/models"
)

// WriteXLSX builds the booth roster workbook: one sheet per assignable
// shift plus a Coverage sheet for the unfilled slots. Returns the file
// content and a suggested filename.
func WriteXLSX(r *Roster) (*bytes.Buffer, string, error) {
	byEmail := r.byEmail()
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create header style: %w", err)
	}

	for i, shift := range models.AssignableShifts() {
		sheet := shift.String()
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, "", fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}

		f.SetCellValue(sheet, "A1", "Booth")
		f.SetCellValue(sheet, "B1", "Volunteer 1")
		f.SetCellValue(sheet, "C1", "Volunteer 2")
		f.SetRowStyle(sheet, 1, 1, headerStyle)
		f.SetColWidth(sheet, "A", "C", 28)

		for row, b := range r.Booths {
			names := r.slotNames(byEmail, b.Name, shift)
			n := strconv.Itoa(row + 2)
			f.SetCellValue(sheet, "A"+n, b.Name)
			f.SetCellValue(sheet, "B"+n, names[0])
			f.SetCellValue(sheet, "C"+n, names[1])
		}
	}

	const coverage = "Coverage"
	if _, err := f.NewSheet(coverage); err != nil {
		return nil, "", fmt.Errorf("create sheet %s: %w", coverage, err)
	}
	f.SetCellValue(coverage, "A1", "Shift")
	f.SetCellValue(coverage, "B1", "Booth")
	f.SetCellValue(coverage, "C1", "Assigned")
	f.SetRowStyle(coverage, 1, 1, headerStyle)
	f.SetColWidth(coverage, "A", "C", 20)
	for i, u := range r.Unfilled {
		n := strconv.Itoa(i + 2)
		f.SetCellValue(coverage, "A"+n, u.Shift.String())
		f.SetCellValue(coverage, "B"+n, u.Booth)
		f.SetCellValue(coverage, "C"+n, u.Assigned)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}
	return buf, "booth_roster.xlsx", nil
}
