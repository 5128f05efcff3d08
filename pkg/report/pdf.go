package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/arnavshah/booth-roster-go/pkg/models"
)

// PDFRenderer writes the two paginated print-layout documents: a
// booth-focused roster and a volunteer-focused roster.
type PDFRenderer struct {
	BoothPath     string
	VolunteerPath string
}

func (p *PDFRenderer) Render(r *Roster) error {
	if err := writeFile(p.BoothPath, r, WriteBoothPDF); err != nil {
		return err
	}
	return writeFile(p.VolunteerPath, r, WriteVolunteerPDF)
}

func newDoc(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)
	return pdf
}

// WriteBoothPDF lays out one table row per (booth, shift) slot, grouped
// by booth in declared order. Pages break automatically.
func WriteBoothPDF(w io.Writer, r *Roster) error {
	byEmail := r.byEmail()
	pdf := newDoc("Booth Roster")

	widths := []float64{55, 35, 50, 50}
	header := []string{"Booth", "Shift", "Volunteer 1", "Volunteer 2"}
	tableHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range header {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}
	tableHeader()

	for _, b := range r.Booths {
		for _, shift := range models.AssignableShifts() {
			if pdf.GetY() > 270 {
				pdf.AddPage()
				tableHeader()
			}
			names := r.slotNames(byEmail, b.Name, shift)
			cells := []string{b.Name, fmt.Sprintf("%s (%s)", shift, shift.TimeRange()), names[0], names[1]}
			for i, cell := range cells {
				pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	return pdf.Output(w)
}

// WriteVolunteerPDF lays out one block per volunteer: contact line plus
// a shift/booth line for every shift they signed up for.
func WriteVolunteerPDF(w io.Writer, r *Roster) error {
	pdf := newDoc("Volunteer Roster")

	for _, v := range r.Volunteers {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, v.FullName(), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		contact := v.Email
		if v.Phone != "" {
			contact += "  ·  " + v.Phone
		}
		pdf.CellFormat(0, 5, contact, "", 1, "L", false, 0, "")
		for _, shift := range v.SortedShifts() {
			booth := r.Result.VolunteerRoster[v.Email][shift]
			if booth == "" {
				booth = models.Unassigned
			}
			pdf.CellFormat(0, 5, fmt.Sprintf("  %s (%s): %s", shift, shift.TimeRange(), booth), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	return pdf.Output(w)
}
