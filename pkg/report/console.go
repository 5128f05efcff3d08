package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/arnavshah/booth-roster-go/pkg/models"
)

// ConsoleRenderer prints the booth roster and coverage summary to a
// writer, the diagnostic view shown after every run.
type ConsoleRenderer struct {
	Out io.Writer
}

// Render writes the final booth roster (booths by name), the volunteer
// total, and per-shift unfilled-booth counts.
func (c *ConsoleRenderer) Render(r *Roster) error {
	byEmail := r.byEmail()

	fmt.Fprintln(c.Out, "=== FINAL BOOTH ROSTER ===")
	for _, b := range r.boothsByName() {
		fmt.Fprintf(c.Out, "%s:\n", b.Name)
		for _, shift := range models.AssignableShifts() {
			var present []string
			for _, n := range r.slotNames(byEmail, b.Name, shift) {
				if n != "" {
					present = append(present, n)
				}
			}
			line := strings.Join(present, ", ")
			if line == "" {
				line = "No volunteers"
			}
			fmt.Fprintf(c.Out, "  %s: %s\n", shift, line)
		}
		fmt.Fprintln(c.Out)
	}

	fmt.Fprintf(c.Out, "Total volunteers: %d\n\n", len(r.Volunteers))

	fmt.Fprintln(c.Out, "=== UNFILLED BOOTHS ===")
	perShift := make(map[models.Shift]int)
	for _, u := range r.Unfilled {
		perShift[u.Shift]++
	}
	for _, shift := range models.AssignableShifts() {
		if n := perShift[shift]; n > 0 {
			fmt.Fprintf(c.Out, "%s: %d booths need volunteers\n", shift, n)
		}
	}
	return nil
}
