// Package report renders the roster views. Renderers only read the
// scheduler's output; nothing here feeds back into assignment.
package report

import (
	"sort"

	"github.com/arnavshah/booth-roster-go/pkg/models"
	"github.com/arnavshah/booth-roster-go/pkg/scheduler"
)

// Roster bundles everything a renderer consumes: the two roster views,
// the unfilled-slot list, and the inputs needed to show names in order.
type Roster struct {
	Booths     []models.Booth
	Volunteers []*models.Volunteer
	Result     *scheduler.Result
	Unfilled   []models.UnfilledSlot
}

// Renderer produces one presentation of a roster.
type Renderer interface {
	Render(r *Roster) error
}

// NewRoster derives the render bundle from a finished scheduler run.
func NewRoster(booths []models.Booth, volunteers []*models.Volunteer, res *scheduler.Result) *Roster {
	return &Roster{
		Booths:     booths,
		Volunteers: volunteers,
		Result:     res,
		Unfilled:   scheduler.Unfilled(res.Assignments, booths),
	}
}

// byEmail indexes volunteers for name lookups.
func (r *Roster) byEmail() map[string]*models.Volunteer {
	m := make(map[string]*models.Volunteer, len(r.Volunteers))
	for _, v := range r.Volunteers {
		m[v.Email] = v
	}
	return m
}

// slotNames returns the display names assigned to a booth slot, padded
// with empty strings up to capacity.
func (r *Roster) slotNames(byEmail map[string]*models.Volunteer, booth string, shift models.Shift) []string {
	names := make([]string, 0, models.SlotCapacity)
	for _, email := range r.Result.BoothRoster[booth][shift] {
		if v, ok := byEmail[email]; ok {
			names = append(names, v.FullName())
		} else {
			names = append(names, email)
		}
	}
	for len(names) < models.SlotCapacity {
		names = append(names, "")
	}
	return names
}

// boothsByName returns the booths sorted by name for display.
func (r *Roster) boothsByName() []models.Booth {
	out := append([]models.Booth(nil), r.Booths...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
