// Package scheduler assigns volunteers to booths shift by shift.
//
// The pass is greedy and deterministic: shifts are processed in
// chronological order, volunteers in registry order, booths in declared
// order. Re-running Assign on the same inputs yields the same result.
package scheduler

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arnavshah/booth-roster-go/pkg/models"
)

var (
	ErrNoBooths       = errors.New("booth list is empty")
	ErrDuplicateBooth = errors.New("duplicate booth name")
)

// breakThreshold is the total signed-up shift count (all five kinds) at
// which a volunteer is excused from their last assignable shift.
const breakThreshold = 4

// Scheduler holds the inputs of one roster run. It never mutates them:
// Assign builds all working state per call.
type Scheduler struct {
	Volunteers []*models.Volunteer
	Booths     []models.Booth
	logger     *zap.Logger
}

// Result is the outcome of one Assign call.
type Result struct {
	Assignments     []models.Assignment
	Breaks          []models.BreakRecord
	BoothRoster     models.BoothRoster
	VolunteerRoster models.VolunteerRoster
}

// New validates the booth set and creates a scheduler. An empty booth
// list or a duplicate booth name is a configuration error: no roster
// can be built from it. A nil logger disables logging.
func New(volunteers []*models.Volunteer, booths []models.Booth, logger *zap.Logger) (*Scheduler, error) {
	if len(booths) == 0 {
		return nil, ErrNoBooths
	}
	seen := make(map[string]struct{}, len(booths))
	for _, b := range booths {
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBooth, b.Name)
		}
		seen[b.Name] = struct{}{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{Volunteers: volunteers, Booths: booths, logger: logger}, nil
}

// effectiveShifts returns the assignable shifts the volunteer can work
// after the break rule, plus the shift dropped by the rule (or -1).
//
// A volunteer signed up for breakThreshold or more shifts of any kind
// loses their chronologically last assignable shift, unless that would
// leave them nothing assignable to work.
func effectiveShifts(v *models.Volunteer) ([]models.Shift, models.Shift) {
	var eff []models.Shift
	for _, s := range v.SortedShifts() {
		if s.BoothAssignable() {
			eff = append(eff, s)
		}
	}
	if len(v.Shifts) >= breakThreshold && len(eff) > 1 {
		dropped := eff[len(eff)-1]
		return eff[:len(eff)-1], dropped
	}
	return eff, models.Shift(-1)
}

// Assign runs the greedy pass and returns the full roster. Too few
// volunteers is not an error; it shows up as unfilled slots.
func (s *Scheduler) Assign() *Result {
	res := &Result{
		BoothRoster:     make(models.BoothRoster, len(s.Booths)),
		VolunteerRoster: make(models.VolunteerRoster, len(s.Volunteers)),
	}
	for _, b := range s.Booths {
		res.BoothRoster[b.Name] = make(map[models.Shift][]string)
	}

	// Every signed-up shift starts out Unassigned; placements overwrite.
	// Setup and cleanup stay Unassigned: they are worked without booths.
	for _, v := range s.Volunteers {
		row := make(map[models.Shift]string, len(v.Shifts))
		for _, sh := range v.SortedShifts() {
			row[sh] = models.Unassigned
		}
		res.VolunteerRoster[v.Email] = row
	}

	canWork := make(map[string]map[models.Shift]bool, len(s.Volunteers))
	for _, v := range s.Volunteers {
		eff, dropped := effectiveShifts(v)
		set := make(map[models.Shift]bool, len(eff))
		for _, sh := range eff {
			set[sh] = true
		}
		canWork[v.Email] = set
		if dropped >= 0 {
			res.Breaks = append(res.Breaks, models.BreakRecord{Email: v.Email, Shift: dropped})
			s.logger.Info("volunteer excused for a break",
				zap.String("email", v.Email),
				zap.Stringer("shift", dropped))
		}
	}

	occupancy := res.BoothRoster // filled in place, one slice per (booth, shift)
	prevBooth := make(map[string]string, len(s.Volunteers))

	place := func(shift models.Shift, booth string, v *models.Volunteer) {
		occupancy[booth][shift] = append(occupancy[booth][shift], v.Email)
		res.Assignments = append(res.Assignments, models.Assignment{
			Shift: shift, Booth: booth, Email: v.Email,
		})
		res.VolunteerRoster[v.Email][shift] = booth
	}

	for _, shift := range models.AssignableShifts() {
		nextBooth := make(map[string]string, len(s.Volunteers))
		for _, v := range s.Volunteers {
			if !canWork[v.Email][shift] {
				continue
			}

			// Continuity: stay at the previous shift's booth when it
			// still has a free seat.
			if prev, ok := prevBooth[v.Email]; ok &&
				len(occupancy[prev][shift]) < models.SlotCapacity {
				place(shift, prev, v)
				nextBooth[v.Email] = prev
				continue
			}

			placed := false
			for _, b := range s.Booths {
				if len(occupancy[b.Name][shift]) < models.SlotCapacity {
					place(shift, b.Name, v)
					nextBooth[v.Email] = b.Name
					placed = true
					break
				}
			}
			if !placed {
				// All booths full: available but unplaced, surfaced as
				// Unassigned in the volunteer view.
				s.logger.Debug("no open booth for volunteer",
					zap.String("email", v.Email),
					zap.Stringer("shift", shift))
			}
		}
		prevBooth = nextBooth
	}

	s.logger.Info("assignment complete",
		zap.Int("volunteers", len(s.Volunteers)),
		zap.Int("booths", len(s.Booths)),
		zap.Int("assignments", len(res.Assignments)),
		zap.Int("breaks", len(res.Breaks)))

	return res
}

// Unfilled lists every (shift, booth) slot staffed below capacity,
// ordered by shift then booth declaration order. Pure over its inputs.
func Unfilled(assignments []models.Assignment, booths []models.Booth) []models.UnfilledSlot {
	counts := make(map[models.Shift]map[string]int)
	for _, a := range assignments {
		if counts[a.Shift] == nil {
			counts[a.Shift] = make(map[string]int)
		}
		counts[a.Shift][a.Booth]++
	}

	var out []models.UnfilledSlot
	for _, shift := range models.AssignableShifts() {
		for _, b := range booths {
			n := counts[shift][b.Name]
			if n < models.SlotCapacity {
				out = append(out, models.UnfilledSlot{Shift: shift, Booth: b.Name, Assigned: n})
			}
		}
	}
	return out
}

// CoverageScore returns the percentage (0-100) of booth slots filled
// across the assignable shifts. An empty booth set scores 100.
func CoverageScore(assignments []models.Assignment, booths []models.Booth) float64 {
	total := len(booths) * len(models.AssignableShifts()) * models.SlotCapacity
	if total == 0 {
		return 100.0
	}
	return float64(len(assignments)) / float64(total) * 100.0
}
