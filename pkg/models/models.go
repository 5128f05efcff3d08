package models

import (
	"fmt"
	"sort"
	"strings"
)

// SlotCapacity is how many volunteers each booth needs per shift.
const SlotCapacity = 2

// Unassigned marks a shift a volunteer signed up for but holds no booth in.
const Unassigned = "Unassigned"

// Shift is one of the five event time slots, ordered chronologically.
type Shift int

const (
	ShiftSetup Shift = iota
	Shift1
	Shift2
	Shift3
	ShiftCleanup
)

var shiftNames = [...]string{"setup", "shift1", "shift2", "shift3", "cleanup"}
var shiftTimes = [...]string{"4-5pm", "5-6pm", "6-7pm", "7-8pm", "8-9pm"}

// shiftAliases covers the spellings used on the signup sheets themselves.
var shiftAliases = map[string]Shift{
	"setup":    ShiftSetup,
	"set up":   ShiftSetup,
	"shift1":   Shift1,
	"shift #1": Shift1,
	"shift2":   Shift2,
	"shift #2": Shift2,
	"shift3":   Shift3,
	"shift #3": Shift3,
	"cleanup":  ShiftCleanup,
	"clean up": ShiftCleanup,
}

func (s Shift) String() string {
	if s < ShiftSetup || s > ShiftCleanup {
		return fmt.Sprintf("shift(%d)", int(s))
	}
	return shiftNames[s]
}

// TimeRange returns the wall-clock window of the shift, e.g. "5-6pm".
func (s Shift) TimeRange() string {
	if s < ShiftSetup || s > ShiftCleanup {
		return ""
	}
	return shiftTimes[s]
}

// BoothAssignable reports whether volunteers are placed at booths during
// this shift. Setup and cleanup are worked event-wide, not per booth.
func (s Shift) BoothAssignable() bool {
	return s >= Shift1 && s <= Shift3
}

// MarshalText renders the shift by name so it can key JSON maps.
func (s Shift) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a shift name, accepting signup-sheet spellings.
func (s *Shift) UnmarshalText(text []byte) error {
	parsed, ok := ParseShift(string(text))
	if !ok {
		return fmt.Errorf("unknown shift name %q", string(text))
	}
	*s = parsed
	return nil
}

// ParseShift maps a shift name to its Shift value, case-insensitively.
func ParseShift(name string) (Shift, bool) {
	s, ok := shiftAliases[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// AllShifts returns the five shifts in chronological order.
func AllShifts() []Shift {
	return []Shift{ShiftSetup, Shift1, Shift2, Shift3, ShiftCleanup}
}

// AssignableShifts returns the booth-assignable shifts in chronological order.
func AssignableShifts() []Shift {
	return []Shift{Shift1, Shift2, Shift3}
}

// Booth is a table to staff, identified by its unique name.
// Declaration order in the booths file is the slot-filling order.
type Booth struct {
	Name string `json:"name"`
}

// Volunteer is a person who signed up for one or more shifts.
// The case-normalized email is the unique key across all input sources.
type Volunteer struct {
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone,omitempty"`
	Shifts    map[Shift]struct{} `json:"-"`
}

// NewVolunteer creates a volunteer with an empty shift set.
func NewVolunteer(firstName, lastName, email, phone string) *Volunteer {
	return &Volunteer{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Shifts:    make(map[Shift]struct{}),
	}
}

// AddShift records that the volunteer is available for the shift.
func (v *Volunteer) AddShift(s Shift) {
	if v.Shifts == nil {
		v.Shifts = make(map[Shift]struct{})
	}
	v.Shifts[s] = struct{}{}
}

// HasShift reports whether the volunteer signed up for the shift.
func (v *Volunteer) HasShift(s Shift) bool {
	_, ok := v.Shifts[s]
	return ok
}

// SortedShifts returns the volunteer's shifts in chronological order.
func (v *Volunteer) SortedShifts() []Shift {
	out := make([]Shift, 0, len(v.Shifts))
	for s := range v.Shifts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FullName returns "First Last" for display.
func (v *Volunteer) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// Assignment pairs a volunteer with a booth for one shift.
type Assignment struct {
	Shift Shift  `json:"shift"`
	Booth string `json:"booth"`
	Email string `json:"email"`
}

// BreakRecord notes a heavily-loaded volunteer excused from a shift.
type BreakRecord struct {
	Email string `json:"email"`
	Shift Shift  `json:"shift"`
}

// UnfilledSlot is a (shift, booth) pair staffed below capacity.
type UnfilledSlot struct {
	Shift    Shift  `json:"shift"`
	Booth    string `json:"booth"`
	Assigned int    `json:"assigned"`
}

// BoothRoster maps booth name -> shift -> assigned volunteer emails.
type BoothRoster map[string]map[Shift][]string

// VolunteerRoster maps email -> shift -> booth name, or Unassigned for
// shifts the volunteer signed up for but holds no booth in.
type VolunteerRoster map[string]map[Shift]string

// SignupRecord is one raw signup row as supplied by a collaborator
// (CSV parser or JSON request body) before validation and merging.
type SignupRecord struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Shifts    []string `json:"shifts"`
}

// RosterInput is the payload for the roster endpoints.
type RosterInput struct {
	Booths  []string       `json:"booths"`
	Signups []SignupRecord `json:"signups"`
}

// RosterResponse is the full result of a roster run.
type RosterResponse struct {
	BoothRoster     BoothRoster     `json:"booth_roster"`
	VolunteerRoster VolunteerRoster `json:"volunteer_roster"`
	UnfilledSlots   []UnfilledSlot  `json:"unfilled_slots"`
	Breaks          []BreakRecord   `json:"breaks,omitempty"`
	CoverageScore   float64         `json:"coverage_score"`
	VolunteerCount  int             `json:"volunteer_count"`
	RowErrors       []string        `json:"row_errors,omitempty"`
}
