package scheduler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/arnavshah/booth-roster-go/pkg/models"
)

func vol(first, last, email string, shifts ...models.Shift) *models.Volunteer {
	v := models.NewVolunteer(first, last, email, "")
	for _, s := range shifts {
		v.AddShift(s)
	}
	return v
}

func booths(names ...string) []models.Booth {
	out := make([]models.Booth, 0, len(names))
	for _, n := range names {
		out = append(out, models.Booth{Name: n})
	}
	return out
}

func mustNew(t *testing.T, vols []*models.Volunteer, bs []models.Booth) *Scheduler {
	t.Helper()
	s, err := New(vols, bs, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return s
}

func TestNewConfigErrors(t *testing.T) {
	if _, err := New(nil, nil, nil); !errors.Is(err, ErrNoBooths) {
		t.Errorf("Expected ErrNoBooths for empty booth list, got %v", err)
	}
	if _, err := New(nil, booths("Face Painting", "Face Painting"), nil); !errors.Is(err, ErrDuplicateBooth) {
		t.Errorf("Expected ErrDuplicateBooth, got %v", err)
	}
}

func TestSlotCapacity(t *testing.T) {
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com", models.Shift1, models.Shift2, models.Shift3),
		vol("Bob", "Baker", "bob@example.com", models.Shift1, models.Shift2, models.Shift3),
		vol("Carol", "Cole", "carol@example.com", models.Shift1, models.Shift2, models.Shift3),
	}
	s := mustNew(t, vols, booths("Ring Toss"))
	res := s.Assign()

	for _, shift := range models.AssignableShifts() {
		got := res.BoothRoster["Ring Toss"][shift]
		if len(got) != 2 {
			t.Errorf("Expected 2 volunteers at Ring Toss for %s, got %d", shift, len(got))
		}
	}

	// Registry order is Adams, Baker, Cole: the first two take the
	// booth every shift, Cole stays unassigned throughout.
	for _, shift := range models.AssignableShifts() {
		if got := res.VolunteerRoster["carol@example.com"][shift]; got != models.Unassigned {
			t.Errorf("Expected Cole to be Unassigned for %s, got %q", shift, got)
		}
	}

	// The single booth is fully staffed, so nothing is unfilled.
	if unfilled := Unfilled(res.Assignments, s.Booths); len(unfilled) != 0 {
		t.Errorf("Expected no unfilled slots, got %v", unfilled)
	}
}

func TestNoDoubleBookingPerShift(t *testing.T) {
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com", models.Shift1, models.Shift2),
		vol("Bob", "Baker", "bob@example.com", models.Shift1, models.Shift2, models.Shift3),
	}
	s := mustNew(t, vols, booths("Ring Toss", "Duck Pond", "Cake Walk"))
	res := s.Assign()

	seen := make(map[models.Shift]map[string]int)
	for _, a := range res.Assignments {
		if seen[a.Shift] == nil {
			seen[a.Shift] = make(map[string]int)
		}
		seen[a.Shift][a.Email]++
		if seen[a.Shift][a.Email] > 1 {
			t.Errorf("Volunteer %s assigned twice in %s", a.Email, a.Shift)
		}
	}
}

func TestBreakRule(t *testing.T) {
	// Four total shifts (setup counts) drops the last assignable shift.
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com",
			models.ShiftSetup, models.Shift1, models.Shift2, models.Shift3),
	}
	s := mustNew(t, vols, booths("Ring Toss"))
	res := s.Assign()

	want := []models.BreakRecord{{Email: "alice@example.com", Shift: models.Shift3}}
	if !reflect.DeepEqual(res.Breaks, want) {
		t.Errorf("Expected breaks %v, got %v", want, res.Breaks)
	}
	if got := res.VolunteerRoster["alice@example.com"][models.Shift3]; got != models.Unassigned {
		t.Errorf("Expected break shift to stay Unassigned, got %q", got)
	}
	if got := res.VolunteerRoster["alice@example.com"][models.Shift1]; got != "Ring Toss" {
		t.Errorf("Expected shift1 at Ring Toss, got %q", got)
	}
	for _, a := range res.Assignments {
		if a.Email == "alice@example.com" && a.Shift == models.Shift3 {
			t.Errorf("Break shift was assigned anyway: %+v", a)
		}
	}
}

func TestBreakRuleNotAppliedBelowThreshold(t *testing.T) {
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com",
			models.Shift1, models.Shift2, models.Shift3),
	}
	s := mustNew(t, vols, booths("Ring Toss"))
	res := s.Assign()

	if len(res.Breaks) != 0 {
		t.Errorf("Expected no breaks for 3 total shifts, got %v", res.Breaks)
	}
	if got := res.VolunteerRoster["alice@example.com"][models.Shift3]; got != "Ring Toss" {
		t.Errorf("Expected shift3 at Ring Toss, got %q", got)
	}
}

func TestBreakRuleCountsBookendShifts(t *testing.T) {
	// Setup and cleanup count toward the threshold even though they are
	// never booth-assigned: two bookends plus two assignable shifts
	// trigger the rule, dropping shift2 and retaining shift1.
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com",
			models.ShiftSetup, models.ShiftCleanup, models.Shift1, models.Shift2),
	}
	s := mustNew(t, vols, booths("Ring Toss"))
	res := s.Assign()

	if got := res.VolunteerRoster["alice@example.com"][models.Shift1]; got != "Ring Toss" {
		t.Errorf("Expected shift1 retained at Ring Toss, got %q", got)
	}
	if got := res.VolunteerRoster["alice@example.com"][models.Shift2]; got != models.Unassigned {
		t.Errorf("Expected shift2 dropped for break, got %q", got)
	}
}

func TestContinuityAcrossShifts(t *testing.T) {
	// Baker reaches the booths first in shift2 (registry order), but
	// Cole continues at Duck Pond from shift1 while a seat is open.
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com", models.Shift1, models.Shift2),
		vol("Bob", "Baker", "bob@example.com", models.Shift2),
		vol("Carol", "Cole", "carol@example.com", models.Shift1, models.Shift2),
	}
	s := mustNew(t, vols, booths("Duck Pond"))
	res := s.Assign()

	if got := res.VolunteerRoster["alice@example.com"][models.Shift1]; got != "Duck Pond" {
		t.Fatalf("Expected Adams at Duck Pond in shift1, got %q", got)
	}
	if got := res.VolunteerRoster["carol@example.com"][models.Shift1]; got != "Duck Pond" {
		t.Fatalf("Expected Cole at Duck Pond in shift1, got %q", got)
	}

	// Adams continues first, then Baker takes the second seat in
	// iteration order; Cole's continuity finds the booth full.
	if got := res.VolunteerRoster["alice@example.com"][models.Shift2]; got != "Duck Pond" {
		t.Errorf("Expected Adams to continue at Duck Pond in shift2, got %q", got)
	}
	if got := res.VolunteerRoster["bob@example.com"][models.Shift2]; got != "Duck Pond" {
		t.Errorf("Expected Baker at Duck Pond in shift2, got %q", got)
	}
	if got := res.VolunteerRoster["carol@example.com"][models.Shift2]; got != models.Unassigned {
		t.Errorf("Expected Cole Unassigned in shift2, got %q", got)
	}
}

func TestContinuityPreferredOverDeclaredOrder(t *testing.T) {
	// Cole starts at Duck Pond (second booth). In shift2 the first
	// booth has seats free, but continuity keeps Cole at Duck Pond.
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com", models.Shift1),
		vol("Bob", "Baker", "bob@example.com", models.Shift1),
		vol("Carol", "Cole", "carol@example.com", models.Shift1, models.Shift2),
	}
	s := mustNew(t, vols, booths("Cake Walk", "Duck Pond"))
	res := s.Assign()

	if got := res.VolunteerRoster["carol@example.com"][models.Shift1]; got != "Duck Pond" {
		t.Fatalf("Expected Cole at Duck Pond in shift1, got %q", got)
	}
	if got := res.VolunteerRoster["carol@example.com"][models.Shift2]; got != "Duck Pond" {
		t.Errorf("Expected Cole to continue at Duck Pond in shift2, got %q", got)
	}
}

func TestDeterminism(t *testing.T) {
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com", models.ShiftSetup, models.Shift1, models.Shift2, models.Shift3),
		vol("Bob", "Baker", "bob@example.com", models.Shift1, models.Shift3),
		vol("Carol", "Cole", "carol@example.com", models.Shift2, models.Shift3),
		vol("Dave", "Dunn", "dave@example.com", models.Shift1, models.Shift2, models.Shift3, models.ShiftCleanup),
	}
	bs := booths("Ring Toss", "Duck Pond", "Cake Walk")

	first := mustNew(t, vols, bs).Assign()
	second := mustNew(t, vols, bs).Assign()

	if !reflect.DeepEqual(first.Assignments, second.Assignments) {
		t.Errorf("Assign is not deterministic:\nfirst:  %v\nsecond: %v",
			first.Assignments, second.Assignments)
	}
	if !reflect.DeepEqual(first.Breaks, second.Breaks) {
		t.Errorf("Breaks differ between runs")
	}
}

func TestInputsNotMutated(t *testing.T) {
	v := vol("Alice", "Adams", "alice@example.com",
		models.ShiftSetup, models.Shift1, models.Shift2, models.Shift3)
	s := mustNew(t, []*models.Volunteer{v}, booths("Ring Toss"))
	s.Assign()

	if len(v.Shifts) != 4 {
		t.Errorf("Assign mutated the volunteer's shift set: %v", v.SortedShifts())
	}
}

func TestUnfilledTwoBoothsOneVolunteer(t *testing.T) {
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com", models.Shift1),
	}
	bs := booths("Ring Toss", "Duck Pond")
	res := mustNew(t, vols, bs).Assign()
	unfilled := Unfilled(res.Assignments, bs)

	// Every slot is under capacity: shift1 has one booth at 1 and one
	// at 0, shift2 and shift3 are empty everywhere.
	if len(unfilled) != 6 {
		t.Fatalf("Expected 6 unfilled slots, got %d: %v", len(unfilled), unfilled)
	}
	want := []models.UnfilledSlot{
		{Shift: models.Shift1, Booth: "Ring Toss", Assigned: 1},
		{Shift: models.Shift1, Booth: "Duck Pond", Assigned: 0},
		{Shift: models.Shift2, Booth: "Ring Toss", Assigned: 0},
		{Shift: models.Shift2, Booth: "Duck Pond", Assigned: 0},
		{Shift: models.Shift3, Booth: "Ring Toss", Assigned: 0},
		{Shift: models.Shift3, Booth: "Duck Pond", Assigned: 0},
	}
	if !reflect.DeepEqual(unfilled, want) {
		t.Errorf("Unfilled order/content wrong:\ngot:  %v\nwant: %v", unfilled, want)
	}
}

func TestCoverageScore(t *testing.T) {
	vols := []*models.Volunteer{
		vol("Alice", "Adams", "alice@example.com", models.Shift1, models.Shift2, models.Shift3),
		vol("Bob", "Baker", "bob@example.com", models.Shift1, models.Shift2, models.Shift3),
	}
	bs := booths("Ring Toss")
	res := mustNew(t, vols, bs).Assign()

	if score := CoverageScore(res.Assignments, bs); score != 100.0 {
		t.Errorf("Expected 100%% coverage, got %f", score)
	}
	if score := CoverageScore(nil, bs); score != 0.0 {
		t.Errorf("Expected 0%% coverage with no assignments, got %f", score)
	}
}
