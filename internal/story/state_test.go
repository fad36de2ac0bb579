package story

import (
	"sort"
	"testing"
)

func testAnalysis() *SourceAnalysis {
	return &SourceAnalysis{
		Title: "Romeo and Juliet",
		Characters: []Character{
			{Name: "Romeo", Role: "hero", Traits: []string{"impulsive", "romantic"}},
			{Name: "Juliet", Role: "heroine", Traits: []string{"brave", "loyal"}},
			{Name: "Rosaline", Role: "minor"},
		},
		Conflicts: []Conflict{
			{Type: "interpersonal", Description: "Montague vs Capulet feud", Parties: []string{"Montague", "Capulet"}},
			{Type: "internal", Description: "Love against loyalty"},
		},
	}
}

func testMapping() *WorldMapping {
	return &WorldMapping{
		Genre: "cyberpunk",
		Characters: []ElementMapping{
			{Source: "Romeo", Target: "Rom-30", Category: CategoryCharacter},
			{Source: "Juliet", Target: "J-Unit", Category: CategoryCharacter},
		},
		Locations: []ElementMapping{
			{Source: "Verona", Target: "Neo-Verona Sprawl", Category: CategoryLocation},
		},
	}
}

func TestNewState(t *testing.T) {
	state := NewState(testAnalysis(), testMapping())

	if len(state.Characters) != 2 {
		t.Fatalf("got %d characters, want 2 (unmapped dropped)", len(state.Characters))
	}

	rom, ok := state.Characters["Rom-30"]
	if !ok {
		t.Fatal("Rom-30 missing from state")
	}
	if rom.Status != StatusAlive {
		t.Errorf("status = %q, want alive", rom.Status)
	}
	if rom.Name != "Romeo" {
		t.Errorf("source name = %q, want Romeo", rom.Name)
	}
	if len(state.Conflicts) != 2 {
		t.Errorf("got %d conflicts, want 2", len(state.Conflicts))
	}
}

func TestStateMutators(t *testing.T) {
	state := NewState(testAnalysis(), testMapping())

	state.SetStatus("Rom-30", StatusDead)
	state.SetLocation("J-Unit", "the undercity")
	state.SetStatus("Nobody", StatusDead) // no-op
	state.AddEvent("Rom-30 died")

	alive := state.Alive()
	sort.Strings(alive)
	if len(alive) != 1 || alive[0] != "J-Unit" {
		t.Errorf("Alive() = %v, want [J-Unit]", alive)
	}
	if got := state.Characters["J-Unit"].Location; got != "the undercity" {
		t.Errorf("location = %q", got)
	}
	if len(state.Timeline) != 1 {
		t.Errorf("timeline length = %d, want 1", len(state.Timeline))
	}
}

func TestResolveConflict(t *testing.T) {
	state := NewState(testAnalysis(), testMapping())

	state.ResolveConflict("capulet feud")

	active := state.ActiveConflicts()
	if len(active) != 1 || active[0] != "Love against loyalty" {
		t.Errorf("ActiveConflicts() = %v", active)
	}
}

func TestFates(t *testing.T) {
	state := NewState(testAnalysis(), testMapping())
	state.SetStatus("Rom-30", StatusDead)
	state.Characters["J-Unit"].Inventory = []string{"neural deck"}

	fates := state.Fates()
	if fates["Rom-30"] != "dead - last seen at unknown" {
		t.Errorf("fate = %q", fates["Rom-30"])
	}
	if fates["J-Unit"] != "alive - last seen at unknown - possessing neural deck" {
		t.Errorf("fate = %q", fates["J-Unit"])
	}
}

func TestTargetName(t *testing.T) {
	m := testMapping()

	if got := m.TargetName("romeo", CategoryCharacter); got != "Rom-30" {
		t.Errorf("TargetName(romeo) = %q, want Rom-30 (case-insensitive)", got)
	}
	if got := m.TargetName("Verona", ""); got != "Neo-Verona Sprawl" {
		t.Errorf("TargetName(Verona, any) = %q", got)
	}
	if got := m.TargetName("Romeo", CategoryLocation); got != "" {
		t.Errorf("TargetName with wrong category = %q, want empty", got)
	}
	if got := m.TargetName("Tybalt", CategoryCharacter); got != "" {
		t.Errorf("TargetName(unmapped) = %q, want empty", got)
	}
}
