package story

import "strings"

// Character status values.
const (
	StatusAlive  = "alive"
	StatusDead   = "dead"
	StatusAbsent = "absent"
)

// State tracks the story world while scenes are generated. One State per
// run; mutated between beats by the generator's scene application.
type State struct {
	// Characters keyed by target-world name.
	Characters map[string]*Character `json:"characters"`
	Conflicts  []Conflict            `json:"active_conflicts"`
	Timeline   []string              `json:"timeline"`
	Beat       int                   `json:"current_beat"`
}

// NewState seeds a run's state from the analysis and the world mapping.
// Only characters with a mapped target name participate.
func NewState(analysis *SourceAnalysis, mapping *WorldMapping) *State {
	chars := make(map[string]*Character)

	for i := range analysis.Characters {
		c := analysis.Characters[i] // copy; state owns its characters
		target := mapping.TargetName(c.Name, CategoryCharacter)
		if target == "" {
			continue
		}
		c.TargetName = target
		c.Status = StatusAlive
		c.Location = "unknown"
		chars[target] = &c
	}

	conflicts := make([]Conflict, len(analysis.Conflicts))
	copy(conflicts, analysis.Conflicts)

	return &State{
		Characters: chars,
		Conflicts:  conflicts,
	}
}

// SetStatus updates a character's status if the character exists.
func (s *State) SetStatus(name, status string) {
	if c, ok := s.Characters[name]; ok {
		c.Status = status
	}
}

// SetLocation updates a character's location if the character exists.
func (s *State) SetLocation(name, location string) {
	if c, ok := s.Characters[name]; ok {
		c.Location = location
	}
}

// AddEvent appends a major event to the timeline.
func (s *State) AddEvent(event string) {
	s.Timeline = append(s.Timeline, event)
}

// ResolveConflict marks conflicts whose description contains the given
// text as resolved.
func (s *State) ResolveConflict(description string) {
	needle := strings.ToLower(description)
	for i := range s.Conflicts {
		if strings.Contains(strings.ToLower(s.Conflicts[i].Description), needle) {
			s.Conflicts[i].Resolution = "resolved"
		}
	}
}

// ActiveConflicts returns the descriptions of unresolved conflicts.
func (s *State) ActiveConflicts() []string {
	var out []string
	for _, c := range s.Conflicts {
		if c.Resolution == "" {
			out = append(out, c.Description)
		}
	}
	return out
}

// Alive returns the names of characters still alive.
func (s *State) Alive() []string {
	var out []string
	for name, c := range s.Characters {
		if c.Status == StatusAlive {
			out = append(out, name)
		}
	}
	return out
}

// Fates summarizes each character's final status, location, and items.
func (s *State) Fates() map[string]string {
	fates := make(map[string]string, len(s.Characters))
	for name, c := range s.Characters {
		parts := []string{c.Status}
		if c.Location != "" {
			parts = append(parts, "last seen at "+c.Location)
		}
		if len(c.Inventory) > 0 {
			parts = append(parts, "possessing "+strings.Join(c.Inventory, ", "))
		}
		fates[name] = strings.Join(parts, " - ")
	}
	return fates
}
