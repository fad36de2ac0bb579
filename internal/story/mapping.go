package story

import "strings"

// Mapping categories.
const (
	CategoryCharacter = "character"
	CategoryLocation  = "location"
	CategoryObject    = "object"
	CategoryConcept   = "concept"
)

// ElementMapping translates a single source element into the target world.
type ElementMapping struct {
	Source            string `json:"source"`
	Target            string `json:"target"`
	Category          string `json:"category"`
	NarrativeFunction string `json:"narrative_function,omitempty"`
	SymbolicMeaning   string `json:"symbolic_meaning,omitempty"`
}

// WorldMapping is the full translation of the source world into the
// target genre's vocabulary.
type WorldMapping struct {
	Genre      string           `json:"genre"`
	Characters []ElementMapping `json:"character_mappings"`
	Locations  []ElementMapping `json:"location_mappings"`
	Objects    []ElementMapping `json:"object_mappings"`
	Concepts   []ElementMapping `json:"concept_mappings"`
	WorldRules []string         `json:"world_rules"`
}

// TargetName returns the target-world name for a source element, or ""
// when no mapping exists. An empty category matches any category.
func (m *WorldMapping) TargetName(source, category string) string {
	for _, group := range [][]ElementMapping{m.Characters, m.Locations, m.Objects, m.Concepts} {
		for _, em := range group {
			if !strings.EqualFold(em.Source, source) {
				continue
			}
			if category == "" || em.Category == category {
				return em.Target
			}
		}
	}
	return ""
}
