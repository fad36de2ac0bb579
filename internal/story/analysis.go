// Package story holds the data model shared across the transformation
// pipeline: the source analysis, the world mapping, generated scenes, and
// the running story state.
package story

// Character is a character extracted from the source narrative, plus its
// target-world identity and runtime state during generation.
type Character struct {
	Name    string   `json:"name"`
	Role    string   `json:"role"`
	Traits  []string `json:"traits,omitempty"`
	Desires []string `json:"desires,omitempty"`
	Fears   []string `json:"fears,omitempty"`
	Arc     string   `json:"arc,omitempty"`

	// Target-world identity, filled from the world mapping.
	TargetName        string `json:"target_name,omitempty"`
	TargetRole        string `json:"target_role,omitempty"`
	TargetDescription string `json:"target_description,omitempty"`

	// Runtime state during generation.
	Status    string   `json:"status,omitempty"` // alive, dead, absent
	Location  string   `json:"location,omitempty"`
	Inventory []string `json:"inventory,omitempty"`
}

// PlotBeat is a single beat of the mapped plot structure.
type PlotBeat struct {
	Index         int      `json:"index"`
	Name          string   `json:"name"`
	Function      string   `json:"function"`
	SourceEvents  []string `json:"source_events,omitempty"`
	TargetEmotion string   `json:"target_emotion"`
	TypicalLength int      `json:"typical_length"`
}

// Conflict is a narrative conflict present in the source.
type Conflict struct {
	Type        string   `json:"type"` // internal, external, interpersonal
	Description string   `json:"description"`
	Parties     []string `json:"parties,omitempty"`
	Resolution  string   `json:"resolution,omitempty"`
}

// SourceAnalysis is the complete structural analysis of the source work.
type SourceAnalysis struct {
	Title           string            `json:"title"`
	Characters      []Character       `json:"characters"`
	Themes          []string          `json:"themes"`
	Beats           []PlotBeat        `json:"beats"`
	Conflicts       []Conflict        `json:"conflicts"`
	Symbols         map[string]string `json:"symbols,omitempty"`
	Setting         string            `json:"setting"`
	Tone            string            `json:"tone"`
	CentralQuestion string            `json:"central_question"`
}
