package story

// StateChanges captures the state-affecting events a scene reported in
// its metadata block.
type StateChanges struct {
	Deaths        []string `json:"deaths,omitempty"`
	LocationMoves string   `json:"location_moves,omitempty"`
	ItemTransfers string   `json:"item_transfers,omitempty"`
}

// Empty reports whether the scene declared no state changes.
func (c StateChanges) Empty() bool {
	return len(c.Deaths) == 0 && c.LocationMoves == "" && c.ItemTransfers == ""
}

// Scene is one generated narrative unit plus its parsed metadata.
type Scene struct {
	BeatIndex int    `json:"beat_index"`
	BeatName  string `json:"beat_name"`
	Text      string `json:"text"`

	Characters []string `json:"characters,omitempty"`
	Location   string   `json:"location"`

	// Valence is the scene's self-reported emotional direction:
	// +0.5 positive, -0.5 negative, 0 neutral.
	Valence float64 `json:"emotional_valence"`

	// Tension is the scored narrative tension index for Text.
	Tension float64 `json:"tension_score"`

	Changes StateChanges `json:"state_updates"`
	Hooks   []string     `json:"hooks,omitempty"`
}
