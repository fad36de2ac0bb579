package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/okvist/recast/internal/genre"
	"github.com/okvist/recast/internal/llm"
	"github.com/okvist/recast/internal/story"
)

func testState(t *testing.T) *story.State {
	t.Helper()
	analysis := &story.SourceAnalysis{
		Title: "Romeo and Juliet",
		Characters: []story.Character{
			{Name: "Romeo", Role: "hero"},
			{Name: "Juliet", Role: "heroine"},
		},
		Conflicts: []story.Conflict{
			{Type: "interpersonal", Description: "Family feud"},
		},
	}
	mapping := &story.WorldMapping{
		Genre: "cyberpunk",
		Characters: []story.ElementMapping{
			{Source: "Romeo", Target: "Rom-30", Category: story.CategoryCharacter, NarrativeFunction: "young hacker"},
			{Source: "Juliet", Target: "J-Unit", Category: story.CategoryCharacter, NarrativeFunction: "corp heiress"},
		},
	}
	return story.NewState(analysis, mapping)
}

const sceneResponse = `The rain never stopped in the Sprawl. Rom-30 crouched on the maglev platform,
watching drones sweep the crowd below with cold blue light. Somewhere in the
towers above, J-Unit waited, and between them stood forty floors of corporate
security and a feud older than either of them. He checked the deck strapped to
his forearm one more time, counted his breaths, and stepped into the open. The
first alarm sounded before his boot hit the platform edge, a thin electric
wail that climbed the towers like a living thing, and he ran.

<metadata>
CHARACTERS: Rom-30
LOCATION: the maglev platform
EMOTION: negative
STATE_CHANGES: Rom-30 moves to the maglev platform
HOOKS: Will security catch him?
</metadata>`

func TestGenerateParsesSceneAndMetadata(t *testing.T) {
	mock := &llm.Mock{Responses: []string{sceneResponse}}
	g := NewGenerator(mock, "test-model")
	state := testState(t)

	template, err := genre.Get("cyberpunk")
	if err != nil {
		t.Fatal(err)
	}

	scene, err := g.Generate(context.Background(), SceneRequest{
		Beat:         story.PlotBeat{Index: 3, Name: "Catalyst", Function: "The event that launches the story", TargetEmotion: "surprise"},
		Template:     template,
		Mapping:      &story.WorldMapping{Genre: "cyberpunk"},
		State:        state,
		TotalBeats:   15,
		PacingHint:   "RISING ACTION: Build tension steadily. Introduce complications.",
		TargetLength: 400,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if scene.BeatName != "Catalyst" || scene.BeatIndex != 3 {
		t.Errorf("beat identity = %q/%d", scene.BeatName, scene.BeatIndex)
	}
	if strings.Contains(scene.Text, "<metadata>") {
		t.Error("metadata block leaked into scene text")
	}
	if len(scene.Characters) != 1 || scene.Characters[0] != "Rom-30" {
		t.Errorf("characters = %v", scene.Characters)
	}
	if scene.Location != "the maglev platform" {
		t.Errorf("location = %q", scene.Location)
	}
	if scene.Valence != -0.5 {
		t.Errorf("valence = %v, want -0.5", scene.Valence)
	}
	if scene.Tension < 0 {
		t.Errorf("tension = %v, want >= 0", scene.Tension)
	}
	if scene.Changes.LocationMoves == "" {
		t.Error("location move not detected")
	}
	if len(scene.Hooks) != 1 {
		t.Errorf("hooks = %v", scene.Hooks)
	}
}

func TestParseSceneWithoutMetadata(t *testing.T) {
	g := NewGenerator(&llm.Mock{}, "m")
	scene := g.parseScene("Just prose, no metadata block at all.", story.PlotBeat{Index: 0, Name: "Opening Image"})

	if scene.Text != "Just prose, no metadata block at all." {
		t.Errorf("text = %q", scene.Text)
	}
	if scene.Location != "Unknown" {
		t.Errorf("location = %q, want Unknown fallback", scene.Location)
	}
	if scene.Valence != 0 {
		t.Errorf("valence = %v, want neutral", scene.Valence)
	}
}

func TestParseStateChanges(t *testing.T) {
	changes := parseStateChanges("Rom-30 dies in the explosion, J-Unit travels to the undercity, J-Unit finds the deck")

	if len(changes.Deaths) != 1 || !strings.Contains(changes.Deaths[0], "Rom-30") {
		t.Errorf("deaths = %v", changes.Deaths)
	}
	if changes.LocationMoves == "" {
		t.Error("location move not detected")
	}
	if changes.ItemTransfers == "" {
		t.Error("item transfer not detected")
	}

	if got := parseStateChanges(""); !got.Empty() {
		t.Errorf("empty input should report no changes, got %+v", got)
	}
}

func TestValidate(t *testing.T) {
	state := testState(t)
	state.SetStatus("Rom-30", story.StatusDead)

	longText := strings.Repeat("word ", 60)

	tests := []struct {
		name      string
		scene     *story.Scene
		wantCount int
	}{
		{"clean scene", &story.Scene{Characters: []string{"J-Unit"}, Text: longText}, 0},
		{"dead character", &story.Scene{Characters: []string{"Rom-30"}, Text: longText}, 1},
		{"unknown character", &story.Scene{Characters: []string{"Mercutio-X"}, Text: longText}, 1},
		{"too short", &story.Scene{Characters: []string{"J-Unit"}, Text: "brief"}, 1},
		{"empty", &story.Scene{Text: "   "}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.scene, state)
			if len(errs) != tt.wantCount {
				t.Errorf("Validate() = %v, want %d issues", errs, tt.wantCount)
			}
		})
	}
}

func TestApplyScene(t *testing.T) {
	state := testState(t)

	scene := &story.Scene{
		BeatIndex:  4,
		BeatName:   "Debate",
		Location:   "the undercity",
		Characters: []string{"J-Unit"},
		Changes: story.StateChanges{
			Deaths:        []string{"Rom-30 dies in the explosion"},
			LocationMoves: "J-Unit moves to the undercity",
		},
	}

	ApplyScene(state, scene)

	if state.Characters["Rom-30"].Status != story.StatusDead {
		t.Error("death not applied")
	}
	if state.Characters["J-Unit"].Location != "the undercity" {
		t.Errorf("location = %q", state.Characters["J-Unit"].Location)
	}
	if state.Beat != 4 {
		t.Errorf("beat = %d, want 4", state.Beat)
	}

	// Timeline has the death plus the beat event.
	if len(state.Timeline) != 2 {
		t.Errorf("timeline = %v", state.Timeline)
	}
}
