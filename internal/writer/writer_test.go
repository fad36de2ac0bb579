package writer

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okvist/recast/internal/pipeline"
	"github.com/okvist/recast/internal/story"
)

func testResult(lastBeat string) *pipeline.Result {
	analysis := &story.SourceAnalysis{
		Title: "Romeo and Juliet",
		Characters: []story.Character{
			{Name: "Romeo", Role: "hero"},
		},
	}
	mapping := &story.WorldMapping{
		Genre: "cyberpunk",
		Characters: []story.ElementMapping{
			{Source: "Romeo", Target: "Rom-30", Category: story.CategoryCharacter},
		},
	}
	state := story.NewState(analysis, mapping)

	return &pipeline.Result{
		Analysis: analysis,
		Mapping:  mapping,
		State:    state,
		Scenes: []*story.Scene{
			{BeatIndex: 0, BeatName: "Opening Image", Text: "The rain never stopped.", Tension: 0.4},
			{BeatIndex: 1, BeatName: lastBeat, Text: "It ended as it began.", Tension: 0.2},
		},
		TensionHistory: []float64{0.4, 0.2},
		TensionTargets: []float64{0.3, 0.35},
	}
}

func TestTitle(t *testing.T) {
	if got := Title("Romeo and Juliet", "cyberpunk"); got != "Romeo and Juliet: A Cyberpunk Reimagining" {
		t.Errorf("Title() = %q", got)
	}
	// Unknown genre falls back to the raw id.
	if got := Title("X", "noir"); got != "X: A noir Reimagining" {
		t.Errorf("Title() = %q", got)
	}
}

func TestAssemble(t *testing.T) {
	got := Assemble(testResult("Final Image"))

	if !strings.HasPrefix(got, "Romeo and Juliet: A Cyberpunk Reimagining\n====") {
		t.Errorf("story header:\n%s", got[:80])
	}
	if !strings.Contains(got, "## Opening Image") || !strings.Contains(got, "## Final Image") {
		t.Error("scene headings missing")
	}
	if !strings.Contains(got, "The rain never stopped.") {
		t.Error("scene text missing")
	}
	if strings.Contains(got, "## Epilogue") {
		t.Error("no epilogue wanted after Final Image")
	}
}

func TestAssembleAddsEpilogue(t *testing.T) {
	got := Assemble(testResult("Catalyst"))
	if !strings.Contains(got, "## Epilogue") {
		t.Error("truncated run should get an epilogue")
	}
}

func TestBuildMetadata(t *testing.T) {
	result := testResult("Final Image")
	meta := BuildMetadata(result, "test-model", "one two three four")

	if math.Abs(meta.AvgTension-0.3) > 1e-9 {
		t.Errorf("avg tension = %v, want 0.3", meta.AvgTension)
	}
	if meta.WordCount != 4 {
		t.Errorf("word count = %d, want 4", meta.WordCount)
	}
	if meta.TotalBeats != 2 {
		t.Errorf("total beats = %d", meta.TotalBeats)
	}
	if meta.CharacterFates["Rom-30"] == "" {
		t.Error("fates missing Rom-30")
	}
}

func TestWriteStoryAndMetadata(t *testing.T) {
	dir := t.TempDir()
	result := testResult("Final Image")
	storyText := Assemble(result)

	storyPath := filepath.Join(dir, "out", "story.md")
	if err := WriteStory(storyPath, storyText); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(storyPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != storyText {
		t.Error("written story differs")
	}

	metaPath := filepath.Join(dir, "out", "story.meta.json")
	if err := WriteMetadata(metaPath, BuildMetadata(result, "m", storyText)); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(metaPath)
	if err != nil {
		t.Fatal(err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	if meta.SourceTitle != "Romeo and Juliet" {
		t.Errorf("round-tripped title = %q", meta.SourceTitle)
	}
}
