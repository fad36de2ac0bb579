// Package writer assembles generated scenes into the final story text
// and the run metadata document.
package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/okvist/recast/internal/genre"
	"github.com/okvist/recast/internal/pipeline"
	"github.com/okvist/recast/internal/story"
)

// RunMetadata is the machine-readable record of one transformation.
type RunMetadata struct {
	SourceTitle    string                `json:"source_title"`
	TargetGenre    string                `json:"target_genre"`
	Model          string                `json:"model,omitempty"`
	TotalBeats     int                   `json:"total_beats"`
	TensionCurve   []float64             `json:"tension_curve"`
	TensionTargets []float64             `json:"tension_targets"`
	AvgTension     float64               `json:"avg_tension"`
	CharacterFates map[string]string     `json:"character_fates"`
	WordCount      int                   `json:"word_count"`
	Warnings       []string              `json:"warnings,omitempty"`
	WorldMapping   *story.WorldMapping   `json:"world_mapping"`
	SourceAnalysis *story.SourceAnalysis `json:"source_analysis"`
	GeneratedAt    time.Time             `json:"generated_at"`
}

// Title builds the final story title.
func Title(sourceTitle, genreID string) string {
	name := genreID
	if t, err := genre.Get(genreID); err == nil {
		name = t.Name
	}
	return fmt.Sprintf("%s: A %s Reimagining", sourceTitle, name)
}

// Assemble joins the scenes into the final story document.
func Assemble(result *pipeline.Result) string {
	title := Title(result.Analysis.Title, result.Mapping.Genre)

	genreName := result.Mapping.Genre
	if t, err := genre.Get(result.Mapping.Genre); err == nil {
		genreName = t.Name
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(title)))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("A transformation of the classic tale into a %s setting.\n", genreName))

	for _, scene := range result.Scenes {
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", scene.BeatName))
		sb.WriteString(scene.Text)
		sb.WriteString("\n")
	}

	// Runs shorter than the full structure never reach the closing
	// mirror beat; give them an explicit ending.
	if n := len(result.Scenes); n > 0 && result.Scenes[n-1].BeatName != "Final Image" {
		sb.WriteString("\n## Epilogue\n\nAnd so our tale concludes, transformed yet timeless.\n")
	}

	return sb.String()
}

// BuildMetadata compiles the run metadata from a pipeline result.
func BuildMetadata(result *pipeline.Result, model, storyText string) *RunMetadata {
	avg := 0.0
	if len(result.TensionHistory) > 0 {
		var sum float64
		for _, v := range result.TensionHistory {
			sum += v
		}
		avg = sum / float64(len(result.TensionHistory))
	}

	return &RunMetadata{
		SourceTitle:    result.Analysis.Title,
		TargetGenre:    result.Mapping.Genre,
		Model:          model,
		TotalBeats:     len(result.Scenes),
		TensionCurve:   result.TensionHistory,
		TensionTargets: result.TensionTargets,
		AvgTension:     avg,
		CharacterFates: result.State.Fates(),
		WordCount:      len(strings.Fields(storyText)),
		Warnings:       result.Warnings,
		WorldMapping:   result.Mapping,
		SourceAnalysis: result.Analysis,
		GeneratedAt:    time.Now(),
	}
}

// WriteStory writes the story text to path, creating parent directories.
func WriteStory(path, storyText string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(storyText), 0644)
}

// WriteMetadata writes the run metadata as indented JSON.
func WriteMetadata(path string, meta *RunMetadata) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
