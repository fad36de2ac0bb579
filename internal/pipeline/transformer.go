package pipeline

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/okvist/recast/internal/beats"
	"github.com/okvist/recast/internal/genre"
	"github.com/okvist/recast/internal/llm"
	"github.com/okvist/recast/internal/story"
	"github.com/okvist/recast/internal/tension"
)

// Scene length bounds across a run; the middle of the story gets the
// longest scenes.
const (
	minSceneLength = 250
	maxSceneLength = 500
)

// Stage represents a transformation stage
type Stage int

const (
	StageAnalyzing Stage = iota
	StageMapping
	StageGenerating
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageAnalyzing:
		return "Analyzing"
	case StageMapping:
		return "Mapping"
	case StageGenerating:
		return "Generating"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress represents transformation progress
type Progress struct {
	Stage       Stage
	StageIndex  int
	TotalStages int
	ItemIndex   int
	TotalItems  int
	Message     string

	// Per-beat detail, set during generation.
	BeatName string
	Tension  float64
	Target   float64
}

// Result contains the full transformation output
type Result struct {
	Analysis *story.SourceAnalysis
	Mapping  *story.WorldMapping
	Scenes   []*story.Scene
	State    *story.State

	TensionHistory []float64
	TensionTargets []float64
	Warnings       []string
}

// Transformer orchestrates the full pipeline: analyze, map, then
// generate scenes beat by beat under pacing control.
type Transformer struct {
	analyzer   *Analyzer
	mapper     *Mapper
	generator  *Generator
	numBeats   int
	onProgress func(Progress)
}

// NewTransformer creates a transformer. numBeats <= 0 uses the full
// 15-beat structure. The provider is wrapped with retry.
func NewTransformer(provider llm.Provider, model string, numBeats int) *Transformer {
	if numBeats <= 0 {
		numBeats = beats.Count()
	}
	p := llm.WithRetry(provider)
	return &Transformer{
		analyzer:  NewAnalyzer(p, model),
		mapper:    NewMapper(p, model),
		generator: NewGenerator(p, model),
		numBeats:  numBeats,
	}
}

// SetProgressCallback sets the progress callback
func (t *Transformer) SetProgressCallback(fn func(Progress)) {
	t.onProgress = fn
}

func (t *Transformer) progress(pr Progress) {
	if t.onProgress != nil {
		t.onProgress(pr)
	}
}

// Transform runs the full pipeline on a source text.
func (t *Transformer) Transform(ctx context.Context, text, title, genreID string) (*Result, error) {
	template, err := genre.Get(genreID)
	if err != nil {
		return nil, err
	}

	t.progress(Progress{
		Stage:       StageAnalyzing,
		StageIndex:  0,
		TotalStages: 3,
		Message:     fmt.Sprintf("Analyzing %q...", title),
	})

	analysis, err := t.analyzer.Analyze(ctx, text, title)
	if err != nil {
		return nil, err
	}

	t.progress(Progress{
		Stage:       StageMapping,
		StageIndex:  1,
		TotalStages: 3,
		Message:     fmt.Sprintf("Mapping to %s...", template.Name),
	})

	mapping, err := t.mapper.Map(ctx, analysis, genreID)
	if err != nil {
		return nil, err
	}

	state := story.NewState(analysis, mapping)
	if len(state.Characters) == 0 {
		return nil, fmt.Errorf("no characters survived the mapping")
	}

	pacer := tension.NewController(t.numBeats)
	plan := t.planBeats(analysis)

	result := &Result{
		Analysis:       analysis,
		Mapping:        mapping,
		State:          state,
		TensionTargets: pacer.TargetCurve(),
	}

	for i, beat := range plan {
		t.progress(Progress{
			Stage:       StageGenerating,
			StageIndex:  2,
			TotalStages: 3,
			ItemIndex:   i + 1,
			TotalItems:  t.numBeats,
			Message:     fmt.Sprintf("Generating beat %d/%d: %s", i+1, t.numBeats, beat.Name),
			BeatName:    beat.Name,
			Target:      pacer.Target(i),
		})

		var prev *float64
		if len(result.TensionHistory) > 0 {
			v := result.TensionHistory[len(result.TensionHistory)-1]
			prev = &v
		}
		hint := pacer.Directive(i, prev).Hint()

		scene, err := t.generator.Generate(ctx, SceneRequest{
			Beat:            beat,
			Template:        template,
			Mapping:         mapping,
			State:           state,
			TotalBeats:      t.numBeats,
			PacingHint:      hint,
			PreviousSummary: summarizeRecent(result.Scenes, 3),
			TargetLength:    sceneLength(i, t.numBeats),
		})
		if err != nil {
			return nil, err
		}

		for _, warn := range Validate(scene, state) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", beat.Name, warn))
		}

		ApplyScene(state, scene)
		result.Scenes = append(result.Scenes, scene)
		result.TensionHistory = append(result.TensionHistory, scene.Tension)

		t.progress(Progress{
			Stage:       StageGenerating,
			StageIndex:  2,
			TotalStages: 3,
			ItemIndex:   i + 1,
			TotalItems:  t.numBeats,
			Message:     fmt.Sprintf("Beat %d/%d done: %s", i+1, t.numBeats, beat.Name),
			BeatName:    beat.Name,
			Tension:     scene.Tension,
			Target:      pacer.Target(i),
		})
	}

	t.progress(Progress{
		Stage:       StageDone,
		StageIndex:  3,
		TotalStages: 3,
		Message:     "Transformation complete",
	})

	return result, nil
}

// planBeats takes the beats the analysis mapped and pads with the
// structural template up to the requested count.
func (t *Transformer) planBeats(analysis *story.SourceAnalysis) []story.PlotBeat {
	plan := make([]story.PlotBeat, 0, t.numBeats)
	for _, b := range analysis.Beats {
		if len(plan) == t.numBeats {
			break
		}
		b.Index = len(plan)
		plan = append(plan, b)
	}
	for len(plan) < t.numBeats {
		template := beats.Get(len(plan))
		plan = append(plan, story.PlotBeat{
			Index:         len(plan),
			Name:          template.Name,
			Function:      template.Function,
			TargetEmotion: template.TargetEmotion,
			TypicalLength: template.TypicalLength,
		})
	}
	return plan
}

// summarizeRecent condenses the last n scenes into a short context
// block for the next generation.
func summarizeRecent(scenes []*story.Scene, n int) string {
	if len(scenes) == 0 {
		return ""
	}
	if len(scenes) > n {
		scenes = scenes[len(scenes)-n:]
	}

	parts := make([]string, 0, len(scenes))
	for _, s := range scenes {
		text := s.Text
		if len(text) > 100 {
			text = text[:100]
		}
		parts = append(parts, fmt.Sprintf("%s: %s...", s.BeatName, text))
	}
	return strings.Join(parts, "\n\n")
}

// sceneLength sizes a scene by its position: a bell shape peaking in
// the middle of the story.
func sceneLength(beatIdx, total int) int {
	middle := float64(total) / 2
	normalized := math.Abs(float64(beatIdx)-middle) / middle
	length := maxSceneLength - normalized*(maxSceneLength-minSceneLength)
	return int(length)
}
