package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okvist/recast/internal/genre"
	"github.com/okvist/recast/internal/llm"
	"github.com/okvist/recast/internal/prompts"
	"github.com/okvist/recast/internal/story"
	"github.com/okvist/recast/internal/tension"
)

const minSceneWords = 50

// Generator produces one scene per beat with full story context.
type Generator struct {
	provider llm.Provider
	model    string
	scorer   *tension.Scorer
}

func NewGenerator(provider llm.Provider, model string) *Generator {
	return &Generator{
		provider: provider,
		model:    model,
		scorer:   tension.NewScorer(),
	}
}

// SceneRequest carries everything one scene generation needs.
type SceneRequest struct {
	Beat            story.PlotBeat
	Template        *genre.Template
	Mapping         *story.WorldMapping
	State           *story.State
	TotalBeats      int
	PacingHint      string
	PreviousSummary string
	TargetLength    int
}

func (g *Generator) Generate(ctx context.Context, sr SceneRequest) (*story.Scene, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	prompt, err := prompts.Scene(g.sceneData(sr))
	if err != nil {
		return nil, err
	}

	req := llm.NewRequest(g.model, prompts.SceneSystem, prompt)
	req.Temperature = 0.8
	req.MaxTokens = 1500

	resp, err := g.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating %q: %w", sr.Beat.Name, err)
	}

	return g.parseScene(resp.Content, sr.Beat), nil
}

func (g *Generator) sceneData(sr SceneRequest) prompts.SceneData {
	var charStates []string
	for name, c := range sr.State.Characters {
		s := fmt.Sprintf("%s (%s): %s", name, c.Role, c.Status)
		if c.Location != "" {
			s += ", currently at " + c.Location
		}
		if len(c.Inventory) > 0 {
			s += ", has " + strings.Join(c.Inventory, ", ")
		}
		charStates = append(charStates, s)
	}

	timeline := sr.State.Timeline
	if len(timeline) > 5 {
		timeline = timeline[len(timeline)-5:]
	}

	var mappings []string
	for _, m := range sr.Mapping.Characters {
		mappings = append(mappings, fmt.Sprintf("%s -> %s (%s)", m.Source, m.Target, m.NarrativeFunction))
	}

	return prompts.SceneData{
		GenreName:       sr.Template.Name,
		Tone:            sr.Template.Tone,
		TechnologyLevel: sr.Template.TechnologyLevel,
		KeyAesthetics:   sr.Template.KeyAesthetics,
		WorldRules:      sr.Mapping.WorldRules,

		CharacterStates: charStates,
		ActiveConflicts: sr.State.ActiveConflicts(),
		Timeline:        timeline,

		BeatNumber:    sr.Beat.Index + 1,
		TotalBeats:    sr.TotalBeats,
		BeatName:      sr.Beat.Name,
		BeatFunction:  sr.Beat.Function,
		TargetEmotion: sr.Beat.TargetEmotion,
		SourceEvents:  sr.Beat.SourceEvents,
		PacingHint:    sr.PacingHint,

		PreviousSummary:   sr.PreviousSummary,
		CharacterMappings: mappings,

		TargetLength:  sr.TargetLength,
		StyleGuidance: sr.Template.StyleGuidance,
	}
}

func (g *Generator) parseScene(response string, beat story.PlotBeat) *story.Scene {
	text := response
	meta := ""
	if i := strings.Index(response, "<metadata>"); i >= 0 {
		text = strings.TrimSpace(response[:i])
		meta = response[i+len("<metadata>"):]
		if j := strings.Index(meta, "</metadata>"); j >= 0 {
			meta = meta[:j]
		}
	} else {
		text = strings.TrimSpace(response)
	}

	emotion := MetadataField(meta, "EMOTION")
	valence := 0.0
	switch {
	case strings.Contains(strings.ToLower(emotion), "positive"):
		valence = 0.5
	case strings.Contains(strings.ToLower(emotion), "negative"):
		valence = -0.5
	}

	return &story.Scene{
		BeatIndex:  beat.Index,
		BeatName:   beat.Name,
		Text:       text,
		Characters: SplitList(MetadataField(meta, "CHARACTERS"), ","),
		Location:   defaultStr(MetadataField(meta, "LOCATION"), "Unknown"),
		Valence:    valence,
		Tension:    g.scorer.Score(text),
		Changes:    parseStateChanges(MetadataField(meta, "STATE_CHANGES")),
		Hooks:      SplitList(MetadataField(meta, "HOOKS"), ";"),
	}
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// parseStateChanges reads the free-form STATE_CHANGES value with
// keyword heuristics. The model reports changes in prose, not a
// schema, so matching stays loose.
func parseStateChanges(changes string) story.StateChanges {
	var out story.StateChanges
	if changes == "" {
		return out
	}
	lower := strings.ToLower(changes)

	if strings.Contains(lower, "dies") || strings.Contains(lower, "killed") || strings.Contains(lower, "death") {
		for _, part := range strings.Split(changes, ",") {
			pl := strings.ToLower(part)
			if strings.Contains(pl, "dies") || strings.Contains(pl, "killed") || strings.Contains(pl, "death") {
				out.Deaths = append(out.Deaths, strings.TrimSpace(part))
			}
		}
	}
	if strings.Contains(lower, "moves to") || strings.Contains(lower, "travels to") {
		out.LocationMoves = changes
	}
	if strings.Contains(lower, "gets") || strings.Contains(lower, "receives") || strings.Contains(lower, "finds") {
		out.ItemTransfers = changes
	}

	return out
}

// Validate checks a scene for continuity violations against the
// current state. Violations are reported, not fatal; the pipeline logs
// them and keeps going.
func Validate(scene *story.Scene, state *story.State) []string {
	var errs []string

	for _, name := range scene.Characters {
		c, known := state.Characters[name]
		if !known {
			errs = append(errs, fmt.Sprintf("unknown character %q appears", name))
			continue
		}
		if c.Status == story.StatusDead {
			errs = append(errs, fmt.Sprintf("dead character %q appears in scene", name))
		}
	}

	if strings.TrimSpace(scene.Text) == "" {
		errs = append(errs, "scene is empty")
	} else if len(strings.Fields(scene.Text)) < minSceneWords {
		errs = append(errs, "scene is too short")
	}

	return errs
}

// ApplyScene folds a scene's reported changes into the story state.
func ApplyScene(state *story.State, scene *story.Scene) {
	for _, death := range scene.Changes.Deaths {
		deathLower := strings.ToLower(death)
		for name := range state.Characters {
			if strings.Contains(deathLower, strings.ToLower(name)) {
				state.SetStatus(name, story.StatusDead)
				state.AddEvent(name + " died")
			}
		}
	}

	if scene.Changes.LocationMoves != "" {
		for _, name := range scene.Characters {
			state.SetLocation(name, scene.Location)
		}
	}

	state.AddEvent(fmt.Sprintf("%s: %s", scene.BeatName, scene.Location))
	state.Beat = scene.BeatIndex
}
