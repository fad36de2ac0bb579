package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okvist/recast/internal/beats"
	"github.com/okvist/recast/internal/llm"
	"github.com/okvist/recast/internal/prompts"
	"github.com/okvist/recast/internal/story"
)

// Analyzer extracts the structural skeleton of a source narrative.
type Analyzer struct {
	provider llm.Provider
	model    string
}

func NewAnalyzer(provider llm.Provider, model string) *Analyzer {
	return &Analyzer{provider: provider, model: model}
}

func (a *Analyzer) Analyze(ctx context.Context, text, title string) (*story.SourceAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	prompt, err := prompts.Analysis(prompts.AnalysisData{
		Title:   title,
		Excerpt: Excerpt(text, maxExcerptChars),
	})
	if err != nil {
		return nil, err
	}

	req := llm.NewRequest(a.model, prompts.AnalysisSystem, prompt)
	req.Temperature = 0.3
	req.JSONMode = true

	resp, err := a.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	return parseAnalysis(resp.Content, title)
}

func parseAnalysis(content, title string) (*story.SourceAnalysis, error) {
	var raw struct {
		Characters []story.Character `json:"characters"`
		Themes     []string          `json:"themes"`
		Beats      []struct {
			Name         string   `json:"name"`
			SourceEvents []string `json:"source_events"`
		} `json:"beats"`
		Conflicts       []story.Conflict  `json:"conflicts"`
		Symbols         map[string]string `json:"symbols"`
		Setting         string            `json:"setting"`
		Tone            string            `json:"tone"`
		CentralQuestion string            `json:"central_question"`
	}

	if err := json.Unmarshal([]byte(CleanJSON(content)), &raw); err != nil {
		return nil, fmt.Errorf("parsing analysis response: %w", err)
	}
	if len(raw.Characters) == 0 {
		return nil, fmt.Errorf("analysis returned no characters")
	}

	// Anchor each reported beat to the structural template; unknown beat
	// names inherit the template at their position.
	plotBeats := make([]story.PlotBeat, 0, len(raw.Beats))
	for i, b := range raw.Beats {
		template, ok := beats.ByName(b.Name)
		if !ok {
			template = beats.Get(i)
		}
		plotBeats = append(plotBeats, story.PlotBeat{
			Index:         i,
			Name:          b.Name,
			Function:      template.Function,
			SourceEvents:  b.SourceEvents,
			TargetEmotion: template.TargetEmotion,
			TypicalLength: template.TypicalLength,
		})
	}

	return &story.SourceAnalysis{
		Title:           title,
		Characters:      raw.Characters,
		Themes:          raw.Themes,
		Beats:           plotBeats,
		Conflicts:       raw.Conflicts,
		Symbols:         raw.Symbols,
		Setting:         raw.Setting,
		Tone:            raw.Tone,
		CentralQuestion: raw.CentralQuestion,
	}, nil
}
