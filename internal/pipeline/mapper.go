package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okvist/recast/internal/genre"
	"github.com/okvist/recast/internal/llm"
	"github.com/okvist/recast/internal/prompts"
	"github.com/okvist/recast/internal/story"
)

// Mapper translates source narrative elements into a target genre's
// vocabulary.
type Mapper struct {
	provider llm.Provider
	model    string
}

func NewMapper(provider llm.Provider, model string) *Mapper {
	return &Mapper{provider: provider, model: model}
}

func (m *Mapper) Map(ctx context.Context, analysis *story.SourceAnalysis, genreID string) (*story.WorldMapping, error) {
	template, err := genre.Get(genreID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	prompt, err := prompts.Mapping(prompts.MappingData{
		GenreName:         template.Name,
		Tone:              template.Tone,
		TechnologyLevel:   template.TechnologyLevel,
		KeyAesthetics:     template.KeyAesthetics,
		NamingConventions: template.NamingConventions,
		WorldRules:        template.WorldRules,
		AnalysisJSON:      summarizeForMapping(analysis),
	})
	if err != nil {
		return nil, err
	}

	req := llm.NewRequest(m.model, prompts.MappingSystem, prompt)
	req.Temperature = 0.8 // creativity wanted here
	req.MaxTokens = 2000
	req.JSONMode = true

	resp, err := m.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("world mapping failed: %w", err)
	}

	return parseMapping(resp.Content, genreID, template.WorldRules)
}

// summarizeForMapping serializes just the analysis fields the mapping
// stage needs, keeping the prompt small.
func summarizeForMapping(analysis *story.SourceAnalysis) string {
	type charSummary struct {
		Name   string   `json:"name"`
		Role   string   `json:"role"`
		Traits []string `json:"traits,omitempty"`
	}

	chars := make([]charSummary, 0, len(analysis.Characters))
	for _, c := range analysis.Characters {
		chars = append(chars, charSummary{Name: c.Name, Role: c.Role, Traits: c.Traits})
	}
	conflicts := make([]string, 0, len(analysis.Conflicts))
	for _, c := range analysis.Conflicts {
		conflicts = append(conflicts, c.Description)
	}

	summary := map[string]any{
		"characters": chars,
		"setting":    analysis.Setting,
		"symbols":    analysis.Symbols,
		"conflicts":  conflicts,
	}
	data, _ := json.MarshalIndent(summary, "", "  ")
	return string(data)
}

func parseMapping(content, genreID string, worldRules []string) (*story.WorldMapping, error) {
	var raw struct {
		Characters []struct {
			SourceName        string `json:"source_name"`
			TargetName        string `json:"target_name"`
			TargetRole        string `json:"target_role"`
			TargetDescription string `json:"target_description"`
			NarrativeFunction string `json:"narrative_function"`
		} `json:"characters"`
		Locations []struct {
			Source            string `json:"source"`
			Target            string `json:"target"`
			Description       string `json:"description"`
			NarrativeFunction string `json:"narrative_function"`
		} `json:"locations"`
		Objects []struct {
			Source            string `json:"source"`
			Target            string `json:"target"`
			SymbolicMeaning   string `json:"symbolic_meaning"`
			NarrativeFunction string `json:"narrative_function"`
		} `json:"objects"`
		Concepts []struct {
			Source       string `json:"source"`
			Target       string `json:"target"`
			HowManifests string `json:"how_manifests"`
		} `json:"concepts"`
	}

	if err := json.Unmarshal([]byte(CleanJSON(content)), &raw); err != nil {
		return nil, fmt.Errorf("parsing mapping response: %w", err)
	}
	if len(raw.Characters) == 0 {
		return nil, fmt.Errorf("mapping returned no characters")
	}

	mapping := &story.WorldMapping{
		Genre:      genreID,
		WorldRules: worldRules,
	}
	for _, c := range raw.Characters {
		mapping.Characters = append(mapping.Characters, story.ElementMapping{
			Source:            c.SourceName,
			Target:            c.TargetName,
			Category:          story.CategoryCharacter,
			NarrativeFunction: c.NarrativeFunction,
		})
	}
	for _, l := range raw.Locations {
		mapping.Locations = append(mapping.Locations, story.ElementMapping{
			Source:            l.Source,
			Target:            l.Target,
			Category:          story.CategoryLocation,
			NarrativeFunction: l.NarrativeFunction,
		})
	}
	for _, o := range raw.Objects {
		mapping.Objects = append(mapping.Objects, story.ElementMapping{
			Source:            o.Source,
			Target:            o.Target,
			Category:          story.CategoryObject,
			NarrativeFunction: o.NarrativeFunction,
			SymbolicMeaning:   o.SymbolicMeaning,
		})
	}
	for _, c := range raw.Concepts {
		mapping.Concepts = append(mapping.Concepts, story.ElementMapping{
			Source:            c.Source,
			Target:            c.Target,
			Category:          story.CategoryConcept,
			NarrativeFunction: c.HowManifests,
		})
	}

	return mapping, nil
}
