package prompts

import (
	"strings"
	"testing"
)

func TestAnalysisPrompt(t *testing.T) {
	got, err := Analysis(AnalysisData{
		Title:   "The Gift of the Magi",
		Excerpt: "One dollar and eighty-seven cents.",
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"SOURCE: The Gift of the Magi",
		"One dollar and eighty-seven cents.",
		"Save the Cat beat structure (15 beats)",
		"Output ONLY valid JSON",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("analysis prompt missing %q", want)
		}
	}
}

func TestMappingPrompt(t *testing.T) {
	got, err := Mapping(MappingData{
		GenreName:         "Cyberpunk",
		Tone:              "gritty, neon-soaked",
		TechnologyLevel:   "high tech, low life",
		KeyAesthetics:     []string{"neon", "rain"},
		NamingConventions: []string{"handles", "corp names"},
		WorldRules:        []string{"Megacorps rule", "Tech is everywhere"},
		AnalysisJSON:      `{"setting": "Verona"}`,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"TARGET GENRE: CYBERPUNK",
		"Key Aesthetics: neon, rain",
		"- Megacorps rule",
		`{"setting": "Verona"}`,
		"a weapon stays a weapon",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("mapping prompt missing %q", want)
		}
	}
}

func TestScenePrompt(t *testing.T) {
	data := SceneData{
		GenreName:         "Cyberpunk",
		Tone:              "gritty",
		TechnologyLevel:   "high",
		KeyAesthetics:     []string{"neon"},
		WorldRules:        []string{"Megacorps rule"},
		CharacterStates:   []string{"Rom-30 (hero): alive, currently at the sprawl"},
		ActiveConflicts:   []string{"Corp feud"},
		Timeline:          []string{"Rom-30 jacked in"},
		BeatNumber:        5,
		TotalBeats:        15,
		BeatName:          "Catalyst",
		BeatFunction:      "Inciting incident",
		TargetEmotion:     "shock",
		PacingHint:        "INJECT CONFLICT: Add unexpected complication, obstacle, or threat. Raise stakes.",
		CharacterMappings: []string{"Romeo -> Rom-30 (young hacker)"},
		TargetLength:      400,
		StyleGuidance:     "Short punchy sentences.",
	}

	got, err := Scene(data)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Current Beat: 5/15 - Catalyst",
		"PACING DIRECTIVE: INJECT CONFLICT",
		"approximately 400 words",
		"This is the opening scene.",
		"Source Events: None specified",
		"<metadata>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("scene prompt missing %q", want)
		}
	}

	data.PreviousSummary = "Catalyst: The message arrived..."
	data.SourceEvents = []string{"Romeo meets Juliet"}
	got, err = Scene(data)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "This is the opening scene.") {
		t.Error("opening fallback should be replaced by summary")
	}
	if !strings.Contains(got, "Source Events: Romeo meets Juliet") {
		t.Error("source events not rendered")
	}
}
