// Package prompts holds the embedded prompt templates for each
// pipeline stage.
package prompts

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed analysis.md
var analysisTemplate string

//go:embed mapping.md
var mappingTemplate string

//go:embed scene.md
var sceneTemplate string

// System prompts sent alongside each stage's user prompt.
const (
	AnalysisSystem = "You are a narrative analysis expert. Always respond with valid JSON."
	MappingSystem  = "You are a creative world-building expert. Always respond with valid JSON."
	SceneSystem    = "You are a creative writer specializing in immersive storytelling."
)

var funcs = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
}

var (
	analysisTmpl = template.Must(template.New("analysis").Funcs(funcs).Parse(analysisTemplate))
	mappingTmpl  = template.Must(template.New("mapping").Funcs(funcs).Parse(mappingTemplate))
	sceneTmpl    = template.Must(template.New("scene").Funcs(funcs).Parse(sceneTemplate))
)

// AnalysisData fills the source analysis prompt.
type AnalysisData struct {
	Title   string
	Excerpt string
}

// MappingData fills the world mapping prompt.
type MappingData struct {
	GenreName         string
	Tone              string
	TechnologyLevel   string
	KeyAesthetics     []string
	NamingConventions []string
	WorldRules        []string
	AnalysisJSON      string
}

// SceneData fills the scene generation prompt.
type SceneData struct {
	GenreName       string
	Tone            string
	TechnologyLevel string
	KeyAesthetics   []string
	WorldRules      []string

	CharacterStates []string
	ActiveConflicts []string
	Timeline        []string

	BeatNumber    int
	TotalBeats    int
	BeatName      string
	BeatFunction  string
	TargetEmotion string
	SourceEvents  []string
	PacingHint    string

	PreviousSummary   string
	CharacterMappings []string

	TargetLength  int
	StyleGuidance string
}

func Analysis(data AnalysisData) (string, error) {
	return render(analysisTmpl, data)
}

func Mapping(data MappingData) (string, error) {
	return render(mappingTmpl, data)
}

func Scene(data SceneData) (string, error) {
	return render(sceneTmpl, data)
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
