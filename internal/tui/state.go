package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/okvist/recast/internal/config"
	"github.com/okvist/recast/internal/llm"
	"github.com/okvist/recast/internal/pipeline"
	"github.com/okvist/recast/internal/source"
)

// beatEntry is one row of the processing checklist.
type beatEntry struct {
	Name    string
	Target  float64
	Tension float64
	Done    bool
}

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Source
	narrative *source.Narrative

	// Genre selection
	genreIDs      []string
	selectedGenre int

	// Run parameters
	numBeats int

	// Processing
	processing bool
	stage      pipeline.Stage
	stageMsg   string
	beatLog    []beatEntry
	progressCh chan pipeline.Progress
	resultCh   chan transformOutcome

	// Result
	result    *pipeline.Result
	storyText string
	savedTo   string

	// Errors
	providerError   error
	processingError error

	// Input
	input textinput.Model

	// Provider
	provider      llm.Provider
	providerReady bool
}

type transformOutcome struct {
	result *pipeline.Result
	err    error
}

func newState() *state {
	input := textinput.New()
	input.Placeholder = "Path to a .txt or .md story..."
	input.CharLimit = 500
	input.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	return &state{
		input:       input,
		apiKeyInput: apiKey,
		numBeats:    15,
	}
}
