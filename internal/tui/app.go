// Package tui is the interactive terminal front end for the
// transformation pipeline.
package tui

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okvist/recast/internal/config"
	"github.com/okvist/recast/internal/genre"
	"github.com/okvist/recast/internal/llm"
	"github.com/okvist/recast/internal/pipeline"
	"github.com/okvist/recast/internal/source"
	"github.com/okvist/recast/internal/writer"
)

type view int

const (
	viewWelcome view = iota
	viewSetup
	viewGenre
	viewProcessing
	viewResult
	viewError
	viewHelp
)

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool
}

func NewApp() *App {
	s := newState()
	s.genreIDs = genre.IDs()

	cfg, _ := config.Load()
	if cfg == nil {
		s.needsSetup = true
		s.config = config.DefaultConfig()
	} else {
		s.config = cfg
	}

	return &App{
		view:  viewWelcome,
		state: s,
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.testProvider(),
	)
}

func (a *App) testProvider() tea.Cmd {
	return func() tea.Msg {
		provider, err := llm.NewProvider(a.state.config)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}

		return providerReadyMsg{provider}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{ provider llm.Provider }
type providerErrorMsg struct{ error }
type sourceLoadedMsg struct{ narrative *source.Narrative }
type sourceErrorMsg struct{ error }
type progressMsg struct{ progress pipeline.Progress }
type transformDoneMsg struct{ result *pipeline.Result }
type transformErrorMsg struct{ error }
type savedMsg struct{ path string }
type saveErrorMsg struct{ error }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := a.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.view = viewWelcome
		return a, a.testProvider()

	case setupErrorMsg:
		a.state.providerError = msg.error
		a.view = viewError
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		a.state.provider = msg.provider
		a.state.input.Focus()
		return a, textinput.Blink

	case providerErrorMsg:
		a.state.providerError = msg.error
		a.view = viewError
		return a, nil

	case sourceLoadedMsg:
		a.state.narrative = msg.narrative
		a.view = viewGenre
		return a, nil

	case sourceErrorMsg:
		a.state.processingError = msg.error
		a.view = viewError
		return a, nil

	case progressMsg:
		a.applyProgress(msg.progress)
		return a, a.waitForActivity()

	case transformDoneMsg:
		a.state.processing = false
		a.state.result = msg.result
		a.state.storyText = writer.Assemble(msg.result)
		a.state.savedTo = ""
		a.view = viewResult
		return a, nil

	case transformErrorMsg:
		a.state.processing = false
		a.state.processingError = msg.error
		a.view = viewError
		return a, nil

	case savedMsg:
		a.state.savedTo = msg.path
		return a, nil

	case saveErrorMsg:
		a.state.processingError = msg.error
		a.view = viewError
		return a, nil
	}

	// Update text inputs based on view
	if a.view == viewSetup && a.state.setupStep == 1 {
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	} else if a.view == viewWelcome {
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		switch a.view {
		case viewHelp, viewGenre:
			a.view = viewWelcome
			return nil
		case viewError:
			a.state.processingError = nil
			a.view = viewWelcome
			return nil
		case viewSetup:
			if a.state.setupStep == 1 {
				a.state.setupStep = 0
				a.state.apiKeyInput.Reset()
				return nil
			}
		}
		a.quitting = true
		return tea.Quit
	}

	switch a.view {
	case viewWelcome:
		if key.Matches(msg, keys.Enter) {
			return a.handleInput()
		}
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewGenre:
		return a.handleGenreKey(msg)
	case viewResult:
		return a.handleResultKey(msg)
	}

	return nil
}

func (a *App) handleInput() tea.Cmd {
	input := strings.TrimSpace(a.state.input.Value())
	if input == "" {
		return nil
	}

	if strings.HasPrefix(input, "/") {
		switch strings.ToLower(input) {
		case "/help", "/h":
			a.view = viewHelp
			a.state.input.Reset()
			return nil
		case "/quit", "/q":
			a.quitting = true
			return tea.Quit
		}
	}

	// Anything else is a source file path.
	a.state.input.Reset()
	return func() tea.Msg {
		n, err := source.Load(input)
		if err != nil {
			return sourceErrorMsg{err}
		}
		return sourceLoadedMsg{n}
	}
}

func (a *App) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state.setupStep {
	case 0: // Provider selection
		switch msg.String() {
		case "up", "k":
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case "down", "j":
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case "enter":
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				a.state.apiKeyInput.Focus()
				return textinput.Blink
			}
			return a.finishSetup()
		}

	case 1: // API key entry
		if msg.String() == "enter" {
			a.state.config.APIKey = a.state.apiKeyInput.Value()
			return a.finishSetup()
		}
	}

	return nil
}

func (a *App) finishSetup() tea.Cmd {
	return func() tea.Msg {
		if err := a.state.config.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) handleGenreKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if a.state.selectedGenre > 0 {
			a.state.selectedGenre--
		}
	case "down", "j":
		if a.state.selectedGenre < len(a.state.genreIDs)-1 {
			a.state.selectedGenre++
		}
	case "enter":
		return a.startTransform()
	}
	return nil
}

func (a *App) startTransform() tea.Cmd {
	genreID := a.state.genreIDs[a.state.selectedGenre]
	narrative := a.state.narrative

	a.state.processing = true
	a.state.beatLog = make([]beatEntry, 0, a.state.numBeats)
	a.state.progressCh = make(chan pipeline.Progress, 8)
	a.state.resultCh = make(chan transformOutcome, 1)
	a.view = viewProcessing

	tr := pipeline.NewTransformer(a.state.provider, a.state.config.Model, a.state.numBeats)
	progressCh := a.state.progressCh
	resultCh := a.state.resultCh
	tr.SetProgressCallback(func(p pipeline.Progress) {
		progressCh <- p
	})

	go func() {
		result, err := tr.Transform(
			context.Background(),
			narrative.Content,
			narrative.Metadata.Title,
			genreID,
		)
		close(progressCh)
		resultCh <- transformOutcome{result: result, err: err}
	}()

	return a.waitForActivity()
}

// waitForActivity blocks on the next pipeline event.
func (a *App) waitForActivity() tea.Cmd {
	progressCh := a.state.progressCh
	resultCh := a.state.resultCh
	return func() tea.Msg {
		if p, ok := <-progressCh; ok {
			return progressMsg{p}
		}
		outcome := <-resultCh
		if outcome.err != nil {
			return transformErrorMsg{outcome.err}
		}
		return transformDoneMsg{outcome.result}
	}
}

func (a *App) applyProgress(p pipeline.Progress) {
	a.state.stage = p.Stage
	a.state.stageMsg = p.Message

	if p.Stage != pipeline.StageGenerating || p.ItemIndex == 0 {
		return
	}

	// Two events per beat: a start with target only, then a completion
	// carrying the measured tension.
	idx := p.ItemIndex - 1
	for len(a.state.beatLog) <= idx {
		a.state.beatLog = append(a.state.beatLog, beatEntry{})
	}
	entry := &a.state.beatLog[idx]
	entry.Name = p.BeatName
	entry.Target = p.Target
	if strings.Contains(p.Message, "done") {
		entry.Tension = p.Tension
		entry.Done = true
	}
}

func (a *App) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Save):
		return a.saveResult()
	case key.Matches(msg, keys.New):
		a.state.result = nil
		a.state.storyText = ""
		a.state.narrative = nil
		a.state.savedTo = ""
		a.view = viewWelcome
		a.state.input.Focus()
		return textinput.Blink
	}
	return nil
}

func (a *App) saveResult() tea.Cmd {
	result := a.state.result
	storyText := a.state.storyText
	model := a.state.config.Model
	return func() tea.Msg {
		base := strings.ToLower(strings.ReplaceAll(result.Analysis.Title, " ", "_"))
		path := filepath.Join(".", base+"_"+result.Mapping.Genre+".md")

		if err := writer.WriteStory(path, storyText); err != nil {
			return saveErrorMsg{err}
		}
		meta := writer.BuildMetadata(result, model, storyText)
		if err := writer.WriteMetadata(strings.TrimSuffix(path, ".md")+".meta.json", meta); err != nil {
			return saveErrorMsg{err}
		}
		return savedMsg{path}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewWelcome:
		return a.renderWelcome()
	case viewSetup:
		return a.renderSetup()
	case viewGenre:
		return a.renderGenre()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewError:
		return a.renderError()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderWelcome()
	}
}
