package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okvist/recast/internal/pipeline"
)

func (a *App) renderProcessing() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Transforming")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if a.state.narrative != nil {
		info := styleSubtitle.Render(truncate(a.state.narrative.Metadata.Title, 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, info))
		b.WriteString("\n\n")
	}

	// Stage checklist
	stages := []pipeline.Stage{pipeline.StageAnalyzing, pipeline.StageMapping, pipeline.StageGenerating}
	var stageLines []string
	for _, s := range stages {
		var icon string
		var style lipgloss.Style
		switch {
		case s < a.state.stage:
			icon = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		case s == a.state.stage:
			icon = "[>]"
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		default:
			icon = "[ ]"
			style = lipgloss.NewStyle().Foreground(colorMuted)
		}
		stageLines = append(stageLines, style.Render(fmt.Sprintf("  %s  %s", icon, s)))
	}

	stagesBox := styleBox.
		Width(min(60, max(24, a.width-4))).
		Render(strings.Join(stageLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, stagesBox))
	b.WriteString("\n\n")

	// Beat checklist with tension vs target, once generation starts.
	if len(a.state.beatLog) > 0 {
		var beatLines []string
		for _, entry := range a.state.beatLog {
			if entry.Name == "" {
				continue
			}
			if entry.Done {
				line := fmt.Sprintf("  [x] %-24s NTI %.2f (target %.2f)", truncate(entry.Name, 24), entry.Tension, entry.Target)
				beatLines = append(beatLines, lipgloss.NewStyle().Foreground(colorSuccess).Render(line))
			} else {
				line := fmt.Sprintf("  [>] %-24s writing... (target %.2f)", truncate(entry.Name, 24), entry.Target)
				beatLines = append(beatLines, lipgloss.NewStyle().Foreground(colorSecondary).Render(line))
			}
		}

		beatsBox := styleBox.
			Width(min(64, max(30, a.width-4))).
			Render(strings.Join(beatLines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, beatsBox))
		b.WriteString("\n\n")
	}

	if a.state.stageMsg != "" {
		msg := styleSubtitle.Render(truncate(a.state.stageMsg, 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, msg))
	}

	return a.centerVertically(b.String())
}
