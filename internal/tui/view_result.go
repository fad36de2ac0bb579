package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder

	result := a.state.result
	if result == nil {
		return a.renderWelcome()
	}

	title := lipgloss.NewStyle().
		Foreground(colorSuccess).
		Bold(true).
		Render("Transformation complete")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Stats
	var avg float64
	for _, v := range result.TensionHistory {
		avg += v
	}
	if len(result.TensionHistory) > 0 {
		avg /= float64(len(result.TensionHistory))
	}
	wordCount := len(strings.Fields(a.state.storyText))

	stats := []string{
		fmt.Sprintf("  Source   %s", truncate(result.Analysis.Title, 44)),
		fmt.Sprintf("  Genre    %s", result.Mapping.Genre),
		fmt.Sprintf("  Beats    %d", len(result.Scenes)),
		fmt.Sprintf("  Words    %d", wordCount),
		fmt.Sprintf("  Avg NTI  %.2f", avg),
	}
	if len(result.Warnings) > 0 {
		stats = append(stats, fmt.Sprintf("  Warnings %d", len(result.Warnings)))
	}

	statsBox := styleBox.
		Width(min(60, max(24, a.width-4))).
		Render(strings.Join(stats, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statsBox))
	b.WriteString("\n\n")

	// Tension curve, actual bars with target markers.
	var curveLines []string
	for i, scene := range result.Scenes {
		bar := tensionBar(scene.Tension, 20)
		target := 0.0
		if i < len(result.TensionTargets) {
			target = result.TensionTargets[i]
		}
		curveLines = append(curveLines, fmt.Sprintf("  %-22s %s %.2f/%.2f",
			truncate(scene.BeatName, 22), bar, scene.Tension, target))
	}

	curveBox := styleBox.
		Width(min(68, max(30, a.width-4))).
		Render(strings.Join(curveLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, curveBox))
	b.WriteString("\n\n")

	// Status bar
	var status string
	if a.state.savedTo != "" {
		status = styleStatusBar.Render(fmt.Sprintf("Saved to %s  [n] New  [Esc] Quit", a.state.savedTo))
	} else {
		status = styleStatusBar.Render("[s] Save  [n] New story  [Esc] Quit")
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// tensionBar renders an NTI value (0..2) as a fixed-width bar.
func tensionBar(v float64, width int) string {
	filled := int(v / 2.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return lipgloss.NewStyle().Foreground(colorSecondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(colorMuted).Render(strings.Repeat("░", width-filled))
}
