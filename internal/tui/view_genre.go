package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okvist/recast/internal/genre"
)

func (a *App) renderGenre() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Choose a target genre")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if a.state.narrative != nil {
		m := a.state.narrative.Metadata
		info := styleSubtitle.Render(fmt.Sprintf("%s (%d words, %s)",
			truncate(m.Title, 40), m.WordCount, m.FileSizeHuman()))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, info))
		b.WriteString("\n\n")
	}

	var genreLines []string
	for i, id := range a.state.genreIDs {
		name, tone := id, ""
		if t, err := genre.Get(id); err == nil {
			name, tone = t.Name, t.Tone
		}

		var line string
		cursor := "  "
		if i == a.state.selectedGenre {
			cursor = "> "
			line = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				Render(fmt.Sprintf("%s[x] %-18s %s", cursor, name, truncate(tone, 40)))
		} else {
			line = lipgloss.NewStyle().
				Foreground(colorMuted).
				Render(fmt.Sprintf("%s[ ] %-18s %s", cursor, name, truncate(tone, 40)))
		}
		genreLines = append(genreLines, line)
	}

	genreBox := styleBox.
		Width(min(70, max(30, a.width-4))).
		Render(strings.Join(genreLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, genreBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[j/k] Navigate  [Enter] Transform  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
