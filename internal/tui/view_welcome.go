package tui

import "github.com/charmbracelet/lipgloss"

const logo = `
 ██████╗ ███████╗ ██████╗ █████╗ ███████╗████████╗
 ██╔══██╗██╔════╝██╔════╝██╔══██╗██╔════╝╚══██╔══╝
 ██████╔╝█████╗  ██║     ███████║███████╗   ██║
 ██╔══██╗██╔══╝  ██║     ██╔══██║╚════██║   ██║
 ██║  ██║███████╗╚██████╗██║  ██║███████║   ██║
 ╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝╚══════╝   ╚═╝
`

func (a *App) renderWelcome() string {
	logoRendered := styleLogo.Render(logo)

	subtitle := styleSubtitle.Render("Retell any story in another genre")

	var status string
	switch {
	case a.state.providerReady:
		status = styleSubtitle.Render("\nType the path of a story file to begin")
	case a.state.providerError != nil:
		status = lipgloss.NewStyle().Foreground(colorError).Render("\nProvider unavailable")
	default:
		status = styleSubtitle.Render("\nConnecting to provider...")
	}

	inputBox := styleBox.
		Width(min(70, max(20, a.width-4))).
		Render(a.state.input.View())

	statusBar := styleStatusBar.Render("[Esc] Quit  /help for commands")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logoRendered,
		subtitle,
		status,
		"",
		inputBox,
	)

	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	statusLine := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, statusLine)
}
