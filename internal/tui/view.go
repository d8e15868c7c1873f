package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case ScenePicker:
		content = m.pickerModel.View() + "\n\n" + m.help.View(m.pickerModel.Keys())
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4 // title (2) + status (2)
	if contentHeight < 0 {
		contentHeight = 0
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("tedori - take-home pay and tax savings")
	breadcrumb := m.currentScene.String()
	if m.report != nil && m.report.Profile.Name != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.report.Profile.Name)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the shortcuts and the selection count
func (m Model) renderStatusBar() string {
	status := m.help.View(m.keys)
	if n := len(m.pickerModel.Session().Selected); n > 0 {
		selected := SubtitleStyle.Render(fmt.Sprintf("%d selected", n))
		gap := m.width - lipgloss.Width(status) - lipgloss.Width(selected) - 2
		status += strings.Repeat(" ", max(0, gap)) + selected
	}
	return StatusBarStyle.Width(m.width).Render(status)
}

// renderError renders an error message
func (m Model) renderError() string {
	hint := "Press q to quit."
	if m.report != nil {
		hint = "Press any key to continue."
	}
	return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s", m.err)) + "\n\n" + hint)
}

// renderHelp renders every binding
func (m Model) renderHelp() string {
	full := help.New()
	full.ShowAll = true
	return BorderStyle.Render(
		TitleStyle.Render("Keys") + "\n\n" +
			full.View(m.keys) + "\n\n" +
			InfoStyle.Render("Pick") + "\n" +
			full.View(m.pickerModel.Keys()),
	)
}
