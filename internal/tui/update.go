package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/tedori/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.pickerModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case tuimsg.ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tuimsg.ReportLoadedMsg:
		m.loading = false
		m.report = msg.Report
		m.homeModel.SetReport(msg.Report)
		m.resultsModel.SetReport(msg.Report)
		m.pickerModel.SetRecommendations(pickerRecommendations(msg.Report))
		return m, nil

	case tuimsg.SelectionChangedMsg:
		// A new selection invalidates the last outcome.
		m.compareModel.SetSession(msg.Session)
		return m, nil

	case tuimsg.ComparisonRequestedMsg:
		m.loading = true
		m.loadingMessage = "Comparing combinations..."
		return m, compareCmd(msg.Session)

	case tuimsg.ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.compareModel.SetError(msg.Err)
		} else {
			m.compareModel.SetSession(msg.Session)
		}
		return m, navigate(SceneCompare)
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses an error.
	if m.err != nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.report != nil {
			m.err = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m, navigate(SceneHelp)
	case key.Matches(msg, m.keys.Back):
		if m.currentScene == SceneHome {
			return m, nil
		}
		back := SceneHome
		if m.previousScene != m.currentScene {
			back = m.previousScene
		}
		return m, navigate(back)
	case key.Matches(msg, m.keys.Home):
		return m, navigate(SceneHome)
	case key.Matches(msg, m.keys.Results):
		return m, navigate(SceneResults)
	case key.Matches(msg, m.keys.Picker):
		return m, navigate(ScenePicker)
	case key.Matches(msg, m.keys.Compare):
		return m, navigate(SceneCompare)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case ScenePicker:
		m.pickerModel, cmd = m.pickerModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
