package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/tedori/internal/advisor"
	"github.com/rgehrsitz/tedori/internal/compare"
	"github.com/rgehrsitz/tedori/internal/config"
	"github.com/rgehrsitz/tedori/internal/tui/tuimsg"
)

const profileYAML = `name: Sato
taxpayer:
  gross_annual_income: 6000000
  age: 30
  region: tokyo
  employment_category: salaried
deductions: {}
`

func newTestModel(t *testing.T, contents string) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	ref, err := config.DefaultReferenceData()
	require.NoError(t, err)
	adv, err := advisor.New(ref, 2024)
	require.NoError(t, err)
	return NewModel(path, config.NewInputParser(ref.Regions), adv)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// send feeds msg to the model and then every message its commands produce,
// the way the runtime would, stopping at quit.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next, cmd := m.Update(queue[0])
		queue = queue[1:]
		m = next.(Model)
		if cmd == nil {
			continue
		}
		out := cmd()
		if _, ok := out.(tea.QuitMsg); ok || out == nil {
			continue
		}
		queue = append(queue, out)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, keyMsg(k))
	}
	return m
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t, profileYAML)
	m = send(t, m, m.Init()())
	require.NotNil(t, m.Report())
	return m
}

func TestModel_LoadsReport(t *testing.T) {
	m := newTestModel(t, profileYAML)
	assert.Contains(t, m.View(), "Calculating take-home")

	m = send(t, m, m.Init()())
	require.NotNil(t, m.Report())
	assert.Equal(t, "4599737", m.Report().Result.NetIncome.String())
	assert.GreaterOrEqual(t, len(m.Session().Available), 2)
	assert.Empty(t, m.Session().Selected)

	view := m.View()
	assert.Contains(t, view, "Sato, 2024 (tokyo)")
	assert.Contains(t, view, "¥4,599,737")
}

func TestModel_LoadError(t *testing.T) {
	m := newTestModel(t, "taxpayer:\n  age: 0\n")
	m = send(t, m, m.Init()())

	assert.Nil(t, m.Report())
	assert.Contains(t, m.View(), "Error:")
	assert.Contains(t, m.View(), "Press q to quit.")

	// Without a report the error stays up.
	m = press(t, m, "h")
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_Navigation(t *testing.T) {
	m := loaded(t)

	m = press(t, m, "r")
	assert.Equal(t, SceneResults, m.CurrentScene())
	assert.Contains(t, m.View(), "Deduction usage")

	m = press(t, m, "p")
	assert.Equal(t, ScenePicker, m.CurrentScene())

	m = press(t, m, "esc")
	assert.Equal(t, SceneResults, m.CurrentScene())

	m = press(t, m, "?")
	assert.Equal(t, SceneHelp, m.CurrentScene())
	assert.Contains(t, m.View(), "toggle")

	m = press(t, m, "h")
	assert.Equal(t, SceneHome, m.CurrentScene())

	m = press(t, m, "esc")
	assert.Equal(t, SceneHome, m.CurrentScene())
}

func TestModel_QuitKey(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ToggleAndCompare(t *testing.T) {
	m := loaded(t)
	available := m.Session().Available

	m = press(t, m, "p", " ", "down", "x")
	assert.Equal(t, []string{available[0].ID, available[1].ID}, m.Session().Selected)
	assert.Contains(t, m.View(), "2 selected")

	// Toggling again removes the pick.
	m = press(t, m, " ")
	assert.Equal(t, []string{available[0].ID}, m.Session().Selected)
	m = press(t, m, " ")

	m = press(t, m, "enter")
	assert.Equal(t, SceneCompare, m.CurrentScene())

	report := m.compareModel.Report()
	require.NotNil(t, report)
	require.Len(t, report.Combinations, 1)
	assert.ElementsMatch(t, []string{available[0].ID, available[1].ID}, report.Combinations[0].IDs)
	assert.Contains(t, m.View(), "Yearly saving by combination")

	// The picker session itself never carries an outcome.
	assert.Nil(t, m.Session().Outcome)

	// A new selection clears the shown comparison.
	m = press(t, m, "p", "u")
	assert.Empty(t, m.Session().Selected)
	assert.Nil(t, m.compareModel.Report())
}

func TestModel_CompareNeedsTwo(t *testing.T) {
	m := loaded(t)

	m = press(t, m, "p", " ", "enter")
	assert.Equal(t, SceneCompare, m.CurrentScene())
	assert.ErrorIs(t, m.compareModel.Err(), compare.ErrTooFewSelected)
	assert.Contains(t, m.View(), "select at least two")
}

func TestModel_ErrorDismissedWithReport(t *testing.T) {
	m := loaded(t)
	m = send(t, m, tuimsg.ErrorMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), "Press any key to continue.")

	m = press(t, m, "r")
	assert.NotContains(t, m.View(), "Error:")
	assert.Equal(t, SceneHome, m.CurrentScene(), "The dismissing key is not acted on")
}

func TestModel_WindowSize(t *testing.T) {
	m := loaded(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 40, m.height)
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Home", SceneHome.String())
	assert.Equal(t, "Pick", ScenePicker.String())
	assert.Equal(t, "Unknown", Scene(42).String())
}
