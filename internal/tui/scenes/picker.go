package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tui/components"
	"github.com/rgehrsitz/tedori/internal/tui/tuimsg"
	"github.com/rgehrsitz/tedori/internal/tui/tuistyles"
)

// PickerKeyMap holds the picker bindings
type PickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Compare key.Binding
	Clear   key.Binding
}

// DefaultPickerKeyMap returns the standard picker bindings
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Compare: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "compare")),
		Clear:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "clear")),
	}
}

// ShortHelp implements help.KeyMap
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Compare, k.Clear}
}

// FullHelp implements help.KeyMap
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// PickerModel lets the user choose recommendations to compare. The session
// is the only selection state; toggling replaces it with the copy returned
// by ComparisonSession.Toggle.
type PickerModel struct {
	session domain.ComparisonSession
	cursor  int
	keys    PickerKeyMap
	width   int
	height  int
}

// NewPickerModel creates a new picker scene model
func NewPickerModel() *PickerModel {
	return &PickerModel{keys: DefaultPickerKeyMap()}
}

// SetRecommendations starts a fresh session over the given recommendations
func (m *PickerModel) SetRecommendations(recs []domain.Recommendation) {
	m.session = domain.ComparisonSession{Available: recs}
	if m.cursor >= len(recs) {
		m.cursor = 0
	}
}

// Session returns the current selection state
func (m *PickerModel) Session() domain.ComparisonSession {
	return m.session
}

// Cursor returns the highlighted row
func (m *PickerModel) Cursor() int {
	return m.cursor
}

// Keys returns the picker bindings for the help view
func (m *PickerModel) Keys() PickerKeyMap {
	return m.keys
}

// SetSize updates the scene dimensions
func (m *PickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the picker
func (m *PickerModel) Update(msg tea.Msg) (*PickerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := len(m.session.Available)

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if n == 0 {
			return m, nil
		}
		m.session = m.session.Toggle(m.session.Available[m.cursor].ID)
		return m, m.selectionChangedCmd()
	case key.Matches(keyMsg, m.keys.Clear):
		m.session = domain.ComparisonSession{Available: m.session.Available}
		return m, m.selectionChangedCmd()
	case key.Matches(keyMsg, m.keys.Compare):
		session := m.session
		return m, func() tea.Msg {
			return tuimsg.ComparisonRequestedMsg{Session: session}
		}
	}
	return m, nil
}

func (m *PickerModel) selectionChangedCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return tuimsg.SelectionChangedMsg{Session: session}
	}
}

// View renders the list with the detail of the highlighted entry
func (m *PickerModel) View() string {
	recs := m.session.Available
	if len(recs) == 0 {
		return tuistyles.InfoStyle.Render("No recommendations for this profile.")
	}

	cards := make([]*components.RecommendationCard, len(recs))
	for i, rec := range recs {
		cards[i] = components.NewRecommendationCard(rec).
			SetChecked(m.session.IsSelected(rec.ID)).
			SetCursor(i == m.cursor)
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).
		Render("Pick two or more to compare")
	list := title + "\n\n" + components.RecommendationList(cards)
	detail := cards[m.cursor]
	detail.Width = 50

	if m.width > 0 && m.width < 120 {
		return lipgloss.JoinVertical(lipgloss.Left, list, "", detail.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail.Render())
}
