package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/tedori/internal/advisor"
	"github.com/rgehrsitz/tedori/internal/compare"
	"github.com/rgehrsitz/tedori/internal/config"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/recommend"
	"github.com/rgehrsitz/tedori/internal/tui/scenes"
	"github.com/rgehrsitz/tedori/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	profilePath string
	parser      *config.InputParser
	advisor     *advisor.Advisor
	report      *domain.Report

	keys KeyMap
	help help.Model

	homeModel    *scenes.HomeModel
	resultsModel *scenes.ResultsModel
	pickerModel  *scenes.PickerModel
	compareModel *scenes.CompareModel

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates the application model for one profile file. The parser
// validates the profile; the advisor produces the report.
func NewModel(profilePath string, parser *config.InputParser, adv *advisor.Advisor) Model {
	return Model{
		currentScene:   SceneHome,
		profilePath:    profilePath,
		parser:         parser,
		advisor:        adv,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		homeModel:      scenes.NewHomeModel(),
		resultsModel:   scenes.NewResultsModel(),
		pickerModel:    scenes.NewPickerModel(),
		compareModel:   scenes.NewCompareModel(),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Calculating take-home...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadReportCmd(m.profilePath, m.parser, m.advisor)
}

// Report returns the loaded report, nil before loading completes
func (m Model) Report() *domain.Report {
	return m.report
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Session returns the picker's comparison session
func (m Model) Session() domain.ComparisonSession {
	return m.pickerModel.Session()
}

// loadReportCmd loads the profile file and runs the advisor
func loadReportCmd(path string, parser *config.InputParser, adv *advisor.Advisor) tea.Cmd {
	return func() tea.Msg {
		profile, err := parser.LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		report, err := adv.Advise(profile)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.ReportLoadedMsg{Report: report}
	}
}

// compareCmd evaluates a session off the update loop
func compareCmd(session domain.ComparisonSession) tea.Cmd {
	return func() tea.Msg {
		out, err := compare.Compare(session)
		return tuimsg.ComparisonCompleteMsg{Session: out, Err: err}
	}
}

// pickerRecommendations is the list offered for comparison: both
// recommenders merged, one entry per deduction.
func pickerRecommendations(report *domain.Report) []domain.Recommendation {
	return recommend.Merge(report.CatalogRecommendations, report.ProfileRecommendations)
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneResults:
		return "Results"
	case ScenePicker:
		return "Pick"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
