package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/tedori/internal/advisor"
	"github.com/rgehrsitz/tedori/internal/config"
	"github.com/rgehrsitz/tedori/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: tedori-tui <profile-file>")
		os.Exit(1)
	}
	profilePath := os.Args[1]
	if _, err := os.Stat(profilePath); os.IsNotExist(err) {
		fmt.Printf("Error: profile not found: %s\n", profilePath)
		os.Exit(1)
	}

	settings, err := config.LoadSettings("", nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	ref, err := config.LoadReferenceData(settings.DataDir)
	if err != nil {
		fmt.Printf("Error loading reference data: %v\n", err)
		os.Exit(1)
	}
	adv, err := advisor.New(ref, settings.RulesYear)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(profilePath, config.NewInputParser(ref.Regions), adv)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
