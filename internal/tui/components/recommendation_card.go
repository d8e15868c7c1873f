package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/tedori/internal/domain"
	"github.com/rgehrsitz/tedori/internal/tui/tuistyles"
)

// RecommendationCard displays one recommendation in the picker
type RecommendationCard struct {
	Recommendation domain.Recommendation
	IsChecked      bool
	IsCursor       bool
	Width          int
}

// NewRecommendationCard creates a new card
func NewRecommendationCard(rec domain.Recommendation) *RecommendationCard {
	return &RecommendationCard{
		Recommendation: rec,
		Width:          60,
	}
}

// SetChecked marks the card as part of the selection
func (c *RecommendationCard) SetChecked(checked bool) *RecommendationCard {
	c.IsChecked = checked
	return c
}

// SetCursor marks the card as under the cursor
func (c *RecommendationCard) SetCursor(cursor bool) *RecommendationCard {
	c.IsCursor = cursor
	return c
}

// RenderCompact returns the single picker line
func (c *RecommendationCard) RenderCompact() string {
	box := "[ ]"
	if c.IsChecked {
		box = tuistyles.CheckedStyle.Render("[x]")
	}
	prefix := "  "
	style := tuistyles.UnselectedItemStyle
	if c.IsCursor {
		prefix = "▸ "
		style = tuistyles.SelectedItemStyle
	}

	rec := c.Recommendation
	saving := tuistyles.MetricPositiveStyle.Render(tuistyles.FormatCurrency(rec.EstimatedAnnualSaving))
	return fmt.Sprintf("%s%s %s  %s %s", prefix, box, style.Render(rec.Title), saving,
		tuistyles.SubtitleStyle.Render("("+rec.PriorityLabel()+")"))
}

// Render returns the detail panel for the card under the cursor
func (c *RecommendationCard) Render() string {
	rec := c.Recommendation
	var content strings.Builder

	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(rec.Title))
	content.WriteString("\n")
	if rec.Description != "" {
		content.WriteString(rec.Description)
		content.WriteString("\n")
	}
	content.WriteString("\n")
	fmt.Fprintf(&content, "Saving:     %s a year\n", tuistyles.FormatCurrency(rec.EstimatedAnnualSaving))
	fmt.Fprintf(&content, "Breakdown:  income tax %s, resident tax %s, insurance %s\n",
		tuistyles.FormatCurrency(rec.Breakdown.IncomeTax),
		tuistyles.FormatCurrency(rec.Breakdown.ResidentTax),
		tuistyles.FormatCurrency(rec.Breakdown.Insurance))
	fmt.Fprintf(&content, "Priority:   %s (difficulty %d, cash %s)", rec.PriorityLabel(), rec.Difficulty, rec.CashflowLabel())

	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for _, s := range rec.Steps {
		content.WriteString("\n")
		content.WriteString(muted.Render("• " + s))
	}
	for _, w := range rec.Warnings {
		content.WriteString("\n")
		content.WriteString(tuistyles.MetricNegativeStyle.Render("⚠ " + w))
	}

	border := tuistyles.ColorBorder
	if c.IsChecked {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(c.Width).
		Render(content.String())
}

// RecommendationList renders the picker lines
func RecommendationList(cards []*RecommendationCard) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No recommendations for this profile")
	}
	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = card.RenderCompact()
	}
	return strings.Join(rendered, "\n")
}
