package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/tedori/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Bar is one labelled value in a BarChart
type Bar struct {
	Label       string
	Value       decimal.Decimal
	Highlighted bool
}

// BarChart draws horizontal bars scaled to the largest value
type BarChart struct {
	Title      string
	Bars       []Bar
	Width      int
	LabelWidth int
}

// NewBarChart creates a new bar chart
func NewBarChart(title string) *BarChart {
	return &BarChart{
		Title:      title,
		Width:      30,
		LabelWidth: 32,
	}
}

// AddBar appends a bar
func (c *BarChart) AddBar(label string, value decimal.Decimal, highlighted bool) *BarChart {
	c.Bars = append(c.Bars, Bar{Label: label, Value: value, Highlighted: highlighted})
	return c
}

// WithWidth sets the width of the longest bar
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Length returns the bar length for a value; non-positive values get none.
func (c *BarChart) Length(v decimal.Decimal) int {
	maxVal := decimal.Zero
	for _, b := range c.Bars {
		if b.Value.GreaterThan(maxVal) {
			maxVal = b.Value
		}
	}
	if !maxVal.IsPositive() || !v.IsPositive() {
		return 0
	}
	n := int(v.Mul(decimal.NewFromInt(int64(c.Width))).Div(maxVal).Round(0).IntPart())
	if n == 0 {
		n = 1
	}
	return n
}

// Render returns the styled chart
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		content.WriteString("\n\n")
	}

	labelStyle := lipgloss.NewStyle().Width(c.LabelWidth).MaxWidth(c.LabelWidth)
	for i, b := range c.Bars {
		style := tuistyles.BarStyle
		if b.Highlighted {
			style = tuistyles.TableHighlightStyle
		}
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(labelStyle.Render(b.Label))
		content.WriteString(" ")
		content.WriteString(style.Render(strings.Repeat("■", c.Length(b.Value))))
		content.WriteString(" ")
		content.WriteString(tuistyles.FormatCurrency(b.Value))
	}
	return content.String()
}
