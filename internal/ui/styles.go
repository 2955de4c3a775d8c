package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/trusty-cli/trusty/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
)

// statusStyles colors a status value for table and detail output.
var statusStyles = map[models.TaskStatus]lipgloss.Style{
	models.StatusPending:    StyleSubtle,
	models.StatusInProgress: lipgloss.NewStyle().Foreground(ColorCyan),
	models.StatusDone:       StyleSuccess,
	models.StatusBlocked:    StyleError,
	models.StatusDeferred:   StyleWarning,
	models.StatusCancelled:  StyleSubtle.Strikethrough(true),
}

// statusGlyphs are the single-character markers shown next to a status.
var statusGlyphs = map[models.TaskStatus]string{
	models.StatusPending:    "○",
	models.StatusInProgress: "◐",
	models.StatusDone:       "●",
	models.StatusBlocked:    "◻",
	models.StatusDeferred:   "◇",
	models.StatusCancelled:  "✗",
}

// RenderStatus returns a colored "glyph status" cell.
func RenderStatus(s models.TaskStatus) string {
	style, ok := statusStyles[s]
	if !ok {
		style = StyleSubtle
	}
	glyph := statusGlyphs[s]
	return style.Render(glyph + " " + string(s))
}

// RenderPriority colors a priority value.
func RenderPriority(p models.TaskPriority) string {
	switch p {
	case models.PriorityCritical:
		return StyleError.Bold(true).Render(string(p))
	case models.PriorityHigh:
		return StyleWarning.Render(string(p))
	case models.PriorityLow:
		return StyleSubtle.Render(string(p))
	default:
		return string(p)
	}
}
