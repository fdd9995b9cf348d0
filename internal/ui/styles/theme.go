// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// ==========================================================================
	// CONTAINER STYLES
	// ==========================================================================

	App    lipgloss.Style
	Header lipgloss.Style
	Title  lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	BubbleLabel lipgloss.Style
	Thinking    lipgloss.Style

	// ==========================================================================
	// ACTIVITY CARD STYLES
	// ==========================================================================

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardDate     lipgloss.Style
	MetricLabel  lipgloss.Style
	MetricValue  lipgloss.Style
	Analysis     lipgloss.Style
	AnalyzeIdle  lipgloss.Style
	AnalyzeBusy  lipgloss.Style
	ToggleLink   lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	StatusBar      lipgloss.Style
	Recording      lipgloss.Style
	Spinner        lipgloss.Style
	Suggestion     lipgloss.Style
	Help           lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().
		Background(Surface)

	t.Header = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Orange).
		Bold(true).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(Orange).
		Bold(true)

	t.UserBubble = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Orange).
		Foreground(TextPrimary).
		Padding(0, 1)

	t.BotBubble = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ErrorBubble = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Foreground(Rose).
		Padding(0, 1)

	t.BubbleLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Thinking = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Background(SurfaceBright).
		Padding(0, 1)

	t.CardSelected = t.Card.
		BorderForeground(Orange).
		Bold(false)

	t.CardTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.CardDate = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.MetricLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.MetricValue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Analysis = lipgloss.NewStyle().
		Foreground(Emerald)

	t.AnalyzeIdle = lipgloss.NewStyle().
		Foreground(Orange).
		Bold(true)

	t.AnalyzeBusy = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ToggleLink = lipgloss.NewStyle().
		Foreground(Teal).
		Underline(true)

	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Orange).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 1)

	t.Recording = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true).
		Blink(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Orange)

	t.Suggestion = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize records the terminal dimensions for layout decisions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
