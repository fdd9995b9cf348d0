// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antononils/strava-assistant-tui/internal/ui/styles"
)

// Suggestions are the canned prompts shown on an empty transcript.
var Suggestions = []string{
	"Show my latest runs",
	"Generate a 5 km route from here",
	"How was my training this week?",
	"Compare my last two long runs",
}

// RenderWelcome renders the empty-transcript greeting with suggestion chips.
func RenderWelcome(theme *styles.Theme, width int, showSuggestions bool) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Strava Assistant"))
	b.WriteString("\n")
	b.WriteString(theme.Help.Render("Ask about your training, or have a route generated and drawn on the map."))
	b.WriteString("\n")

	if showSuggestions {
		b.WriteString("\n")
		chips := make([]string, len(Suggestions))
		for i, s := range Suggestions {
			chips[i] = theme.Suggestion.Render(s)
		}
		if width >= 100 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
		} else {
			b.WriteString(lipgloss.JoinVertical(lipgloss.Left, chips...))
		}
		b.WriteString("\n")
		b.WriteString(theme.Help.Render("Tab cycles suggestions, Enter sends."))
	}

	return b.String()
}
