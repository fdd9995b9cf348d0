// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antononils/strava-assistant-tui/internal/model"
	"github.com/antononils/strava-assistant-tui/internal/ui/components"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.theme.Header.Width(m.width).Render("Strava Assistant")

	input := m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())

	status := m.renderStatus()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		input,
		status,
	)
}

func (m Model) renderStatus() string {
	left := m.status
	if m.recording {
		left = m.theme.Recording.Render(components.IconMic+" REC") + " " + left
	}
	if left == "" {
		left = helpLine
	}
	return m.theme.StatusBar.Width(m.width).Render(left)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (m Model) renderTranscript() string {
	if m.conversation.IsEmpty() {
		return components.RenderWelcome(m.theme, m.width, m.cfg.UI.ShowSuggestions)
	}

	bubbleWidth := m.width - 4
	if bubbleWidth > 100 {
		bubbleWidth = 100
	}

	var parts []string
	for _, msg := range m.conversation.Messages {
		parts = append(parts, m.renderMessage(msg, bubbleWidth))
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderMessage(msg *model.Message, width int) string {
	label := m.theme.BubbleLabel.Render(msg.Role.DisplayName())

	var bubble string
	switch {
	case msg.Transient:
		bubble = m.theme.Thinking.Render(m.spin.View() + " " + msg.Content)

	case msg.Role == model.RoleError:
		bubble = m.theme.ErrorBubble.MaxWidth(width).Render(msg.Content)

	case msg.Role == model.RoleBot:
		content := msg.Content
		// Assistant replies are Markdown; degrade to plain text when the
		// renderer is unavailable.
		if m.markdown != nil {
			if rendered, err := m.markdown.Render(content); err == nil {
				content = strings.TrimRight(rendered, "\n")
			}
		}
		bubble = m.theme.BotBubble.MaxWidth(width).Render(content)
		if msg.RouteGroup != nil {
			cards := components.RenderCardGroup(
				m.theme, msg.RouteGroup, m.registry,
				m.workflow.SelectedRouteID(), m.analyzingID,
				cardWidth(width),
			)
			bubble = lipgloss.JoinVertical(lipgloss.Left, bubble, cards)
		}

	default:
		bubble = m.theme.UserBubble.MaxWidth(width).Render(msg.Content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

func cardWidth(bubbleWidth int) int {
	if bubbleWidth > 60 {
		return 60
	}
	return bubbleWidth
}
