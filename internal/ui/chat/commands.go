// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/antononils/strava-assistant-tui/internal/model"
)

// runCommand handles slash commands. Unknown commands become an inline
// error bubble rather than a silent drop.
func (m Model) runCommand(input string) (Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/help":
		m.conversation.Append(model.NewBotMessage(commandHelp))
		m.refreshViewport()
		return m, nil

	case "/clear":
		return m, func() tea.Msg { return ClearConversationMsg{} }

	case "/select":
		id, err := m.resolveRouteArg(args)
		if err != nil {
			return m.commandError(err)
		}
		return m, func() tea.Msg { return ToggleSelectMsg{RouteID: id} }

	case "/analyze":
		id, err := m.resolveRouteArg(args)
		if err != nil {
			return m.commandError(err)
		}
		return m, func() tea.Msg { return AnalyzeRequestMsg{RouteID: id} }

	case "/show":
		// Toggle the most recent card group.
		for i := m.conversation.Len() - 1; i >= 0; i-- {
			msg := m.conversation.Messages[i]
			if msg.RouteGroup != nil && msg.RouteGroup.HasToggle() {
				messageID := msg.ID
				return m, func() tea.Msg { return ToggleGroupMsg{MessageID: messageID} }
			}
		}
		return m.commandError(fmt.Errorf("nothing to expand"))

	case "/mic":
		return m, func() tea.Msg { return VoiceToggleMsg{} }

	case "/export":
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return m.exportTranscript(path)

	case "/quit", "/exit":
		return m, tea.Quit

	default:
		return m.commandError(fmt.Errorf("unknown command %s (try /help)", cmd))
	}
}

// resolveRouteArg turns a card shortcut (1-based index into the visible
// cards) into a route id.
func (m Model) resolveRouteArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing card number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("not a card number: %s", args[0])
	}
	visible := m.visibleRoutes()
	if n < 1 || n > len(visible) {
		return "", fmt.Errorf("no card %d on screen", n)
	}
	return visible[n-1], nil
}

func (m Model) commandError(err error) (Model, tea.Cmd) {
	m.conversation.Append(model.NewErrorMessage(err.Error()))
	m.refreshViewport()
	return m, nil
}

const commandHelp = `Available commands:

- /select N — put card N's route on the map (again to clear)
- /analyze N — analyze card N's activity
- /show — expand or collapse the latest result list
- /mic — start or stop voice input
- /export [path] — save the transcript as Markdown
- /clear — wipe the conversation
- /quit — leave`
