// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/antononils/strava-assistant-tui/internal/config"
	"github.com/antononils/strava-assistant-tui/internal/model"
	"github.com/antononils/strava-assistant-tui/internal/session"
	"github.com/antononils/strava-assistant-tui/internal/ui/components"
	"github.com/antononils/strava-assistant-tui/internal/ui/styles"
	"github.com/antononils/strava-assistant-tui/internal/voice"
)

// Model is the chat view.
type Model struct {
	theme    *styles.Theme
	cfg      *config.Config
	workflow *session.Workflow
	registry *model.Registry
	voice    *voice.Session // nil disables the mic

	conversation *model.Conversation

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	markdown *glamour.TermRenderer

	// pending guards against concurrent chat turns: while a request is in
	// flight, further submits are ignored.
	pending bool
	// analyzingID is the route with an analysis in flight, "" when idle.
	analyzingID string
	recording   bool

	width  int
	height int

	status     string
	suggestion int // index into components.Suggestions, -1 when none
	ready      bool
}

// New creates the chat view.
func New(theme *styles.Theme, cfg *config.Config, workflow *session.Workflow, registry *model.Registry, voiceSession *voice.Session) Model {
	input := textinput.New()
	input.Placeholder = "Message the assistant..."
	input.Prompt = "> "
	input.Focus()
	input.CharLimit = 2000

	spin := spinner.New()
	spin.Spinner = spinner.Spinner{Frames: components.SpinnerFrames, FPS: spinner.Dot.FPS}
	spin.Style = theme.Spinner

	markdown, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	return Model{
		theme:        theme,
		cfg:          cfg,
		workflow:     workflow,
		registry:     registry,
		voice:        voiceSession,
		conversation: model.NewConversation(),
		input:        input,
		spin:         spin,
		markdown:     markdown,
		suggestion:   -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Pending reports whether a chat turn is in flight.
func (m Model) Pending() bool { return m.pending }

// Conversation exposes the transcript, used by export and tests.
func (m Model) Conversation() *model.Conversation { return m.conversation }

// findGroup returns the message holding the given card group.
func (m Model) findGroup(messageID string) *model.RouteGroup {
	for _, msg := range m.conversation.Messages {
		if msg.ID == messageID && msg.RouteGroup != nil {
			return msg.RouteGroup
		}
	}
	return nil
}

// visibleRoutes lists the route ids currently rendered, in display order.
// Card shortcuts (1-9) index into this list.
func (m Model) visibleRoutes() []string {
	var ids []string
	for _, msg := range m.conversation.Messages {
		if msg.RouteGroup == nil {
			continue
		}
		visible := msg.RouteGroup.VisibleCount()
		for i, id := range msg.RouteGroup.RouteIDs {
			if i >= visible {
				break
			}
			ids = append(ids, id)
		}
	}
	return ids
}
