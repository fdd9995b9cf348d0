// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/antononils/strava-assistant-tui/internal/api"
	"github.com/antononils/strava-assistant-tui/internal/model"
	"github.com/antononils/strava-assistant-tui/internal/ui/components"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.layoutViewport()
		m.refreshViewport()

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.pending || m.analyzingID != "" {
			cmds = append(cmds, cmd)
		}
		m.refreshViewport()

	case SubmitInputMsg:
		var cmd tea.Cmd
		m, cmd = m.submit(msg.Content)
		cmds = append(cmds, cmd)

	case ChatResponseMsg:
		m = m.applyChatResponse(msg.Response)

	case ChatErrorMsg:
		m.pending = false
		m.conversation.RemoveTransient()
		m.conversation.Append(model.NewErrorMessage(msg.Err.Error()))
		m.refreshViewport()

	case ToggleSelectMsg:
		cmds = append(cmds, m.toggleSelectCmd(msg.RouteID))

	case SelectionAppliedMsg:
		if msg.Selected {
			m.status = "Route on map"
		} else {
			m.status = "Map cleared"
		}
		m.refreshViewport()

	case ToggleGroupMsg:
		if group := m.findGroup(msg.MessageID); group != nil {
			group.Expanded = !group.Expanded
			m.refreshViewport()
		}

	case AnalyzeRequestMsg:
		// One analysis at a time; the card shows a busy label meanwhile.
		if m.analyzingID == "" {
			if route, ok := m.registry.Get(msg.RouteID); ok && !route.Analyzed {
				m.analyzingID = msg.RouteID
				cmds = append(cmds, m.analyzeCmd(msg.RouteID), m.spin.Tick)
				m.refreshViewport()
			}
		}

	case AnalyzeCompleteMsg:
		m.analyzingID = ""
		m.status = "Analysis ready"
		m.refreshViewport()

	case AnalyzeErrorMsg:
		m.analyzingID = ""
		m.conversation.Append(model.NewErrorMessage("Analysis failed: " + msg.Err.Error()))
		m.refreshViewport()

	case VoiceToggleMsg:
		cmds = append(cmds, m.voiceToggleCmd())

	case VoiceResultMsg:
		m = m.applyVoiceResult(msg)

	case StatusMsg:
		m.status = msg.Text

	case ClearConversationMsg:
		m.conversation.Clear()
		m.refreshViewport()
	}

	// Textinput gets every message so the cursor keeps blinking.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if _, ok := msg.(tea.KeyMsg); !ok {
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case keyMatches(msg, keySubmit):
		content := strings.TrimSpace(m.input.Value())
		if content == "" {
			return m, nil
		}
		m.input.Reset()
		m.suggestion = -1
		return m, func() tea.Msg { return SubmitInputMsg{Content: content} }

	case keyMatches(msg, keySuggest):
		if m.conversation.IsEmpty() && m.cfg.UI.ShowSuggestions {
			m.suggestion = (m.suggestion + 1) % len(components.Suggestions)
			m.input.SetValue(components.Suggestions[m.suggestion])
			m.input.CursorEnd()
		}
		return m, nil

	case keyMatches(msg, keyMic):
		return m, func() tea.Msg { return VoiceToggleMsg{} }

	case keyMatches(msg, keyClear):
		return m, func() tea.Msg { return ClearConversationMsg{} }

	case keyMatches(msg, keyScrollUp), keyMatches(msg, keyScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// =============================================================================
// SUBMIT WORKFLOW
// =============================================================================

func (m Model) submit(content string) (Model, tea.Cmd) {
	if strings.HasPrefix(content, "/") {
		return m.runCommand(content)
	}
	return m.sendChat(content)
}

func (m Model) sendChat(content string) (Model, tea.Cmd) {
	// Concurrent sends are dropped, not queued.
	if m.pending {
		return m, nil
	}

	m.pending = true
	m.conversation.Append(model.NewUserMessage(content))
	m.conversation.Append(model.NewThinkingMessage())
	m.refreshViewport()

	workflow := m.workflow
	timeout := m.cfg.RequestTimeout()
	chatCmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := workflow.Chat(ctx, content)
		if err != nil {
			return ChatErrorMsg{Err: err}
		}
		return ChatResponseMsg{Response: resp}
	}
	return m, tea.Batch(chatCmd, m.spin.Tick)
}

func (m Model) applyChatResponse(resp *api.ChatResponse) Model {
	m.pending = false
	// The thinking bubble always goes before the reply renders.
	m.conversation.RemoveTransient()

	reply := model.NewBotMessage(resp.Response)
	if resp.Mode == api.ModeRun && len(resp.Results) > 0 {
		ids := make([]string, 0, len(resp.Results))
		for _, r := range resp.Results {
			if r.RouteID != "" {
				ids = append(ids, r.RouteID)
			}
		}
		total := resp.Count
		if total == 0 {
			total = len(ids)
		}
		reply.RouteGroup = &model.RouteGroup{RouteIDs: ids, Total: total}
	}
	m.conversation.Append(reply)
	m.refreshViewport()
	return m
}

// =============================================================================
// ASYNC COMMANDS
// =============================================================================

func (m Model) toggleSelectCmd(routeID string) tea.Cmd {
	workflow := m.workflow
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		selected := workflow.ToggleSelect(ctx, routeID)
		return SelectionAppliedMsg{RouteID: routeID, Selected: selected}
	}
}

func (m Model) analyzeCmd(routeID string) tea.Cmd {
	workflow := m.workflow
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		analysis, err := workflow.Analyze(ctx, routeID)
		if err != nil {
			return AnalyzeErrorMsg{RouteID: routeID, Err: err}
		}
		return AnalyzeCompleteMsg{RouteID: routeID, Analysis: analysis}
	}
}

func (m Model) voiceToggleCmd() tea.Cmd {
	if m.voice == nil {
		return func() tea.Msg {
			return StatusMsg{Text: "Voice input is disabled"}
		}
	}
	session := m.voice
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, started, err := session.Toggle(ctx)
		return VoiceResultMsg{Started: started, Text: text, Err: err}
	}
}

func (m Model) applyVoiceResult(msg VoiceResultMsg) Model {
	m.recording = msg.Started
	switch {
	case msg.Err != nil:
		m.status = "Voice: " + msg.Err.Error()
	case msg.Started:
		m.status = "Recording... press the mic key again to stop"
	case msg.Text != "":
		// Transcription lands in the input so it can be reviewed first.
		m.input.SetValue(msg.Text)
		m.input.CursorEnd()
		m.status = "Transcribed"
	}
	return m
}

// =============================================================================
// VIEWPORT
// =============================================================================

func (m *Model) layoutViewport() {
	headerHeight := 1
	inputHeight := 3
	statusHeight := 1
	vpHeight := m.height - headerHeight - inputHeight - statusHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.input.Width = m.width - 6
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func keyMatches(msg tea.KeyMsg, binding keyBinding) bool {
	for _, k := range binding.keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}
