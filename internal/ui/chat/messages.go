// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the TUI.
//
// This file defines all Bubble Tea message types used by the chat view:
//   - Input: user input submission
//   - Chat: backend replies and errors
//   - Selection: card selection toggles and their outcome
//   - Analysis: analyze requests, completions, failures
//   - Voice: mic toggles and transcription results
package chat

import "github.com/antononils/strava-assistant-tui/internal/api"

// =============================================================================
// INPUT MESSAGES
// =============================================================================

// SubmitInputMsg signals that the user submitted input.
type SubmitInputMsg struct {
	Content string
}

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// ChatResponseMsg delivers the backend's reply to a chat turn.
type ChatResponseMsg struct {
	Response *api.ChatResponse
}

// ChatErrorMsg signals a failed chat turn.
type ChatErrorMsg struct {
	Err error
}

// =============================================================================
// SELECTION MESSAGES
// =============================================================================

// ToggleSelectMsg requests toggling the map selection of a route.
type ToggleSelectMsg struct {
	RouteID string
}

// SelectionAppliedMsg reports the selection state after a toggle.
type SelectionAppliedMsg struct {
	RouteID  string
	Selected bool
}

// ToggleGroupMsg flips a card group between collapsed and expanded.
type ToggleGroupMsg struct {
	MessageID string
}

// =============================================================================
// ANALYSIS MESSAGES
// =============================================================================

// AnalyzeRequestMsg requests analysis of a route.
type AnalyzeRequestMsg struct {
	RouteID string
}

// AnalyzeCompleteMsg delivers a finished analysis.
type AnalyzeCompleteMsg struct {
	RouteID  string
	Analysis string
}

// AnalyzeErrorMsg signals a failed analysis. The card's analyze action
// comes back untouched; nothing was cached.
type AnalyzeErrorMsg struct {
	RouteID string
	Err     error
}

// =============================================================================
// VOICE MESSAGES
// =============================================================================

// VoiceToggleMsg requests flipping the mic state.
type VoiceToggleMsg struct{}

// VoiceResultMsg reports the outcome of a mic toggle.
type VoiceResultMsg struct {
	Started bool
	Text    string
	Err     error
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// StatusMsg updates the status bar text.
type StatusMsg struct {
	Text string
}

// ClearConversationMsg wipes the transcript.
type ClearConversationMsg struct{}
