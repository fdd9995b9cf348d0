// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the assistant TUI.

The chat package implements the conversation screen using the Bubble Tea
framework: a scrolling transcript, a text input, and the async plumbing
that keeps the UI responsive while the backend thinks.

# Key Components

## Model (model.go)

The Model struct is the Bubble Tea model holding all chat state:
  - Conversation transcript and card groups
  - Input handling, suggestion cycling
  - Viewport for transcript scrolling
  - The in-flight guards: one chat turn, one analysis at a time

## Update Loop (update.go)

Handles all Bubble Tea messages:
  - Keyboard input and window resizing
  - The send workflow (user bubble, thinking bubble, backend call,
    reply rendering)
  - Selection toggles, analysis runs and voice toggles, each as an
    async tea.Cmd producing a typed result message

## View Rendering (view.go)

Renders the transcript: Markdown assistant replies through glamour,
activity card groups with their show-all toggle, the input box and the
status bar.

## Commands (commands.go)

Slash commands typed into the input: /select, /analyze, /show, /mic,
/export, /clear, /quit.

# Message Flow

User input becomes a SubmitInputMsg. Plain text starts a chat turn; the
reply arrives as ChatResponseMsg (or ChatErrorMsg), which removes the
transient thinking bubble before rendering. Card interactions produce
ToggleSelectMsg / AnalyzeRequestMsg, whose outcomes come back as their
own typed messages.
*/
package chat
