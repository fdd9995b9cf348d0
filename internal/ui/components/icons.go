// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components contains the reusable view pieces of the chat UI.
package components

// Metric glyphs used on activity cards.
const (
	IconDistance  = "↔"
	IconPace      = "⏱"
	IconTime      = "◷"
	IconElevation = "⛰"
	IconHeart     = "♥"
	IconMap       = "🗺"
	IconMic       = "●"
)

// SpinnerFrames animates in-flight requests.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
