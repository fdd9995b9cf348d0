// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a transcript entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleBot   Role = "bot"
	RoleError Role = "error"
)

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "Assistant"
	case RoleError:
		return "Error"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single transcript entry: a chat bubble, optionally followed
// by a group of activity cards when the backend answered in run mode.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Transient: marks the "Thinking..." bubble that is removed once the
	// backend answers.
	Transient bool `json:"-"`

	// Card group attached to a run-mode reply.
	RouteGroup *RouteGroup `json:"route_group,omitempty"`
}

// RouteGroup references the cards rendered under a run-mode reply.
type RouteGroup struct {
	RouteIDs []string `json:"route_ids"`
	// Total is the server-reported count used for the toggle label. It can
	// disagree with len(RouteIDs); the label trusts the server, the card
	// list renders exactly len(RouteIDs) entries.
	Total int `json:"total"`
	// Expanded tracks the show-all/hide toggle. Collapsed shows at most
	// InitialVisible cards.
	Expanded bool `json:"-"`
}

// InitialVisible is the number of cards shown before expanding a group.
const InitialVisible = 3

// VisibleCount returns how many cards of the group are currently shown.
func (gr *RouteGroup) VisibleCount() int {
	if gr.Expanded || len(gr.RouteIDs) <= InitialVisible {
		return len(gr.RouteIDs)
	}
	return InitialVisible
}

// HasToggle reports whether the group needs a show-all/hide control.
func (gr *RouteGroup) HasToggle() bool {
	return len(gr.RouteIDs) > InitialVisible
}

// NewMessage creates a message with a generated id.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user bubble.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewBotMessage creates an assistant bubble.
func NewBotMessage(content string) *Message {
	return NewMessage(RoleBot, content)
}

// NewErrorMessage creates an inline error bubble.
func NewErrorMessage(content string) *Message {
	return NewMessage(RoleError, content)
}

// NewThinkingMessage creates the transient placeholder bubble shown while a
// chat request is in flight.
func NewThinkingMessage() *Message {
	m := NewMessage(RoleBot, "Thinking...")
	m.Transient = true
	return m
}
