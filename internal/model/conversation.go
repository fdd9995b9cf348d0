// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the local chat transcript. The backend keeps its own
// bounded history for LLM context; this one exists for rendering and
// persistence only.
type Conversation struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Messages  []*Message `json:"messages"`
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
}

// Append adds a message to the transcript.
func (c *Conversation) Append(m *Message) {
	c.Messages = append(c.Messages, m)
}

// RemoveTransient drops transient placeholder bubbles (the "Thinking..."
// bubble is always removed before the final response is rendered).
func (c *Conversation) RemoveTransient() {
	kept := c.Messages[:0]
	for _, m := range c.Messages {
		if !m.Transient {
			kept = append(kept, m)
		}
	}
	c.Messages = kept
}

// Clear removes all messages.
func (c *Conversation) Clear() {
	c.Messages = nil
}

// Len returns the number of transcript entries.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty reports whether the transcript has no entries. Suggestion prompts
// are only shown while the transcript is empty.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}
