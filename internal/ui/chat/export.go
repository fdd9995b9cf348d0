// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/antononils/strava-assistant-tui/internal/util"
)

// exportTranscript writes the conversation to a Markdown file. An empty
// path picks a timestamped name in the working directory.
func (m Model) exportTranscript(path string) (Model, tea.Cmd) {
	if m.conversation.IsEmpty() {
		return m.commandError(fmt.Errorf("nothing to export"))
	}
	if path == "" {
		path = fmt.Sprintf("assistant-chat-%s.md", time.Now().Format("2006-01-02-150405"))
	}

	var b strings.Builder
	b.WriteString("# Assistant conversation\n\n")
	for _, msg := range m.conversation.Messages {
		fmt.Fprintf(&b, "## %s (%s)\n\n%s\n\n",
			msg.Role.DisplayName(),
			msg.Timestamp.Format("2006-01-02 15:04"),
			msg.Content)
		if msg.RouteGroup != nil {
			for _, id := range msg.RouteGroup.RouteIDs {
				if route, ok := m.registry.Get(id); ok {
					fmt.Fprintf(&b, "- %s\n", route.DisplayName())
					if route.Analyzed {
						fmt.Fprintf(&b, "  - %s\n", route.Analysis)
					}
				}
			}
			b.WriteString("\n")
		}
	}

	if err := util.AtomicWriteFile(path, []byte(b.String()), 0644); err != nil {
		return m.commandError(fmt.Errorf("export failed: %w", err))
	}
	m.status = "Exported to " + path
	return m, nil
}
