// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// keyBinding groups the keys that trigger one action. The help line in the
// status bar lists the first key of each binding.
type keyBinding struct {
	keys []string
	help string
}

var (
	keySubmit     = keyBinding{keys: []string{"enter"}, help: "send"}
	keySuggest    = keyBinding{keys: []string{"tab"}, help: "suggestions"}
	keyMic        = keyBinding{keys: []string{"ctrl+r"}, help: "mic"}
	keyClear      = keyBinding{keys: []string{"ctrl+l"}, help: "clear"}
	keyScrollUp   = keyBinding{keys: []string{"pgup", "ctrl+u"}, help: "scroll up"}
	keyScrollDown = keyBinding{keys: []string{"pgdown", "ctrl+d"}, help: "scroll down"}
)

// helpLine is the static shortcut summary shown in the status bar.
const helpLine = "enter send · tab suggestions · ctrl+r mic · ctrl+l clear · /help commands"
