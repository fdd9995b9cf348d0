// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package mapview

import "context"

// NopRenderer is used when no map view is attached: the map still lives on
// the backend and can be opened in a browser, but there is nothing to wait
// on or export from. Analyze requests then go out without an image.
type NopRenderer struct{}

// WaitForLoad returns immediately.
func (NopRenderer) WaitForLoad(ctx context.Context) {}

// Snapshot reports that no view is attached.
func (NopRenderer) Snapshot(ctx context.Context) (string, error) {
	return "", ErrNoView
}

// Reload is a no-op; the browser polls the cache-busted URL itself.
func (NopRenderer) Reload(url string) error { return nil }
