// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mapview bridges the TUI to an external map document.
//
// The map itself is rendered by the backend at /static/map.html and viewed
// in a browser or embedded webview. The bridge exchanges typed messages
// with that view over a Port: load notifications in, export requests out,
// export results back in.
package mapview

import (
	"context"
	"errors"
	"strings"
	"time"
)

// =============================================================================
// MESSAGES
// =============================================================================

// Message types exchanged with the map view.
const (
	// MsgMapLoaded is sent by the view when the map document finished loading.
	MsgMapLoaded = "MAP_LOADED"
	// MsgExportMap asks the view to export the current map as an image.
	MsgExportMap = "EXPORT_MAP"
	// MsgExportMapResult carries the export outcome back.
	MsgExportMapResult = "EXPORT_MAP_RESULT"
	// MsgNavigate asks the view to load a new document URL.
	MsgNavigate = "NAVIGATE"
)

// Message is one bridge frame.
type Message struct {
	Type    string `json:"type"`
	URL     string `json:"url,omitempty"`
	DataURL string `json:"dataURL,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Port is the transport to the map view. Send pushes a message to the view;
// Messages yields messages from it. Implementations must keep Messages open
// for the lifetime of the connection.
type Port interface {
	Send(Message) error
	Messages() <-chan Message
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer is what the session workflows need from a map view.
type Renderer interface {
	// WaitForLoad blocks until the map has loaded and settled. It never
	// fails: on timeout the map is assumed ready enough to proceed.
	WaitForLoad(ctx context.Context)
	// Snapshot exports the current map as a PNG data URL.
	Snapshot(ctx context.Context) (string, error)
	// Reload navigates the view to a fresh copy of the map document.
	Reload(url string) error
}

// Snapshot failures.
var (
	// ErrSnapshotTimeout indicates the view did not answer in time.
	ErrSnapshotTimeout = errors.New("map export timed out")
	// ErrNoView indicates no map view is attached.
	ErrNoView = errors.New("no map view attached")
)

// Options tune the bridge timeouts.
type Options struct {
	LoadTimeout     time.Duration
	Settle          time.Duration
	SnapshotTimeout time.Duration
}

// DefaultOptions returns the stock bridge timing.
func DefaultOptions() Options {
	return Options{
		LoadTimeout:     4 * time.Second,
		Settle:          250 * time.Millisecond,
		SnapshotTimeout: 5 * time.Second,
	}
}

// Bridge implements Renderer over a Port.
type Bridge struct {
	port Port
	opts Options
}

// NewBridge creates a bridge over port.
func NewBridge(port Port, opts Options) *Bridge {
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = DefaultOptions().LoadTimeout
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultOptions().Settle
	}
	if opts.SnapshotTimeout <= 0 {
		opts.SnapshotTimeout = DefaultOptions().SnapshotTimeout
	}
	return &Bridge{port: port, opts: opts}
}

// WaitForLoad waits for a load signal, then a settle delay so tiles finish
// drawing. Timing out is not an error: the export is attempted regardless,
// which at worst yields a partially drawn map instead of no analysis.
func (b *Bridge) WaitForLoad(ctx context.Context) {
	deadline := time.NewTimer(b.opts.LoadTimeout)
	defer deadline.Stop()

	msgs := b.port.Messages()
wait:
	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			break wait
		case msg, ok := <-msgs:
			if !ok {
				break wait
			}
			if msg.Type == MsgMapLoaded {
				break wait
			}
		}
	}

	settle := time.NewTimer(b.opts.Settle)
	defer settle.Stop()
	select {
	case <-ctx.Done():
	case <-settle.C:
	}
}

// Snapshot asks the view for a PNG export of the current map.
func (b *Bridge) Snapshot(ctx context.Context) (string, error) {
	if err := b.port.Send(Message{Type: MsgExportMap}); err != nil {
		return "", err
	}

	deadline := time.NewTimer(b.opts.SnapshotTimeout)
	defer deadline.Stop()

	msgs := b.port.Messages()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", ErrSnapshotTimeout
		case msg, ok := <-msgs:
			if !ok {
				return "", ErrNoView
			}
			if msg.Type != MsgExportMapResult {
				continue
			}
			if msg.Error != "" {
				return "", errors.New(msg.Error)
			}
			if !strings.HasPrefix(msg.DataURL, "data:image/") {
				return "", errors.New("map export returned no image")
			}
			return msg.DataURL, nil
		}
	}
}

// Reload navigates the view to url.
func (b *Bridge) Reload(url string) error {
	return b.port.Send(Message{Type: MsgNavigate, URL: url})
}
