// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package mapview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort records sent messages and lets tests inject replies.
type fakePort struct {
	sent chan Message
	in   chan Message
}

func newFakePort() *fakePort {
	return &fakePort{
		sent: make(chan Message, 8),
		in:   make(chan Message, 8),
	}
}

func (p *fakePort) Send(m Message) error {
	p.sent <- m
	return nil
}

func (p *fakePort) Messages() <-chan Message { return p.in }

func fastOptions() Options {
	return Options{
		LoadTimeout:     50 * time.Millisecond,
		Settle:          5 * time.Millisecond,
		SnapshotTimeout: 50 * time.Millisecond,
	}
}

// =============================================================================
// WAIT FOR LOAD
// =============================================================================

func TestWaitForLoad_LoadSignal(t *testing.T) {
	port := newFakePort()
	bridge := NewBridge(port, fastOptions())

	port.in <- Message{Type: MsgMapLoaded}

	start := time.Now()
	bridge.WaitForLoad(context.Background())
	// Returned on the signal plus settle, well before the load timeout.
	assert.Less(t, time.Since(start), 40*time.Millisecond)
}

func TestWaitForLoad_TimeoutIsNotAnError(t *testing.T) {
	port := newFakePort()
	bridge := NewBridge(port, fastOptions())

	done := make(chan struct{})
	go func() {
		bridge.WaitForLoad(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForLoad did not return after timeout")
	}
}

func TestWaitForLoad_ContextCancel(t *testing.T) {
	port := newFakePort()
	bridge := NewBridge(port, Options{LoadTimeout: time.Hour, Settle: time.Hour, SnapshotTimeout: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		bridge.WaitForLoad(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForLoad did not honor cancellation")
	}
}

// =============================================================================
// SNAPSHOT
// =============================================================================

func TestSnapshot_Success(t *testing.T) {
	port := newFakePort()
	bridge := NewBridge(port, fastOptions())

	port.in <- Message{Type: MsgExportMapResult, DataURL: "data:image/png;base64,AAA"}

	dataURL, err := bridge.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAA", dataURL)

	// The export request went out first.
	sent := <-port.sent
	assert.Equal(t, MsgExportMap, sent.Type)
}

func TestSnapshot_ViewError(t *testing.T) {
	port := newFakePort()
	bridge := NewBridge(port, fastOptions())

	port.in <- Message{Type: MsgExportMapResult, Error: "tiles not ready"}

	_, err := bridge.Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tiles not ready")
}

func TestSnapshot_Timeout(t *testing.T) {
	port := newFakePort()
	bridge := NewBridge(port, fastOptions())

	_, err := bridge.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotTimeout)
}

func TestSnapshot_IgnoresUnrelatedMessages(t *testing.T) {
	port := newFakePort()
	bridge := NewBridge(port, fastOptions())

	port.in <- Message{Type: MsgMapLoaded}
	port.in <- Message{Type: MsgExportMapResult, DataURL: "data:image/png;base64,BBB"}

	dataURL, err := bridge.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,BBB", dataURL)
}

func TestSnapshot_NonImageResult(t *testing.T) {
	port := newFakePort()
	bridge := NewBridge(port, fastOptions())

	port.in <- Message{Type: MsgExportMapResult, DataURL: "not-a-data-url"}

	_, err := bridge.Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image")
}

// =============================================================================
// RELOAD / NOP
// =============================================================================

func TestReload_SendsNavigate(t *testing.T) {
	port := newFakePort()
	bridge := NewBridge(port, fastOptions())

	require.NoError(t, bridge.Reload("http://localhost:5000/static/map.html?ts=123"))
	sent := <-port.sent
	assert.Equal(t, MsgNavigate, sent.Type)
	assert.Contains(t, sent.URL, "ts=123")
}

func TestNopRenderer(t *testing.T) {
	var r NopRenderer
	r.WaitForLoad(context.Background())
	_, err := r.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoView)
	assert.NoError(t, r.Reload("http://x"))
}
