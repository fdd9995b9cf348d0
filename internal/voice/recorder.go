// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice captures microphone audio with an external recorder tool
// and turns it into chat input via the backend's transcription endpoint.
package voice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Recorder captures audio to a file. Start and Stop are called from the
// UI's toggle action; Stop must always release the capture device, whatever
// state the recording is in.
type Recorder interface {
	// Start begins capturing. It fails if a recording is already running
	// or no capture tool is available.
	Start(ctx context.Context) error
	// Stop ends capturing and returns the path of the recorded file.
	Stop() (string, error)
}

var (
	// ErrNoCaptureTool indicates no supported recording tool was found.
	ErrNoCaptureTool = errors.New("no audio capture tool found (need ffmpeg or arecord)")
	// ErrNotRecording indicates Stop was called without a running recording.
	ErrNotRecording = errors.New("not recording")
	// ErrAlreadyRecording indicates Start was called twice.
	ErrAlreadyRecording = errors.New("already recording")
)

// captureTools lists supported recorders in preference order, with the
// argument layout each needs to write a wav file.
var captureTools = []struct {
	name string
	args func(maxSecs int, outPath string) []string
}{
	{
		name: "ffmpeg",
		args: func(maxSecs int, outPath string) []string {
			return []string{
				"-hide_banner", "-loglevel", "error",
				"-f", "pulse", "-i", "default",
				"-t", strconv.Itoa(maxSecs),
				"-ac", "1", "-ar", "16000",
				"-y", outPath,
			}
		},
	},
	{
		name: "arecord",
		args: func(maxSecs int, outPath string) []string {
			return []string{
				"-f", "S16_LE", "-r", "16000", "-c", "1",
				"-d", strconv.Itoa(maxSecs),
				outPath,
			}
		},
	},
}

// ExecRecorder records via an external process (ffmpeg or arecord).
type ExecRecorder struct {
	// Command overrides tool autodetection when non-empty.
	Command string
	// MaxRecordSecs caps a single recording.
	MaxRecordSecs int

	mu      sync.Mutex
	cmd     *exec.Cmd
	outPath string
}

// NewExecRecorder creates a recorder. command may be empty to autodetect.
func NewExecRecorder(command string, maxRecordSecs int) *ExecRecorder {
	if maxRecordSecs <= 0 {
		maxRecordSecs = 60
	}
	return &ExecRecorder{Command: command, MaxRecordSecs: maxRecordSecs}
}

// Start implements Recorder.
func (r *ExecRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return ErrAlreadyRecording
	}

	tool, args, err := r.resolveTool()
	if err != nil {
		return err
	}

	r.outPath = filepath.Join(os.TempDir(), fmt.Sprintf("assistant-rec-%s.wav", uuid.NewString()))
	cmd := exec.CommandContext(ctx, tool, args(r.MaxRecordSecs, r.outPath)...)
	if err := cmd.Start(); err != nil {
		r.outPath = ""
		return fmt.Errorf("failed to start %s: %w", tool, err)
	}
	r.cmd = cmd
	return nil
}

// Stop implements Recorder. The capture process is always terminated and
// reaped, even when the recording failed, so the device is never left held.
func (r *ExecRecorder) Stop() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return "", ErrNotRecording
	}
	cmd := r.cmd
	path := r.outPath
	r.cmd = nil
	r.outPath = ""

	// Interrupt lets the tool finalize the wav header; fall back to kill.
	_ = cmd.Process.Signal(os.Interrupt)
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		_ = cmd.Process.Kill()
		<-done
	}

	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		os.Remove(path)
		return "", errors.New("recording produced no audio")
	}
	return path, nil
}

func (r *ExecRecorder) resolveTool() (string, func(int, string) []string, error) {
	if r.Command != "" {
		for _, t := range captureTools {
			if t.name == r.Command {
				if _, err := exec.LookPath(t.name); err != nil {
					return "", nil, fmt.Errorf("%w: %s not in PATH", ErrNoCaptureTool, t.name)
				}
				return t.name, t.args, nil
			}
		}
		return "", nil, fmt.Errorf("%w: unsupported tool %q", ErrNoCaptureTool, r.Command)
	}
	for _, t := range captureTools {
		if _, err := exec.LookPath(t.name); err == nil {
			return t.name, t.args, nil
		}
	}
	return "", nil, ErrNoCaptureTool
}
