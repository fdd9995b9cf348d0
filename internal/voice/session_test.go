// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecorder writes a canned file on Stop and records call counts.
type fakeRecorder struct {
	dir      string
	startErr error
	stopErr  error
	starts   int
	stops    int
}

func (f *fakeRecorder) Start(ctx context.Context) error {
	f.starts++
	return f.startErr
}

func (f *fakeRecorder) Stop() (string, error) {
	f.stops++
	if f.stopErr != nil {
		return "", f.stopErr
	}
	path := filepath.Join(f.dir, "rec.wav")
	if err := os.WriteFile(path, []byte("audio-bytes"), 0600); err != nil {
		return "", err
	}
	return path, nil
}

type fakeTranscriber struct {
	text string
	err  error
	got  []byte
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	f.got, _ = io.ReadAll(audio)
	return f.text, f.err
}

func TestToggle_StartStopTranscribe(t *testing.T) {
	rec := &fakeRecorder{dir: t.TempDir()}
	tr := &fakeTranscriber{text: "run five kilometers"}
	s := NewSession(rec, tr)

	ctx := context.Background()

	text, started, err := s.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, started)
	assert.Empty(t, text)
	assert.True(t, s.Recording())

	text, started, err = s.Toggle(ctx)
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, "run five kilometers", text)
	assert.False(t, s.Recording())
	assert.Equal(t, []byte("audio-bytes"), tr.got)
	assert.Equal(t, 1, rec.starts)
	assert.Equal(t, 1, rec.stops)
}

func TestToggle_StartFailureStaysIdle(t *testing.T) {
	rec := &fakeRecorder{dir: t.TempDir(), startErr: ErrNoCaptureTool}
	s := NewSession(rec, &fakeTranscriber{})

	_, _, err := s.Toggle(context.Background())
	assert.ErrorIs(t, err, ErrNoCaptureTool)
	assert.False(t, s.Recording())
}

func TestToggle_StopAlwaysReleases(t *testing.T) {
	rec := &fakeRecorder{dir: t.TempDir(), stopErr: errors.New("device gone")}
	s := NewSession(rec, &fakeTranscriber{})

	ctx := context.Background()
	_, _, err := s.Toggle(ctx)
	require.NoError(t, err)

	_, _, err = s.Toggle(ctx)
	require.Error(t, err)
	// Recording state is cleared even though Stop failed.
	assert.False(t, s.Recording())
	assert.Equal(t, 1, rec.stops)
}

func TestToggle_TranscribeFailureCleansUpFile(t *testing.T) {
	rec := &fakeRecorder{dir: t.TempDir()}
	tr := &fakeTranscriber{err: errors.New("no speech detected")}
	s := NewSession(rec, tr)

	ctx := context.Background()
	_, _, err := s.Toggle(ctx)
	require.NoError(t, err)

	_, _, err = s.Toggle(ctx)
	require.Error(t, err)
	assert.False(t, s.Recording())
	// Recorded file is gone after the failed upload.
	_, statErr := os.Stat(filepath.Join(rec.dir, "rec.wav"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecRecorder_StopWithoutStart(t *testing.T) {
	r := NewExecRecorder("", 10)
	_, err := r.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)
}

func TestExecRecorder_UnsupportedTool(t *testing.T) {
	r := NewExecRecorder("sox", 10)
	err := r.Start(context.Background())
	assert.ErrorIs(t, err, ErrNoCaptureTool)
}
