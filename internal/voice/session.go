// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Transcriber sends recorded audio to the backend.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// Session implements the mic toggle: the first call starts recording, the
// second stops, uploads and returns the transcription.
type Session struct {
	recorder    Recorder
	transcriber Transcriber

	mu        sync.Mutex
	recording bool
}

// NewSession creates a voice session.
func NewSession(recorder Recorder, transcriber Transcriber) *Session {
	return &Session{recorder: recorder, transcriber: transcriber}
}

// Recording reports whether a capture is in progress.
func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// Toggle flips the recording state. When a recording is stopped, the audio
// is uploaded and the transcription returned; started reports the new state.
//
// The recorded file is removed after the upload, success or not.
func (s *Session) Toggle(ctx context.Context) (text string, started bool, err error) {
	s.mu.Lock()
	wasRecording := s.recording
	s.mu.Unlock()

	if !wasRecording {
		if err := s.recorder.Start(ctx); err != nil {
			return "", false, err
		}
		s.setRecording(true)
		return "", true, nil
	}

	// Stop releases the device regardless of what follows.
	s.setRecording(false)
	path, err := s.recorder.Stop()
	if err != nil {
		return "", false, err
	}
	defer os.Remove(path)

	file, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer file.Close()

	text, err = s.transcriber.Transcribe(ctx, filepath.Base(path), file)
	if err != nil {
		return "", false, err
	}
	return text, false, nil
}

func (s *Session) setRecording(v bool) {
	s.mu.Lock()
	s.recording = v
	s.mu.Unlock()
}
