// strava-assistant - A terminal interface for a Strava training assistant.
//
// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/antononils/strava-assistant-tui/internal/api"
	"github.com/antononils/strava-assistant-tui/internal/cli"
	"github.com/antononils/strava-assistant-tui/internal/config"
	"github.com/antononils/strava-assistant-tui/internal/mapview"
	"github.com/antononils/strava-assistant-tui/internal/model"
	"github.com/antononils/strava-assistant-tui/internal/session"
	"github.com/antononils/strava-assistant-tui/internal/storage"
	"github.com/antononils/strava-assistant-tui/internal/ui/chat"
	"github.com/antononils/strava-assistant-tui/internal/ui/styles"
	"github.com/antononils/strava-assistant-tui/internal/voice"
)

// Version information (set at build time)
var Version = "0.1.0"

func init() {
	cli.Version = Version
}

func main() {
	cfg := config.Global()

	handled, err := cli.Run(cfg, os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if handled {
		return
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg *config.Config) error {
	client := api.NewClient(cfg.Backend.URL)
	registry := model.NewRegistry()

	// Local persistence is best effort: the assistant works without it.
	var store *storage.Store
	if dbPath, err := cfg.DatabasePath(); err == nil {
		if s, err := storage.Open(dbPath); err == nil {
			store = s
			defer store.Close()
			_ = store.SeedRegistry(context.Background(), registry)
		}
	}

	// The map document lives on the backend; without an attached view the
	// bridge degrades to browser-side refreshes.
	renderer := mapview.Renderer(mapview.NopRenderer{})

	workflow := session.New(registry, client, renderer, store, cfg.Map.Path)

	var voiceSession *voice.Session
	if cfg.Voice.Enabled {
		recorder := voice.NewExecRecorder(cfg.Voice.CaptureCommand, cfg.Voice.MaxRecordSecs)
		voiceSession = voice.NewSession(recorder, transcriberStore{client: client, store: store})
	}

	theme := styles.NewTheme()
	root := newRootModel(chat.New(theme, cfg, workflow, registry, voiceSession))

	// Config edits apply on the next request without a restart.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		_ = config.Watch(watchCtx, nil)
	}()

	program := tea.NewProgram(root, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// transcriberStore forwards audio to the backend and records successful
// transcriptions locally.
type transcriberStore struct {
	client *api.Client
	store  *storage.Store
}

func (t transcriberStore) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	text, err := t.client.Transcribe(ctx, filename, audio)
	if err != nil {
		return "", err
	}
	if t.store != nil && text != "" {
		_ = t.store.SaveTranscript(ctx, text)
	}
	return text, nil
}

// =============================================================================
// ROOT MODEL
// =============================================================================

// rootModel owns the top-level key handling and delegates everything else
// to the chat view.
type rootModel struct {
	chat chat.Model
}

func newRootModel(chatModel chat.Model) rootModel {
	return rootModel{chat: chatModel}
}

func (m rootModel) Init() tea.Cmd {
	return m.chat.Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m rootModel) View() string {
	return m.chat.View()
}
