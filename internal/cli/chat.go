// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/antononils/strava-assistant-tui/internal/api"
	"github.com/antononils/strava-assistant-tui/internal/config"
	"github.com/antononils/strava-assistant-tui/internal/mapview"
	"github.com/antononils/strava-assistant-tui/internal/model"
	"github.com/antononils/strava-assistant-tui/internal/session"
	"github.com/antononils/strava-assistant-tui/internal/storage"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// promptReader wraps liner with persistent input history.
type promptReader struct {
	line        *liner.State
	historyFile string
}

func newPromptReader() *promptReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	r := &promptReader{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *promptReader) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *promptReader) close() {
	if config.EnsureConfigDir() == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// Chat runs the plain-terminal REPL. The shared map still updates on the
// backend; selections just aren't previewed locally.
func Chat(cfg *config.Config, out io.Writer) error {
	client := api.NewClient(cfg.Backend.URL)
	registry := model.NewRegistry()

	var store *storage.Store
	if dbPath, err := cfg.DatabasePath(); err == nil {
		if s, err := storage.Open(dbPath); err == nil {
			store = s
			defer store.Close()
			_ = store.SeedRegistry(context.Background(), registry)
		}
	}

	workflow := session.New(registry, client, mapview.NopRenderer{}, store, cfg.Map.Path)

	reader := newPromptReader()
	defer reader.close()

	fmt.Fprintln(out, "Strava Assistant — type a question, /help for commands, /quit to leave.")
	fmt.Fprintf(out, "Map: %s%s\n\n", cfg.Backend.URL, cfg.Map.Path)

	var lastResults []string

	for {
		input, err := reader.read("you> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			quit, err := runReplCommand(cfg, workflow, registry, lastResults, input, out)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
			}
			if quit {
				return nil
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		resp, err := workflow.Chat(ctx, input)
		cancel()
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}

		printResponse(out, resp)
		if resp.Mode == api.ModeRun {
			lastResults = lastResults[:0]
			for _, r := range resp.Results {
				lastResults = append(lastResults, r.RouteID)
			}
		}
		fmt.Fprintln(out)
	}
}

func runReplCommand(cfg *config.Config, workflow *session.Workflow, registry *model.Registry, lastResults []string, input string, out io.Writer) (quit bool, err error) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	resolve := func() (string, error) {
		if len(args) == 0 {
			return "", fmt.Errorf("missing result number")
		}
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil || n < 1 || n > len(lastResults) {
			return "", fmt.Errorf("no result %s", args[0])
		}
		return lastResults[n-1], nil
	}

	switch cmd {
	case "/help":
		fmt.Fprintln(out, `Commands:
  /select N   put result N on the map (again to clear)
  /analyze N  analyze result N
  /quit       leave`)
		return false, nil

	case "/select":
		id, err := resolve()
		if err != nil {
			return false, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()
		if workflow.ToggleSelect(ctx, id) {
			fmt.Fprintln(out, "route on map")
		} else {
			fmt.Fprintln(out, "map cleared")
		}
		return false, nil

	case "/analyze":
		id, err := resolve()
		if err != nil {
			return false, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()
		fmt.Fprintln(out, "analyzing...")
		analysis, err := workflow.Analyze(ctx, id)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(out, renderMarkdown(analysis))
		return false, nil

	case "/quit", "/exit":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %s", cmd)
	}
}
