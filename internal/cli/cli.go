// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/antononils/strava-assistant-tui/internal/config"
	"github.com/antononils/strava-assistant-tui/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Run dispatches a non-TUI subcommand. It returns (handled, err): when
// handled is false the caller should start the TUI instead.
func Run(cfg *config.Config, args []string, out io.Writer) (bool, error) {
	parser := NewArgParser(args)

	switch parser.Subcommand() {
	case "":
		return false, nil

	case "ask":
		return true, Ask(cfg, parser.Rest(), out)

	case "chat":
		return true, Chat(cfg, out)

	case "history":
		return true, showHistory(cfg, parser.IntFlag("limit", 20), out)

	case "config":
		return true, showConfig(cfg, parser.Positional(), out)

	case "version":
		fmt.Fprintln(out, "strava-assistant", Version)
		return true, nil

	case "help":
		printUsage(out)
		return true, nil

	default:
		printUsage(out)
		return true, fmt.Errorf("unknown command %q", parser.Subcommand())
	}
}

func showHistory(cfg *config.Config, limit int, out io.Writer) error {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	analyses, err := store.ListAnalyses(ctx)
	if err != nil {
		return err
	}
	if len(analyses) > 0 {
		fmt.Fprintln(out, "Analyses:")
		for _, a := range analyses {
			fmt.Fprintf(out, "  %s  %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04"), a.Name)
		}
	}

	transcripts, err := store.RecentTranscripts(ctx, limit)
	if err != nil {
		return err
	}
	if len(transcripts) > 0 {
		fmt.Fprintln(out, "Voice transcripts:")
		for _, t := range transcripts {
			fmt.Fprintf(out, "  %s  %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"), t.Text)
		}
	}

	if len(analyses) == 0 && len(transcripts) == 0 {
		fmt.Fprintln(out, "No history yet.")
	}
	return nil
}

func showConfig(cfg *config.Config, positional []string, out io.Writer) error {
	sub := ""
	if len(positional) > 1 {
		sub = positional[1]
	}
	switch sub {
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, path)
		return nil
	case "", "show":
		fmt.Fprintln(out, "backend.url =", cfg.Backend.URL)
		fmt.Fprintln(out, "map.path =", cfg.Map.Path)
		dbPath, _ := cfg.DatabasePath()
		fmt.Fprintln(out, "storage.database_path =", dbPath)
		fmt.Fprintln(out, "ui.theme =", cfg.UI.Theme)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q", sub)
	}
}

func printUsage(out io.Writer) {
	fmt.Fprint(out, `Usage: strava-assistant [command]

Without a command the full-screen TUI starts.

Commands:
  ask <question>   one-shot question, prints the reply and exits
  chat             plain REPL (no full-screen UI)
  history          show stored analyses and voice transcripts
  config [show]    print the effective configuration
  config path      print the config file location
  version          print the version
  help             this text
`)
}
