// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/antononils/strava-assistant-tui/internal/api"
	"github.com/antononils/strava-assistant-tui/internal/config"
	"github.com/antononils/strava-assistant-tui/internal/format"
	"github.com/antononils/strava-assistant-tui/internal/model"
)

// Ask sends one question and prints the reply, results included. Exit
// code style: the error return becomes a non-zero exit in main.
func Ask(cfg *config.Config, question string, out io.Writer) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("nothing to ask")
	}

	client := api.NewClient(cfg.Backend.URL)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	resp, err := client.Chat(ctx, question)
	if err != nil {
		return err
	}

	printResponse(out, resp)
	return nil
}

func printResponse(out io.Writer, resp *api.ChatResponse) {
	fmt.Fprintln(out, renderMarkdown(resp.Response))

	if resp.Mode == api.ModeRun && len(resp.Results) > 0 {
		fmt.Fprintln(out)
		for i, route := range resp.Results {
			fmt.Fprintln(out, routeLine(i+1, route))
		}
		if resp.Count > len(resp.Results) {
			fmt.Fprintf(out, "(%d activities in total)\n", resp.Count)
		}
	}
}

// routeLine formats one activity result for plain terminal output.
func routeLine(index int, route *model.Route) string {
	date := format.Date(route.StartDate)
	parts := []string{
		fmt.Sprintf("%2d. %s", index, route.DisplayName()),
		date.Top + " " + date.Bottom,
		format.Distance(route.Distance),
		format.Pace(route.Distance, route.MovingTime),
		format.MovingTime(route.MovingTime),
	}
	return strings.Join(parts, "  |  ")
}

// renderMarkdown renders assistant Markdown for the terminal, degrading to
// the raw text on any renderer problem.
func renderMarkdown(content string) string {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
		if width > 100 {
			width = 100
		}
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
