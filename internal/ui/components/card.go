// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antononils/strava-assistant-tui/internal/format"
	"github.com/antononils/strava-assistant-tui/internal/geo"
	"github.com/antononils/strava-assistant-tui/internal/model"
	"github.com/antononils/strava-assistant-tui/internal/ui/styles"
	"github.com/antononils/strava-assistant-tui/internal/util"
)

// CardOptions control how an activity card renders.
type CardOptions struct {
	// Index is the 1-based position shown as the card shortcut.
	Index int
	// Selected highlights the card and marks it as the one on the map.
	Selected bool
	// Analyzing replaces the analyze action with a busy label.
	Analyzing bool
	// Width is the target render width.
	Width int
}

const metricColumnWidth = 14

// RenderCard renders one activity card.
func RenderCard(theme *styles.Theme, route *model.Route, opts CardOptions) string {
	if opts.Width < 30 {
		opts.Width = 30
	}
	inner := opts.Width - 4 // card border and padding

	var b strings.Builder

	// Title row: index shortcut, name, selection marker.
	title := fmt.Sprintf("[%d] %s", opts.Index, util.TruncateWidth(route.DisplayName(), inner-10))
	if opts.Selected {
		title += " " + IconMap
	}
	b.WriteString(theme.CardTitle.Render(title))
	b.WriteString("\n")

	// Date column, rendered as the two stacked lines of the web card.
	date := format.Date(route.StartDate)
	dateLine := date.Top
	if date.Bottom != "" {
		dateLine += " " + date.Bottom
	}
	b.WriteString(theme.CardDate.Render(dateLine))
	b.WriteString("\n")

	// Metric rows: recorded activities get the full grid, generated routes
	// only what the generator filled in.
	b.WriteString(metricRow(theme,
		metric{IconDistance, "Distance", distanceValue(route)},
		metric{IconPace, "Pace", format.Pace(route.Distance, route.MovingTime)},
	))
	b.WriteString("\n")
	b.WriteString(metricRow(theme,
		metric{IconTime, "Time", format.MovingTime(route.MovingTime)},
		metric{IconElevation, "Elevation", format.Elevation(route.TotalElevationGain)},
	))
	b.WriteString("\n")
	b.WriteString(metricRow(theme,
		metric{IconHeart, "Avg HR", format.HeartRate(route.AverageHeartrate)},
	))
	b.WriteString("\n")

	// Analysis section: finished analysis replaces the action for good.
	switch {
	case route.Analyzed:
		b.WriteString(theme.Analysis.Render(route.Analysis))
	case opts.Analyzing:
		b.WriteString(theme.AnalyzeBusy.Render("Analyzing..."))
	default:
		b.WriteString(theme.AnalyzeIdle.Render("Analyze"))
	}

	style := theme.Card
	if opts.Selected {
		style = theme.CardSelected
	}
	return style.Width(opts.Width).Render(b.String())
}

// distanceValue prefers the recorded distance; routes that only carry
// geometry get one derived from it.
func distanceValue(route *model.Route) string {
	if route.Distance != nil {
		return format.Distance(route.Distance)
	}

	coords := route.Coords
	if len(coords) == 0 && route.Polyline != "" {
		decoded, err := geo.Decode(route.Polyline)
		if err != nil {
			return format.Placeholder
		}
		coords = decoded
	}
	if len(coords) < 2 {
		return format.Placeholder
	}
	length := geo.PathLength(coords)
	return format.Distance(&length)
}

type metric struct {
	icon  string
	label string
	value string
}

func metricRow(theme *styles.Theme, metrics ...metric) string {
	cols := make([]string, 0, len(metrics))
	for _, m := range metrics {
		// Pad before styling; ANSI escapes would throw the width off.
		label := util.PadRight(m.icon+" "+m.label, metricColumnWidth)
		cols = append(cols, theme.MetricLabel.Render(label)+theme.MetricValue.Render(m.value))
	}
	return strings.Join(cols, "   ")
}

// ToggleLabel returns the show-all/hide control text for a card group.
// count is the server-reported total, which the label trusts even when it
// disagrees with the number of rendered cards.
func ToggleLabel(expanded bool, count int) string {
	if expanded {
		return "Hide activities"
	}
	return fmt.Sprintf("Show all %d activities", count)
}

// RenderToggle renders the group toggle control.
func RenderToggle(theme *styles.Theme, expanded bool, count int) string {
	return theme.ToggleLink.Render(ToggleLabel(expanded, count))
}

// RenderCardGroup renders the visible slice of a card group plus its toggle.
func RenderCardGroup(theme *styles.Theme, group *model.RouteGroup, registry *model.Registry, selectedID string, analyzingID string, width int) string {
	var parts []string
	visible := group.VisibleCount()
	for i, id := range group.RouteIDs {
		if i >= visible {
			break
		}
		route, ok := registry.Get(id)
		if !ok {
			continue
		}
		parts = append(parts, RenderCard(theme, route, CardOptions{
			Index:     i + 1,
			Selected:  id == selectedID,
			Analyzing: id == analyzingID,
			Width:     width,
		}))
	}
	if group.HasToggle() {
		parts = append(parts, RenderToggle(theme, group.Expanded, group.Total))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
