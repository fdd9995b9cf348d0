// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/antononils/strava-assistant-tui/internal/model"
	"github.com/antononils/strava-assistant-tui/internal/ui/styles"
)

func fp(v float64) *float64 { return &v }

func testRoute() *model.Route {
	return &model.Route{
		RouteID:            "a1",
		Kind:               model.KindStrava,
		Name:               "Morning Run",
		Distance:           fp(5210),
		MovingTime:         fp(1563),
		TotalElevationGain: fp(42),
		AverageHeartrate:   fp(151.7),
		StartDate:          "2025-10-12T08:30:00Z",
	}
}

func TestRenderCard_Metrics(t *testing.T) {
	out := RenderCard(styles.NewTheme(), testRoute(), CardOptions{Index: 1, Width: 60})

	assert.Contains(t, out, "Morning Run")
	assert.Contains(t, out, "5,21 km")
	assert.Contains(t, out, "5:00 min/km")
	assert.Contains(t, out, "26 min")
	assert.Contains(t, out, "42 m")
	assert.Contains(t, out, "152 bpm")
	assert.Contains(t, out, "12 okt")
	assert.Contains(t, out, "Analyze")
}

func TestRenderCard_MissingMetricsShowPlaceholder(t *testing.T) {
	route := &model.Route{RouteID: "a1", Kind: model.KindStrava, Name: "Bare"}
	out := RenderCard(styles.NewTheme(), route, CardOptions{Index: 1, Width: 60})
	assert.Contains(t, out, "—")
}

func TestRenderCard_GeneratedRouteDerivesDistance(t *testing.T) {
	route := &model.Route{
		RouteID: "g1",
		Kind:    model.KindGenerated,
		Name:    "Generated Loop",
		Coords: []model.Coord{
			{Lat: 59.0, Lon: 18.0},
			{Lat: 59.009, Lon: 18.0}, // ~1 km north
		},
	}
	out := RenderCard(styles.NewTheme(), route, CardOptions{Index: 1, Width: 60})
	assert.Contains(t, out, "1,00 km")
}

func TestRenderCard_AnalyzeStates(t *testing.T) {
	theme := styles.NewTheme()

	busy := RenderCard(theme, testRoute(), CardOptions{Index: 1, Width: 60, Analyzing: true})
	assert.Contains(t, busy, "Analyzing...")

	done := testRoute()
	done.Analyzed = true
	done.Analysis = "Solid tempo effort."
	out := RenderCard(theme, done, CardOptions{Index: 1, Width: 60})
	assert.Contains(t, out, "Solid tempo effort.")
	assert.NotContains(t, out, "Analyzing...")
}

func TestToggleLabel_UsesServerCount(t *testing.T) {
	// The server-reported total drives the label, not the rendered length.
	assert.Equal(t, "Show all 5 activities", ToggleLabel(false, 5))
	assert.Equal(t, "Hide activities", ToggleLabel(true, 5))
}

func TestRenderCardGroup_CollapsedShowsThree(t *testing.T) {
	theme := styles.NewTheme()
	reg := model.NewRegistry()
	ids := []string{"a1", "a2", "a3", "a4", "a5"}
	for _, id := range ids {
		reg.Register(&model.Route{RouteID: id, Kind: model.KindStrava, Name: "Run " + id})
	}
	group := &model.RouteGroup{RouteIDs: ids, Total: 5}

	out := RenderCardGroup(theme, group, reg, "", "", 60)
	assert.Contains(t, out, "Run a3")
	assert.NotContains(t, out, "Run a4")
	assert.Contains(t, out, "Show all 5 activities")

	group.Expanded = true
	out = RenderCardGroup(theme, group, reg, "", "", 60)
	assert.Contains(t, out, "Run a5")
	assert.Contains(t, out, "Hide activities")
}

func TestRenderWelcome(t *testing.T) {
	out := RenderWelcome(styles.NewTheme(), 80, true)
	assert.Contains(t, out, "Strava Assistant")
	for _, s := range Suggestions {
		assert.Contains(t, out, s)
	}

	bare := RenderWelcome(styles.NewTheme(), 80, false)
	assert.False(t, strings.Contains(bare, Suggestions[0]))
}
