// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antononils/strava-assistant-tui/internal/config"
	"github.com/antononils/strava-assistant-tui/internal/model"
)

// =============================================================================
// ARG PARSER
// =============================================================================

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"history", "--limit", "50", "--json", "--since=2025-01-01"})
	assert.Equal(t, "history", p.Subcommand())
	assert.Equal(t, 50, p.IntFlag("limit", 20))
	assert.True(t, p.BoolFlag("json"))
	assert.Equal(t, "2025-01-01", p.Flag("since"))
}

func TestArgParser_Rest(t *testing.T) {
	p := NewArgParser([]string{"ask", "how", "was", "my", "week"})
	assert.Equal(t, "how was my week", p.Rest())
}

func TestArgParser_Defaults(t *testing.T) {
	p := NewArgParser(nil)
	assert.Equal(t, "", p.Subcommand())
	assert.Equal(t, 20, p.IntFlag("limit", 20))
	assert.False(t, p.BoolFlag("json"))
}

func TestArgParser_ExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--json=false"})
	assert.False(t, p.BoolFlag("json"))
}

// =============================================================================
// DISPATCH
// =============================================================================

func TestRun_NoArgsFallsThroughToTUI(t *testing.T) {
	var out bytes.Buffer
	handled, err := Run(config.Default(), nil, &out)
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	handled, err := Run(config.Default(), []string{"version"}, &out)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Contains(t, out.String(), "strava-assistant")
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	handled, err := Run(config.Default(), []string{"frobnicate"}, &out)
	assert.True(t, handled)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Usage")
}

func TestRun_ConfigShow(t *testing.T) {
	var out bytes.Buffer
	handled, err := Run(config.Default(), []string{"config", "show"}, &out)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Contains(t, out.String(), "backend.url = http://localhost:5000")
}

// =============================================================================
// OUTPUT FORMATTING
// =============================================================================

func TestRouteLine(t *testing.T) {
	d := 5210.0
	mt := 1563.0
	line := routeLine(1, &model.Route{
		Name:       "Morning Run",
		Kind:       model.KindStrava,
		Distance:   &d,
		MovingTime: &mt,
		StartDate:  "2025-10-12T08:30:00Z",
	})
	assert.Contains(t, line, "Morning Run")
	assert.Contains(t, line, "5,21 km")
	assert.Contains(t, line, "5:00 min/km")
	assert.Contains(t, line, "12 okt 2025")
}
