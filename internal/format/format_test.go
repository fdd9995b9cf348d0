// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

// =============================================================================
// NIL HANDLING
// =============================================================================

func TestFormatters_NilInputs(t *testing.T) {
	assert.Equal(t, Placeholder, Distance(nil))
	assert.Equal(t, Placeholder, Elevation(nil))
	assert.Equal(t, Placeholder, MovingTime(nil))
	assert.Equal(t, Placeholder, HeartRate(nil))
	assert.Equal(t, Placeholder, Pace(nil, fp(100)))
	assert.Equal(t, Placeholder, Pace(fp(100), nil))
}

// =============================================================================
// DISTANCE
// =============================================================================

func TestDistance(t *testing.T) {
	assert.Equal(t, "5,21 km", Distance(fp(5210)))
	assert.Equal(t, "0,00 km", Distance(fp(0)))
	assert.Equal(t, "10,00 km", Distance(fp(10000)))
}

// =============================================================================
// ELEVATION
// =============================================================================

func TestElevation(t *testing.T) {
	assert.Equal(t, "1200 m", Elevation(fp(1200)))
	assert.Equal(t, "1200,5 m", Elevation(fp(1200.5)))
	// Rounds to one decimal before deciding the integral case
	assert.Equal(t, "1201 m", Elevation(fp(1200.96)))
	assert.Equal(t, "0 m", Elevation(fp(0)))
}

// =============================================================================
// MOVING TIME
// =============================================================================

func TestMovingTime(t *testing.T) {
	assert.Equal(t, "1 h 30 min", MovingTime(fp(5400)))
	assert.Equal(t, "2 min", MovingTime(fp(120)))
	assert.Equal(t, "0 min", MovingTime(fp(59)))
	assert.Equal(t, "2 h 0 min", MovingTime(fp(7200)))
}

// =============================================================================
// PACE
// =============================================================================

func TestPace(t *testing.T) {
	assert.Equal(t, "5:00 min/km", Pace(fp(10000), fp(3000)))
	assert.Equal(t, Placeholder, Pace(fp(0), fp(100)))
	assert.Equal(t, Placeholder, Pace(fp(100), fp(0)))
	assert.Equal(t, Placeholder, Pace(fp(-5), fp(100)))
	// Seconds are zero-padded
	assert.Equal(t, "5:06 min/km", Pace(fp(10000), fp(3060)))
}

func TestPace_SecondRollover(t *testing.T) {
	// 10 km in 2999 s is 4.99833 min/km; seconds round to 60 and carry
	assert.Equal(t, "5:00 min/km", Pace(fp(10000), fp(2999)))
}

// =============================================================================
// HEART RATE
// =============================================================================

func TestHeartRate(t *testing.T) {
	assert.Equal(t, "152 bpm", HeartRate(fp(151.7)))
	assert.Equal(t, "151 bpm", HeartRate(fp(151.2)))
}

// =============================================================================
// DATE
// =============================================================================

func TestDate(t *testing.T) {
	d := Date("2025-10-12T08:30:00Z")
	assert.Equal(t, "12 okt", d.Top)
	assert.Equal(t, "2025", d.Bottom)

	d = Date("2024-01-03T17:00:00Z")
	assert.Equal(t, "3 jan", d.Top)
	assert.Equal(t, "2024", d.Bottom)
}

func TestDate_Invalid(t *testing.T) {
	assert.Equal(t, DateParts{Top: Placeholder}, Date(""))
	assert.Equal(t, DateParts{Top: Placeholder}, Date("not-a-date"))
}
