// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antononils/strava-assistant-tui/internal/model"
)

// Reference polyline from the encoding spec: three points ending at
// (40.7, -120.95) .. (43.252, -126.453).
const samplePolyline = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func TestDecode(t *testing.T) {
	coords, err := Decode(samplePolyline)
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.InDelta(t, 38.5, coords[0].Lat, 1e-5)
	assert.InDelta(t, -120.2, coords[0].Lon, 1e-5)
	assert.InDelta(t, 43.252, coords[2].Lat, 1e-5)
	assert.InDelta(t, -126.453, coords[2].Lon, 1e-5)
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode("")
	assert.ErrorIs(t, err, ErrEmptyPolyline)
}

func TestBoundsOf(t *testing.T) {
	coords := []model.Coord{
		{Lat: 59.0, Lon: 18.0},
		{Lat: 59.4, Lon: 17.8},
		{Lat: 59.2, Lon: 18.2},
	}
	b, ok := BoundsOf(coords)
	require.True(t, ok)
	assert.Equal(t, 59.0, b.MinLat)
	assert.Equal(t, 59.4, b.MaxLat)
	assert.Equal(t, 17.8, b.MinLon)
	assert.Equal(t, 18.2, b.MaxLon)

	c := b.Center()
	assert.InDelta(t, 59.2, c.Lat, 1e-9)
	assert.InDelta(t, 18.0, c.Lon, 1e-9)

	_, ok = BoundsOf(nil)
	assert.False(t, ok)
}

func TestPathLength(t *testing.T) {
	// One degree of latitude is roughly 111 km.
	coords := []model.Coord{
		{Lat: 59.0, Lon: 18.0},
		{Lat: 60.0, Lon: 18.0},
	}
	length := PathLength(coords)
	assert.InDelta(t, 111195, length, 500)

	assert.Zero(t, PathLength(nil))
	assert.Zero(t, PathLength(coords[:1]))
}
