// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript and
// the routes returned by the assistant backend.
package model

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// ROUTE KIND
// =============================================================================

// Kind distinguishes recorded activities from generated paths.
type Kind string

const (
	// KindStrava is a recorded activity pulled from Strava.
	KindStrava Kind = "strava"
	// KindGenerated is a path computed by the backend's route generator.
	KindGenerated Kind = "generated"
)

// =============================================================================
// COORDINATES
// =============================================================================

// Coord is a single lat/lon pair of a generated route.
//
// The backend emits coordinates either as two-element arrays or as
// {"lat":..,"lon":..} objects depending on the generator path, so
// unmarshalling accepts both shapes.
type Coord struct {
	Lat float64
	Lon float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("coordinate pair has %d elements, want 2", len(pair))
		}
		c.Lat, c.Lon = pair[0], pair[1]
		return nil
	}

	var obj struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
		Lng float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unrecognized coordinate shape: %w", err)
	}
	c.Lat = obj.Lat
	c.Lon = obj.Lon
	if c.Lon == 0 {
		c.Lon = obj.Lng
	}
	return nil
}

// MarshalJSON implements json.Marshaler, always emitting the pair form
// the map endpoints expect.
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lon})
}

// =============================================================================
// ROUTE
// =============================================================================

// Route identifies either a recorded activity or a generated path, plus the
// metrics shown on its activity card.
type Route struct {
	RouteID  string  `json:"route_id"`
	Kind     Kind    `json:"kind"`
	ID       int64   `json:"id,omitempty"` // Strava activity id (recorded only)
	Name     string  `json:"name,omitempty"`
	Polyline string  `json:"polyline,omitempty"` // encoded path (recorded)
	Coords   []Coord `json:"coords,omitempty"`   // lat/lon sequence (generated)

	// Activity metrics (recorded only). Pointers so that missing values
	// render as the placeholder dash rather than zero.
	Distance           *float64 `json:"distance,omitempty"`
	TotalElevationGain *float64 `json:"total_elevation_gain,omitempty"`
	MovingTime         *float64 `json:"moving_time,omitempty"`
	AverageHeartrate   *float64 `json:"average_heartrate,omitempty"`
	StartDate          string   `json:"start_date,omitempty"`

	// Analysis cache, set once the analyze workflow succeeds.
	Analyzed bool   `json:"analyzed,omitempty"`
	Analysis string `json:"analysis,omitempty"`
}

// Renderable reports whether the route carries geometry the map can draw.
func (r *Route) Renderable() bool {
	if r.Kind == KindGenerated && len(r.Coords) > 0 {
		return true
	}
	return r.Polyline != ""
}

// DisplayName returns the route name with the same fallbacks the backend
// uses when drawing the map title.
func (r *Route) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Kind == KindGenerated {
		return "Generated Route"
	}
	return "Activity"
}
