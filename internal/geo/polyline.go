// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package geo decodes encoded activity polylines into coordinate sequences.
package geo

import (
	"errors"
	"math"

	"googlemaps.github.io/maps"

	"github.com/antononils/strava-assistant-tui/internal/model"
)

// ErrEmptyPolyline is returned when asked to decode an empty string.
var ErrEmptyPolyline = errors.New("empty polyline")

// Decode expands an encoded polyline into lat/lon coordinates.
func Decode(encoded string) ([]model.Coord, error) {
	if encoded == "" {
		return nil, ErrEmptyPolyline
	}
	latlngs, err := maps.DecodePolyline(encoded)
	if err != nil {
		return nil, err
	}
	coords := make([]model.Coord, len(latlngs))
	for i, ll := range latlngs {
		coords[i] = model.Coord{Lat: ll.Lat, Lon: ll.Lng}
	}
	return coords, nil
}

// Bounds is a lat/lon bounding box.
type Bounds struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// BoundsOf computes the bounding box of a coordinate sequence. The second
// return is false for empty input.
func BoundsOf(coords []model.Coord) (Bounds, bool) {
	if len(coords) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinLat: coords[0].Lat, MaxLat: coords[0].Lat,
		MinLon: coords[0].Lon, MaxLon: coords[0].Lon,
	}
	for _, c := range coords[1:] {
		if c.Lat < b.MinLat {
			b.MinLat = c.Lat
		}
		if c.Lat > b.MaxLat {
			b.MaxLat = c.Lat
		}
		if c.Lon < b.MinLon {
			b.MinLon = c.Lon
		}
		if c.Lon > b.MaxLon {
			b.MaxLon = c.Lon
		}
	}
	return b, true
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() model.Coord {
	return model.Coord{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

const earthRadiusM = 6371000.0

// PathLength returns the length of a coordinate sequence in meters, using
// the haversine distance between consecutive points. Generated routes
// carry no recorded distance, so their cards derive one from geometry.
func PathLength(coords []model.Coord) float64 {
	var total float64
	for i := 1; i < len(coords); i++ {
		total += haversine(coords[i-1], coords[i])
	}
	return total
}

func haversine(a, b model.Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}
