// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format converts raw activity metrics into display strings.
//
// All formatters are pure and total: a nil input always yields the
// placeholder dash so cards can render with partial data. Numbers use a
// decimal comma to match the backend's locale.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Placeholder is rendered for any metric that is missing.
const Placeholder = "—"

// monthAbbrevs is the fixed month table used for card date columns.
// Index 0 is January.
var monthAbbrevs = [12]string{
	"jan", "feb", "mar", "apr", "maj", "jun",
	"jul", "aug", "sep", "okt", "nov", "dec",
}

// Distance formats meters as kilometers with two decimals, e.g. "5,21 km".
func Distance(meters *float64) string {
	if meters == nil {
		return Placeholder
	}
	s := fmt.Sprintf("%.2f", *meters/1000)
	return decimalComma(s) + " km"
}

// Elevation formats meters rounded to one decimal, e.g. "1200,5 m".
// Integral values render without a fractional part: "1200 m".
func Elevation(meters *float64) string {
	if meters == nil {
		return Placeholder
	}
	v := math.Round(*meters*10) / 10
	var s string
	if v == math.Trunc(v) {
		s = fmt.Sprintf("%d", int64(v))
	} else {
		s = fmt.Sprintf("%.1f", v)
	}
	return decimalComma(s) + " m"
}

// MovingTime formats seconds as "H h M min" when at least an hour,
// otherwise "M min". Both components are floored.
func MovingTime(seconds *float64) string {
	if seconds == nil {
		return Placeholder
	}
	sec := int(*seconds)
	h := sec / 3600
	m := (sec % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%d h %d min", h, m)
	}
	return fmt.Sprintf("%d min", m)
}

// Pace derives minutes-per-kilometer from distance (m) and time (s),
// e.g. "5:00 min/km". Both inputs must be present and positive.
func Pace(distanceM, timeS *float64) string {
	if distanceM == nil || timeS == nil || *distanceM <= 0 || *timeS <= 0 {
		return Placeholder
	}
	km := *distanceM / 1000
	minPerKm := (*timeS / 60) / km
	min := int(minPerKm)
	sec := int(math.Round((minPerKm - float64(min)) * 60))
	if sec == 60 {
		sec = 0
		min++
	}
	return fmt.Sprintf("%d:%02d min/km", min, sec)
}

// HeartRate formats beats per minute rounded to the nearest integer.
func HeartRate(bpm *float64) string {
	if bpm == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d bpm", int(math.Round(*bpm)))
}

// DateParts holds the two lines of a card's date column.
type DateParts struct {
	Top    string // "12 okt"
	Bottom string // "2025"
}

// Date splits an ISO timestamp into a short day/month line and a year line.
// Missing or unparseable dates yield the placeholder top line and an empty
// bottom line.
func Date(iso string) DateParts {
	if iso == "" {
		return DateParts{Top: Placeholder}
	}
	t, err := parseISO(iso)
	if err != nil {
		return DateParts{Top: Placeholder}
	}
	return DateParts{
		Top:    fmt.Sprintf("%d %s", t.Day(), monthAbbrevs[int(t.Month())-1]),
		Bottom: fmt.Sprintf("%d", t.Year()),
	}
}

// parseISO accepts the timestamp variants the backend emits.
func parseISO(iso string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", iso)
}

func decimalComma(s string) string {
	return strings.Replace(s, ".", ",", 1)
}
