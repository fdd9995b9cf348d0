// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "github.com/antononils/strava-assistant-tui/internal/model"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the body of a chat turn.
type ChatRequest struct {
	Message string `json:"message"`
}

// SelectRouteRequest pushes a route onto the shared map. Exactly one of
// Coords or Polyline is set; sending neither clears the map.
type SelectRouteRequest struct {
	Name     string        `json:"name,omitempty"`
	Coords   []model.Coord `json:"coords,omitempty"`
	Polyline string        `json:"polyline,omitempty"`
}

// AnalyzeRequest asks the backend to analyze an activity, optionally with
// a rendered map image attached.
type AnalyzeRequest struct {
	Kind         model.Kind    `json:"kind"`
	ID           int64         `json:"id,omitempty"`
	Name         string        `json:"name,omitempty"`
	Distance     *float64      `json:"distance,omitempty"`
	Coords       []model.Coord `json:"coords,omitempty"`
	ImageDataURL string        `json:"image_data_url,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Response mode values for ChatResponse.Mode.
const (
	ModeChat = "chat"
	ModeRun  = "run"
)

// ChatResponse is the reply to a chat turn. Run-mode replies carry route
// results and map state on top of the text response.
type ChatResponse struct {
	Input    string `json:"input,omitempty"`
	Mode     string `json:"mode"`
	Response string `json:"response"`

	// Run-mode fields.
	RunDetails map[string]any  `json:"run_details,omitempty"`
	Count      int             `json:"count,omitempty"`
	Results    []*model.Route  `json:"results,omitempty"`
	AutoSelect string          `json:"auto_select_route_id,omitempty"`
	Map        string          `json:"map,omitempty"`

	Error string `json:"error,omitempty"`
}

// SelectRouteResponse acknowledges a map selection or clear.
type SelectRouteResponse struct {
	OK    bool `json:"ok"`
	Empty bool `json:"empty,omitempty"`
}

// AnalyzeResponse is the reply to an analyze request.
type AnalyzeResponse struct {
	OK       bool   `json:"ok"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}

// TranscribeResponse is the reply to an audio transcription upload.
type TranscribeResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}
