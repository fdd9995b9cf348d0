// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session orchestrates the chat, selection and analysis workflows
// between the registry, the backend API and the map view.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/antononils/strava-assistant-tui/internal/api"
	"github.com/antononils/strava-assistant-tui/internal/mapview"
	"github.com/antononils/strava-assistant-tui/internal/model"
	"github.com/antononils/strava-assistant-tui/internal/storage"
)

// Backend is the slice of the API client the workflows use.
type Backend interface {
	Chat(ctx context.Context, message string) (*api.ChatResponse, error)
	SelectRoute(ctx context.Context, req api.SelectRouteRequest) (*api.SelectRouteResponse, error)
	ClearRoute(ctx context.Context) (*api.SelectRouteResponse, error)
	AnalyzeActivity(ctx context.Context, req api.AnalyzeRequest) (*api.AnalyzeResponse, error)
	MapURL(path string) string
}

// Workflow holds the per-session selection state and drives the backend
// and map view. At most one route is selected at a time.
type Workflow struct {
	registry *model.Registry
	backend  Backend
	renderer mapview.Renderer
	store    *storage.Store // optional; nil disables persistence
	mapPath  string

	mu       sync.Mutex
	selected string
}

// New creates a workflow. store may be nil.
func New(registry *model.Registry, backend Backend, renderer mapview.Renderer, store *storage.Store, mapPath string) *Workflow {
	return &Workflow{
		registry: registry,
		backend:  backend,
		renderer: renderer,
		store:    store,
		mapPath:  mapPath,
	}
}

// SelectedRouteID returns the currently selected route id, or "".
func (w *Workflow) SelectedRouteID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends one chat turn, registers any returned routes and applies the
// backend's auto-selection.
func (w *Workflow) Chat(ctx context.Context, message string) (*api.ChatResponse, error) {
	resp, err := w.backend.Chat(ctx, message)
	if err != nil {
		return nil, err
	}

	for _, r := range resp.Results {
		w.registry.Register(r)
	}
	// An auto-selected route goes through the same selection path as a card
	// click: the backend only draws a route when it is pushed explicitly.
	if resp.AutoSelect != "" {
		if _, ok := w.registry.Get(resp.AutoSelect); ok {
			w.setSelected(resp.AutoSelect)
			w.pushSelection(ctx, resp.AutoSelect)
		}
	}
	if resp.Mode == api.ModeRun {
		w.reloadMapAt(resp.Map)
	}
	return resp, nil
}

// =============================================================================
// SELECTION
// =============================================================================

// ToggleSelect selects the route, or deselects it when it is already the
// current selection. Returns whether the route is selected afterwards.
//
// The backend push is best effort: a failed select or clear leaves the map
// stale but never blocks the UI, and the view reloads regardless so it
// converges on whatever the backend last accepted.
func (w *Workflow) ToggleSelect(ctx context.Context, id string) bool {
	w.mu.Lock()
	deselect := w.selected == id
	if deselect {
		w.selected = ""
	} else {
		w.selected = id
	}
	w.mu.Unlock()

	if deselect {
		_, _ = w.backend.ClearRoute(ctx)
		w.reloadMap()
		return false
	}

	w.pushSelection(ctx, id)
	w.reloadMap()
	return true
}

// pushSelection sends the route's geometry to the map, or clears the map
// when the route has none to draw.
func (w *Workflow) pushSelection(ctx context.Context, id string) {
	route, ok := w.registry.Get(id)
	if !ok {
		_, _ = w.backend.ClearRoute(ctx)
		return
	}

	switch {
	case route.Kind == model.KindGenerated && len(route.Coords) > 0:
		_, _ = w.backend.SelectRoute(ctx, api.SelectRouteRequest{
			Name:   route.DisplayName(),
			Coords: route.Coords,
		})
	case route.Polyline != "":
		_, _ = w.backend.SelectRoute(ctx, api.SelectRouteRequest{
			Name:     route.DisplayName(),
			Polyline: route.Polyline,
		})
	default:
		_, _ = w.backend.ClearRoute(ctx)
	}
}

func (w *Workflow) setSelected(id string) {
	w.mu.Lock()
	w.selected = id
	w.mu.Unlock()
}

func (w *Workflow) reloadMap() {
	w.reloadMapAt("")
}

// reloadMapAt reloads the view at the given map document path, falling back
// to the configured default when the backend did not name one.
func (w *Workflow) reloadMapAt(path string) {
	if path == "" {
		path = w.mapPath
	}
	_ = w.renderer.Reload(w.backend.MapURL(path))
}

// =============================================================================
// ANALYSIS
// =============================================================================

// Analyze runs the analysis workflow for a route: ensure it is on the map,
// wait for the map to draw, snapshot it, and send everything to the backend.
// The cached result is returned without a round trip when available.
//
// On failure nothing is cached, so the card's analyze action stays available.
func (w *Workflow) Analyze(ctx context.Context, id string) (string, error) {
	route, ok := w.registry.Get(id)
	if !ok {
		return "", fmt.Errorf("unknown route %q", id)
	}
	if route.Analyzed {
		return route.Analysis, nil
	}

	// The snapshot should show this route, so select it first if another
	// one (or nothing) is on the map.
	if w.SelectedRouteID() != id {
		w.setSelected(id)
		w.pushSelection(ctx, id)
		w.reloadMap()
	}

	w.renderer.WaitForLoad(ctx)

	// Headless sessions have no snapshot source, so the analysis proceeds
	// text-only. A real view failing to export aborts instead.
	imageDataURL, err := w.renderer.Snapshot(ctx)
	if err != nil {
		if !errors.Is(err, mapview.ErrNoView) {
			return "", fmt.Errorf("map snapshot failed: %w", err)
		}
		imageDataURL = ""
	}

	req := api.AnalyzeRequest{
		Kind:         route.Kind,
		ID:           route.ID,
		Name:         route.Name,
		Distance:     route.Distance,
		ImageDataURL: imageDataURL,
	}
	if route.Kind == model.KindGenerated {
		req.Coords = route.Coords
	}

	resp, err := w.backend.AnalyzeActivity(ctx, req)
	if err != nil {
		return "", err
	}
	// An analyzed card shows its result forever, so an empty one must never
	// enter the cache.
	if !resp.OK || resp.Analysis == "" {
		return "", errors.New("analysis returned no result")
	}

	w.registry.SetAnalysis(id, resp.Analysis)
	if w.store != nil {
		_ = w.store.SaveAnalysis(ctx, id, route.DisplayName(), resp.Analysis)
	}
	return resp.Analysis, nil
}
