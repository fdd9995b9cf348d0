// Copyright (c) 2025 Anton Nilsson
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "sync"

// Registry maps route identifiers to the last-seen route payload. It is the
// source of truth for recovering full route objects (geometry included) when
// only an id is at hand: card clicks, analyze clicks, auto-selection.
//
// Last write wins; at most one entry per id.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]*Route
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{routes: make(map[string]*Route)}
}

// Register inserts or overwrites the route by id. Routes without an id are
// ignored: they cannot be selected or analyzed later.
//
// Fresh server payloads never carry analysis state, so a previously analyzed
// entry passes its cached result on to the replacement.
func (g *Registry) Register(r *Route) {
	if r == nil || r.RouteID == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if prev, ok := g.routes[r.RouteID]; ok && prev.Analyzed && !r.Analyzed {
		r.Analyzed = true
		r.Analysis = prev.Analysis
	}
	g.routes[r.RouteID] = r
}

// Get returns the stored route for id, or false when absent.
func (g *Registry) Get(id string) (*Route, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.routes[id]
	return r, ok
}

// SetAnalysis records a successful analysis on the registry entry so that
// re-rendering the card in this session shows the cached result.
func (g *Registry) SetAnalysis(id, analysis string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.routes[id]; ok {
		r.Analyzed = true
		r.Analysis = analysis
	}
}

// Len returns the number of registered routes.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.routes)
}
