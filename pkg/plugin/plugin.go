// Package plugin collects module models under one plugin and creates instances.
package plugin

import (
	"fmt"
	"slices"
	"sync"

	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
)

// Info contains plugin metadata
type Info struct {
	Slug    string // Plugin identifier used in patch files
	Name    string // Display name
	Version string // Semantic version (e.g. "2.0.0")
	Author  string
	URL     string
}

// Constructor creates a fresh module instance
type Constructor func() module.Module

// Model describes one module type a plugin provides
type Model struct {
	Info module.Info
	New  Constructor
}

// Plugin is a named collection of models
type Plugin struct {
	Info Info

	mu     sync.RWMutex
	models map[string]Model
	order  []string
}

// New creates an empty plugin
func New(info Info) *Plugin {
	return &Plugin{
		Info:   info,
		models: make(map[string]Model),
	}
}

// Add registers a model. Slugs must be valid and unique.
func (p *Plugin) Add(model Model) error {
	if err := model.Info.Validate(); err != nil {
		return err
	}
	if model.New == nil {
		return fmt.Errorf("model %q has no constructor", model.Info.Slug)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.models[model.Info.Slug]; exists {
		return fmt.Errorf("model %q already registered", model.Info.Slug)
	}
	p.models[model.Info.Slug] = model
	p.order = append(p.order, model.Info.Slug)
	return nil
}

// Model returns the model registered under slug
func (p *Plugin) Model(slug string) (Model, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	m, ok := p.models[slug]
	return m, ok
}

// Models returns every model in registration order
func (p *Plugin) Models() []Model {
	p.mu.RLock()
	defer p.mu.RUnlock()

	models := make([]Model, 0, len(p.order))
	for _, slug := range p.order {
		models = append(models, p.models[slug])
	}
	return models
}

// Slugs returns the registered slugs in sorted order
func (p *Plugin) Slugs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	slugs := slices.Clone(p.order)
	slices.Sort(slugs)
	return slugs
}

// Create instantiates the model registered under slug.
// A constructor that panics is reported as an error.
func (p *Plugin) Create(slug string) (m module.Module, err error) {
	model, ok := p.Model(slug)
	if !ok {
		return nil, fmt.Errorf("unknown model %q", slug)
	}

	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("creating %q: %v", slug, r)
		}
	}()
	return model.New(), nil
}
