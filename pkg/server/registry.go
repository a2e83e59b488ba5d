package server

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/component"
)

// Page binds a route to a component.
type Page struct {
	// Path is the route pattern, e.g. "/" or "/counter".
	Path string

	// Title is the document title for full-page renders.
	Title string

	// Tag is the host element tag. Defaults to "app-root".
	Tag string

	// Render is the page's component.
	Render component.RenderFunc
}

// Registry maps route paths to pages.
type Registry struct {
	mu    sync.RWMutex
	pages map[string]Page
}

// NewRegistry creates an empty page registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]Page)}
}

// Register adds a page. Registering the same path twice is an error.
func (r *Registry) Register(p Page) error {
	if p.Path == "" {
		return fmt.Errorf("server: page path required")
	}
	if p.Render == nil {
		return fmt.Errorf("server: page %q has no component", p.Path)
	}
	if p.Tag == "" {
		p.Tag = "app-root"
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pages[p.Path]; exists {
		return fmt.Errorf("server: page %q already registered", p.Path)
	}
	r.pages[p.Path] = p
	return nil
}

// Lookup returns the page registered for path.
func (r *Registry) Lookup(path string) (Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[path]
	return p, ok
}

// Paths returns all registered paths in sorted order.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.pages))
	for p := range r.pages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
