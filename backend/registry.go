// Package backend lets a caller select a named bundle of collab
// implementations at runtime instead of wiring gocvio.Adapter directly.
// The phase-unwrapping core has so far shipped only one real bundle
// ("opencv"), but the registry keeps the door open for e.g. a pure-Go
// backend without pulling the choice into every call site — the same
// problem this corpus's codec registry solves for swappable image codecs.
package backend

import (
	"errors"
	"sync"

	"github.com/jhacsonmeza/SLutils/collab"
)

// ErrBackendNotFound is returned when a requested backend name is not
// registered.
var ErrBackendNotFound = errors.New("backend not found")

// Bundle groups the four collab contracts a single backend implements.
type Bundle struct {
	Loader     collab.Loader
	MedianBlur collab.MedianBlur
	Otsu       collab.Otsu
	BitwiseAnd collab.BitwiseAnd
}

// Registry manages the available backends.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Bundle
}

var defaultRegistry = &Registry{backends: make(map[string]Bundle)}

// Register registers a backend bundle under name in the default registry.
func Register(name string, bundle Bundle) {
	defaultRegistry.Register(name, bundle)
}

// Get retrieves a backend bundle by name from the default registry.
func Get(name string) (Bundle, error) {
	return defaultRegistry.Get(name)
}

// List returns the names of all registered backends in the default registry.
func List() []string {
	return defaultRegistry.List()
}

// Register registers a backend bundle under name.
func (r *Registry) Register(name string, bundle Bundle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = bundle
}

// Get retrieves a backend bundle by name.
func (r *Registry) Get(name string) (Bundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bundle, ok := r.backends[name]
	if !ok {
		return Bundle{}, ErrBackendNotFound
	}
	return bundle, nil
}

// List returns the names of all registered backends.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	return names
}
