package backend

import (
	"sort"
	"sync"
)

// Entry is one registered backend.
type Entry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Conventions:
	//   - 100: GPU-accelerated raster backends
	//   - 10: software raster backends
	//   - below 10: document serialization backends
	Priority int

	// Factory creates targets.
	Factory Factory

	// Available reports whether the backend is usable on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered backends. Most code uses the global
// registry through the package-level functions.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds a backend to the global registry. A nil available
// function means always available. Registering an existing name replaces
// the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names, highest priority first.
func List() []string {
	return globalRegistry.List()
}

// Available returns the names of all available backends, highest
// priority first.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns a copy of a backend's registration.
func Get(name string) (*Entry, bool) {
	return globalRegistry.Get(name)
}

// New creates a target using the best available backend.
func New(opts Options) (Target, error) {
	return globalRegistry.New(opts)
}

// NewByName creates a target using a specific named backend.
func NewByName(name string, opts Options) (Target, error) {
	return globalRegistry.NewByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]*Entry)
	}
	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &Entry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns all registered backend names, highest priority first.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(false)
}

// Available returns the names of all available backends, highest
// priority first.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(true)
}

// Get returns a copy of a backend's registration.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	cp := *entry
	return &cp, true
}

// New creates a target using the best available backend, falling through
// to lower-priority backends when a factory fails.
func (r *Registry) New(opts Options) (Target, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoneAvailable
	}
	var lastErr error
	for _, name := range available {
		t, err := r.NewByName(name, opts)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewByName creates a target using a specific backend.
func (r *Registry) NewByName(name string, opts Options) (Target, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &UnavailableError{Name: name}
	}
	return entry.Factory(opts)
}

// sortedNames returns backend names by descending priority. Must be
// called with the lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}
	type item struct {
		name     string
		priority int
	}
	items := make([]item, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		items = append(items, item{name: name, priority: e.Priority})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].priority > items[j].priority
	})
	names := make([]string, len(items))
	for i, e := range items {
		names[i] = e.name
	}
	return names
}
