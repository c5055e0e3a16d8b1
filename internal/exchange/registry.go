package exchange

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available formats
type Registry struct {
	mu      sync.RWMutex
	formats map[string]FormatFactory
}

// NewRegistry creates a new format registry
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]FormatFactory),
	}
}

// Register adds a new format factory to the registry
func (r *Registry) Register(name string, factory FormatFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formats[name]; exists {
		return fmt.Errorf("format %s already registered", name)
	}

	r.formats[name] = factory
	return nil
}

// Create instantiates a format by name
func (r *Registry) Create(name string) (Format, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.formats[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, r.namesLocked())
	}

	return factory(), nil
}

// List returns all registered format names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Register adds a format to the global registry
func Register(name string, factory FormatFactory) error {
	return defaultRegistry.Register(name, factory)
}

// MustRegister is Register for init functions. It panics when name is
// already taken.
func MustRegister(name string, factory FormatFactory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// CreateFormat creates a format from the global registry
func CreateFormat(name string) (Format, error) {
	return defaultRegistry.Create(name)
}

// ListFormats returns all registered format names from the global registry
func ListFormats() []string {
	return defaultRegistry.List()
}
