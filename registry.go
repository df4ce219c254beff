package credchain

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a provider for a registered source name.
type Factory func() (Provider, error)

var (
	regMu     sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a source factory under the given name. Source packages
// call this from init(); a later registration under the same name
// replaces the earlier one.
func Register(name string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[name] = f
}

// NewSource constructs a provider for a registered source name.
func NewSource(name string) (Provider, error) {
	regMu.RLock()
	f, ok := factories[name]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown credential source %q", name)
	}
	p, err := f()
	if err != nil {
		return nil, fmt.Errorf("creating %s source: %w", name, err)
	}
	return p, nil
}

// Sources returns the names of all registered source factories, sorted.
func Sources() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resetRegistry removes all registered factories. For testing only.
func resetRegistry() {
	regMu.Lock()
	defer regMu.Unlock()
	factories = make(map[string]Factory)
}
