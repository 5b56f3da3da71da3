package convert

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is an interface for creating and retrieving Strategy instances.
// It allows flexible strategy registration, enabling dependency injection
// and easier testing.
type Factory interface {
	// Create creates a fresh Strategy instance by slug, without caching.
	Create(slug string) (Strategy, error)

	// Get returns a cached Strategy instance by slug.
	Get(slug string) (Strategy, error)

	// List returns the sorted slugs of all registered strategies.
	List() []string

	// Register adds a new strategy to the factory.
	Register(slug string, creator func() coreStrategy) error

	// GetAll returns a map of all registered strategies keyed by slug.
	GetAll() map[string]Strategy
}

// DefaultFactory is the default implementation of Factory. It maintains a
// thread-safe registry of strategy creators and caches Strategy instances
// for reuse.
type DefaultFactory struct {
	mu         sync.RWMutex
	creators   map[string]func() coreStrategy
	strategies map[string]Strategy
}

// NewDefaultFactory creates a DefaultFactory with the standard conversion
// strategies pre-registered:
//   - "linear": the canonical formula (miles x 1.609344)
//   - "walk":   on-demand Fibonacci interval interpolation
//   - "cached": table-backed Fibonacci interpolation
//   - "golden": closed-form Binet estimation
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:   make(map[string]func() coreStrategy),
		strategies: make(map[string]Strategy),
	}

	_ = f.Register("linear", func() coreStrategy { return LinearStrategy{} })
	_ = f.Register("walk", func() coreStrategy { return WalkStrategy{} })
	_ = f.Register("cached", func() coreStrategy { return CachedStrategy{} })
	_ = f.Register("golden", func() coreStrategy { return GoldenStrategy{} })

	return f
}

// Register adds a new strategy to the factory. The creator function is
// called lazily when the strategy is first requested. Registering an
// existing slug replaces it and drops any cached instance.
func (f *DefaultFactory) Register(slug string, creator func() coreStrategy) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[slug] = creator
	delete(f.strategies, slug)
	return nil
}

// Create creates a fresh instrumented Strategy instance by slug.
func (f *DefaultFactory) Create(slug string) (Strategy, error) {
	f.mu.RLock()
	creator, ok := f.creators[slug]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", slug)
	}
	return NewStrategy(creator()), nil
}

// Get returns a Strategy instance by slug. Instances are cached and reused
// for subsequent calls; this is the preferred accessor.
func (f *DefaultFactory) Get(slug string) (Strategy, error) {
	f.mu.RLock()
	if s, exists := f.strategies[slug]; exists {
		f.mu.RUnlock()
		return s, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if s, exists := f.strategies[slug]; exists {
		return s, nil
	}
	creator, ok := f.creators[slug]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", slug)
	}
	s := NewStrategy(creator())
	f.strategies[slug] = s
	return s, nil
}

// List returns the sorted slugs of all registered strategies.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	slugs := make([]string, 0, len(f.creators))
	for slug := range f.creators {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// GetAll returns all registered strategies keyed by slug.
func (f *DefaultFactory) GetAll() map[string]Strategy {
	all := make(map[string]Strategy)
	for _, slug := range f.List() {
		if s, err := f.Get(slug); err == nil {
			all[slug] = s
		}
	}
	return all
}
