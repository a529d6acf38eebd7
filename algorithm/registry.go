package algorithm

import (
	"fmt"
	"slices"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/rete/pandora/types"
)

// Registry maps algorithm names to factories.
//
// Registration is safe for concurrent use so that packages may register
// their algorithms from init functions or parallel test setup; creation is
// read-only after that.
type Registry struct {
	factories *xsync.Map[string, Factory]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: xsync.NewMap[string, Factory]()}
}

// Register binds a factory to a name. Registering a name twice or a nil
// factory is an error.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("algorithm registration requires a name and a factory: %w", types.ErrInvalidParameter)
	}

	if _, loaded := r.factories.LoadOrStore(name, factory); loaded {
		return fmt.Errorf("algorithm %q already registered: %w", name, types.ErrInvalidParameter)
	}

	return nil
}

// Create instantiates a fresh algorithm by name.
func (r *Registry) Create(name string) (Algorithm, error) {
	factory, ok := r.factories.Load(name)
	if !ok {
		return nil, fmt.Errorf("algorithm %q: %w", name, types.ErrNotFound)
	}

	return factory(), nil
}

// Names returns the registered algorithm names in sorted order.
func (r *Registry) Names() []string {
	var names []string
	r.factories.Range(func(name string, _ Factory) bool {
		names = append(names, name)

		return true
	})
	slices.Sort(names)

	return names
}
