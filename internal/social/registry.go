package social

import "fmt"

// Registry holds settlements by name, remembering insertion order.
type Registry struct {
	order  []string
	byName map[string]Settlement
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Settlement)}
}

// Add registers a settlement. Names are unique.
func (r *Registry) Add(s Settlement) error {
	if _, ok := r.byName[s.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSettlement, s.Name)
	}
	r.byName[s.Name] = s
	r.order = append(r.order, s.Name)
	return nil
}

// Get looks a settlement up by name.
func (r *Registry) Get(name string) (Settlement, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// All returns settlements in registration order.
func (r *Registry) All() []Settlement {
	out := make([]Settlement, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of registered settlements.
func (r *Registry) Len() int { return len(r.order) }
