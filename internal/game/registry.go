package game

import (
	"sort"
	"sync"
)

// Registry maps rule-set names to factories producing an ordered rule list.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]func() []Rule
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]func() []Rule{}}
}

func (r *Registry) Register(name string, factory func() []Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

func (r *Registry) Get(name string) ([]Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
