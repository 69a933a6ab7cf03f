package deskpet

import (
	"sort"
	"sync"
)

// Registry stores loaded clips by name. Clips are never evicted; registering
// a name again replaces the previous clip.
//
// Registry is safe for concurrent use so that clips can be (re)loaded off the
// host thread.
type Registry struct {
	mu    sync.RWMutex
	clips map[string]*Clip
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{clips: make(map[string]*Clip)}
}

// Register stores c under c.Name, replacing any clip with the same name.
func (r *Registry) Register(c *Clip) {
	r.mu.Lock()
	r.clips[c.Name] = c
	r.mu.Unlock()
}

// Lookup returns the clip registered under name.
func (r *Registry) Lookup(name string) (*Clip, bool) {
	r.mu.RLock()
	c, ok := r.clips[name]
	r.mu.RUnlock()
	return c, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered clip names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.clips))
	for name := range r.clips {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
