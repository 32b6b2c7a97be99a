package core

import (
	"slices"
	"sync"

	"github.com/go-drift/xtype/pkg/errors"
)

// Key returns the composite identity key "scope:id". An empty scope means
// DefaultScope.
func Key(id, scope string) string {
	if scope == "" {
		scope = DefaultScope
	}
	return scope + ":" + id
}

// TypeRegistry maps type tags to factories. The first registration of a tag
// wins; later registrations are reported and ignored.
type TypeRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	handler   errors.Handler
}

func newTypeRegistry(h errors.Handler) *TypeRegistry {
	return &TypeRegistry{factories: make(map[string]Factory), handler: h}
}

// Register stores f under tag unless tag is already taken.
func (r *TypeRegistry) Register(tag string, f Factory) bool {
	r.mu.Lock()
	_, exists := r.factories[tag]
	if !exists {
		r.factories[tag] = f
	}
	r.mu.Unlock()

	if exists {
		errors.Report(r.handler, errors.New("core.TypeRegistry.Register", errors.KindDuplicate, tag, errors.ErrDuplicate))
		return false
	}
	return true
}

// Unregister removes tag.
func (r *TypeRegistry) Unregister(tag string) bool {
	r.mu.Lock()
	_, exists := r.factories[tag]
	delete(r.factories, tag)
	r.mu.Unlock()

	if !exists {
		errors.Report(r.handler, errors.New("core.TypeRegistry.Unregister", errors.KindNotFound, tag, errors.ErrNotFound))
	}
	return exists
}

// Resolve returns the factory registered under tag.
func (r *TypeRegistry) Resolve(tag string) (Factory, bool) {
	r.mu.RLock()
	f, ok := r.factories[tag]
	r.mu.RUnlock()

	if !ok {
		errors.Report(r.handler, errors.New("core.TypeRegistry.Resolve", errors.KindNotFound, tag, errors.ErrUnknownType))
	}
	return f, ok
}

// Has reports whether tag is registered, without reporting a miss.
func (r *TypeRegistry) Has(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[tag]
	return ok
}

// Tags returns the registered tags in sorted order.
func (r *TypeRegistry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// IdentityRegistry maps (scope, id) keys to the live node using them.
//
// Adding a node under an occupied key overwrites the mapping. The previous
// occupant is neither torn down nor detached from its manager.
type IdentityRegistry struct {
	mu      sync.RWMutex
	objects map[string]Node
	owner   *Manager
}

func newIdentityRegistry(owner *Manager) *IdentityRegistry {
	return &IdentityRegistry{objects: make(map[string]Node), owner: owner}
}

// Add stores n under (scope, id) and points n at the owning manager.
// Re-adding the node already stored under the key is silent.
func (r *IdentityRegistry) Add(id string, n Node, scope string) {
	key := Key(id, scope)
	r.mu.Lock()
	prev, occupied := r.objects[key]
	r.objects[key] = n
	r.mu.Unlock()

	if occupied && prev != n {
		errors.Report(r.handler(), errors.New("core.IdentityRegistry.Add", errors.KindDuplicate, key, errors.ErrDuplicate))
	}

	b := n.base()
	b.mu.Lock()
	b.owner = r.owner
	if b.creator == nil {
		b.creator = r.owner
	}
	b.mu.Unlock()
}

// Remove deletes the node stored under (scope, id) and clears its manager
// back-reference.
func (r *IdentityRegistry) Remove(id, scope string) bool {
	key := Key(id, scope)
	r.mu.Lock()
	n, ok := r.objects[key]
	delete(r.objects, key)
	r.mu.Unlock()

	if !ok {
		errors.Report(r.handler(), errors.New("core.IdentityRegistry.Remove", errors.KindNotFound, key, errors.ErrNotFound))
		return false
	}
	b := n.base()
	b.mu.Lock()
	b.owner = nil
	b.mu.Unlock()
	return true
}

// Get returns the node stored under (scope, id). A miss is not reported.
func (r *IdentityRegistry) Get(id, scope string) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.objects[Key(id, scope)]
	return n, ok
}

// Len returns the number of registered nodes.
func (r *IdentityRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}

// Keys returns the occupied composite keys in sorted order.
func (r *IdentityRegistry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.objects))
	for k := range r.objects {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (r *IdentityRegistry) handler() errors.Handler {
	if r.owner == nil {
		return nil
	}
	return r.owner.handler
}
