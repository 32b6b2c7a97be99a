package core

import (
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-drift/xtype/pkg/errors"
)

// Manager is the composition root: it owns one TypeRegistry and one
// IdentityRegistry and turns configs into live, tracked nodes.
type Manager struct {
	doc     Document
	root    Element
	handler errors.Handler
	strict  bool

	types   *TypeRegistry
	objects *IdentityRegistry

	mu     sync.Mutex
	nextID int
}

// Option configures a Manager.
type Option func(*Manager)

// WithHandler sends the manager's diagnostics to h instead of the global
// errors.DefaultHandler.
func WithHandler(h errors.Handler) Option {
	return func(m *Manager) {
		m.handler = h
	}
}

// WithRoot sets the element nodes attach under when they have no host.
func WithRoot(root Element) Option {
	return func(m *Manager) {
		m.root = root
	}
}

// WithStrict makes Create refuse a node whose identity is already taken
// instead of overwriting the registry entry.
func WithStrict() Option {
	return func(m *Manager) {
		m.strict = true
	}
}

// NewManager returns a manager rendering into doc.
func NewManager(doc Document, opts ...Option) *Manager {
	m := &Manager{doc: doc, nextID: -1}
	for _, opt := range opts {
		opt(m)
	}
	m.types = newTypeRegistry(m.handler)
	m.objects = newIdentityRegistry(m)
	return m
}

// Document returns the host document.
func (m *Manager) Document() Document {
	return m.doc
}

// Root returns the fallback host element, if any.
func (m *Manager) Root() Element {
	return m.root
}

// Types returns the type tag registry.
func (m *Manager) Types() *TypeRegistry {
	return m.types
}

// Objects returns the identity registry.
func (m *Manager) Objects() *IdentityRegistry {
	return m.objects
}

// Register adds a type tag. See TypeRegistry.Register.
func (m *Manager) Register(tag string, f Factory) bool {
	return m.types.Register(tag, f)
}

// Unregister removes a type tag. See TypeRegistry.Unregister.
func (m *Manager) Unregister(tag string) bool {
	return m.types.Unregister(tag)
}

// Resolve looks up a type tag. See TypeRegistry.Resolve.
func (m *Manager) Resolve(tag string) (Factory, bool) {
	return m.types.Resolve(tag)
}

// Get returns the node registered under (scope, id).
func (m *Manager) Get(id, scope string) (Node, bool) {
	return m.objects.Get(id, scope)
}

// Create turns c into a registered node without rendering it.
//
// A Node is registered under its own identity and returned unchanged. A
// *Config is resolved through the type registry and built by its factory;
// an empty ID is replaced by a generated one. When no node can be built the
// problem is reported and returned.
func (m *Manager) Create(c Child) (n Node, err error) {
	defer errors.Recover(m.handler, "core.Manager.Create", &err)

	switch v := c.(type) {
	case *Config:
		if v == nil {
			return nil, m.invalid(errors.ErrInvalidConfig)
		}
		return m.build(v)
	case Node:
		if err := m.register(v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, m.invalid(errors.ErrInvalidConfig)
	}
}

// Render creates c, places it under host (when non-nil) and renders it.
func (m *Manager) Render(c Child, host Element) (Node, error) {
	n, err := m.Create(c)
	if err != nil {
		return nil, err
	}
	if host != nil {
		n.SetHost(host)
	}
	return n, n.Render()
}

// Destroy destroys the node registered under (scope, id).
func (m *Manager) Destroy(id, scope string) bool {
	n, ok := m.objects.Get(id, scope)
	if !ok {
		errors.Report(m.handler, errors.New("core.Manager.Destroy", errors.KindNotFound, Key(id, scope), errors.ErrNotFound))
		return false
	}
	n.Destroy()
	return true
}

func (m *Manager) build(cfg *Config) (Node, error) {
	if cfg.Type == "" {
		return nil, m.invalid(fmt.Errorf("%w: xtype is undefined", errors.ErrInvalidConfig))
	}
	f, ok := m.types.Resolve(cfg.Type)
	if !ok || f == nil {
		return nil, errors.New("core.Manager.Create", errors.KindNotFound, cfg.Type, errors.ErrUnknownType)
	}

	c := *cfg
	if c.ID == "" {
		c.ID = m.generateID(cfg.Type)
	}
	n := f(&c)
	if n == nil {
		return nil, m.invalid(fmt.Errorf("%w: factory for %q returned no node", errors.ErrInvalidConfig, cfg.Type))
	}
	if err := m.register(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (m *Manager) register(n Node) error {
	b := n.base()
	b.mu.Lock()
	if b.creator == nil {
		b.creator = m
	}
	b.mu.Unlock()

	id, scope := n.ID(), n.Scope()
	if id == "" {
		return nil
	}
	if m.strict {
		if prev, ok := m.objects.Get(id, scope); ok && prev != n {
			d := errors.New("core.Manager.Create", errors.KindDuplicate, Key(id, scope), errors.ErrDuplicate)
			errors.Report(m.handler, d)
			return d
		}
	}
	m.objects.Add(id, n, scope)
	return nil
}

// generateID derives an identity from the type tag and a decreasing counter,
// e.g. "Rect-1", "Circle-2".
func (m *Manager) generateID(tag string) string {
	m.mu.Lock()
	n := m.nextID
	m.nextID--
	m.mu.Unlock()
	return cases.Title(language.Und).String(tag) + strconv.Itoa(n)
}

func (m *Manager) invalid(err error) *errors.Diagnostic {
	d := errors.New("core.Manager.Create", errors.KindInvalidConfig, "", err)
	errors.Report(m.handler, d)
	return d
}
