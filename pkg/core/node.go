package core

import (
	"sync"

	"github.com/go-drift/xtype/pkg/errors"
)

// State is a node's position in its lifecycle.
type State int

const (
	// Unattached nodes have been constructed but never rendered.
	Unattached State = iota
	// Attached nodes own a backing element attached under their host.
	Attached
	// Cleared nodes dropped their backing element and children but may render again.
	Cleared
	// Destroyed nodes are terminal.
	Destroyed
)

func (s State) String() string {
	switch s {
	case Unattached:
		return "unattached"
	case Attached:
		return "attached"
	case Cleared:
		return "cleared"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Node is a live instance created from a Config.
//
// The set of variants is closed: every implementation embeds Base, which
// holds the declarative payload, the children list and the registry
// bookkeeping. Control and Fragment are the two variants shipped here.
type Node interface {
	Child

	// ID returns the identity fixed at construction.
	ID() string
	// SetID is rejected: it reports a diagnostic and keeps the current value.
	SetID(id string)
	// Scope returns the scope fixed at construction.
	Scope() string
	// SetScope is rejected like SetID.
	SetScope(scope string)

	// Host returns the element the node attaches under.
	Host() Element
	// SetHost changes the placement pointer used by the next Render.
	SetHost(host Element)
	// Element returns the backing element, or nil unless attached.
	Element() Element
	// Manager returns the manager whose registry holds the node, if any.
	Manager() *Manager
	// State returns the lifecycle state.
	State() State

	// Children returns a copy of the children list.
	Children() []Child
	// Add appends a child.
	Add(child Child)
	// Insert places a child at index, shifting later children.
	Insert(index int, child Child)
	// Remove detaches a child from the list without tearing it down.
	Remove(child Child) bool

	// Render creates the backing element, attaches it, applies the payload
	// and renders every child under it.
	Render() error
	// Clear detaches the node and unregisters its whole subtree.
	Clear()
	// Destroy clears the node and removes its own registry entry.
	Destroy()

	base() *Base
}

type entry struct {
	decl     Child
	rendered Node
}

func (e entry) node() Node {
	if n, ok := e.decl.(Node); ok {
		return n
	}
	return e.rendered
}

// Base is the state shared by every Node variant. Custom variants embed
// *Base-compatible state by embedding Base and calling Init.
type Base struct {
	mu sync.Mutex

	self  Node
	id    string
	scope string

	host     Element
	element  Element
	children []entry
	state    State

	attrs     Map
	props     Map
	className string
	style     Map
	listeners Listeners
	data      Map
	content   string

	owner   *Manager
	creator *Manager
}

// Init copies cfg into b. self must be the Node that embeds b.
func (b *Base) Init(self Node, cfg *Config) {
	b.self = self
	b.scope = DefaultScope
	if cfg == nil {
		return
	}
	b.id = cfg.ID
	if cfg.Scope != "" {
		b.scope = cfg.Scope
	}
	b.host = cfg.Host
	for _, c := range cfg.Children {
		b.children = append(b.children, entry{decl: c})
	}
	b.attrs = cfg.Attributes.Clone()
	b.props = cfg.Properties.Clone()
	b.className = cfg.ClassName
	b.style = cfg.Style.Clone()
	b.listeners = cfg.Listeners.Clone()
	b.data = cfg.Data.Clone()
	b.content = cfg.Content
}

func (b *Base) isChild() {}

func (b *Base) base() *Base {
	return b
}

func (b *Base) ID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id
}

func (b *Base) SetID(id string) {
	b.report(errors.New("core.Node.SetID", errors.KindImmutable, b.key(), errors.ErrImmutable))
}

func (b *Base) Scope() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scope
}

func (b *Base) SetScope(scope string) {
	b.report(errors.New("core.Node.SetScope", errors.KindImmutable, b.key(), errors.ErrImmutable))
}

func (b *Base) Host() Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.host
}

func (b *Base) SetHost(host Element) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.host = host
}

func (b *Base) Element() Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.element
}

func (b *Base) Manager() *Manager {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.owner
}

func (b *Base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// ClassName returns the declared class names.
func (b *Base) ClassName() string {
	return b.className
}

// Attributes returns a copy of the declared attributes.
func (b *Base) Attributes() Map {
	return b.attrs.Clone()
}

func (b *Base) Children() []Child {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Child, len(b.children))
	for i, e := range b.children {
		out[i] = e.decl
	}
	return out
}

func (b *Base) Add(child Child) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.children = append(b.children, entry{decl: child})
}

// Insert follows slice-splice semantics: a negative index counts from the
// end and out-of-range indexes are clamped.
func (b *Base) Insert(index int, child Child) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.children)
	if index < 0 {
		index += n
		if index < 0 {
			index = 0
		}
	}
	if index > n {
		index = n
	}
	b.children = append(b.children, entry{})
	copy(b.children[index+1:], b.children[index:])
	b.children[index] = entry{decl: child}
}

// Remove drops child from the list and clears its manager back-reference.
// The child stays in the registry and keeps its backing element.
func (b *Base) Remove(child Child) bool {
	b.mu.Lock()
	idx := -1
	for i, e := range b.children {
		if e.decl == child || (e.rendered != nil && Child(e.rendered) == child) {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	removed := b.children[idx].node()
	b.children = append(b.children[:idx], b.children[idx+1:]...)
	b.mu.Unlock()

	if removed != nil {
		rb := removed.base()
		rb.mu.Lock()
		rb.owner = nil
		rb.mu.Unlock()
	}
	return true
}

// Clear walks the subtree parent first: each descendant is unregistered, its
// listeners are nulled and its backing element reference dropped before its
// own children are visited. The node's own registry entry is kept.
func (b *Base) Clear() {
	m := b.manager()
	b.mu.Lock()
	entries := b.children
	b.children = nil
	b.mu.Unlock()

	forgetEntries(m, entries)
	b.detach(m)
}

// Destroy clears the node, drops its host and removes its own registry entry.
func (b *Base) Destroy() {
	m := b.manager()
	if b.self != nil {
		b.self.Clear()
	} else {
		b.Clear()
	}

	b.mu.Lock()
	b.host = nil
	id, scope := b.id, b.scope
	b.state = Destroyed
	b.mu.Unlock()

	if id != "" && m != nil {
		m.objects.Remove(id, scope)
	}

	b.mu.Lock()
	b.owner = nil
	b.creator = nil
	b.mu.Unlock()
}

// prepare validates that the node can render and resolves its host.
func (b *Base) prepare(op string) (*Manager, Element, error) {
	m := b.manager()
	b.mu.Lock()
	state, host := b.state, b.host
	b.mu.Unlock()

	var err error
	switch {
	case state == Destroyed:
		err = errors.ErrDestroyed
	case state == Attached:
		err = errors.ErrAttached
	case m == nil:
		err = errors.ErrNoManager
	case host == nil:
		host = m.root
		if host == nil {
			err = errors.ErrNoHost
		}
	}
	if err != nil {
		d := errors.New(op, errors.KindRender, b.key(), err)
		b.report(d)
		return nil, nil, d
	}
	return m, host, nil
}

// mount attaches el under host, applies the payload in its fixed order and
// renders the children under el.
func (b *Base) mount(m *Manager, host, el Element, strategy Strategy) error {
	b.mu.Lock()
	b.host = host
	b.element = el
	b.state = Attached
	attrs, props, className := b.attrs, b.props, b.className
	style, listeners, data, content := b.style, b.listeners, b.data, b.content
	b.mu.Unlock()

	doc := m.doc
	doc.AppendChild(host, el)

	for _, p := range attrs {
		strategy.SetAttribute(doc, el, p.Key, stringify(p.Value))
	}
	for _, p := range props {
		doc.SetProperty(el, p.Key, p.Value)
	}
	if className != "" {
		doc.SetClassName(el, className)
	}
	for _, p := range style {
		doc.SetStyle(el, p.Key, stringify(p.Value))
	}
	for _, l := range listeners {
		doc.SetListener(el, slot(l.Event), l.Handler)
	}
	if data != nil {
		doc.SetData(el, data.ToMap())
	}

	var errs []error
	if content != "" {
		if err := doc.SetInnerHTML(el, content); err != nil {
			d := errors.New("core.Node.Render", errors.KindRender, b.key(), err)
			b.report(d)
			errs = append(errs, d)
		}
	}
	if err := b.renderChildren(m, el); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// renderChildren creates and renders every child in order under parent.
// A failing child does not stop its siblings.
func (b *Base) renderChildren(m *Manager, parent Element) error {
	b.mu.Lock()
	entries := make([]entry, len(b.children))
	copy(entries, b.children)
	b.mu.Unlock()

	var errs []error
	for i, e := range entries {
		child, err := m.Create(e.decl)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := e.decl.(Node); !ok {
			b.setRendered(i, e.decl, child)
		}
		child.SetHost(parent)
		if err := child.Render(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Base) setRendered(i int, decl Child, n Node) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < len(b.children) && b.children[i].decl == decl {
		b.children[i].rendered = n
	}
}

// renderedNodes returns the nodes currently standing for the children list.
func (b *Base) renderedNodes() []Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Node
	for _, e := range b.children {
		if n := e.node(); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// detach removes the node's own backing element from its host.
func (b *Base) detach(m *Manager) {
	b.mu.Lock()
	el, host, listeners := b.element, b.host, b.listeners
	b.element = nil
	if b.state == Attached {
		b.state = Cleared
	}
	b.mu.Unlock()

	if el == nil || m == nil {
		return
	}
	if host != nil {
		m.doc.RemoveChild(host, el)
	}
	for _, l := range listeners {
		m.doc.SetListener(el, slot(l.Event), nil)
	}
}

// forget unregisters a descendant, nulls its listeners and drops its backing
// element reference, then visits its children.
func (b *Base) forget(m *Manager) {
	b.mu.Lock()
	id, scope := b.id, b.scope
	b.mu.Unlock()
	if id != "" && m != nil {
		m.objects.Remove(id, scope)
	}

	b.mu.Lock()
	el, listeners := b.element, b.listeners
	b.element = nil
	if b.state == Attached {
		b.state = Cleared
	}
	entries := make([]entry, len(b.children))
	copy(entries, b.children)
	for i := range b.children {
		b.children[i].rendered = nil
	}
	b.mu.Unlock()

	if el != nil && m != nil {
		for _, l := range listeners {
			m.doc.SetListener(el, slot(l.Event), nil)
		}
	}
	forgetEntries(m, entries)
}

func forgetEntries(m *Manager, entries []entry) {
	for _, e := range entries {
		if n := e.node(); n != nil {
			n.base().forget(m)
			continue
		}
		if cfg, ok := e.decl.(*Config); ok && cfg != nil {
			forgetConfig(m, cfg)
		}
	}
}

// forgetConfig unregisters a config child that never produced a node, by its
// declared identity.
func forgetConfig(m *Manager, cfg *Config) {
	if cfg.ID != "" && m != nil {
		m.objects.Remove(cfg.ID, cfg.Scope)
	}
	for _, c := range cfg.Children {
		switch c := c.(type) {
		case Node:
			c.base().forget(m)
		case *Config:
			if c != nil {
				forgetConfig(m, c)
			}
		}
	}
}

// manager returns the registry owner, falling back to the manager that
// created the node.
func (b *Base) manager() *Manager {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.owner != nil {
		return b.owner
	}
	return b.creator
}

func (b *Base) key() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.id == "" {
		return ""
	}
	return Key(b.id, b.scope)
}

func (b *Base) report(d *errors.Diagnostic) {
	var h errors.Handler
	if m := b.manager(); m != nil {
		h = m.handler
	}
	errors.Report(h, d)
}
