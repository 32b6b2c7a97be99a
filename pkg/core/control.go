package core

// Factory builds a node from a config. Factories are registered per type tag.
type Factory func(cfg *Config) Node

// Control is a node backed by an element with a fixed structural name.
type Control struct {
	Base
	name     string
	strategy Strategy
}

// NewControl returns a control that renders a name element through strategy.
// A nil strategy means Plain.
func NewControl(name string, strategy Strategy, cfg *Config) *Control {
	if strategy == nil {
		strategy = Plain{}
	}
	c := &Control{name: name, strategy: strategy}
	c.Init(c, cfg)
	return c
}

// Name returns the structural element name.
func (c *Control) Name() string {
	return c.name
}

// Strategy returns the element creation strategy.
func (c *Control) Strategy() Strategy {
	return c.strategy
}

func (c *Control) Render() error {
	m, host, err := c.prepare("core.Control.Render")
	if err != nil {
		return err
	}
	el := c.strategy.CreateElement(m.doc, c.name)
	return c.mount(m, host, el, c.strategy)
}

// ControlFactory returns a Factory producing controls named name.
func ControlFactory(name string, strategy Strategy) Factory {
	return func(cfg *Config) Node {
		return NewControl(name, strategy, cfg)
	}
}

// Fragment is a node without a backing element: its children render
// directly under the fragment's host.
type Fragment struct {
	Base
}

// NewFragment returns a fragment built from cfg.
func NewFragment(cfg *Config) *Fragment {
	f := &Fragment{}
	f.Init(f, cfg)
	return f
}

func (f *Fragment) Render() error {
	m, host, err := f.prepare("core.Fragment.Render")
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.host = host
	f.state = Attached
	f.mu.Unlock()
	return f.renderChildren(m, host)
}

// Clear detaches the elements the fragment's children placed under its host,
// then clears like any other node.
func (f *Fragment) Clear() {
	if m := f.manager(); m != nil {
		for _, n := range f.renderedNodes() {
			detachTree(m.doc, n)
		}
	}
	f.Base.Clear()
}

// FragmentFactory is the Factory for fragments.
func FragmentFactory(cfg *Config) Node {
	return NewFragment(cfg)
}

// detachTree removes the top-most backing elements of n's subtree from
// their hosts.
func detachTree(doc Document, n Node) {
	if el := n.Element(); el != nil {
		if host := n.Host(); host != nil {
			doc.RemoveChild(host, el)
		}
		return
	}
	for _, c := range n.base().renderedNodes() {
		detachTree(doc, c)
	}
}
