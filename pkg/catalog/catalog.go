// Package catalog seeds managers with the standard type tags.
//
// Each entry maps a type tag to the structural element name the tag renders
// and the strategy used to create it. Tags are lower-case; names keep the
// spelling the markup language expects.
package catalog

import (
	"slices"

	"github.com/go-drift/xtype/pkg/core"
)

// Kind is one type tag mapping.
type Kind struct {
	Tag      string
	Name     string
	Strategy core.Strategy
}

// Factory returns the core.Factory for k.
func (k Kind) Factory() core.Factory {
	return core.ControlFactory(k.Name, k.Strategy)
}

// Catalog is an ordered set of kinds.
type Catalog []Kind

// Register adds every kind of c to m and returns the tags that were already
// taken. Existing registrations are kept.
func (c Catalog) Register(m *core.Manager) []string {
	var skipped []string
	for _, k := range c {
		if !m.Register(k.Tag, k.Factory()) {
			skipped = append(skipped, k.Tag)
		}
	}
	return skipped
}

// Lookup returns the kind registered under tag.
func (c Catalog) Lookup(tag string) (Kind, bool) {
	i := slices.IndexFunc(c, func(k Kind) bool { return k.Tag == tag })
	if i < 0 {
		return Kind{}, false
	}
	return c[i], true
}

// Tags returns the tags of c in order.
func (c Catalog) Tags() []string {
	tags := make([]string, len(c))
	for i, k := range c {
		tags[i] = k.Tag
	}
	return tags
}

// Named returns the catalog called name ("svg" or "html").
func Named(name string) (Catalog, bool) {
	switch name {
	case "svg":
		return SVG, true
	case "html":
		return HTML, true
	default:
		return nil, false
	}
}

// Names returns the names accepted by Named.
func Names() []string {
	return []string{"svg", "html"}
}

// NewManager returns a manager seeded with c.
func NewManager(doc core.Document, c Catalog, opts ...core.Option) *core.Manager {
	m := core.NewManager(doc, opts...)
	c.Register(m)
	return m
}

// NewSVGManager returns a manager seeded with the SVG catalogue.
func NewSVGManager(doc core.Document, opts ...core.Option) *core.Manager {
	return NewManager(doc, SVG, opts...)
}

func svg(tag, name string) Kind {
	return Kind{Tag: tag, Name: name, Strategy: core.SVG}
}

func plain(name string) Kind {
	return Kind{Tag: name, Name: name, Strategy: core.Plain{}}
}
