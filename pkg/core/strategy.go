package core

import "strings"

// Namespace URIs used by the SVG strategy.
const (
	SVGNamespace   = "http://www.w3.org/2000/svg"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
)

// Strategy turns a structural name into a live element and attaches
// attributes to it. Everything else a node applies is shared by all
// strategies.
type Strategy interface {
	CreateElement(doc Document, name string) Element
	SetAttribute(doc Document, el Element, name, value string)
}

// Plain creates elements in the default markup namespace.
type Plain struct{}

func (Plain) CreateElement(doc Document, name string) Element {
	return doc.CreateElement(name)
}

func (Plain) SetAttribute(doc Document, el Element, name, value string) {
	doc.SetAttribute(el, name, value)
}

// Namespaced creates elements in Namespace. Attributes whose name starts with
// AttrPrefix are set in AttrNamespace; all others use the default namespace.
type Namespaced struct {
	Namespace     string
	AttrPrefix    string
	AttrNamespace string
}

// SVG is the strategy for SVG elements: xlink:* attributes are routed
// through the XLink namespace.
var SVG = Namespaced{
	Namespace:     SVGNamespace,
	AttrPrefix:    "xlink:",
	AttrNamespace: XLinkNamespace,
}

func (s Namespaced) CreateElement(doc Document, name string) Element {
	return doc.CreateElementNS(s.Namespace, name)
}

func (s Namespaced) SetAttribute(doc Document, el Element, name, value string) {
	if s.AttrPrefix != "" && strings.HasPrefix(name, s.AttrPrefix) {
		doc.SetAttributeNS(el, s.AttrNamespace, name, value)
		return
	}
	doc.SetAttribute(el, name, value)
}
