package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a live element of a Document.
type Element struct {
	doc       *Document
	node      *html.Node
	props     map[string]any
	listeners map[string]func(any)
	style     [][2]string
	data      map[string]any
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Name returns the structural element name.
func (e *Element) Name() string {
	return e.node.Data
}

// Namespace returns the element's namespace URI.
func (e *Element) Namespace() string {
	if e.node.Namespace == "" {
		return HTMLNamespace
	}
	for uri, short := range elementNamespaces {
		if short == e.node.Namespace {
			return uri
		}
	}
	return e.node.Namespace
}

// Parent returns the parent element, or nil when detached or at the root.
func (e *Element) Parent() *Element {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children returns the element children in document order.
func (e *Element) Children() []*Element {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Attr returns the value of a non-namespaced attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.attr("", name)
}

// AttrNS returns the value of an attribute in the namespace URI ns.
func (e *Element) AttrNS(ns, local string) (string, bool) {
	short, ok := attrNamespaces[ns]
	if !ok {
		short = ns
	}
	return e.attr(short, local)
}

func (e *Element) attr(ns, key string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, a := range e.node.Attr {
		if a.Namespace == ns && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ClassName returns the class attribute.
func (e *Element) ClassName() string {
	v, _ := e.Attr("class")
	return v
}

// Property returns a value assigned with SetProperty.
func (e *Element) Property(key string) (any, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	v, ok := e.props[key]
	return v, ok
}

// Listener returns the handler in slot, or nil.
func (e *Element) Listener(slot string) func(any) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.listeners[slot]
}

// Style returns one style property.
func (e *Element) Style(property string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, kv := range e.style {
		if kv[0] == property {
			return kv[1], true
		}
	}
	return "", false
}

// Data returns a copy of the element's custom data, or nil if none was set.
func (e *Element) Data() map[string]any {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.data == nil {
		return nil
	}
	out := make(map[string]any, len(e.data))
	for k, v := range e.data {
		out[k] = v
	}
	return out
}

// Text returns the concatenated text of the element's subtree.
func (e *Element) Text() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}
