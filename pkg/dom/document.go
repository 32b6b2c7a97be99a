// Package dom is an in-memory host document for the xtype engine.
//
// Elements are golang.org/x/net/html nodes, so a rendered tree can be
// serialized with html.Render or inspected node by node. Properties,
// listeners, style and custom data that have no markup representation are
// kept alongside each node.
package dom

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Namespace URIs understood by the document.
const (
	HTMLNamespace   = "http://www.w3.org/1999/xhtml"
	SVGNamespace    = "http://www.w3.org/2000/svg"
	MathMLNamespace = "http://www.w3.org/1998/Math/MathML"
	XLinkNamespace  = "http://www.w3.org/1999/xlink"
	XMLNamespace    = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace  = "http://www.w3.org/2000/xmlns/"
)

// element namespaces as spelled by the html package.
var elementNamespaces = map[string]string{
	HTMLNamespace:   "",
	SVGNamespace:    "svg",
	MathMLNamespace: "math",
}

// attribute namespaces as spelled by the html package.
var attrNamespaces = map[string]string{
	XLinkNamespace: "xlink",
	XMLNamespace:   "xml",
	XMLNSNamespace: "xmlns",
}

// Document owns a tree of elements rooted at a body element.
// It is safe for concurrent use.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	body     *Element
	elements map[*html.Node]*Element
}

// NewDocument returns an empty document with a <body> element.
func NewDocument() *Document {
	d := &Document{
		root:     &html.Node{Type: html.DocumentNode},
		elements: make(map[*html.Node]*Element),
	}
	body := newNode("", "body")
	d.root.AppendChild(body)
	d.body = d.wrap(body)
	return d
}

func newNode(ns, name string) *html.Node {
	return &html.Node{
		Type:      html.ElementNode,
		Data:      name,
		DataAtom:  atom.Lookup([]byte(name)),
		Namespace: ns,
	}
}

// Body returns the document's body element.
func (d *Document) Body() *Element {
	return d.body
}

// CreateElement creates a detached element in the HTML namespace.
func (d *Document) CreateElement(name string) any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(newNode("", name))
}

// CreateElementNS creates a detached element in the namespace URI ns.
// Unknown namespaces are kept verbatim.
func (d *Document) CreateElementNS(ns, name string) any {
	short, ok := elementNamespaces[ns]
	if !ok {
		short = ns
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(newNode(short, name))
}

// AppendChild attaches child as the last child of parent, detaching it from
// its previous parent first.
func (d *Document) AppendChild(parent, child any) {
	p, c := d.element(parent), d.element(child)
	if p == nil || c == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	p.node.AppendChild(c.node)
}

// RemoveChild detaches child from parent. It is a no-op when child is not a
// child of parent.
func (d *Document) RemoveChild(parent, child any) {
	p, c := d.element(parent), d.element(child)
	if p == nil || c == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if c.node.Parent == p.node {
		p.node.RemoveChild(c.node)
	}
}

// SetAttribute sets an attribute without a namespace.
func (d *Document) SetAttribute(el any, name, value string) {
	if e := d.element(el); e != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		setAttr(e.node, "", name, value)
	}
}

// SetAttributeNS sets an attribute in the namespace URI ns. A qualified name
// such as "xlink:href" is stored with its local part.
func (d *Document) SetAttributeNS(el any, ns, name, value string) {
	e := d.element(el)
	if e == nil {
		return
	}
	prefix, local, found := strings.Cut(name, ":")
	if !found {
		prefix, local = "", name
	}
	short, ok := attrNamespaces[ns]
	if !ok {
		short = prefix
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	setAttr(e.node, short, local, value)
}

// SetProperty assigns a value onto the element. The "textContent" property
// also replaces the element's children with a text node.
func (d *Document) SetProperty(el any, key string, value any) {
	e := d.element(el)
	if e == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	e.props[key] = value
	if key == "textContent" {
		text, _ := value.(string)
		d.removeChildren(e.node)
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// SetClassName replaces the class attribute.
func (d *Document) SetClassName(el any, className string) {
	d.SetAttribute(el, "class", className)
}

// SetStyle assigns one style property and rewrites the style attribute.
func (d *Document) SetStyle(el any, property, value string) {
	e := d.element(el)
	if e == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	replaced := false
	for i := range e.style {
		if e.style[i][0] == property {
			e.style[i][1] = value
			replaced = true
		}
	}
	if !replaced {
		e.style = append(e.style, [2]string{property, value})
	}
	var sb strings.Builder
	for i, kv := range e.style {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(kv[0])
		sb.WriteString(": ")
		sb.WriteString(kv[1])
		sb.WriteString(";")
	}
	setAttr(e.node, "", "style", sb.String())
}

// SetListener assigns fn to a handler slot such as "onclick". A nil fn
// clears the slot.
func (d *Document) SetListener(el any, slot string, fn func(event any)) {
	e := d.element(el)
	if e == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if fn == nil {
		delete(e.listeners, slot)
		return
	}
	e.listeners[slot] = fn
}

// SetData replaces the element's custom data with a copy of data.
func (d *Document) SetData(el any, data map[string]any) {
	e := d.element(el)
	if e == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	e.data = make(map[string]any, len(data))
	for k, v := range data {
		e.data[k] = v
	}
}

// SetInnerHTML parses markup in the element's context and replaces its
// children with the result.
func (d *Document) SetInnerHTML(el any, markup string) error {
	e := d.element(el)
	if e == nil {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeChildren(e.node)
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// Dispatch invokes the handler bound to "on"+event, if any.
func (d *Document) Dispatch(el any, event string, payload any) bool {
	e := d.element(el)
	if e == nil {
		return false
	}
	d.mu.Lock()
	fn := e.listeners["on"+event]
	d.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(payload)
	return true
}

// Render writes el and its subtree as markup.
func (d *Document) Render(w io.Writer, el any) error {
	e := d.element(el)
	if e == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, e.node)
}

// Markup returns the markup of el's children, like innerHTML.
func (d *Document) Markup(el any) (string, error) {
	e := d.element(el)
	if e == nil {
		return "", nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (d *Document) element(el any) *Element {
	e, _ := el.(*Element)
	return e
}

// wrap returns the Element for n, creating it on first use.
// The caller holds d.mu.
func (d *Document) wrap(n *html.Node) *Element {
	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{
		doc:       d,
		node:      n,
		props:     make(map[string]any),
		listeners: make(map[string]func(any)),
	}
	d.elements[n] = e
	return e
}

// removeChildren detaches every child of n. The caller holds d.mu.
func (d *Document) removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func setAttr(n *html.Node, ns, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == ns && n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Namespace: ns, Key: key, Val: value})
}
