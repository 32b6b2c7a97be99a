package core

import (
	"fmt"
	"testing"

	"github.com/go-drift/xtype/pkg/dom"
	"github.com/go-drift/xtype/pkg/errors"
)

// recordingDocument is a Document that records every call it receives.
type recordingDocument struct {
	calls []string
	next  int
}

type recordedElement struct {
	id   int
	name string
}

func (d *recordingDocument) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *recordingDocument) CreateElement(name string) Element {
	d.next++
	d.record("CreateElement(%s)", name)
	return &recordedElement{id: d.next, name: name}
}

func (d *recordingDocument) CreateElementNS(ns, name string) Element {
	d.next++
	d.record("CreateElementNS(%s,%s)", ns, name)
	return &recordedElement{id: d.next, name: name}
}

func (d *recordingDocument) AppendChild(parent, child Element) {
	d.record("AppendChild(%v,%v)", label(parent), label(child))
}

func (d *recordingDocument) RemoveChild(parent, child Element) {
	d.record("RemoveChild(%v,%v)", label(parent), label(child))
}

func (d *recordingDocument) SetAttribute(el Element, name, value string) {
	d.record("SetAttribute(%s=%s)", name, value)
}

func (d *recordingDocument) SetAttributeNS(el Element, ns, name, value string) {
	d.record("SetAttributeNS(%s,%s=%s)", ns, name, value)
}

func (d *recordingDocument) SetProperty(el Element, key string, value any) {
	d.record("SetProperty(%s=%v)", key, value)
}

func (d *recordingDocument) SetClassName(el Element, className string) {
	d.record("SetClassName(%s)", className)
}

func (d *recordingDocument) SetStyle(el Element, property, value string) {
	d.record("SetStyle(%s=%s)", property, value)
}

func (d *recordingDocument) SetListener(el Element, slot string, fn Listener) {
	d.record("SetListener(%s,%v)", slot, fn != nil)
}

func (d *recordingDocument) SetData(el Element, data map[string]any) {
	d.record("SetData(%d)", len(data))
}

func (d *recordingDocument) SetInnerHTML(el Element, markup string) error {
	d.record("SetInnerHTML(%s)", markup)
	return nil
}

func label(el Element) string {
	switch e := el.(type) {
	case *recordedElement:
		return fmt.Sprintf("%s#%d", e.name, e.id)
	case string:
		return e
	default:
		return fmt.Sprint(el)
	}
}

// newTestManager returns a manager over a fresh dom.Document with "g", "rect",
// "div" and "frag" registered, and a collector for its diagnostics.
func newTestManager(t *testing.T, opts ...Option) (*Manager, *dom.Document, *errors.Collector) {
	t.Helper()
	doc := dom.NewDocument()
	c := &errors.Collector{}
	opts = append([]Option{WithHandler(c), WithRoot(doc.Body())}, opts...)
	m := NewManager(doc, opts...)
	m.Register("g", ControlFactory("g", SVG))
	m.Register("rect", ControlFactory("rect", SVG))
	m.Register("div", ControlFactory("div", Plain{}))
	m.Register("frag", FragmentFactory)
	return m, doc, c
}

func mustCreate(t *testing.T, m *Manager, c Child) Node {
	t.Helper()
	n, err := m.Create(c)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return n
}

func mustRender(t *testing.T, n Node) {
	t.Helper()
	if err := n.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func childNames(el Element) []string {
	e, ok := el.(*dom.Element)
	if !ok {
		return nil
	}
	var out []string
	for _, c := range e.Children() {
		out = append(out, c.Name())
	}
	return out
}

func attr(el Element, name string) string {
	e, ok := el.(*dom.Element)
	if !ok {
		return ""
	}
	v, _ := e.Attr(name)
	return v
}
