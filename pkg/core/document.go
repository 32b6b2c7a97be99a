package core

// Element is an opaque handle to a live element owned by a Document.
type Element = any

// Listener handles an event dispatched to an element slot.
type Listener = func(event any)

// Document is the host environment the engine renders into.
//
// The engine never manipulates elements itself; every structural change and
// payload assignment goes through these calls. pkg/dom provides an in-memory
// implementation.
type Document interface {
	// CreateElement creates an element in the default markup namespace.
	CreateElement(name string) Element
	// CreateElementNS creates an element in the given namespace URI.
	CreateElementNS(namespace, name string) Element
	// AppendChild attaches child as the last child of parent.
	AppendChild(parent, child Element)
	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Element)
	// SetAttribute sets an attribute in the default namespace.
	SetAttribute(el Element, name, value string)
	// SetAttributeNS sets an attribute in the given namespace URI.
	SetAttributeNS(el Element, namespace, name, value string)
	// SetProperty assigns a value directly onto the element.
	SetProperty(el Element, key string, value any)
	// SetClassName replaces the element's class names.
	SetClassName(el Element, className string)
	// SetStyle assigns one style property.
	SetStyle(el Element, property, value string)
	// SetListener assigns fn to the named handler slot. A nil fn clears it.
	SetListener(el Element, slot string, fn Listener)
	// SetData replaces the element's custom data.
	SetData(el Element, data map[string]any)
	// SetInnerHTML replaces the element's content with parsed markup.
	SetInnerHTML(el Element, markup string) error
}
