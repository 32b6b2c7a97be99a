// Package core renders declarative node descriptions into live element trees
// and tracks the nodes it creates.
//
// # Core Types
//
// Config is plain data describing a node: a type tag, an optional identity
// and scope, children, and optional payloads (attributes, properties, class
// names, style, listeners, custom data, raw content).
//
// Node is the live instance. Every node embeds Base, which owns the children
// list and the payload. Control is backed by one element created through a
// Strategy; Fragment has no element of its own and renders its children under
// its host.
//
// Manager is the composition root. It owns a TypeRegistry (type tag to
// Factory, first registration wins) and an IdentityRegistry ("scope:id" to
// node, last registration wins).
//
// # Rendering
//
//	m := core.NewManager(doc, core.WithRoot(doc.Body()))
//	m.Register("g", core.ControlFactory("g", core.SVG))
//	m.Register("rect", core.ControlFactory("rect", core.SVG))
//
//	n, err := m.Render(&core.Config{
//	    Type: "g",
//	    ID:   "g1",
//	    Children: []core.Child{
//	        &core.Config{Type: "rect", ID: "r1", Attributes: core.Map{{Key: "width", Value: "10"}}},
//	    },
//	}, nil)
//
// Render applies the payload in a fixed order: attributes, properties, class
// names, style, listeners, custom data, content; then each child is created
// through the manager and rendered under the new element.
//
// # Lifecycle
//
// Unattached → Attached (Render) → Cleared (Clear) → Attached (Render) ...
// Destroy is terminal. Clear unregisters every descendant but keeps the
// node's own registry entry; Destroy removes that as well.
//
// # Diagnostics
//
// Misuse never panics. Duplicate tags, unknown tags and identities, invalid
// configs and attempts to reassign an id or scope are reported to the
// manager's errors.Handler and the operation continues.
package core
