// Package document loads declarative node trees from YAML or JSON files.
//
// A document names an optional format version, an optional default scope and
// one root config:
//
//	version: v1.0.0
//	scope: editor
//	root:
//	  xtype: svg
//	  attr: {width: "100", height: "100"}
//	  children:
//	    - {xtype: rect, id: r1, attr: {width: "10", fill: red}}
//
// Parse and Load decode a document into core.Config values. Validate checks
// raw bytes against the embedded JSON schema, and Lint reports problems the
// schema cannot express, such as unknown colour keywords or identities
// declared twice in one scope.
package document
