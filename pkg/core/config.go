package core

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultScope is the scope assigned to nodes and lookups that do not name one.
const DefaultScope = "global"

// Child is an entry of a node's children list: either a *Config that is
// turned into a node at render time, or an already constructed Node.
type Child interface {
	isChild()
}

// Config is the declarative description of a node.
//
// Config is plain data: the engine reads it once when a node is created and
// copies the payload into the node. The YAML keys mirror the document format
// accepted by pkg/document.
type Config struct {
	// Type is the type tag resolved through the TypeRegistry.
	Type string `yaml:"xtype"`
	// ID is the identity the node is registered under. Empty means generated.
	ID string `yaml:"id,omitempty"`
	// Scope partitions identities. Empty means DefaultScope.
	Scope string `yaml:"scope,omitempty"`
	// Children are rendered in order under the node's backing element.
	Children []Child `yaml:"-"`
	// Content is raw markup assigned as the element's inner HTML.
	Content string `yaml:"html,omitempty"`
	// Attributes are applied with SetAttribute (or SetAttributeNS).
	Attributes Map `yaml:"attr,omitempty"`
	// Properties are assigned directly onto the element.
	Properties Map `yaml:"prop,omitempty"`
	// ClassName is assigned to the element's class.
	ClassName string `yaml:"cls,omitempty"`
	// Style entries are assigned to the element's style.
	Style Map `yaml:"style,omitempty"`
	// Listeners are bound to the element's "on"+event slots.
	Listeners Listeners `yaml:"-"`
	// Data is copied onto the element as custom data.
	Data Map `yaml:"data,omitempty"`
	// Host is the element the node is attached under when rendered.
	Host Element `yaml:"-"`
}

func (*Config) isChild() {}

// UnmarshalYAML decodes a config and its nested children.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	var aux struct {
		Children []*Config `yaml:"children"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	*c = Config(p)
	for _, child := range aux.Children {
		c.Children = append(c.Children, child)
	}
	return nil
}

// Pair is one entry of a Map.
type Pair struct {
	Key   string
	Value any
}

// Map is an ordered string-keyed mapping. Payloads are applied in Map order.
type Map []Pair

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key, or appends a new entry.
func (m *Map) Set(key string, value any) {
	for i := range *m {
		if (*m)[i].Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Pair{Key: key, Value: value})
}

// Keys returns the keys in order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, p := range m {
		keys[i] = p.Key
	}
	return keys
}

// Clone returns a shallow copy of m. A nil Map stays nil.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	copy(out, m)
	return out
}

// ToMap converts m to a plain map. Later duplicates win.
func (m Map) ToMap() map[string]any {
	out := make(map[string]any, len(m))
	for _, p := range m {
		out[p.Key] = p.Value
	}
	return out
}

// UnmarshalYAML decodes a mapping node preserving key order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, node.ShortTag())
	}
	out := make(Map, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v any
		if err := node.Content[i+1].Decode(&v); err != nil {
			return err
		}
		out = append(out, Pair{Key: node.Content[i].Value, Value: v})
	}
	*m = out
	return nil
}

// MarshalYAML encodes m as a mapping in key order.
func (m Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range m {
		var v yaml.Node
		if err := v.Encode(p.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: p.Key}, &v)
	}
	return node, nil
}

// EventListener binds a handler to a named event.
type EventListener struct {
	Event   string
	Handler Listener
}

// Listeners is an ordered list of event bindings.
type Listeners []EventListener

// Events returns the bound event names in order.
func (l Listeners) Events() []string {
	events := make([]string, len(l))
	for i, b := range l {
		events[i] = b.Event
	}
	return events
}

// Clone returns a copy of l. A nil list stays nil.
func (l Listeners) Clone() Listeners {
	if l == nil {
		return nil
	}
	out := make(Listeners, len(l))
	copy(out, l)
	return out
}

// slot is the element slot an event handler is assigned to.
func slot(event string) string {
	return "on" + event
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
