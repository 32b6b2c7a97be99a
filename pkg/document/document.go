package document

import (
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/xtype/pkg/core"
	"github.com/go-drift/xtype/pkg/errors"
)

// CurrentVersion is the format version written by this package.
const CurrentVersion = "v1.0.0"

// Document is a declarative tree read from a file.
type Document struct {
	// Version is the format version. Empty means CurrentVersion.
	Version string `yaml:"version,omitempty"`
	// Scope is applied to every config that does not name its own.
	Scope string `yaml:"scope,omitempty"`
	// Root is the top-level config.
	Root *core.Config `yaml:"root"`
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*Document, error) {
	return parse(data, "")
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data, path)
}

func parse(data []byte, path string) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.New("document.Parse", errors.KindInvalidConfig, path, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err))
	}
	if err := checkVersion(d.Version); err != nil {
		return nil, errors.New("document.Parse", errors.KindInvalidConfig, path, err)
	}
	if d.Root == nil {
		return nil, errors.New("document.Parse", errors.KindInvalidConfig, path, fmt.Errorf("%w: root is undefined", errors.ErrInvalidConfig))
	}
	if d.Version == "" {
		d.Version = CurrentVersion
	}
	d.ApplyScope(d.Scope)
	return &d, nil
}

// checkVersion accepts an empty version or any valid v1 semantic version.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: version %q is not a semantic version", errors.ErrInvalidConfig, v)
	}
	if major := semver.Major(v); major != semver.Major(CurrentVersion) {
		return fmt.Errorf("%w: unsupported major version %s", errors.ErrInvalidConfig, major)
	}
	return nil
}

// ApplyScope assigns scope to every config in the tree that does not name
// one. An empty scope is a no-op.
func (d *Document) ApplyScope(scope string) {
	if scope != "" {
		applyScope(d.Root, scope)
	}
}

func applyScope(cfg *core.Config, scope string) {
	if cfg == nil {
		return
	}
	if cfg.Scope == "" {
		cfg.Scope = scope
	}
	for _, c := range cfg.Children {
		if child, ok := c.(*core.Config); ok {
			applyScope(child, scope)
		}
	}
}

// Render creates the root node through m and renders it under host.
// A nil host falls back to the manager's root element.
func (d *Document) Render(m *core.Manager, host core.Element) (core.Node, error) {
	if d.Root == nil {
		return nil, errors.New("document.Render", errors.KindInvalidConfig, "", fmt.Errorf("%w: root is undefined", errors.ErrInvalidConfig))
	}
	return m.Render(d.Root, host)
}

// Walk calls fn for every config in the tree in document order. path is the
// JSON pointer of the config, e.g. "/root/children/0".
func (d *Document) Walk(fn func(path string, cfg *core.Config)) {
	walk("/root", d.Root, fn)
}

func walk(path string, cfg *core.Config, fn func(string, *core.Config)) {
	if cfg == nil {
		return
	}
	fn(path, cfg)
	for i, c := range cfg.Children {
		if child, ok := c.(*core.Config); ok {
			walk(fmt.Sprintf("%s/children/%d", path, i), child, fn)
		}
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	return data, nil
}
