package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/xtype/pkg/errors"
)

func TestManager_RenderTreeAndClear(t *testing.T) {
	m, doc, c := newTestManager(t)

	g1, err := m.Render(&Config{
		Type: "g",
		ID:   "g1",
		Children: []Child{
			&Config{Type: "rect", ID: "r1", Attributes: Map{{Key: "width", Value: "10"}}},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	markup, err := doc.Markup(doc.Body())
	if err != nil {
		t.Fatalf("Markup: %v", err)
	}
	if want := `<g><rect width="10"></rect></g>`; markup != want {
		t.Errorf("markup = %q, want %q", markup, want)
	}
	if diff := cmp.Diff([]string{"global:g1", "global:r1"}, m.Objects().Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	r1, _ := m.Get("r1", "")
	if got := attr(r1.Element(), "width"); got != "10" {
		t.Errorf("r1 width = %q, want %q", got, "10")
	}

	g1.Clear()
	if _, ok := m.Get("r1", ""); ok {
		t.Error("r1 still registered after Clear")
	}
	if r1.Element() != nil {
		t.Error("r1 still has a backing element after Clear")
	}
	if n := len(c.Diagnostics()); n != 0 {
		t.Errorf("reported %d diagnostics, want 0: %v", n, c.Diagnostics())
	}
}

func TestManager_CreateRejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name  string
		child Child
		kind  errors.Kind
		want  error
	}{
		{"nil interface", nil, errors.KindInvalidConfig, errors.ErrInvalidConfig},
		{"nil config", (*Config)(nil), errors.KindInvalidConfig, errors.ErrInvalidConfig},
		{"missing type", &Config{ID: "x"}, errors.KindInvalidConfig, errors.ErrInvalidConfig},
		{"unknown type", &Config{Type: "circle"}, errors.KindNotFound, errors.ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, c := newTestManager(t)
			n, err := m.Create(tt.child)
			if n != nil {
				t.Errorf("Create returned node %T, want nil", n)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Create error = %v, want %v", err, tt.want)
			}
			if got := c.Count(tt.kind); got != 1 {
				t.Errorf("Count(%v) = %d, want 1", tt.kind, got)
			}
			if n := m.Objects().Len(); n != 0 {
				t.Errorf("Objects().Len() = %d, want 0", n)
			}
		})
	}
}

func TestManager_GeneratedIDs(t *testing.T) {
	m, _, _ := newTestManager(t)
	cfg := &Config{Type: "rect"}

	a := mustCreate(t, m, cfg)
	b := mustCreate(t, m, cfg)
	g := mustCreate(t, m, &Config{Type: "g"})

	if a.ID() != "Rect-1" {
		t.Errorf("first ID = %q, want %q", a.ID(), "Rect-1")
	}
	if b.ID() != "Rect-2" {
		t.Errorf("second ID = %q, want %q", b.ID(), "Rect-2")
	}
	if g.ID() != "G-3" {
		t.Errorf("third ID = %q, want %q", g.ID(), "G-3")
	}
	if cfg.ID != "" {
		t.Errorf("Create wrote ID %q back into the caller's config", cfg.ID)
	}
}

func TestManager_CreateNodePassesThrough(t *testing.T) {
	m, _, _ := newTestManager(t)
	n := NewControl("rect", SVG, &Config{ID: "x", Scope: "editor"})

	got, err := m.Create(n)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got != Node(n) {
		t.Errorf("Create returned %p, want the same node %p", got, n)
	}
	if reg, ok := m.Get("x", "editor"); !ok || reg != Node(n) {
		t.Error("node not registered under editor:x")
	}
	if n.Manager() != m {
		t.Error("Manager() should be the creating manager")
	}
}

func TestManager_StrictRefusesTakenIdentity(t *testing.T) {
	m, _, c := newTestManager(t, WithStrict())

	first := mustCreate(t, m, &Config{Type: "rect", ID: "x"})
	n, err := m.Create(&Config{Type: "rect", ID: "x"})
	if !errors.Is(err, errors.ErrDuplicate) {
		t.Errorf("Create error = %v, want ErrDuplicate", err)
	}
	if n != nil {
		t.Error("strict Create returned a node")
	}
	if got, _ := m.Get("x", ""); got != first {
		t.Error("strict mode replaced the registered node")
	}
	if got := c.Count(errors.KindDuplicate); got != 1 {
		t.Errorf("Count(KindDuplicate) = %d, want 1", got)
	}

	if _, err := m.Create(first); err != nil {
		t.Errorf("re-creating the registered node = %v, want nil", err)
	}
}

func TestManager_FactoryFailures(t *testing.T) {
	m, _, c := newTestManager(t)
	m.Register("boom", func(*Config) Node { panic("kaboom") })
	m.Register("empty", func(*Config) Node { return nil })

	_, err := m.Create(&Config{Type: "boom"})
	var pe *errors.PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Create(boom) error = %v, want *PanicError", err)
	}
	if pe.Value != "kaboom" {
		t.Errorf("PanicError.Value = %v, want kaboom", pe.Value)
	}
	if got := c.Count(errors.KindPanic); got != 1 {
		t.Errorf("Count(KindPanic) = %d, want 1", got)
	}

	if _, err := m.Create(&Config{Type: "empty"}); !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("Create(empty) error = %v, want ErrInvalidConfig", err)
	}
}

func TestManager_RenderUnderExplicitHost(t *testing.T) {
	m, doc, _ := newTestManager(t)
	host := doc.CreateElement("div")
	doc.AppendChild(doc.Body(), host)

	n, err := m.Render(&Config{Type: "rect", ID: "r1"}, host)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n.Host() != host {
		t.Error("Host() is not the explicit host")
	}
	if diff := cmp.Diff([]string{"rect"}, childNames(host)); diff != "" {
		t.Errorf("host children mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_Destroy(t *testing.T) {
	m, _, c := newTestManager(t)
	if _, err := m.Render(&Config{Type: "g", ID: "g1", Scope: "editor"}, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !m.Destroy("g1", "editor") {
		t.Error("Destroy(g1, editor) = false, want true")
	}
	if m.Destroy("g1", "editor") {
		t.Error("second Destroy = true, want false")
	}
	if got := c.Count(errors.KindNotFound); got != 1 {
		t.Errorf("Count(KindNotFound) = %d, want 1", got)
	}
}
