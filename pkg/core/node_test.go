package core

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/go-drift/xtype/pkg/dom"
	"github.com/go-drift/xtype/pkg/errors"
)

func TestNode_IdentityIsImmutable(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		id := rapid.StringMatching(`[a-z][a-z0-9]{0,8}`).Draw(rt, "id")
		scope := rapid.SampledFrom([]string{"", "global", "editor"}).Draw(rt, "scope")
		newID := rapid.String().Draw(rt, "newID")
		newScope := rapid.String().Draw(rt, "newScope")

		c := &errors.Collector{}
		m := NewManager(dom.NewDocument(), WithHandler(c))
		n := NewControl("rect", SVG, &Config{ID: id, Scope: scope})
		if _, err := m.Create(n); err != nil {
			rt.Fatalf("Create: %v", err)
		}

		n.SetID(newID)
		n.SetScope(newScope)

		wantScope := scope
		if wantScope == "" {
			wantScope = DefaultScope
		}
		if n.ID() != id {
			rt.Fatalf("ID() = %q after SetID, want %q", n.ID(), id)
		}
		if n.Scope() != wantScope {
			rt.Fatalf("Scope() = %q after SetScope, want %q", n.Scope(), wantScope)
		}
		if got := c.Count(errors.KindImmutable); got != 2 {
			rt.Fatalf("Count(KindImmutable) = %d, want 2", got)
		}
		if got, ok := m.Get(id, scope); !ok || got != n {
			rt.Fatalf("registry entry moved after rejected writes")
		}
	})
}

func TestNode_RenderKeepsChildrenOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(0, 8).Draw(rt, "count")

		doc := dom.NewDocument()
		m := NewManager(doc, WithHandler(&errors.Collector{}), WithRoot(doc.Body()))
		m.Register("g", ControlFactory("g", SVG))
		m.Register("rect", ControlFactory("rect", SVG))

		root := &Config{Type: "g"}
		var want []string
		for i := 0; i < count; i++ {
			idx := strconv.Itoa(i)
			root.Children = append(root.Children, &Config{
				Type:       "rect",
				Attributes: Map{{Key: "data-index", Value: idx}},
			})
			want = append(want, idx)
		}

		n, err := m.Render(root, nil)
		if err != nil {
			rt.Fatalf("Render: %v", err)
		}
		var got []string
		for _, c := range n.Element().(*dom.Element).Children() {
			v, _ := c.Attr("data-index")
			got = append(got, v)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			rt.Fatalf("children order mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestNode_RenderAppliesPayloadInOrder(t *testing.T) {
	doc := &recordingDocument{}
	m := NewManager(doc, WithHandler(&errors.Collector{}), WithRoot("root"))
	m.Register("g", ControlFactory("g", SVG))
	m.Register("rect", ControlFactory("rect", SVG))

	_, err := m.Render(&Config{
		Type: "g",
		ID:   "g1",
		Attributes: Map{
			{Key: "width", Value: 10},
			{Key: "xlink:href", Value: "#a"},
		},
		Properties: Map{{Key: "tabIndex", Value: 1}},
		ClassName:  "shape",
		Style:      Map{{Key: "fill", Value: "red"}},
		Listeners:  Listeners{{Event: "click", Handler: func(any) {}}},
		Data:       Map{{Key: "k", Value: "v"}},
		Content:    "<title>t</title>",
		Children:   []Child{&Config{Type: "rect", ID: "r1"}},
	}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []string{
		"CreateElementNS(http://www.w3.org/2000/svg,g)",
		"AppendChild(root,g#1)",
		"SetAttribute(width=10)",
		"SetAttributeNS(http://www.w3.org/1999/xlink,xlink:href=#a)",
		"SetProperty(tabIndex=1)",
		"SetClassName(shape)",
		"SetStyle(fill=red)",
		"SetListener(onclick,true)",
		"SetData(1)",
		"SetInnerHTML(<title>t</title>)",
		"CreateElementNS(http://www.w3.org/2000/svg,rect)",
		"AppendChild(g#1,rect#2)",
	}
	if diff := cmp.Diff(want, doc.calls); diff != "" {
		t.Errorf("document calls mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_ClearIsRecursiveAndRegistryConsistent(t *testing.T) {
	m, doc, _ := newTestManager(t)

	root, err := m.Render(&Config{
		Type: "g",
		ID:   "g1",
		Children: []Child{
			&Config{Type: "g", ID: "g2", Children: []Child{
				&Config{Type: "rect", ID: "r1"},
				&Config{Type: "rect", ID: "r2", Listeners: Listeners{{Event: "click", Handler: func(any) {}}}},
			}},
			&Config{Type: "rect", ID: "r3"},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var descendants []Node
	for _, id := range []string{"g2", "r1", "r2", "r3"} {
		n, ok := m.Get(id, "")
		if !ok {
			t.Fatalf("Get(%q) missing after render", id)
		}
		if n.Element() == nil {
			t.Fatalf("%s has no backing element after render", id)
		}
		descendants = append(descendants, n)
	}
	r2El := descendants[2].Element().(*dom.Element)
	if r2El.Listener("onclick") == nil {
		t.Fatal("r2 listener not bound")
	}

	root.Clear()

	if diff := cmp.Diff([]string{"global:g1"}, m.Objects().Keys()); diff != "" {
		t.Errorf("registry keys after Clear mismatch (-want +got):\n%s", diff)
	}
	for _, n := range descendants {
		if n.Element() != nil {
			t.Errorf("%s still has a backing element after Clear", n.ID())
		}
		if n.State() != Cleared {
			t.Errorf("%s State() = %v, want %v", n.ID(), n.State(), Cleared)
		}
		if n.Manager() != nil {
			t.Errorf("%s still references the manager after Clear", n.ID())
		}
	}
	if r2El.Listener("onclick") != nil {
		t.Error("descendant listener was not nulled")
	}
	if len(root.Children()) != 0 {
		t.Errorf("len(Children()) = %d after Clear, want 0", len(root.Children()))
	}
	if root.Element() != nil {
		t.Error("root still has a backing element after Clear")
	}
	if root.State() != Cleared {
		t.Errorf("root State() = %v, want %v", root.State(), Cleared)
	}
	if n := len(doc.Body().Children()); n != 0 {
		t.Errorf("body has %d children after Clear, want 0", n)
	}
	if got, ok := m.Get("g1", ""); !ok || got != root {
		t.Error("Clear must not remove the node's own registry entry")
	}
}

func TestNode_ClearIsIdempotent(t *testing.T) {
	m, _, c := newTestManager(t)
	root, err := m.Render(&Config{Type: "g", ID: "g1", Children: []Child{&Config{Type: "rect", ID: "r1"}}}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	root.Clear()
	before := len(c.Diagnostics())
	root.Clear()
	if after := len(c.Diagnostics()); after != before {
		t.Errorf("second Clear reported %d diagnostics", after-before)
	}
	if root.State() != Cleared {
		t.Errorf("State() = %v, want %v", root.State(), Cleared)
	}
}

func TestNode_RenderAfterClear(t *testing.T) {
	m, doc, _ := newTestManager(t)
	root, err := m.Render(&Config{Type: "g", ID: "g1", Children: []Child{&Config{Type: "rect"}}}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	root.Clear()

	mustRender(t, root)
	if root.State() != Attached {
		t.Errorf("State() = %v, want %v", root.State(), Attached)
	}
	if diff := cmp.Diff([]string{"g"}, childNames(doc.Body())); diff != "" {
		t.Errorf("body children mismatch (-want +got):\n%s", diff)
	}
	if got := childNames(root.Element()); len(got) != 0 {
		t.Errorf("re-rendered root has children %v; Clear truncated the list", got)
	}
}

func TestNode_DestroyRemovesSelf(t *testing.T) {
	m, doc, _ := newTestManager(t)
	root, err := m.Render(&Config{Type: "g", ID: "g1", Children: []Child{&Config{Type: "rect", ID: "r1"}}}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	root.Destroy()

	if _, ok := m.Get("g1", ""); ok {
		t.Error("Get(g1) still finds the destroyed node")
	}
	if _, ok := m.Get("r1", ""); ok {
		t.Error("Get(r1) still finds a descendant of the destroyed node")
	}
	if root.Host() != nil {
		t.Error("Host() should be nil after Destroy")
	}
	if root.Manager() != nil {
		t.Error("Manager() should be nil after Destroy")
	}
	if root.State() != Destroyed {
		t.Errorf("State() = %v, want %v", root.State(), Destroyed)
	}
	if n := len(doc.Body().Children()); n != 0 {
		t.Errorf("body has %d children after Destroy, want 0", n)
	}
	if err := root.Render(); !errors.Is(err, errors.ErrDestroyed) {
		t.Errorf("Render after Destroy = %v, want ErrDestroyed", err)
	}
}

func TestNode_RenderTwiceIsGuarded(t *testing.T) {
	m, doc, c := newTestManager(t)
	n := mustCreate(t, m, &Config{Type: "rect", ID: "r1"})
	mustRender(t, n)

	err := n.Render()
	if !errors.Is(err, errors.ErrAttached) {
		t.Errorf("second Render = %v, want ErrAttached", err)
	}
	if got := len(doc.Body().Children()); got != 1 {
		t.Errorf("body has %d children, want 1", got)
	}
	if got := c.Count(errors.KindRender); got != 1 {
		t.Errorf("Count(KindRender) = %d, want 1", got)
	}
}

func TestNode_RenderRequiresHostAndManager(t *testing.T) {
	doc := dom.NewDocument()
	c := &errors.Collector{}
	m := NewManager(doc, WithHandler(c))
	m.Register("rect", ControlFactory("rect", SVG))

	n := mustCreate(t, m, &Config{Type: "rect", ID: "r1"})
	if err := n.Render(); !errors.Is(err, errors.ErrNoHost) {
		t.Errorf("Render without host = %v, want ErrNoHost", err)
	}
	if n.State() != Unattached {
		t.Errorf("State() = %v, want %v", n.State(), Unattached)
	}

	n.SetHost(doc.Body())
	mustRender(t, n)

	orphan := NewControl("rect", SVG, &Config{Host: doc.Body()})
	if err := orphan.Render(); !errors.Is(err, errors.ErrNoManager) {
		t.Errorf("Render without manager = %v, want ErrNoManager", err)
	}
}

func TestNode_ChildFailureDoesNotStopSiblings(t *testing.T) {
	m, _, c := newTestManager(t)
	root, err := m.Render(&Config{
		Type: "g",
		Children: []Child{
			&Config{Type: "circle"},
			&Config{Type: "rect", ID: "r1"},
		},
	}, nil)
	if !errors.Is(err, errors.ErrUnknownType) {
		t.Errorf("Render = %v, want ErrUnknownType", err)
	}
	if diff := cmp.Diff([]string{"rect"}, childNames(root.Element())); diff != "" {
		t.Errorf("rendered children mismatch (-want +got):\n%s", diff)
	}
	if got := c.Count(errors.KindNotFound); got != 1 {
		t.Errorf("Count(KindNotFound) = %d, want 1", got)
	}
}

func TestNode_Insert(t *testing.T) {
	a, b, c, d := &Config{ID: "a"}, &Config{ID: "b"}, &Config{ID: "c"}, &Config{ID: "d"}
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"front", 0, []string{"d", "a", "b", "c"}},
		{"middle", 1, []string{"a", "d", "b", "c"}},
		{"end", 3, []string{"a", "b", "c", "d"}},
		{"past end", 10, []string{"a", "b", "c", "d"}},
		{"negative", -1, []string{"a", "b", "d", "c"}},
		{"very negative", -10, []string{"d", "a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewFragment(&Config{Children: []Child{a, b, c}})
			n.Insert(tt.index, d)
			var got []string
			for _, ch := range n.Children() {
				got = append(got, ch.(*Config).ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("children mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNode_RemoveDetachesWithoutTeardown(t *testing.T) {
	m, _, _ := newTestManager(t)
	child := mustCreate(t, m, &Config{Type: "rect", ID: "r1"})
	cfg := &Config{Type: "rect", ID: "r2"}
	parent := mustCreate(t, m, &Config{Type: "g", ID: "g1"})
	parent.Add(child)
	parent.Add(cfg)
	mustRender(t, parent)

	rendered, ok := m.Get("r2", "")
	if !ok {
		t.Fatal("r2 not registered after render")
	}

	if !parent.Remove(child) {
		t.Fatal("Remove(node child) = false")
	}
	if child.Manager() != nil {
		t.Error("removed node still references the manager")
	}
	if got, ok := m.Get("r1", ""); !ok || got != child {
		t.Error("Remove must not unregister the child")
	}
	if child.Element() == nil {
		t.Error("Remove must not clear the child")
	}

	if !parent.Remove(cfg) {
		t.Fatal("Remove(config child) = false")
	}
	if rendered.Manager() != nil {
		t.Error("node rendered from a removed config still references the manager")
	}
	if parent.Remove(cfg) {
		t.Error("Remove of an absent child = true")
	}
	if n := len(parent.Children()); n != 0 {
		t.Errorf("len(Children()) = %d, want 0", n)
	}
}

func TestNode_AnonymousNodeRendersButIsNotRegistered(t *testing.T) {
	m, doc, _ := newTestManager(t)
	n := NewControl("g", SVG, &Config{Children: []Child{&Config{Type: "rect", ID: "inner"}}})

	if _, err := m.Create(n); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.ID() != "" {
		t.Errorf("ID() = %q, want empty", n.ID())
	}
	if n.Manager() != nil {
		t.Error("anonymous node should not reference the registry owner")
	}

	n.SetHost(doc.Body())
	mustRender(t, n)
	if diff := cmp.Diff([]string{"global:inner"}, m.Objects().Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestFragment_RendersChildrenUnderHost(t *testing.T) {
	m, doc, _ := newTestManager(t)
	f, err := m.Render(&Config{
		Type: "frag",
		ID:   "f1",
		Children: []Child{
			&Config{Type: "rect", ID: "a"},
			&Config{Type: "frag", Children: []Child{&Config{Type: "div", ID: "b"}}},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.Element() != nil {
		t.Error("fragment should have no backing element")
	}
	if diff := cmp.Diff([]string{"rect", "div"}, childNames(doc.Body())); diff != "" {
		t.Errorf("body children mismatch (-want +got):\n%s", diff)
	}

	f.Clear()
	if n := len(doc.Body().Children()); n != 0 {
		t.Errorf("body has %d children after fragment Clear, want 0", n)
	}
	if diff := cmp.Diff([]string{"global:f1"}, m.Objects().Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Unattached, "unattached"},
		{Attached, "attached"},
		{Cleared, "cleared"},
		{Destroyed, "destroyed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
