package component

import (
	"fmt"
	"testing"

	"github.com/cinder-flash/cinder/internal/errors"
	"github.com/cinder-flash/cinder/internal/event"
)

// traceComponent records lifecycle calls into a shared trace.
type traceComponent struct {
	Base
	name      string
	trace     *[]string
	startErr  error
	deinitErr error
}

func (c *traceComponent) Start() error {
	*c.trace = append(*c.trace, "start:"+c.name)
	return c.startErr
}

func (c *traceComponent) Update() error {
	*c.trace = append(*c.trace, "update:"+c.name)
	return nil
}

func (c *traceComponent) Draw() string {
	*c.trace = append(*c.trace, "draw:"+c.name)
	return c.name
}

func (c *traceComponent) Deinit() error {
	*c.trace = append(*c.trace, "deinit:"+c.name)
	return c.deinitErr
}

func newTrace(t *testing.T, name string, trace *[]string) *Node {
	t.Helper()
	n, err := New(name, &traceComponent{name: name, trace: trace})
	if err != nil {
		t.Fatalf("New(%q) failed: %v", name, err)
	}
	return n
}

func TestNewNilComponent(t *testing.T) {
	_, err := New("broken", nil)
	if !errors.Is(err, errors.ErrNilComponent) {
		t.Errorf("expected ErrNilComponent, got %v", err)
	}
}

func TestStartBindsChildrenOnce(t *testing.T) {
	var trace []string
	parent := newTrace(t, "parent", &trace)
	child := newTrace(t, "child", &trace)

	if err := parent.Start(child); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if child.Parent() != parent {
		t.Error("child should carry a parent back-reference")
	}
	if len(parent.Children()) != 1 {
		t.Fatalf("parent has %d children, want 1", len(parent.Children()))
	}

	// Second start is a lifecycle error and leaves prior state unchanged.
	other := newTrace(t, "other", &trace)
	err := parent.Start(other)
	if !errors.Is(err, errors.ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
	if len(parent.Children()) != 1 {
		t.Error("failed re-start should not rebind the child list")
	}
	if other.Parent() != nil {
		t.Error("failed re-start should not attach the new child")
	}
}

func TestStartRejectsAttachedChild(t *testing.T) {
	var trace []string
	a := newTrace(t, "a", &trace)
	b := newTrace(t, "b", &trace)
	child := newTrace(t, "child", &trace)

	if err := a.Start(child); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	err := b.Start(child)
	if !errors.Is(err, errors.ErrAlreadyAttached) {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestStartOrderParentFirst(t *testing.T) {
	var trace []string
	parent := newTrace(t, "parent", &trace)
	c1 := newTrace(t, "c1", &trace)
	c2 := newTrace(t, "c2", &trace)

	if err := parent.Start(c1, c2); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	want := []string{"start:parent", "start:c1", "start:c2"}
	assertTrace(t, trace, want)
}

func TestStartPreStartedSubtree(t *testing.T) {
	// A child started leaf-first with its own children attaches without
	// being restarted.
	var trace []string
	parent := newTrace(t, "parent", &trace)
	child := newTrace(t, "child", &trace)
	grand := newTrace(t, "grand", &trace)

	if err := child.Start(grand); err != nil {
		t.Fatalf("child Start failed: %v", err)
	}
	trace = trace[:0]

	if err := parent.Start(child); err != nil {
		t.Fatalf("parent Start failed: %v", err)
	}

	assertTrace(t, trace, []string{"start:parent"})
	if child.Parent() != parent {
		t.Error("pre-started child should still be attached")
	}
}

func TestStartPropagatesError(t *testing.T) {
	var trace []string
	boom := fmt.Errorf("no device access")
	n, err := New("dev", &traceComponent{name: "dev", trace: &trace, startErr: boom})
	if err != nil {
		t.Fatal(err)
	}

	if err := n.Start(); !errors.Is(err, boom) {
		t.Errorf("expected wrapped start error, got %v", err)
	}
}

func TestUpdateRecursesInOrder(t *testing.T) {
	var trace []string
	parent := newTrace(t, "parent", &trace)
	c1 := newTrace(t, "c1", &trace)
	c2 := newTrace(t, "c2", &trace)

	if err := parent.Start(c1, c2); err != nil {
		t.Fatal(err)
	}
	trace = trace[:0]

	if err := parent.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	assertTrace(t, trace, []string{"update:parent", "update:c1", "update:c2"})
}

func TestDrawRecursesInOrder(t *testing.T) {
	var trace []string
	parent := newTrace(t, "parent", &trace)
	c1 := newTrace(t, "c1", &trace)

	if err := parent.Start(c1); err != nil {
		t.Fatal(err)
	}

	out := parent.Draw()
	if out != "parent\nc1" {
		t.Errorf("Draw() = %q", out)
	}
}

func TestDrawSkipsEmpty(t *testing.T) {
	silent, err := New("silent", &Base{})
	if err != nil {
		t.Fatal(err)
	}
	var trace []string
	child := newTrace(t, "child", &trace)

	if err := silent.Start(child); err != nil {
		t.Fatal(err)
	}

	if out := silent.Draw(); out != "child" {
		t.Errorf("Draw() = %q, want %q", out, "child")
	}
}

func TestDeinitChildrenBeforeParent(t *testing.T) {
	var trace []string
	parent := newTrace(t, "parent", &trace)
	child := newTrace(t, "child", &trace)
	grand := newTrace(t, "grand", &trace)

	if err := child.Start(grand); err != nil {
		t.Fatal(err)
	}
	if err := parent.Start(child); err != nil {
		t.Fatal(err)
	}
	trace = trace[:0]

	if err := parent.Deinit(); err != nil {
		t.Fatalf("Deinit failed: %v", err)
	}

	// Depth-first post-order: the deepest descendant first, the parent last.
	assertTrace(t, trace, []string{"deinit:grand", "deinit:child", "deinit:parent"})
}

func TestDeinitParentReferenceValidDuringTeardown(t *testing.T) {
	var trace []string
	parent := newTrace(t, "parent", &trace)

	var sawParent bool
	child := &parentCheckComponent{}
	childNode, err := New("child", child)
	if err != nil {
		t.Fatal(err)
	}
	child.check = func() { sawParent = childNode.Parent() != nil }

	if err := parent.Start(childNode); err != nil {
		t.Fatal(err)
	}
	if err := parent.Deinit(); err != nil {
		t.Fatal(err)
	}

	if !sawParent {
		t.Error("parent back-reference must remain valid during child teardown")
	}
}

type parentCheckComponent struct {
	Base
	check func()
}

func (c *parentCheckComponent) Deinit() error {
	c.check()
	return nil
}

func TestDeinitCollectsErrors(t *testing.T) {
	var trace []string
	childErr := fmt.Errorf("child teardown failed")
	parentErr := fmt.Errorf("parent teardown failed")

	parent, err := New("parent", &traceComponent{name: "parent", trace: &trace, deinitErr: parentErr})
	if err != nil {
		t.Fatal(err)
	}
	child, err := New("child", &traceComponent{name: "child", trace: &trace, deinitErr: childErr})
	if err != nil {
		t.Fatal(err)
	}

	if err := parent.Start(child); err != nil {
		t.Fatal(err)
	}

	err = parent.Deinit()
	if !errors.Is(err, childErr) || !errors.Is(err, parentErr) {
		t.Errorf("Deinit should collect both errors, got %v", err)
	}

	// Teardown never stops early: the parent deinit ran despite the child error.
	assertTrace(t, trace[len(trace)-2:], []string{"deinit:child", "deinit:parent"})
}

func TestNodeIsSubscriber(t *testing.T) {
	var trace []string
	n := newTrace(t, "sub", &trace)

	// Compile-time and runtime check that Node satisfies event.Subscriber.
	var sub event.Subscriber = n
	if _, err := sub.HandleEvent(nil); err != nil {
		t.Errorf("HandleEvent failed: %v", err)
	}
}

func assertTrace(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("trace = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trace = %v, want %v", got, want)
		}
	}
}
