package graph

import (
	"context"
	"testing"
)

func TestPostOrder_VisitsChildrenBeforeParent(t *testing.T) {
	a := NewArena[string]()
	root := a.New("root")
	left := a.New("left")
	right := a.New("right")
	a.AddChild(root, left)
	a.AddChild(root, right)

	var order []Handle
	err := PostOrder(context.Background(), a, root, func(h Handle) error {
		order = append(order, h)
		return nil
	})
	if err != nil {
		t.Fatalf("PostOrder returned error: %v", err)
	}
	if len(order) != 3 || order[2] != root {
		t.Fatalf("order = %v, want children before root", order)
	}
}

func TestPostOrder_VisitsSharedNodeOnce(t *testing.T) {
	a := NewArena[string]()
	root := a.New("root")
	shared := a.New("shared")
	// Two parents point at the same child, simulating a post-cyclize back-edge.
	pA := a.New("pA")
	pB := a.New("pB")
	a.AddChild(root, pA)
	a.AddChild(root, pB)
	a.AddChild(pA, shared)
	a.AddChild(pB, shared)

	visits := map[Handle]int{}
	err := PostOrder(context.Background(), a, root, func(h Handle) error {
		visits[h]++
		return nil
	})
	if err != nil {
		t.Fatalf("PostOrder returned error: %v", err)
	}
	if visits[shared] != 1 {
		t.Fatalf("shared node visited %d times, want 1", visits[shared])
	}
}

func TestPostOrder_RespectsCancellation(t *testing.T) {
	a := NewArena[string]()
	root := a.New("root")
	child := a.New("child")
	a.AddChild(root, child)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := PostOrder(ctx, a, root, func(h Handle) error {
		return nil
	})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestBreadthFirst_VisitsEachNodeOnce(t *testing.T) {
	a := NewArena[string]()
	root := a.New("root")
	c1 := a.New("c1")
	c2 := a.New("c2")
	a.AddChild(root, c1)
	a.AddChild(root, c2)

	var order []Handle
	BreadthFirst(a, []Handle{root}, func(h Handle) {
		order = append(order, h)
	})

	if len(order) != 3 || order[0] != root {
		t.Fatalf("order = %v, want root first", order)
	}
}

func TestBreadthFirst_VisitsEveryRoot(t *testing.T) {
	a := NewArena[string]()
	rootA := a.New("rootA")
	rootB := a.New("rootB")
	childA := a.New("childA")
	a.AddChild(rootA, childA)

	var order []Handle
	BreadthFirst(a, []Handle{rootA, rootB}, func(h Handle) {
		order = append(order, h)
	})

	if len(order) != 3 {
		t.Fatalf("order = %v, want all 3 nodes across both roots visited", order)
	}
}
