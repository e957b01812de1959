package graph

import (
	"github.com/google/uuid"
)

// Handle addresses a node within one [Arena]. The zero Handle is never
// assigned to a real node; use [Handle.Valid] to check.
type Handle int

// Valid reports whether h refers to a real node (was returned by [Arena.New]).
func (h Handle) Valid() bool {
	return h > 0
}

// node is the arena-internal storage for one graph node. It is never
// exposed directly; all access goes through Arena methods so that reads of
// a children/parents slice never observe a concurrent append.
type node[T any] struct {
	id       uuid.UUID
	payload  T
	parents  []Handle
	children []Handle
}

// Arena owns a collection of nodes of payload type T and the edges between
// them. Construct one with [NewArena], which reserves index 0 so that no
// real node gets the zero Handle; the zero Arena lacks that slot and is not
// ready to use.
//
// Arena is the graph substrate for both document trees (payload [xmlnode.XmlNode])
// and the basis graph (payload basis.Node). It is not safe for concurrent
// mutation; see the package doc.
type Arena[T any] struct {
	nodes []node[T] // index 0 is unused so Handle zero-value stays invalid
}

// NewArena returns an empty Arena ready for [Arena.New] calls.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{nodes: make([]node[T], 1)}
}

// New mints a fresh node carrying payload and returns its handle. The node
// starts with no parents and no children; use [Arena.AddChild] to link it
// into the graph.
//
// Payloads are never re-parented across Arena instances; when content needs
// to appear in a second arena (e.g. absorb mirroring an XmlNode fingerprint
// into a BasisNode), callers mint a new node here rather than reusing a
// handle from another Arena.
func (a *Arena[T]) New(payload T) Handle {
	a.nodes = append(a.nodes, node[T]{id: uuid.New(), payload: payload})
	return Handle(len(a.nodes) - 1)
}

// Len returns the number of nodes minted in this arena, including detached
// ones. Handles range over [1, Len()].
func (a *Arena[T]) Len() int {
	return len(a.nodes) - 1
}

func (a *Arena[T]) at(h Handle) *node[T] {
	if int(h) <= 0 || int(h) >= len(a.nodes) {
		panic("graph: invalid handle")
	}
	return &a.nodes[h]
}

// ID returns the node's stable identity.
func (a *Arena[T]) ID(h Handle) uuid.UUID {
	return a.at(h).id
}

// Payload returns the node's payload.
func (a *Arena[T]) Payload(h Handle) T {
	return a.at(h).payload
}

// SetPayload replaces the node's payload in place. Used by interpret to
// annotate BasisNode payloads after construction.
func (a *Arena[T]) SetPayload(h Handle, payload T) {
	a.at(h).payload = payload
}

// Children returns a snapshot of h's children in order. The returned slice
// is a copy; mutating the graph afterward does not invalidate it, and
// callers may safely range over it while calling [Arena.AddChild] or
// [Arena.DetachFromParent] for the same node (scoped-borrow discipline: clone before
// mutating).
func (a *Arena[T]) Children(h Handle) []Handle {
	c := a.at(h).children
	out := make([]Handle, len(c))
	copy(out, c)
	return out
}

// ChildCount returns len(Children(h)) without allocating a copy.
func (a *Arena[T]) ChildCount(h Handle) int {
	return len(a.at(h).children)
}

// Parents returns a snapshot of h's parents in order.
func (a *Arena[T]) Parents(h Handle) []Handle {
	p := a.at(h).parents
	out := make([]Handle, len(p))
	copy(out, p)
	return out
}

// AddChild appends child as the last child of parent, and appends parent as
// the last parent of child. Both edges are ordered; absorb relies on this
// to preserve donor sibling order.
func (a *Arena[T]) AddChild(parent, child Handle) {
	a.at(parent).children = append(a.at(parent).children, child)
	a.at(child).parents = append(a.at(child).parents, parent)
}

// ReplaceChild rewrites parent's edge to old so it points at replacement
// instead, preserving old's position among parent's children. It does not
// touch old's or replacement's parent lists; the caller (cyclize) is
// responsible for also calling [Arena.RemoveParent] / recording the new
// parent edge as needed.
func (a *Arena[T]) ReplaceChild(parent, old, replacement Handle) {
	children := a.at(parent).children
	for i, c := range children {
		if c == old {
			children[i] = replacement
			return
		}
	}
}

// RemoveParent removes one occurrence of parent from child's parent list.
func (a *Arena[T]) RemoveParent(child, parent Handle) {
	parents := a.at(child).parents
	for i, p := range parents {
		if p == parent {
			a.at(child).parents = append(parents[:i], parents[i+1:]...)
			return
		}
	}
}

// DetachFromParent removes child from parent's children list (all
// occurrences) and removes parent from child's parents list (all
// occurrences). Used by prune to detach a merged-away victim.
func (a *Arena[T]) DetachFromParent(parent, child Handle) {
	children := a.at(parent).children[:0:0]
	for _, c := range a.at(parent).children {
		if c != child {
			children = append(children, c)
		}
	}
	a.at(parent).children = children

	parents := a.at(child).parents[:0:0]
	for _, p := range a.at(child).parents {
		if p != parent {
			parents = append(parents, p)
		}
	}
	a.at(child).parents = parents
}

// AppendChild appends child to the end of parent's children list without
// touching child's existing parent list. Used by prune when reparenting a
// victim's children under the survivor; prune then records the survivor
// in the child's parent list with a separate [Arena.AppendParent] call.
func (a *Arena[T]) AppendChild(parent, child Handle) {
	a.at(parent).children = append(a.at(parent).children, child)
}

// AppendParent appends parent to child's parent list without touching
// parent's children list.
func (a *Arena[T]) AppendParent(child, parent Handle) {
	a.at(child).parents = append(a.at(child).parents, parent)
}

// Roots returns all nodes with no parents.
func (a *Arena[T]) Roots() []Handle {
	var roots []Handle
	for i := 1; i < len(a.nodes); i++ {
		if len(a.nodes[i].parents) == 0 {
			roots = append(roots, Handle(i))
		}
	}
	return roots
}
