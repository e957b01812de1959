package basis

import "github.com/haldor-ness/docbasis/graph"

// Prune walks the basis graph breadth-first — via [graph.BreadthFirst],
// over every root present when Prune starts, so subtrees that Cyclize
// detached are reached too; a victim detached by a merge during this pass
// is not itself visited, though its children are, through the survivor —
// and, for every node, repeatedly locates two
// distinct children with the same node hash and merges them: one is kept
// as the survivor, the victim's children are reparented under the
// survivor (appended, preserving order), and the victim is detached from
// its parent. This repeats per node until no such pair remains, so after
// Prune no parent has two outgoing edges labelled by the same node hash.
func Prune(a *graph.Arena[Node]) {
	graph.BreadthFirst(a, a.Roots(), func(n graph.Handle) {
		mergeDuplicateChildren(a, n)
	})
}

// mergeDuplicateChildren repeatedly finds two distinct children of
// parent sharing a node hash and merges them until none remain.
func mergeDuplicateChildren(a *graph.Arena[Node], parent graph.Handle) {
	for {
		survivor, victim, found := findDuplicateChildPair(a, parent)
		if !found {
			return
		}
		mergeInto(a, parent, survivor, victim)
	}
}

func findDuplicateChildPair(a *graph.Arena[Node], parent graph.Handle) (survivor, victim graph.Handle, found bool) {
	children := a.Children(parent)
	for i, ci := range children {
		for _, cj := range children[i+1:] {
			if ci == cj {
				continue
			}
			if a.Payload(ci).NodeHash == a.Payload(cj).NodeHash {
				return ci, cj, true
			}
		}
	}
	return graph.Handle(0), graph.Handle(0), false
}

// mergeInto reparents every child of victim under survivor (appended,
// preserving victim's child order) and detaches victim from parent.
func mergeInto(a *graph.Arena[Node], parent, survivor, victim graph.Handle) {
	for _, child := range a.Children(victim) {
		a.AppendChild(survivor, child)
		a.AppendParent(child, survivor)
	}
	a.DetachFromParent(parent, victim)
}
