package basis

import "github.com/haldor-ness/docbasis/graph"

// Cyclize introduces back-edges at self-similar ancestry: for every basis
// node N, if an ancestor A shares N's node hash, the edge into N is
// redirected to A (the nearest such ancestor) and N's own subtree is
// detached from that path. This repeats to a fixed point, so a rewrite
// made deeper in the graph can expose a new qualifying ancestor pair
// further up that a single top-down pass would have missed.
func Cyclize(a *graph.Arena[Node]) {
	for rewriteOnce(a) {
	}
}

// rewriteOnce walks every node reachable from every root and performs at
// most one rewrite per call, returning whether it made one. Restarting
// the walk after each rewrite keeps the traversal simple and correct in
// the presence of graph mutation, at the cost of re-walking nodes that
// did not change; basis graphs are small enough for this to be fine.
func rewriteOnce(a *graph.Arena[Node]) bool {
	visited := make(map[graph.Handle]bool)
	for _, root := range a.Roots() {
		if rewriteFrom(a, root, nil, visited) {
			return true
		}
	}
	return false
}

// rewriteFrom walks the subtree rooted at h depth-first, with ancestors
// listed outermost-first. It returns true as soon as it performs a
// rewrite, so the caller can restart from a clean visited set.
func rewriteFrom(a *graph.Arena[Node], h graph.Handle, ancestors []graph.Handle, visited map[graph.Handle]bool) bool {
	if visited[h] {
		return false
	}
	visited[h] = true

	if nearest, ok := nearestAncestorWithSameHash(a, h, ancestors); ok {
		redirectToAncestor(a, h, nearest)
		return true
	}

	nextAncestors := append(append([]graph.Handle{}, ancestors...), h)
	for _, child := range a.Children(h) {
		if rewriteFrom(a, child, nextAncestors, visited) {
			return true
		}
	}
	return false
}

// nearestAncestorWithSameHash returns the qualifying ancestor closest to
// h (largest index in ancestors, since ancestors is outermost-first).
func nearestAncestorWithSameHash(a *graph.Arena[Node], h graph.Handle, ancestors []graph.Handle) (graph.Handle, bool) {
	hash := a.Payload(h).NodeHash
	for i := len(ancestors) - 1; i >= 0; i-- {
		if a.Payload(ancestors[i]).NodeHash == hash {
			return ancestors[i], true
		}
	}
	return graph.Handle(0), false
}

// redirectToAncestor rewrites every parent edge into h so it points at
// ancestor instead, then detaches h from each of those parents. h's own
// subtree becomes unreachable from this path (it may still be reachable
// via other parents elsewhere in the graph, which absorb can legitimately
// produce).
func redirectToAncestor(a *graph.Arena[Node], h, ancestor graph.Handle) {
	parents := a.Parents(h)
	for _, parent := range parents {
		a.ReplaceChild(parent, h, ancestor)
		a.AppendParent(ancestor, parent)
		a.RemoveParent(h, parent)
	}
}
