package basis

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/haldor-ness/docbasis/graph"
	"github.com/haldor-ness/docbasis/oracle"
	"github.com/haldor-ness/docbasis/oracle/cached"
	"github.com/haldor-ness/docbasis/xerr"
)

// PacingDelay is the minimum cooperative sleep the engine inserts between
// oracle calls, per spec section 4.6's rate-limit pacing requirement.
const PacingDelay = 1 * time.Second

// pacingDelay is what pace actually sleeps for. It is a variable, not
// the PacingDelay constant directly, so tests can shrink it instead of
// paying a full second per oracle call.
var pacingDelay = PacingDelay

// SetPacingDelay overrides the sleep pace inserts between oracle calls,
// letting callers honor a configured pacing duration (e.g.
// config.Context.PacingDelay) instead of the PacingDelay default.
func SetPacingDelay(d time.Duration) {
	pacingDelay = d
}

// Interpret performs a single post-order pass over the basis graph, via
// [graph.PostOrder] (cycles tracked by its visited set keyed by node
// handle), assigning NodeData and complex type names via oc. corePurpose
// is threaded into every interpret_element_data/interpret_text_data
// call, and is expected to have been obtained from a prior
// oracle.GetPageType call.
func Interpret(ctx context.Context, a *graph.Arena[Node], root graph.Handle, oc *cached.Cache, corePurpose string) error {
	calls := 0
	return graph.PostOrder(ctx, a, root, func(h graph.Handle) error {
		return interpretOne(ctx, a, h, oc, corePurpose, &calls)
	})
}

func interpretOne(ctx context.Context, a *graph.Arena[Node], h graph.Handle, oc *cached.Cache, corePurpose string, calls *int) error {
	n := a.Payload(h)

	if shouldUpdateNodeData(n) {
		data, usedOracle, err := fetchNodeData(ctx, n, oc, corePurpose)
		if err != nil {
			return err
		}
		n.NodeData = data
		a.SetPayload(h, n)
		if usedOracle {
			if err := pace(ctx, calls); err != nil {
				return err
			}
		}
	}

	if !isEligibleForComplexType(a, h) {
		return nil
	}

	if propagated, ok := propagatedComplexType(a, h); ok {
		n = a.Payload(h)
		n.ComplexType = propagated
		a.SetPayload(h, n)
		return nil
	}

	name, usedOracle, err := interpretComplexType(ctx, a, h, oc)
	if err != nil {
		return err
	}
	n = a.Payload(h)
	n.ComplexType = name
	a.SetPayload(h, n)
	if usedOracle {
		return pace(ctx, calls)
	}
	return nil
}

// shouldUpdateNodeData reports whether N is not structural: structural
// nodes carry an empty NodeData vector and never consult the oracle.
func shouldUpdateNodeData(n Node) bool {
	return !n.IsStructural()
}

// fetchNodeData returns N's NodeData vector, synthesizing it directly
// for text nodes and otherwise routing through the cache. usedOracle is
// false when no external call was made (text nodes, or a cache hit),
// since the pacing delay is only owed after a genuine oracle round trip.
func fetchNodeData(ctx context.Context, n Node, oc *cached.Cache, corePurpose string) (data []oracle.NodeData, usedOracle bool, err error) {
	if n.IsText {
		return []oracle.NodeData{{Name: "text", Text: &oracle.TextFields{Informational: true}}}, false, nil
	}

	data, hit, err := oc.ElementData(ctx, n.NodeHash, n.AttributeNames, []string{n.Fragment}, corePurpose)
	if err != nil {
		return nil, false, err
	}
	return data, !hit, nil
}

// isEligibleForComplexType reports whether N is non-leaf AND either N
// itself or at least one child is non-structural.
func isEligibleForComplexType(a *graph.Arena[Node], h graph.Handle) bool {
	children := a.Children(h)
	if len(children) == 0 {
		return false
	}
	n := a.Payload(h)
	if !n.IsStructural() {
		return true
	}
	for _, c := range children {
		if !a.Payload(c).IsStructural() {
			return true
		}
	}
	return false
}

// propagatedComplexType implements the propagation rule: if N is
// structural and has exactly one non-structural child C, N inherits C's
// complex type name verbatim — including an empty one, when C is itself a
// data leaf with no complex type of its own — and the oracle is never
// consulted for N.
func propagatedComplexType(a *graph.Arena[Node], h graph.Handle) (string, bool) {
	n := a.Payload(h)
	if !n.IsStructural() {
		return "", false
	}
	children := a.Children(h)
	var onlyNonStructural graph.Handle
	count := 0
	for _, c := range children {
		if !a.Payload(c).IsStructural() {
			onlyNonStructural = c
			count++
		}
	}
	if count != 1 {
		return "", false
	}
	return a.Payload(onlyNonStructural).ComplexType, true
}

// interpretComplexType builds the descriptor string for h and resolves
// its complex type name through the cache, keyed by subtree hash.
func interpretComplexType(ctx context.Context, a *graph.Arena[Node], h graph.Handle, oc *cached.Cache) (name string, usedOracle bool, err error) {
	n := a.Payload(h)
	descriptor := buildDescriptor(a, h)

	name, hit, err := oc.Node(ctx, n.SubtreeHash, descriptor)
	if err != nil {
		return "", false, err
	}
	return name, !hit, nil
}

// buildDescriptor concatenates (a) the names from N's own NodeData and
// (b) for each child either its propagated complex type name or the
// names from its NodeData.
func buildDescriptor(a *graph.Arena[Node], h graph.Handle) string {
	n := a.Payload(h)
	var parts []string
	for _, d := range n.NodeData {
		parts = append(parts, d.Name)
	}
	for _, c := range a.Children(h) {
		child := a.Payload(c)
		if child.ComplexType != "" {
			parts = append(parts, child.ComplexType)
			continue
		}
		for _, d := range child.NodeData {
			parts = append(parts, d.Name)
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// pace sleeps for the current pacing delay (PacingDelay unless changed by
// SetPacingDelay), cancellable via ctx, and counts the call
// for callers tracking how many oracle round trips a run performed.
func pace(ctx context.Context, calls *int) error {
	*calls++
	timer := time.NewTimer(pacingDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return xerr.New(xerr.OracleFailure, "interpret", "pacing delay cancelled").WithCause(ctx.Err())
	}
}
