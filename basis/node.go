// Package basis grows, generalizes, and annotates the basis graph: the
// reusable structural skeleton learned from one concrete document tree.
//
// Absorb merges an input tree into a basis graph by node hash. Cyclize
// introduces back-edges at self-similar ancestry, turning repeating
// structure into genuine cycles. Prune collapses duplicate siblings.
// Interpret performs the post-order, oracle-driven labeling pass that
// assigns complex type names and per-node data descriptors.
package basis

import "github.com/haldor-ness/docbasis/oracle"

// Node is the payload carried by nodes in a basis graph.
//
// NodeHash is copied verbatim from the XmlNode fingerprint that produced
// it. ComplexType is empty until interpret assigns one (and interpret may
// leave it empty permanently for ineligible nodes, per the eligibility
// rule in basis.Interpret). SubtreeHash is captured once, immediately
// after absorb finishes and before cyclize introduces cycles: subtree
// hashes are undefined on cyclic graphs, so this snapshot is the only one
// ever taken, and it is what interpret's complex-type cache is keyed by.
//
// NodeData and DataStructure reuse the oracle package's response types
// directly rather than redeclaring them, since a basis node's annotations
// are exactly what the oracle returned (verbatim or propagated from a
// child, per basis.Interpret's propagation rule).
type Node struct {
	NodeHash       string
	IsText         bool
	AttributeNames []string
	Fragment       string
	SubtreeHash    string

	ComplexType   string
	DataStructure *oracle.RecursiveStructure
	NodeData      []oracle.NodeData
}

// IsStructural reports whether N carries no distinguishing data of its
// own: a non-text node with no attributes. Structural nodes are never
// sent to the oracle for NodeData and carry an empty NodeData vector.
func (n Node) IsStructural() bool {
	return !n.IsText && len(n.AttributeNames) == 0
}
