package basis

import (
	"github.com/haldor-ness/docbasis/graph"
	"github.com/haldor-ness/docbasis/hashing"
	"github.com/haldor-ness/docbasis/xmlnode"
)

// VoidTag is the tag given to a brand-new basis graph's root node, before
// any document has been absorbed into it. It is never a valid XML tag
// name, so it can never collide with a real node hash.
const VoidTag = "<>"

// NewGraph creates an empty basis graph: a single root node carrying the
// canonical void hash, with no children. Repeated calls to Absorb against
// the same arena grow this root incrementally.
func NewGraph() (*graph.Arena[Node], graph.Handle) {
	a := graph.NewArena[Node]()
	root := a.New(Node{NodeHash: hashing.NodeHash(VoidTag, nil)})
	return a, root
}

// Absorb recursively merges the donor document tree (rooted at donorRoot
// in donorArena) into the basis graph (rooted, initially, by treating
// recipientParent as the node whose children are searched for a
// node-hash match with donorRoot).
//
// The first call passes the basis graph's void root as recipientParent and the
// parsed document's root element as donorRoot, since absorb always
// matches against *children* of the recipient, never the recipient
// itself.
func Absorb(basisArena *graph.Arena[Node], recipientParent graph.Handle, donorArena *graph.Arena[xmlnode.XmlNode], donorRoot graph.Handle) {
	donor := donorArena.Payload(donorRoot)

	match, found := findChildByHash(basisArena, recipientParent, donor.NodeHash)
	if !found {
		cloned := cloneIntoBasis(basisArena, donorArena, donorRoot)
		basisArena.AddChild(recipientParent, cloned)
		return
	}

	if liveSubtreeHash(basisArena, match) == donor.SubtreeHash {
		return
	}

	for _, donorChild := range donorArena.Children(donorRoot) {
		Absorb(basisArena, match, donorArena, donorChild)
	}
}

func findChildByHash(a *graph.Arena[Node], parent graph.Handle, nodeHash string) (graph.Handle, bool) {
	for _, c := range a.Children(parent) {
		if a.Payload(c).NodeHash == nodeHash {
			return c, true
		}
	}
	return graph.Handle(0), false
}

// liveSubtreeHash recomputes a basis node's subtree hash from its
// current children, the way the original's subtree_hash() does: a live
// method, not a cached field, valid only while the graph underneath h is
// still acyclic (true throughout absorb, before cyclize ever runs).
func liveSubtreeHash(a *graph.Arena[Node], h graph.Handle) string {
	children := a.Children(h)
	childHashes := make([]string, 0, len(children))
	for _, c := range children {
		childHashes = append(childHashes, liveSubtreeHash(a, c))
	}
	return hashing.SubtreeHash(a.Payload(h).NodeHash, childHashes)
}

// cloneIntoBasis copies a donor XmlNode subtree into the basis arena as
// new Node entries, recursively, returning the new subtree's root
// handle. The clone carries only structural fields (hash, text-ness,
// fragment); ComplexType/DataStructure/NodeData are left unset for
// Interpret to fill in later.
func cloneIntoBasis(basisArena *graph.Arena[Node], donorArena *graph.Arena[xmlnode.XmlNode], donorNode graph.Handle) graph.Handle {
	donor := donorArena.Payload(donorNode)
	h := basisArena.New(Node{
		NodeHash:       donor.NodeHash,
		IsText:         donor.IsText,
		AttributeNames: donor.AttributeNames(),
		Fragment:       donor.Fragment,
	})
	for _, donorChild := range donorArena.Children(donorNode) {
		childHandle := cloneIntoBasis(basisArena, donorArena, donorChild)
		basisArena.AddChild(h, childHandle)
	}
	return h
}

// CaptureSubtreeHashes performs a post-order pass over the basis graph,
// setting each node's SubtreeHash field to the value liveSubtreeHash
// would compute. It must run exactly once, immediately after the last
// Absorb call and before Cyclize: subtree hashes are undefined once the
// graph contains cycles, so this is the only snapshot ever taken, and it
// is what Interpret's complex-type cache keys off.
func CaptureSubtreeHashes(a *graph.Arena[Node], root graph.Handle) {
	var visit func(h graph.Handle) string
	visit = func(h graph.Handle) string {
		children := a.Children(h)
		childHashes := make([]string, 0, len(children))
		for _, c := range children {
			childHashes = append(childHashes, visit(c))
		}
		n := a.Payload(h)
		n.SubtreeHash = hashing.SubtreeHash(n.NodeHash, childHashes)
		a.SetPayload(h, n)
		return n.SubtreeHash
	}
	visit(root)
}
