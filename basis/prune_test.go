package basis

import "testing"

func TestPrune_MergesDuplicateSiblings(t *testing.T) {
	basisArena, basisRoot := NewGraph()
	doc := mustBuildTree(t, `<r><a/><a/></r>`)
	Absorb(basisArena, basisRoot, doc.Arena, doc.Root)

	r := basisArena.Children(basisRoot)[0]
	if len(basisArena.Children(r)) != 2 {
		t.Fatalf("expected absorb to produce 2 <a/> children before prune")
	}

	Prune(basisArena)

	children := basisArena.Children(r)
	if len(children) != 1 {
		t.Fatalf("expected prune to merge down to 1 child, got %d", len(children))
	}
}

func TestPrune_ReparentsVictimChildrenUnderSurvivor(t *testing.T) {
	basisArena, basisRoot := NewGraph()
	doc := mustBuildTree(t, `<r><a><x/></a><a><y/></a></r>`)
	Absorb(basisArena, basisRoot, doc.Arena, doc.Root)

	Prune(basisArena)

	r := basisArena.Children(basisRoot)[0]
	aChildren := basisArena.Children(r)
	if len(aChildren) != 1 {
		t.Fatalf("expected a single surviving <a>, got %d", len(aChildren))
	}
	survivor := aChildren[0]
	grandchildren := basisArena.Children(survivor)
	if len(grandchildren) != 2 {
		t.Fatalf("expected survivor to inherit both <x/> and <y/>, got %d", len(grandchildren))
	}
}

func TestPrune_NoChangeWhenNoDuplicates(t *testing.T) {
	basisArena, basisRoot := NewGraph()
	doc := mustBuildTree(t, `<r><a/><b/></r>`)
	Absorb(basisArena, basisRoot, doc.Arena, doc.Root)

	r := basisArena.Children(basisRoot)[0]
	before := len(basisArena.Children(r))

	Prune(basisArena)

	after := len(basisArena.Children(r))
	if before != after {
		t.Fatalf("prune should not change distinct children: before=%d after=%d", before, after)
	}
}
