// Package harvest projects a basis graph's learned labels onto a concrete
// output tree, producing the structured result a caller actually wants.
//
// Harvest walks the output tree (the second of the two independent trees
// built from the same XML, untouched by absorb/cyclize/prune), locating
// each output node's corresponding basis node by lineage lookup, and
// assembles values bottom-up following the assembly rule: consecutive
// same-typed children collect into a list, a lone typed child promotes
// its parent away entirely, and everything else becomes an object keyed
// by child complex type names plus the node's own NodeData.
package harvest

import (
	"github.com/haldor-ness/docbasis/basis"
	"github.com/haldor-ness/docbasis/graph"
	"github.com/haldor-ness/docbasis/xerr"
	"github.com/haldor-ness/docbasis/xmlnode"
)

// LookupByLineage walks root's children following each successive hash in
// lineage, returning the final node reached. It reports not-found (false)
// the moment a step has no matching child. Because a basis graph may be
// cyclic, the same node can be revisited mid-walk — that is not special
// cased: the walk simply keeps matching children for as long as lineage
// has pending hashes, same as the original search_tree_by_lineage.
func LookupByLineage(a *graph.Arena[basis.Node], root graph.Handle, lineage []string) (graph.Handle, bool) {
	current := root
	for _, hash := range lineage {
		next, ok := childByHash(a, current, hash)
		if !ok {
			return graph.Handle(0), false
		}
		current = next
	}
	return current, true
}

func childByHash(a *graph.Arena[basis.Node], parent graph.Handle, hash string) (graph.Handle, bool) {
	for _, c := range a.Children(parent) {
		if a.Payload(c).NodeHash == hash {
			return c, true
		}
	}
	return graph.Handle(0), false
}

// Harvest produces the result value for outRoot, guided by the basis
// graph rooted at basisRoot (the basis graph's void root — the caller
// passes the same root handle NewGraph returned). The result is a plain
// map[string]any/[]any/primitive tree, directly encodable via
// encoding/json.Marshal.
func Harvest(outArena *graph.Arena[xmlnode.XmlNode], outRoot graph.Handle, basisArena *graph.Arena[basis.Node], basisRoot graph.Handle) (any, error) {
	rootBasis, ok := LookupByLineage(basisArena, basisRoot, []string{outArena.Payload(outRoot).NodeHash})
	if !ok {
		return nil, xerr.New(xerr.InternalInvariantViolation, "harvest", "no basis node for the output tree's root lineage")
	}

	return assemble(outArena, outRoot, basisArena, rootBasis)
}

// assemble computes the harvested value for the output node oh, whose
// corresponding basis node is bh, recursing into children before
// combining them with oh's own NodeData.
func assemble(outArena *graph.Arena[xmlnode.XmlNode], oh graph.Handle, basisArena *graph.Arena[basis.Node], bh graph.Handle) (any, error) {
	b := basisArena.Payload(bh)

	own, err := ownFields(outArena, oh, b)
	if err != nil {
		return nil, err
	}

	children := outArena.Children(oh)

	// Type promotion: a node that contributes no data of its own and has
	// exactly one child with a non-empty complex type is replaced
	// entirely by that child's value — it introduces no level of its own.
	if len(own) == 0 && len(children) == 1 {
		childBasis, ok := childByHash(basisArena, bh, outArena.Payload(children[0]).NodeHash)
		if ok && basisArena.Payload(childBasis).ComplexType != "" {
			return assemble(outArena, children[0], basisArena, childBasis)
		}
	}

	fields := own
	i := 0
	for i < len(children) {
		childBasis, ok := childByHash(basisArena, bh, outArena.Payload(children[i]).NodeHash)
		if !ok {
			return nil, xerr.New(xerr.InternalInvariantViolation, "harvest", "no basis node for an output child's node hash")
		}
		complexType := basisArena.Payload(childBasis).ComplexType

		if complexType == "" {
			childValue, err := assemble(outArena, children[i], basisArena, childBasis)
			if err != nil {
				return nil, err
			}
			if m, ok := childValue.(map[string]any); ok {
				for k, v := range m {
					fields[k] = v
				}
			}
			i++
			continue
		}

		run, next, err := assembleRun(outArena, children, i, basisArena, bh, complexType)
		if err != nil {
			return nil, err
		}
		if len(run) == 1 {
			fields[complexType] = run[0]
		} else {
			fields[complexType] = run
		}
		i = next
	}

	return fields, nil
}

// assembleRun collects the maximal run of consecutive siblings (children
// of the output node whose basis counterpart is parentBasis) starting at
// index i that share complexType, returning their assembled values and
// the index just past the run.
func assembleRun(outArena *graph.Arena[xmlnode.XmlNode], siblings []graph.Handle, i int, basisArena *graph.Arena[basis.Node], parentBasis graph.Handle, complexType string) ([]any, int, error) {
	var run []any
	for i < len(siblings) {
		childBasis, ok := childByHash(basisArena, parentBasis, outArena.Payload(siblings[i]).NodeHash)
		if !ok || basisArena.Payload(childBasis).ComplexType != complexType {
			break
		}
		value, err := assemble(outArena, siblings[i], basisArena, childBasis)
		if err != nil {
			return nil, i, err
		}
		run = append(run, value)
		i++
	}
	return run, i, nil
}

// ownFields computes the name-value pairs contributed directly by oh's
// own NodeData, per the harvest rule: text-typed NodeData takes oh's text
// payload, element-typed NodeData takes the named attribute's value.
func ownFields(outArena *graph.Arena[xmlnode.XmlNode], oh graph.Handle, b basis.Node) (map[string]any, error) {
	fields := make(map[string]any, len(b.NodeData))
	o := outArena.Payload(oh)

	for _, d := range b.NodeData {
		switch {
		case d.IsTextData():
			fields[d.Name] = o.Text
		case d.IsElementData():
			value, ok := o.AttributeValue(d.Element.Attribute)
			if !ok {
				return nil, xerr.New(xerr.InternalInvariantViolation, "harvest",
					"output node missing attribute named by its basis node's element data: "+d.Element.Attribute)
			}
			fields[d.Name] = value
		default:
			return nil, xerr.New(xerr.InternalInvariantViolation, "harvest", "node data "+d.Name+" is neither text nor element typed")
		}
	}
	return fields, nil
}
