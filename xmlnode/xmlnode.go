// Package xmlnode models one parsed XML node — element or text — and
// builds ordered labelled trees from a preprocessed XML string.
//
// Element nodes carry a tag name, an ordered list of attribute
// name/value pairs (blacklisted presentational attributes already
// stripped), and the node's own serialized XML fragment. Text nodes carry
// only their text payload. Parsing is built on
// github.com/beevik/etree, which preserves attribute order and supports
// re-serializing any subtree back to XML text.
package xmlnode

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/haldor-ness/docbasis/graph"
	"github.com/haldor-ness/docbasis/hashing"
	"github.com/haldor-ness/docbasis/location"
	"github.com/haldor-ness/docbasis/xerr"
)

// Attr is one ordered attribute name/value pair.
type Attr struct {
	Name  string
	Value string
}

// XmlNode is the payload carried by nodes in an input or output tree.
//
// A node is either an element (IsText == false) with a Tag, ordered Attrs,
// and its own serialized Fragment, or a text node (IsText == true) with a
// Text payload. NodeHash, SubtreeHash, and AncestryHash are computed once
// at build time, before any absorb/cyclize/prune transformation runs, and
// are never recomputed afterward — they are undefined on cyclic graphs.
type XmlNode struct {
	IsText bool
	Tag    string
	Attrs  []Attr
	Text   string

	// Fragment is the node's original serialized XML, captured at parse
	// time. Empty for text nodes (their Text field is authoritative).
	Fragment string

	NodeHash     string
	SubtreeHash  string
	AncestryHash string
}

// IsStructural reports whether the node is pure scaffolding: an element
// with zero attributes. Text nodes are never structural.
func (n XmlNode) IsStructural() bool {
	return !n.IsText && len(n.Attrs) == 0
}

// AttributeNames returns the node's attribute names in declaration order.
func (n XmlNode) AttributeNames() []string {
	names := make([]string, len(n.Attrs))
	for i, a := range n.Attrs {
		names[i] = a.Name
	}
	return names
}

// AttributeValue returns the value of the named attribute and true if it
// is present.
func (n XmlNode) AttributeValue(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Tree is a fully built, immutable document tree: an arena of XmlNode
// plus the handle of its root. Trees are materialized once from XML text
// and never mutated structurally.
type Tree struct {
	Arena *graph.Arena[XmlNode]
	Root  graph.Handle
}

// BuildTree parses xmlText into a rooted tree of XmlNode. Each element
// becomes an element node; each text child becomes a text node, except
// that empty or whitespace-only text (after trimming) is dropped
// entirely. Two independent calls to BuildTree on the same xmlText
// produce two trees with identical hashes but disjoint node identities
// and disjoint arenas, satisfying the "input tree and output tree share
// no nodes" requirement; callers needing both simply call BuildTree
// twice.
//
// Returns a *xerr.Error of kind xerr.MalformedXml if parsing fails.
func BuildTree(xmlText string) (*Tree, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, xerr.New(xerr.MalformedXml, "buildtree", fmt.Sprintf("parse xml: %v", err)).
			WithPosition(positionFromParseError(err))
	}
	root := doc.Root()
	if root == nil {
		return nil, xerr.New(xerr.MalformedXml, "buildtree", "document has no root element")
	}

	a := graph.NewArena[XmlNode]()
	rootHandle := buildElement(a, root)
	computeSubtreeHashes(a, rootHandle)
	computeAncestryHashes(a, rootHandle, nil)

	return &Tree{Arena: a, Root: rootHandle}, nil
}

// positionFromParseError extracts a best-effort line position from an
// encoding/xml syntax error surfaced through etree. Column and byte offset
// are not available from the underlying decoder, so they are left unknown.
func positionFromParseError(err error) location.Position {
	var syntaxErr *xml.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return location.UnknownPosition()
	}
	return location.NewPosition(syntaxErr.Line, 0, -1)
}

func buildElement(a *graph.Arena[XmlNode], el *etree.Element) graph.Handle {
	attrs := filteredAttrs(el)
	fragment := fragmentOf(el)

	payload := XmlNode{
		Tag:      el.Tag,
		Attrs:    attrs,
		Fragment: fragment,
		NodeHash: hashing.NodeHash(el.Tag, namesOf(attrs)),
	}
	handle := a.New(payload)

	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.Element:
			childHandle := buildElement(a, t)
			a.AddChild(handle, childHandle)
		case *etree.CharData:
			text := strings.TrimSpace(t.Data)
			if text == "" {
				continue
			}
			textHandle := a.New(XmlNode{
				IsText:   true,
				Text:     strings.TrimSpace(t.Data),
				NodeHash: hashing.TextNodeHash,
			})
			a.AddChild(handle, textHandle)
		default:
			// Comments, processing instructions, and directives carry no
			// structural or semantic content for the basis graph.
		}
	}

	return handle
}

func filteredAttrs(el *etree.Element) []Attr {
	var attrs []Attr
	for _, a := range el.Attr {
		name := a.Key
		if a.Space != "" {
			name = a.Space + ":" + a.Key
		}
		if hashing.IsBlacklistedAttribute(name) {
			continue
		}
		attrs = append(attrs, Attr{Name: name, Value: a.Value})
	}
	return attrs
}

func namesOf(attrs []Attr) []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	return names
}

// fragmentOf serializes el (and its subtree) back to an XML string,
// independent of the document it came from.
func fragmentOf(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func computeSubtreeHashes(a *graph.Arena[XmlNode], h graph.Handle) string {
	children := a.Children(h)
	childHashes := make([]string, len(children))
	for i, c := range children {
		childHashes[i] = computeSubtreeHashes(a, c)
	}
	n := a.Payload(h)
	n.SubtreeHash = hashing.SubtreeHash(n.NodeHash, childHashes)
	a.SetPayload(h, n)
	return n.SubtreeHash
}

func computeAncestryHashes(a *graph.Arena[XmlNode], h graph.Handle, parentAncestryHashes []string) {
	n := a.Payload(h)
	n.AncestryHash = hashing.AncestryHash(n.NodeHash, parentAncestryHashes)
	a.SetPayload(h, n)

	for _, c := range a.Children(h) {
		computeAncestryHashes(a, c, []string{n.AncestryHash})
	}
}
