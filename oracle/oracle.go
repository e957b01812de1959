// Package oracle models the classifier oracle: an asynchronous external
// service that labels document snippets with semantic type names and
// per-field descriptors. The core treats it as a pure function behind a
// content-addressed cache (see Cache in oracle/cached); concrete providers live in
// oracle/openaiprovider, oracle/anthropicprovider, and oracle/groqprovider.
package oracle

import "context"

// ElementFields describes a node whose value is read from an XML
// attribute.
type ElementFields struct {
	Attribute string `json:"attribute"`
	IsID      bool   `json:"is_id"`
}

// TextFields describes a node whose value is its own text content.
type TextFields struct {
	Informational bool `json:"informational"`
}

// NodeData is a single named descriptor produced for a basis node: either
// text-typed or attribute-typed, never both.
type NodeData struct {
	Name    string         `json:"name"`
	Element *ElementFields `json:"element_fields,omitempty"`
	Text    *TextFields    `json:"text_fields,omitempty"`
}

// IsTextData reports whether d describes a text-valued field.
func (d NodeData) IsTextData() bool { return d.Text != nil }

// IsElementData reports whether d describes an attribute-valued field.
func (d NodeData) IsElementData() bool { return d.Element != nil }

// PageClassification is the response to GetPageType. Every field is
// optional: the oracle may decline to classify a page.
type PageClassification struct {
	PageTypeID   string `json:"page_type_id"`
	Name         string `json:"name"`
	CorePurpose  string `json:"core_purpose"`
	HasRecursive bool   `json:"has_recursive"`
}

// RecursiveStructure describes the recursion shape of a repeating
// substructure, as inferred from a set of representative snippets.
type RecursiveStructure struct {
	IsRecursive bool   `json:"is_recursive"`
	ItemName    string `json:"item_name"`
	Depth       int    `json:"depth"`
}

// Oracle is the classifier's capability set. Every method is idempotent
// with respect to its inputs, letting the cache in oracle/cached treat misses and hits
// identically from the caller's perspective.
type Oracle interface {
	// GetPageType classifies a whole page (or top-level snippet),
	// surfacing the core purpose later interpret_* calls are given.
	GetPageType(ctx context.Context, page string) (PageClassification, error)

	// InterpretAssociations groups snippet pairs into related clusters.
	InterpretAssociations(ctx context.Context, snippets [][2]string) ([][]string, error)

	// InterpretDataStructure infers the recursion shape of a repeating
	// substructure from representative snippets.
	InterpretDataStructure(ctx context.Context, snippets []string) (RecursiveStructure, error)

	// InterpretElementData labels an attributeful element's fields,
	// given its meaningful attribute names, representative snippets,
	// and the page's core purpose.
	InterpretElementData(ctx context.Context, attributes, snippets []string, corePurpose string) ([]NodeData, error)

	// InterpretTextData labels a text node's field, given representative
	// snippets and the page's core purpose.
	InterpretTextData(ctx context.Context, snippets []string, corePurpose string) (NodeData, error)

	// InterpretNode assigns a complex type name to a node descriptor
	// string built from its own and its children's field names.
	InterpretNode(ctx context.Context, descriptor string) (string, error)
}
