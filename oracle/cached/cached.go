// Package cached wraps an [oracle.Oracle] with a [kvstore.Store]-backed
// cache for the two operations spec section 4.6 keys by content hash:
// element/text data (keyed by node hash) and complex type names (keyed
// by subtree hash). It lives in its own package, separate from oracle
// and kvstore, because kvstore's store methods are typed in terms of
// oracle's response types: oracle cannot import kvstore without a cycle,
// so the wrapper that needs both sits above them.
//
// get_page_type, interpret_associations, and interpret_data_structure
// are not cached by spec section 6's KV store key layout (only NodeData
// vectors and complex type names have assigned key domains), so this
// wrapper does not intercept them; callers needing those operations call
// the underlying [oracle.Oracle] directly.
package cached

import (
	"context"

	"github.com/haldor-ness/docbasis/kvstore"
	"github.com/haldor-ness/docbasis/oracle"
	"github.com/haldor-ness/docbasis/xerr"
)

// Cache wraps an oracle.Oracle with a content-addressed kvstore.Store.
// Every method here is lookup-then-maybe-invoke-then-store, matching
// spec section 4.6's cache discipline exactly.
type Cache struct {
	Oracle oracle.Oracle
	Store  *kvstore.Store
}

// New constructs a Cache over the given oracle and store.
func New(o oracle.Oracle, s *kvstore.Store) *Cache {
	return &Cache{Oracle: o, Store: s}
}

// ElementData returns the cached NodeData vector for nodeHash, calling
// the underlying oracle and persisting the result on a miss. hit reports
// whether the value came from the store rather than a fresh oracle call,
// which callers use to decide whether a pacing delay is owed.
func (c *Cache) ElementData(ctx context.Context, nodeHash string, attributes, snippets []string, corePurpose string) (data []oracle.NodeData, hit bool, err error) {
	if data, ok, err := c.Store.GetNodeData(nodeHash); err != nil {
		return nil, false, err
	} else if ok {
		return data, true, nil
	}

	data, err = c.Oracle.InterpretElementData(ctx, attributes, snippets, corePurpose)
	if err != nil {
		return nil, false, xerr.New(xerr.OracleFailure, "interpret_element_data", "oracle call failed").WithCause(err)
	}
	if err := c.Store.PutNodeData(nodeHash, data); err != nil {
		return nil, false, err
	}
	return data, false, nil
}

// TextData returns the cached NodeData for a text node keyed by
// nodeHash. Text nodes always carry a single descriptor, so the
// underlying node-data vector the store holds has exactly one element.
func (c *Cache) TextData(ctx context.Context, nodeHash string, snippets []string, corePurpose string) (data oracle.NodeData, hit bool, err error) {
	if stored, ok, err := c.Store.GetNodeData(nodeHash); err != nil {
		return oracle.NodeData{}, false, err
	} else if ok && len(stored) > 0 {
		return stored[0], true, nil
	}

	data, err = c.Oracle.InterpretTextData(ctx, snippets, corePurpose)
	if err != nil {
		return oracle.NodeData{}, false, xerr.New(xerr.OracleFailure, "interpret_text_data", "oracle call failed").WithCause(err)
	}
	if err := c.Store.PutNodeData(nodeHash, []oracle.NodeData{data}); err != nil {
		return oracle.NodeData{}, false, err
	}
	return data, false, nil
}

// Node returns the cached complex type name for subtreeHash, calling
// the underlying oracle and persisting the result on a miss. hit reports
// whether the value came from the store rather than a fresh oracle call.
func (c *Cache) Node(ctx context.Context, subtreeHash, descriptor string) (name string, hit bool, err error) {
	if name, ok, err := c.Store.GetComplexType(subtreeHash); err != nil {
		return "", false, err
	} else if ok {
		return name, true, nil
	}

	name, err = c.Oracle.InterpretNode(ctx, descriptor)
	if err != nil {
		return "", false, xerr.New(xerr.OracleFailure, "interpret_node", "oracle call failed").WithCause(err)
	}
	if err := c.Store.PutComplexType(subtreeHash, name); err != nil {
		return "", false, err
	}
	return name, false, nil
}
