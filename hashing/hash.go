// Package hashing computes the three stable content hashes the rest of the
// pipeline uses as keys: node hash, subtree hash, and ancestry hash.
//
// All three are SHA-256 digests of sorted, newline-joined inputs so that
// sibling order never affects structural identity; retrieval order is
// preserved separately by the graph substrate, not by these hashes.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// TextNodeHash is the designated constant node hash shared by every text
// node: sha256("text_node"), so the "designated constant hash represents
// any text node" invariant is byte-for-byte stable.
const TextNodeHash = "40e215e7587a0edee158a67925057a5137f96c1c877fd3150f7d8760f866592e"

// BlacklistedAttributes are presentational attributes excluded from both
// hashing and the preprocessed document: style, bgcolor, border,
// cellpadding, cellspacing, width, height. They carry no structural or
// semantic meaning for the basis graph.
var BlacklistedAttributes = map[string]bool{
	"style":         true,
	"bgcolor":       true,
	"border":        true,
	"cellpadding":   true,
	"cellspacing":   true,
	"width":         true,
	"height":        true,
}

// IsBlacklistedAttribute reports whether name should be excluded from
// hashing and preprocessing.
func IsBlacklistedAttribute(name string) bool {
	return BlacklistedAttributes[strings.ToLower(name)]
}

// digest returns the lowercase hex SHA-256 of the sorted, newline-joined
// parts. Sorting before digestion is what makes the hash order-insensitive.
func digest(parts []string) string {
	sorted := slices.Clone(parts)
	slices.Sort(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\n")))
	return hex.EncodeToString(sum[:])
}

// NodeHash computes the node hash for an element with the given tag name
// and attribute names. Attribute values are never included: structurally
// equivalent elements with differing attribute values or text contents
// share the same node hash. Blacklisted attribute names are excluded by
// the caller before they reach here (xmlnode filters them at parse time),
// but NodeHash filters defensively too so a caller that forgot to filter
// still gets the correct hash.
func NodeHash(tag string, attributeNames []string) string {
	parts := make([]string, 0, len(attributeNames)+1)
	parts = append(parts, tag)
	for _, name := range attributeNames {
		if !IsBlacklistedAttribute(name) {
			parts = append(parts, name)
		}
	}
	return digest(parts)
}

// SubtreeHash computes the subtree hash given a node's own node hash and
// the already-computed subtree hashes of its children. Subtree hashes are
// pure functions of the current graph shape, and are only meaningful
// before cyclize introduces back-edges (hashing is undefined on cyclic
// graphs); callers must capture them during absorb/build and not attempt
// to recompute them afterward.
func SubtreeHash(ownNodeHash string, childSubtreeHashes []string) string {
	parts := make([]string, 0, len(childSubtreeHashes)+1)
	parts = append(parts, ownNodeHash)
	parts = append(parts, childSubtreeHashes...)
	return digest(parts)
}

// AncestryHash computes the ancestry hash given a node's own node hash and
// the ancestry hashes of its parents. Like SubtreeHash, this is only valid
// before cyclize. Ancestry hashes are computed on document trees at build
// time; absorb does not copy them into the basis graph, and cyclize's
// ancestor search compares node hashes instead.
func AncestryHash(ownNodeHash string, parentAncestryHashes []string) string {
	parts := make([]string, 0, len(parentAncestryHashes)+1)
	parts = append(parts, ownNodeHash)
	parts = append(parts, parentAncestryHashes...)
	return digest(parts)
}
