// Package location provides minimal source position tracking used when
// reporting a malformed-XML error.
//
// # Position
//
// Position identifies a point in a UTF-8 encoded source file:
//   - Line: 1-based line number (0 = unknown)
//   - Column: 1-based column counting Unicode code points (runes), not bytes
//   - Byte: 0-based byte offset (-1 = unknown)
//
// Use IsZero() to check for unknown positions and IsKnown() to check for
// valid line/column.
//
// Unlike the source tier this package was adapted from, docbasis has no
// multi-file source registry, no canonical path deduplication, and no span
// ranges to track: every normalize call parses exactly one in-memory XML
// string, and the only location ever surfaced to a caller is "line N of
// the document that failed to parse". CanonicalPath, SourceID, Span, and
// PositionRegistry were dropped for that reason; see DESIGN.md.
//
// # Dependencies
//
// This package depends only on the standard library, enabling it to be
// imported by every other package without import cycles.
package location
