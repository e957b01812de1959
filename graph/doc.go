// Package graph provides the shared-mutable graph substrate used by the
// document trees and the basis graph.
//
// An [Arena][T] owns a slice of nodes addressed by integer [Handle] values.
// Parent/child references between nodes are handles, not pointers, so the
// graph can hold cycles (introduced by basis.Cyclize) without any of the
// reference-counting hazards a pointer-and-Rc graph would have. This is the
// arena-plus-index re-architecture: mutations take an exclusive borrow of
// the arena, and cycles are ordinary integer data rather than ownership
// cycles.
//
// # Thread Safety
//
// [Arena] is NOT safe for concurrent mutation. The pipeline that consumes
// it (package basis) runs single-threaded per the pipeline's scheduling
// model: absorb, cyclize, prune, and interpret each take an exclusive pass
// over one arena before handing it to the next stage. This is a deliberate
// departure from other graphs in this codebase that are built concurrently;
// see DESIGN.md.
//
// # Identity
//
// Every node additionally carries a stable [github.com/google/uuid.UUID]
// identity, minted once at [Arena.New] and never reassigned. Handles are
// arena-local and cheap to compare. Payloads are never re-parented across
// arenas: content that appears in a second arena is a freshly minted node
// there, with its own new UUID.
package graph
