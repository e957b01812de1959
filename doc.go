// Package docbasis learns a reusable "basis graph" of structural
// patterns from a semi-structured markup document and uses it to
// extract typed data back out of that same document.
//
// # Architecture Overview
//
// The module is organized the way the pipeline itself runs, front to
// back:
//
//	Foundation tier (no internal dependencies):
//	  - location: source positions for parse errors
//	  - hashing: content-addressed node/subtree/ancestry hashing
//	  - graph: arena-plus-handle graph substrate
//
//	Core pipeline tier:
//	  - xmlnode: XML tree builder
//	  - basis: absorb, cyclize, prune, interpret
//	  - harvest: lineage lookup and traversal-guided extraction
//	  - oracle, oracle/cached: the classifier oracle and its cache
//	  - oracle/openaiprovider, oracle/anthropicprovider,
//	    oracle/groqprovider: concrete oracle backends
//
//	Ambient tier:
//	  - htmlpre: HTML-to-XHTML preprocessing
//	  - kvstore: the embedded content-addressed store
//	  - config: configuration loading and Context assembly
//	  - xerr: the pipeline's error taxonomy
//
// # Entry Points
//
//	import "github.com/haldor-ness/docbasis"
//
//	cfg, err := config.Load("docbasis.jsonc", nil)
//	if err != nil {
//	    // I/O or configuration error
//	}
//	defer cfg.Close()
//
//	result, err := docbasis.Normalize(ctx, cfg, text)
//	if err != nil {
//	    // DocumentNotProvided, UnexpectedDocumentType, MalformedXml,
//	    // OracleFailure, CacheFailure, or InternalInvariantViolation
//	}
//
// # Subpackages
//
//   - [github.com/haldor-ness/docbasis/hashing]: content-addressed hashing
//   - [github.com/haldor-ness/docbasis/graph]: arena graph substrate
//   - [github.com/haldor-ness/docbasis/xmlnode]: XML tree builder
//   - [github.com/haldor-ness/docbasis/basis]: absorb/cyclize/prune/interpret
//   - [github.com/haldor-ness/docbasis/harvest]: traversal-guided extraction
//   - [github.com/haldor-ness/docbasis/oracle]: the classifier capability set
//   - [github.com/haldor-ness/docbasis/htmlpre]: HTML-to-XHTML preprocessing
//   - [github.com/haldor-ness/docbasis/kvstore]: the embedded content cache
//   - [github.com/haldor-ness/docbasis/config]: configuration and Context
//   - [github.com/haldor-ness/docbasis/xerr]: the error taxonomy
package docbasis
