package docbasis

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/haldor-ness/docbasis/basis"
	"github.com/haldor-ness/docbasis/config"
	"github.com/haldor-ness/docbasis/graph"
	"github.com/haldor-ness/docbasis/harvest"
	"github.com/haldor-ness/docbasis/htmlpre"
	"github.com/haldor-ness/docbasis/internal/trace"
	"github.com/haldor-ness/docbasis/xerr"
	"github.com/haldor-ness/docbasis/xmlnode"
)

// Result is what Normalize and NormalizeFile return on success: the
// harvested value (a plain map[string]any/[]any/primitive tree, directly
// encodable via encoding/json.Marshal) plus the basis graph that produced
// it, in case a caller wants to inspect or reuse the learned structure.
type Result struct {
	Value      any
	BasisArena *graph.Arena[basis.Node]
	BasisRoot  graph.Handle
}

// Normalize runs the full pipeline over text: preprocess (HTML-to-XHTML
// when text is not already valid XML), build the input and output
// trees, absorb, cyclize, prune, interpret via cfg's oracle and cache,
// and harvest the output tree guided by the resulting basis graph.
//
// cfg supplies the oracle, the KV store, pacing, and a logger — the
// explicit Context threaded through the pipeline instead of package
// globals, per spec section 9's design note.
func Normalize(ctx context.Context, cfg *config.Context, text string) (Result, error) {
	op := trace.Begin(ctx, cfg.Logger, "docbasis.normalize")
	result, err := normalize(ctx, cfg, text)
	op.End(err)
	return result, err
}

// NormalizeFile reads path and runs Normalize over its contents.
func NormalizeFile(ctx context.Context, cfg *config.Context, path string) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, xerr.New(xerr.DocumentNotProvided, "normalize_file", "read input file").WithCause(err)
	}
	return Normalize(ctx, cfg, string(raw))
}

func normalize(ctx context.Context, cfg *config.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, xerr.New(xerr.DocumentNotProvided, "normalize", "input is empty or whitespace-only")
	}

	xmlText, err := resolveXML(ctx, cfg, text)
	if err != nil {
		return Result{}, err
	}

	inputTree, err := xmlnode.BuildTree(xmlText)
	if err != nil {
		return Result{}, err
	}
	outputTree, err := xmlnode.BuildTree(xmlText)
	if err != nil {
		return Result{}, err
	}

	basisArena, basisRoot := basis.NewGraph()

	absorbOp := trace.Begin(ctx, cfg.Logger, "docbasis.basis.absorb")
	basis.Absorb(basisArena, basisRoot, inputTree.Arena, inputTree.Root)
	basis.CaptureSubtreeHashes(basisArena, basisRoot)
	absorbOp.End(nil)

	cyclizeOp := trace.Begin(ctx, cfg.Logger, "docbasis.basis.cyclize")
	basis.Cyclize(basisArena)
	cyclizeOp.End(nil)

	pruneOp := trace.Begin(ctx, cfg.Logger, "docbasis.basis.prune")
	basis.Prune(basisArena)
	pruneOp.End(nil)

	corePurpose, err := classify(ctx, cfg, xmlText)
	if err != nil {
		return Result{}, err
	}

	if cfg.PacingDelay > 0 {
		basis.SetPacingDelay(cfg.PacingDelay)
	}
	interpretOp := trace.Begin(ctx, cfg.Logger, "docbasis.basis.interpret")
	err = basis.Interpret(ctx, basisArena, basisRoot, cfg.Oracle, corePurpose)
	interpretOp.End(err)
	if err != nil {
		return Result{}, err
	}

	harvestOp := trace.Begin(ctx, cfg.Logger, "docbasis.harvest.harvest")
	value, err := harvest.Harvest(outputTree.Arena, outputTree.Root, basisArena, basisRoot)
	harvestOp.End(err)
	if err != nil {
		return Result{}, err
	}

	return Result{Value: value, BasisArena: basisArena, BasisRoot: basisRoot}, nil
}

// resolveXML returns xmlText unchanged if it already parses as XML,
// otherwise attempts HTML-to-XHTML conversion via htmlpre. Fails with
// UnexpectedDocumentType if neither path produces valid XML.
func resolveXML(ctx context.Context, cfg *config.Context, text string) (string, error) {
	if _, err := xmlnode.BuildTree(text); err == nil {
		return text, nil
	}

	converted, err := htmlpre.Convert(ctx, cfg.Logger, text)
	if err != nil {
		var xe *xerr.Error
		if errors.As(err, &xe) {
			return "", xerr.New(xerr.UnexpectedDocumentType, "normalize", "input is neither valid XML nor convertible HTML").WithCause(xe)
		}
		return "", err
	}

	if _, err := xmlnode.BuildTree(converted); err != nil {
		return "", xerr.New(xerr.UnexpectedDocumentType, "normalize", "html-converted input still did not parse as xml").WithCause(err)
	}
	return converted, nil
}

// classify obtains the page's core purpose via a single, uncached
// oracle.GetPageType call — spec section 6 only assigns KV-store key
// domains to NodeData vectors and complex type names, so page
// classification always goes straight to the underlying oracle.
func classify(ctx context.Context, cfg *config.Context, xmlText string) (string, error) {
	classification, err := cfg.Oracle.Oracle.GetPageType(ctx, xmlText)
	if err != nil {
		return "", xerr.New(xerr.OracleFailure, "get_page_type", "oracle call failed").WithCause(err)
	}
	return classification.CorePurpose, nil
}
