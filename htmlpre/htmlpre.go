// Package htmlpre converts HTML text into the well-formed XHTML string
// the rest of the pipeline expects, per spec section 6's "HTML
// preprocessing contract": blacklisted attributes stripped, entities
// decoded, comments dropped with a warning, and the result re-serialized
// as well-formed XML.
//
// Parsing uses golang.org/x/net/html, which builds a DOM-shaped tree and
// decodes entities as part of tokenizing — the same parser family the
// retrieved xmlquery/go-xml examples build on for HTML-adjacent trees.
package htmlpre

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/haldor-ness/docbasis/hashing"
	"github.com/haldor-ness/docbasis/internal/trace"
	"github.com/haldor-ness/docbasis/xerr"
)

// voidElements never carry a closing tag in HTML and must be
// self-closed when re-serialized as XML.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

// Convert parses text as HTML and re-serializes it as well-formed XHTML
// text, ready for xmlnode.BuildTree. Comments encountered anywhere in
// the document are dropped; each drop is logged at Warn via logger (a
// nil logger is accepted and simply means no warnings are emitted).
//
// Returns a *xerr.Error of kind xerr.UnexpectedDocumentType if text
// cannot be parsed as HTML at all.
func Convert(ctx context.Context, logger *slog.Logger, text string) (string, error) {
	op := trace.Begin(ctx, logger, "docbasis.htmlpre.convert")
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		op.End(err)
		return "", xerr.New(xerr.UnexpectedDocumentType, "htmlpre", fmt.Sprintf("parse html: %v", err))
	}

	root := findDocumentElement(doc)
	if root == nil {
		err := xerr.New(xerr.UnexpectedDocumentType, "htmlpre", "html document has no root element")
		op.End(err)
		return "", err
	}

	var b strings.Builder
	writeElement(ctx, logger, &b, root)
	op.End(nil)
	return b.String(), nil
}

// findDocumentElement locates the <html> element (or, failing that, the
// first element node) under doc, skipping the doctype and any top-level
// comments x/net/html attaches as siblings of <html>.
func findDocumentElement(doc *html.Node) *html.Node {
	var first *html.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Html {
			return c
		}
		if first == nil {
			first = c
		}
	}
	return first
}

func writeElement(ctx context.Context, logger *slog.Logger, b *strings.Builder, n *html.Node) {
	tag := n.Data
	fmt.Fprintf(b, "<%s", tag)
	for _, a := range n.Attr {
		name := attrName(a)
		if hashing.IsBlacklistedAttribute(name) {
			continue
		}
		fmt.Fprintf(b, " %s=%q", name, html.EscapeString(norm.NFC.String(a.Val)))
	}

	if voidElements[n.DataAtom] && n.FirstChild == nil {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeChild(ctx, logger, b, c)
	}

	fmt.Fprintf(b, "</%s>", tag)
}

func writeChild(ctx context.Context, logger *slog.Logger, b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		writeElement(ctx, logger, b, n)
	case html.TextNode:
		// HTML text commonly arrives in a mix of composed/decomposed
		// Unicode forms (copy-pasted content, different authoring
		// tools); normalize to NFC so the hashing package's node/text
		// hashing sees one canonical byte sequence per logical string.
		b.WriteString(html.EscapeString(norm.NFC.String(n.Data)))
	case html.CommentNode:
		trace.Warn(ctx, logger, "htmlpre dropped comment", slog.String("op", "docbasis.htmlpre.convert"))
	case html.DoctypeNode, html.DocumentNode:
		// Not reachable below the document element; nothing to emit.
	}
}

func attrName(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}
