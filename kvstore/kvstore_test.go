package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/haldor-ness/docbasis/oracle"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_NodeDataMissThenHit(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.GetNodeData("deadbeef")
	if err != nil {
		t.Fatalf("GetNodeData returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss on an empty store")
	}

	want := []oracle.NodeData{{Name: "link", Element: &oracle.ElementFields{Attribute: "href"}}}
	if err := s.PutNodeData("deadbeef", want); err != nil {
		t.Fatalf("PutNodeData returned error: %v", err)
	}

	got, ok, err := s.GetNodeData("deadbeef")
	if err != nil {
		t.Fatalf("GetNodeData returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a hit after Put")
	}
	if len(got) != 1 || got[0].Name != "link" || got[0].Element == nil || got[0].Element.Attribute != "href" {
		t.Fatalf("GetNodeData roundtrip mismatch: %+v", got)
	}
}

func TestStore_ComplexTypeMissThenHit(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.GetComplexType("abc123")
	if err != nil {
		t.Fatalf("GetComplexType returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss on an empty store")
	}

	if err := s.PutComplexType("abc123", "Article"); err != nil {
		t.Fatalf("PutComplexType returned error: %v", err)
	}

	name, ok, err := s.GetComplexType("abc123")
	if err != nil {
		t.Fatalf("GetComplexType returned error: %v", err)
	}
	if !ok || name != "Article" {
		t.Fatalf("GetComplexType = (%q, %v), want (Article, true)", name, ok)
	}
}

func TestStore_NodeDataAndComplexTypeNamespacesAreDisjoint(t *testing.T) {
	s := openTestStore(t)

	if err := s.PutNodeData("shared", []oracle.NodeData{{Name: "text", Text: &oracle.TextFields{Informational: true}}}); err != nil {
		t.Fatalf("PutNodeData returned error: %v", err)
	}
	if err := s.PutComplexType("shared", "Paragraph"); err != nil {
		t.Fatalf("PutComplexType returned error: %v", err)
	}

	nd, ok, err := s.GetNodeData("shared")
	if err != nil || !ok || len(nd) != 1 || nd[0].Name != "text" {
		t.Fatalf("GetNodeData(shared) = (%+v, %v, %v), want text NodeData", nd, ok, err)
	}
	ct, ok, err := s.GetComplexType("shared")
	if err != nil || !ok || ct != "Paragraph" {
		t.Fatalf("GetComplexType(shared) = (%q, %v, %v), want (Paragraph, true, nil)", ct, ok, err)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s1.PutComplexType("h1", "Widget"); err != nil {
		t.Fatalf("PutComplexType returned error: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer s2.Close()

	name, ok, err := s2.GetComplexType("h1")
	if err != nil || !ok || name != "Widget" {
		t.Fatalf("GetComplexType after reopen = (%q, %v, %v), want (Widget, true, nil)", name, ok, err)
	}
}
