package docbasis

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/haldor-ness/docbasis/config"
	"github.com/haldor-ness/docbasis/kvstore"
	"github.com/haldor-ness/docbasis/oracle"
	"github.com/haldor-ness/docbasis/oracle/cached"
	"github.com/haldor-ness/docbasis/xerr"
)

// scriptedOracle answers every oracle.Oracle call with a fixed,
// deterministic response, so end-to-end scenarios don't depend on a
// live LLM backend.
type scriptedOracle struct {
	elementCalls int
	nodeCalls    int
}

func (o *scriptedOracle) GetPageType(ctx context.Context, page string) (oracle.PageClassification, error) {
	return oracle.PageClassification{CorePurpose: "test fixture"}, nil
}

func (o *scriptedOracle) InterpretAssociations(ctx context.Context, snippets [][2]string) ([][]string, error) {
	return nil, nil
}

func (o *scriptedOracle) InterpretDataStructure(ctx context.Context, snippets []string) (oracle.RecursiveStructure, error) {
	return oracle.RecursiveStructure{}, nil
}

func (o *scriptedOracle) InterpretElementData(ctx context.Context, attributes, snippets []string, corePurpose string) ([]oracle.NodeData, error) {
	o.elementCalls++
	return []oracle.NodeData{{Name: "field", Element: &oracle.ElementFields{Attribute: attributes[0]}}}, nil
}

func (o *scriptedOracle) InterpretTextData(ctx context.Context, snippets []string, corePurpose string) (oracle.NodeData, error) {
	return oracle.NodeData{Name: "text", Text: &oracle.TextFields{Informational: true}}, nil
}

func (o *scriptedOracle) InterpretNode(ctx context.Context, descriptor string) (string, error) {
	o.nodeCalls++
	return "Widget", nil
}

func newTestContext(t *testing.T, o oracle.Oracle) *config.Context {
	t.Helper()
	store, err := kvstore.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return &config.Context{
		Oracle:      cached.New(o, store),
		Store:       store,
		PacingDelay: 1,
	}
}

func TestNormalize_EmptyInputReportsDocumentNotProvided(t *testing.T) {
	cfg := newTestContext(t, &scriptedOracle{})
	_, err := Normalize(context.Background(), cfg, "   \n\t  ")
	require.Error(t, err)
	require.ErrorIs(t, err, xerr.New(xerr.DocumentNotProvided, "", ""))
}

func TestNormalize_UnparseableInputReportsUnexpectedDocumentType(t *testing.T) {
	cfg := newTestContext(t, &scriptedOracle{})
	_, err := Normalize(context.Background(), cfg, "this is neither xml nor html <<< }")
	require.Error(t, err)
}

func TestNormalize_TrivialElementYieldsEmptyObject(t *testing.T) {
	cfg := newTestContext(t, &scriptedOracle{})
	result, err := Normalize(context.Background(), cfg, `<r><a/></r>`)
	require.NoError(t, err)
	m, ok := result.Value.(map[string]any)
	require.True(t, ok, "expected a map result, got %#v", result.Value)
	require.Equal(t, 0, len(m))
}

func TestNormalize_AttributefulLeafProducesFlattenedField(t *testing.T) {
	so := &scriptedOracle{}
	cfg := newTestContext(t, so)
	result, err := Normalize(context.Background(), cfg, `<r><a href="x"/></r>`)
	require.NoError(t, err)
	m, ok := result.Value.(map[string]any)
	require.True(t, ok, "expected a map result, got %#v", result.Value)
	field, ok := m["field"]
	require.True(t, ok, "expected a 'field' key in the harvested object, got %v", m)
	s, ok := field.(string)
	require.True(t, ok)
	require.Equal(t, "x", s)
}

func TestNormalize_SecondRunAgainstSameCacheMakesNoNewElementCalls(t *testing.T) {
	so := &scriptedOracle{}
	store, err := kvstore.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer store.Close()
	cfg := &config.Context{Oracle: cached.New(so, store), Store: store, PacingDelay: 1}

	_, err = Normalize(context.Background(), cfg, `<r><a href="x"/><b href="y"/></r>`)
	require.NoError(t, err)
	first := so.elementCalls
	require.Greater(t, first, 0)

	_, err = Normalize(context.Background(), cfg, `<r><a href="x"/><b href="y"/></r>`)
	require.NoError(t, err)
	require.Equal(t, first, so.elementCalls)
}

func TestNormalize_HTMLInputIsPreprocessedAndNormalized(t *testing.T) {
	cfg := newTestContext(t, &scriptedOracle{})
	result, err := Normalize(context.Background(), cfg, `<html><body><a href="x">hi</a><br></body></html>`)
	require.NoError(t, err)
	require.NotNil(t, result.Value)
}
