package openaiwire

import (
	"testing"

	"github.com/haldor-ness/docbasis/oracle"
)

func TestDecodeJSON_PlainObject(t *testing.T) {
	out, err := decodeJSON[oracle.PageClassification](`{"page_type_id":"p1","name":"Article","core_purpose":"news","has_recursive":false}`)
	if err != nil {
		t.Fatalf("decodeJSON returned error: %v", err)
	}
	if out.Name != "Article" || out.CorePurpose != "news" {
		t.Fatalf("decodeJSON mismatch: %+v", out)
	}
}

func TestDecodeJSON_StripsMarkdownFence(t *testing.T) {
	raw := "```json\n{\"page_type_id\":\"p1\",\"name\":\"Article\",\"core_purpose\":\"news\",\"has_recursive\":true}\n```"
	out, err := decodeJSON[oracle.PageClassification](raw)
	if err != nil {
		t.Fatalf("decodeJSON returned error: %v", err)
	}
	if !out.HasRecursive {
		t.Fatalf("decodeJSON mismatch: %+v", out)
	}
}

func TestWireNodeData_ToNodeData_ElementFields(t *testing.T) {
	w := wireNodeData{Name: "link", ElementFields: &struct {
		Attribute string `json:"attribute"`
		IsID      bool   `json:"is_id"`
	}{Attribute: "href", IsID: true}}

	nd := w.toNodeData()
	if !nd.IsElementData() || nd.Element.Attribute != "href" || !nd.Element.IsID {
		t.Fatalf("toNodeData mismatch: %+v", nd)
	}
}

func TestWireNodeData_ToNodeData_TextFields(t *testing.T) {
	w := wireNodeData{Name: "text", TextFields: &struct {
		Informational bool `json:"informational"`
	}{Informational: true}}

	nd := w.toNodeData()
	if !nd.IsTextData() || !nd.Text.Informational {
		t.Fatalf("toNodeData mismatch: %+v", nd)
	}
}
