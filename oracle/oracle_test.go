package oracle

import "testing"

func TestNodeData_IsTextDataAndIsElementData(t *testing.T) {
	text := NodeData{Name: "text", Text: &TextFields{Informational: true}}
	if !text.IsTextData() || text.IsElementData() {
		t.Fatalf("text NodeData classified incorrectly: %+v", text)
	}

	element := NodeData{Name: "link", Element: &ElementFields{Attribute: "href"}}
	if element.IsTextData() || !element.IsElementData() {
		t.Fatalf("element NodeData classified incorrectly: %+v", element)
	}

	empty := NodeData{Name: "mystery"}
	if empty.IsTextData() || empty.IsElementData() {
		t.Fatalf("NodeData with neither field set should be neither text nor element: %+v", empty)
	}
}
