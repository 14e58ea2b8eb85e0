package catalog

import (
	"encoding/json"
	"testing"
)

const sampleCategoryJSON = `{
  "category": "Текст і чат",
  "color": "#38BDF8",
  "items": [
    {"name": "Claude", "href": "https://claude.ai", "desc": "Assistant"},
    {"group": "Переклад", "items": [
      {"name": "DeepL", "href": "https://www.deepl.com", "desc": "Translator"},
      {"name": "Reverso", "href": "https://www.reverso.net", "desc": "Context"}
    ]}
  ]
}`

func TestItemUnmarshalUnion(t *testing.T) {
	var cat Category
	if err := json.Unmarshal([]byte(sampleCategoryJSON), &cat); err != nil {
		t.Fatalf("unmarshal category: %v", err)
	}
	if len(cat.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(cat.Items))
	}
	if cat.Items[0].IsGroup() {
		t.Fatalf("first item decoded as group")
	}
	if got := cat.Items[0].Service.Name; got != "Claude" {
		t.Fatalf("service name = %q", got)
	}
	if !cat.Items[1].IsGroup() {
		t.Fatalf("second item not decoded as group")
	}
	if got := cat.Items[1].Group.Group; got != "Переклад" {
		t.Fatalf("group name = %q", got)
	}
	if got := len(cat.Items[1].Group.Items); got != 2 {
		t.Fatalf("group items = %d, want 2", got)
	}
}

func TestItemMarshalRoundTrip(t *testing.T) {
	var cat Category
	if err := json.Unmarshal([]byte(sampleCategoryJSON), &cat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data, err := json.Marshal(cat)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Category
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if !again.Items[1].IsGroup() || again.Items[1].Group.Group != "Переклад" {
		t.Fatalf("round trip lost the group side of the union")
	}
}

func TestFlattenServices(t *testing.T) {
	var cat Category
	if err := json.Unmarshal([]byte(sampleCategoryJSON), &cat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	services := FlattenServices([]Category{cat})
	want := []string{"Claude", "DeepL", "Reverso"}
	if len(services) != len(want) {
		t.Fatalf("services = %d, want %d", len(services), len(want))
	}
	for i, name := range want {
		if services[i].Name != name {
			t.Fatalf("services[%d] = %q, want %q", i, services[i].Name, name)
		}
	}
}
