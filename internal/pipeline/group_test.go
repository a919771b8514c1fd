package pipeline

import (
	"testing"

	"fergusquote/internal"
)

func TestGroupItemsFirstSeenOrder(t *testing.T) {
	items := []internal.RawItem{
		item(map[string]string{"Name": "a", "Group": "Exterior"}),
		item(map[string]string{"Name": "b", "Group": "Interior"}),
		item(map[string]string{"Name": "c", "Group": "Exterior"}),
		item(map[string]string{"Name": "d"}),
		item(map[string]string{"Name": "e", "Group": " Interior "}),
	}

	groups := GroupItems(items)
	wantNames := []string{"Exterior", "Interior", "General"}
	if len(groups) != len(wantNames) {
		t.Fatalf("got %d groups, want %d", len(groups), len(wantNames))
	}
	total := 0
	for i, g := range groups {
		if g.Name != wantNames[i] {
			t.Fatalf("group %d = %q, want %q", i, g.Name, wantNames[i])
		}
		total += len(g.Items)
	}
	if total != len(items) {
		t.Fatalf("grouping dropped items: %d of %d", total, len(items))
	}
	if got := ItemName(groups[0].Items[1]); got != "c" {
		t.Fatalf("input order not preserved within group: %q", got)
	}
}

func TestGroupLabelSectionAlias(t *testing.T) {
	raw := item(map[string]string{"Name": "a", "Section": "Roof"})
	if got := GroupLabel(raw); got != "Roof" {
		t.Fatalf("GroupLabel = %q", got)
	}
}

func TestGroupNamesSorted(t *testing.T) {
	items := []internal.RawItem{
		item(map[string]string{"Name": "a", "Group": "Zed"}),
		item(map[string]string{"Name": "b", "Group": "Alpha"}),
		item(map[string]string{"Name": "c"}),
		item(map[string]string{"Name": "d", "Group": "Zed"}),
	}
	names := GroupNames(items)
	want := []string{"Alpha", "General", "Zed"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestFilterByGroups(t *testing.T) {
	items := []internal.RawItem{
		item(map[string]string{"Name": "a", "Group": "Exterior"}),
		item(map[string]string{"Name": "b"}),
		item(map[string]string{"Name": "c", "Group": "Interior"}),
	}

	out := FilterByGroups(items, []string{"Exterior", "General"})
	if len(out) != 2 || ItemName(out[0]) != "a" || ItemName(out[1]) != "b" {
		t.Fatalf("filtered = %v", out)
	}

	if got := FilterByGroups(items, nil); len(got) != 3 {
		t.Fatalf("empty selection should keep all, got %d", len(got))
	}
}
