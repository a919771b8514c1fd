package pipeline

import (
	"sort"
	"strings"

	"fergusquote/internal"
)

// DefaultGroupName labels items whose category field is blank.
const DefaultGroupName = "General"

type ItemGroup struct {
	Name  string
	Items []internal.RawItem
}

// GroupLabel is the effective group of one item: the trimmed category
// field, or DefaultGroupName when blank.
func GroupLabel(item internal.RawItem) string {
	g := strings.TrimSpace(item.Field(fieldGroup...))
	if g == "" {
		return DefaultGroupName
	}
	return g
}

// GroupItems partitions items by group label, preserving the order of
// first occurrence of each label and the input order within a group.
// Nothing is dropped here; filtering happens in the payload builder.
func GroupItems(items []internal.RawItem) []ItemGroup {
	index := map[string]int{}
	var groups []ItemGroup
	for _, item := range items {
		label := GroupLabel(item)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, ItemGroup{Name: label})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// GroupNames lists the distinct group labels in a batch, sorted, for
// presenting a selection list.
func GroupNames(items []internal.RawItem) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, item := range items {
		label := GroupLabel(item)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		names = append(names, label)
	}
	sort.Strings(names)
	return names
}

// FilterByGroups keeps only items whose group label is in selected.
// An empty selection keeps everything.
func FilterByGroups(items []internal.RawItem, selected []string) []internal.RawItem {
	if len(selected) == 0 {
		return items
	}
	want := map[string]struct{}{}
	for _, s := range selected {
		want[strings.TrimSpace(s)] = struct{}{}
	}
	out := make([]internal.RawItem, 0, len(items))
	for _, item := range items {
		if _, ok := want[GroupLabel(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}
