package pipeline

import (
	"testing"
)

func previewFixture() []PreviewRow {
	mk := func(kind RowKind, name, qty, price, total string) PreviewRow {
		return PreviewRow{Kind: kind, Cells: map[string]string{
			ColName: name, ColQty: qty, ColCostEach: "", ColPriceEach: price, ColLineTotal: total,
		}}
	}
	return Restripe([]PreviewRow{
		mk(RowSection, "Exterior", "", "", ""),
		mk(RowItem, "Paint", "15.00", "$10.00", "$150.00"),
		mk(RowItem, "Brush", "3.00", "$4.00", "$12.00"),
		mk(RowItem, "Ladder", "1.00", "$90.00", "$90.00"),
		mk(RowSubtotal, "", "", "Subtotal", "$252.00"),
		mk(RowSection, "Interior", "", "", ""),
		mk(RowItem, "Carpet", "5.00", "$30.00", "$150.00"),
		mk(RowItem, "Underlay", "5.00", "$8.00", "$40.00"),
		mk(RowSubtotal, "", "", "Subtotal", "$190.00"),
	})
}

func itemNames(rows []PreviewRow) []string {
	var names []string
	for _, row := range rows {
		if row.Kind == RowItem {
			names = append(names, row.Cells[ColName])
		}
	}
	return names
}

func TestSortGroupedRowsNumeric(t *testing.T) {
	rows := previewFixture()
	sorted := SortGroupedRows(rows, ColPriceEach, false)

	if len(sorted) != len(rows) {
		t.Fatalf("row count changed: %d -> %d", len(rows), len(sorted))
	}
	want := []string{"Brush", "Paint", "Ladder", "Underlay", "Carpet"}
	got := itemNames(sorted)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	if sorted[0].Kind != RowSection || sorted[4].Kind != RowSubtotal || sorted[5].Kind != RowSection || sorted[8].Kind != RowSubtotal {
		t.Fatalf("boundary rows moved: %v", kinds(sorted))
	}
	if sorted[4].Cells[ColLineTotal] != "$252.00" {
		t.Fatalf("subtotal left its segment: %q", sorted[4].Cells[ColLineTotal])
	}
}

func TestSortGroupedRowsDescending(t *testing.T) {
	sorted := SortGroupedRows(previewFixture(), ColLineTotal, true)
	want := []string{"Paint", "Ladder", "Brush", "Carpet", "Underlay"}
	got := itemNames(sorted)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortGroupedRowsLexicographic(t *testing.T) {
	sorted := SortGroupedRows(previewFixture(), ColName, false)
	want := []string{"Brush", "Ladder", "Paint", "Carpet", "Underlay"}
	got := itemNames(sorted)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortGroupedRowsStableTies(t *testing.T) {
	sorted := SortGroupedRows(previewFixture(), ColQty, false)
	got := itemNames(sorted)
	// Carpet and Underlay tie on qty and must keep input order.
	if got[3] != "Carpet" || got[4] != "Underlay" {
		t.Fatalf("tie order = %v", got)
	}
}

func TestSortGroupedRowsRestripes(t *testing.T) {
	sorted := SortGroupedRows(previewFixture(), ColPriceEach, true)
	want := []Stripe{StripeEven, StripeOdd, StripeEven, StripeOdd, StripeEven}
	var got []Stripe
	for _, row := range sorted {
		if row.Kind == RowItem {
			got = append(got, row.Stripe)
		}
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stripes = %v, want %v", got, want)
		}
	}
}

func TestSortGroupedRowsLeadingRowsUntouched(t *testing.T) {
	mk := func(kind RowKind, name string) PreviewRow {
		return PreviewRow{Kind: kind, Cells: map[string]string{ColName: name, ColQty: "", ColCostEach: "", ColPriceEach: "", ColLineTotal: ""}}
	}
	rows := []PreviewRow{
		mk(RowItem, "zeta"),
		mk(RowItem, "alpha"),
		mk(RowSection, "G1"),
		mk(RowItem, "beta"),
		mk(RowItem, "acorn"),
		mk(RowSubtotal, ""),
	}
	sorted := SortGroupedRows(rows, ColName, false)
	if sorted[0].Cells[ColName] != "zeta" || sorted[1].Cells[ColName] != "alpha" {
		t.Fatalf("rows before first section reordered: %v", itemNames(sorted))
	}
	if sorted[3].Cells[ColName] != "acorn" || sorted[4].Cells[ColName] != "beta" {
		t.Fatalf("segment not sorted: %v", itemNames(sorted))
	}
}

func TestSortStateClick(t *testing.T) {
	var s SortState
	if desc := s.Click(ColQty); desc {
		t.Fatal("first click should sort ascending")
	}
	if desc := s.Click(ColQty); !desc {
		t.Fatal("second click on same column should toggle to descending")
	}
	if desc := s.Click(ColName); desc {
		t.Fatal("click on a new column should reset to ascending")
	}
	if s.Column != ColName {
		t.Fatalf("column = %q", s.Column)
	}
}

func kinds(rows []PreviewRow) []RowKind {
	out := make([]RowKind, len(rows))
	for i, row := range rows {
		out[i] = row.Kind
	}
	return out
}
