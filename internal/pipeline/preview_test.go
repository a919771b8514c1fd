package pipeline

import (
	"testing"

	"fergusquote/internal"
)

func TestBuildPreviewRows(t *testing.T) {
	cfg := testConfig()
	items := []internal.RawItem{
		item(map[string]string{"Name": "Paint", "Group": "Exterior", "Qty": "2", "Price Each": "$10", "Cost Each": "$6"}),
		item(map[string]string{"Group": "Exterior", "Qty": "1", "Price Each": "$5"}),
		item(map[string]string{"Name": "Sample", "Group": "Exterior", "Qty": "1", "Price Each": "$0"}),
		item(map[string]string{"Name": "Carpet", "Group": "Interior", "Qty": "5", "Price Each": "$30"}),
	}

	rows, grandTotal := BuildPreviewRows(cfg, items)
	wantKinds := []RowKind{RowSection, RowItem, RowItem, RowSubtotal, RowSection, RowItem, RowSubtotal}
	if len(rows) != len(wantKinds) {
		t.Fatalf("got %d rows: %+v", len(rows), rows)
	}
	for i, k := range wantKinds {
		if rows[i].Kind != k {
			t.Fatalf("row %d kind = %q, want %q", i, rows[i].Kind, k)
		}
	}

	if rows[0].Cells[ColName] != "Exterior" {
		t.Fatalf("section header = %q", rows[0].Cells[ColName])
	}
	paint := rows[1].Cells
	if paint[ColQty] != "2.00" || paint[ColCostEach] != "$6.00" || paint[ColPriceEach] != "$10.00" || paint[ColLineTotal] != "$20.00" {
		t.Fatalf("paint cells = %v", paint)
	}
	if rows[2].Cells[ColName] != "Sample" || rows[2].Cells[ColLineTotal] != "$0.00" {
		t.Fatalf("zero-price row should stay visible: %v", rows[2].Cells)
	}

	sub := rows[3].Cells
	if sub[ColPriceEach] != "Subtotal" || sub[ColLineTotal] != "$20.00" {
		t.Fatalf("subtotal cells = %v", sub)
	}
	if rows[6].Cells[ColLineTotal] != "$150.00" {
		t.Fatalf("interior subtotal = %q", rows[6].Cells[ColLineTotal])
	}
	if grandTotal != 170 {
		t.Fatalf("grand total = %v", grandTotal)
	}
}

func TestBuildPreviewRowsStripes(t *testing.T) {
	cfg := testConfig()
	items := []internal.RawItem{
		item(map[string]string{"Name": "a", "Group": "G1", "Qty": "1", "Price Each": "$1"}),
		item(map[string]string{"Name": "b", "Group": "G1", "Qty": "1", "Price Each": "$1"}),
		item(map[string]string{"Name": "c", "Group": "G2", "Qty": "1", "Price Each": "$1"}),
	}
	rows, _ := BuildPreviewRows(cfg, items)

	var stripes []Stripe
	for _, row := range rows {
		if row.Kind == RowItem {
			stripes = append(stripes, row.Stripe)
		} else if row.Stripe != "" {
			t.Fatalf("%s row carries stripe %q", row.Kind, row.Stripe)
		}
	}
	want := []Stripe{StripeEven, StripeOdd, StripeEven}
	for i := range want {
		if stripes[i] != want[i] {
			t.Fatalf("stripes = %v, want %v", stripes, want)
		}
	}
}
