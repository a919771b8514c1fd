package pipeline

import (
	"fmt"

	"fergusquote/internal"
	"fergusquote/internal/config"
	"fergusquote/internal/util"
)

type RowKind string

const (
	RowSection  RowKind = "section"
	RowItem     RowKind = "item"
	RowSubtotal RowKind = "subtotal"
)

type Stripe string

const (
	StripeEven Stripe = "even"
	StripeOdd  Stripe = "odd"
)

// Preview table columns, in display order.
const (
	ColName      = "Name"
	ColQty       = "Qty"
	ColCostEach  = "Cost Each"
	ColPriceEach = "Price Each"
	ColLineTotal = "Line Total"
)

var PreviewColumns = []string{ColName, ColQty, ColCostEach, ColPriceEach, ColLineTotal}

// NumericColumns marks the columns compared numerically when sorting.
var NumericColumns = map[string]bool{
	ColQty:       true,
	ColCostEach:  true,
	ColPriceEach: true,
	ColLineTotal: true,
}

// PreviewRow is one rendered row of the quote preview table. A
// "section" row opens a segment, a "subtotal" row closes it, and the
// item rows in between belong to that segment.
type PreviewRow struct {
	Kind   RowKind
	Cells  map[string]string
	Stripe Stripe
}

// BuildPreviewRows renders a batch into the flat section/item/subtotal
// row sequence shown to the operator, with per-section subtotals and
// the grand total. Rows with an empty normalized name are hidden from
// the preview; zero-price rows stay visible so the operator can see
// what the payload builder will later drop.
func BuildPreviewRows(cfg config.Config, items []internal.RawItem) ([]PreviewRow, float64) {
	var rows []PreviewRow
	grandTotal := 0.0

	for _, group := range GroupItems(items) {
		rows = append(rows, PreviewRow{
			Kind:  RowSection,
			Cells: map[string]string{ColName: group.Name, ColQty: "", ColCostEach: "", ColPriceEach: "", ColLineTotal: ""},
		})
		sectionTotal := 0.0
		for _, item := range group.Items {
			line := ComputeLine(cfg, item)
			if line.Name == "" {
				continue
			}
			sectionTotal += line.LineTotal
			grandTotal += line.LineTotal
			rows = append(rows, PreviewRow{
				Kind: RowItem,
				Cells: map[string]string{
					ColName:      line.Name,
					ColQty:       fmt.Sprintf("%.2f", line.Quantity),
					ColCostEach:  util.FormatMoney(line.UnitCost),
					ColPriceEach: util.FormatMoney(line.UnitPrice),
					ColLineTotal: util.FormatMoney(line.LineTotal),
				},
			})
		}
		rows = append(rows, PreviewRow{
			Kind:  RowSubtotal,
			Cells: map[string]string{ColName: "", ColQty: "", ColCostEach: "", ColPriceEach: "Subtotal", ColLineTotal: util.FormatMoney(sectionTotal)},
		})
	}

	return Restripe(rows), grandTotal
}
