package pipeline

import (
	"sort"

	"fergusquote/internal/util"
)

// SortState is the only persisted sorting state, scoped to one
// rendered table: the active column and its direction. Repeated clicks
// on the same column toggle the direction; clicking another column
// resets to ascending.
type SortState struct {
	Column     string
	Descending bool
}

// Click records a header click and returns the direction to sort with.
func (s *SortState) Click(column string) bool {
	if s.Column == column {
		s.Descending = !s.Descending
	} else {
		s.Column = column
		s.Descending = false
	}
	return s.Descending
}

// SortGroupedRows reorders item rows within each section segment by
// the given column, leaving section and subtotal rows pinned to their
// segment boundaries. Rows before the first section row are left
// untouched. The sort is stable (ties keep input order), numeric for
// columns in NumericColumns and lexicographic otherwise, and the
// result is re-striped. Row count and identity are unchanged.
func SortGroupedRows(rows []PreviewRow, column string, descending bool) []PreviewRow {
	out := make([]PreviewRow, len(rows))
	copy(out, rows)

	numeric := NumericColumns[column]
	i := 0
	for i < len(out) {
		if out[i].Kind != RowSection {
			i++
			continue
		}

		var items []PreviewRow
		var subtotals []PreviewRow
		j := i + 1
		for j < len(out) && out[j].Kind != RowSection {
			if out[j].Kind == RowSubtotal {
				subtotals = append(subtotals, out[j])
			} else {
				items = append(items, out[j])
			}
			j++
		}

		sort.SliceStable(items, func(a, b int) bool {
			va := items[a].Cells[column]
			vb := items[b].Cells[column]
			if numeric {
				na, nb := util.ParseSigned(va), util.ParseSigned(vb)
				if descending {
					return na > nb
				}
				return na < nb
			}
			if descending {
				return va > vb
			}
			return va < vb
		})

		k := i + 1
		for _, row := range items {
			out[k] = row
			k++
		}
		for _, row := range subtotals {
			out[k] = row
			k++
		}
		i = j
	}

	return Restripe(out)
}

// Restripe reassigns alternating stripe markers to item rows only,
// counting visible item rows across the whole table so parity stays
// contiguous over segment boundaries. Section and subtotal rows keep
// no stripe.
func Restripe(rows []PreviewRow) []PreviewRow {
	out := make([]PreviewRow, len(rows))
	copy(out, rows)

	visible := 0
	for i := range out {
		if out[i].Kind != RowItem {
			out[i].Stripe = ""
			continue
		}
		if visible%2 == 0 {
			out[i].Stripe = StripeEven
		} else {
			out[i].Stripe = StripeOdd
		}
		visible++
	}
	return out
}
