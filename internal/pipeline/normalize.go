package pipeline

import (
	"math"
	"strconv"
	"strings"

	"fergusquote/internal"
	"fergusquote/internal/config"
	"fergusquote/internal/util"
)

// Canonical field names with the alternate spellings the extraction
// front-ends are known to produce, tried in priority order.
var (
	fieldName        = []string{"Name"}
	fieldDescription = []string{"Description"}
	fieldGroup       = []string{"Group", "Section"}
	fieldQty         = []string{"Qty", "Quantity"}
	fieldUnits       = []string{"Units", "Unit"}
	fieldHours       = []string{"Hours"}
	fieldPriceEach   = []string{"Price Each", "Unit Price", "Price"}
	fieldCostEach    = []string{"Cost Each", "Unit Cost", "Cost"}
	fieldPriceTotal  = []string{"Price Total", "Total", "Result"}
	fieldType        = []string{"Type"}
	fieldJobNumber   = []string{"Job Number"}
	fieldTakeoff     = []string{"Takeoff", "Takeoff Name"}
)

func ItemName(item internal.RawItem) string        { return item.Field(fieldName...) }
func ItemDescription(item internal.RawItem) string { return item.Field(fieldDescription...) }
func ItemUnits(item internal.RawItem) string       { return item.Field(fieldUnits...) }
func ItemHours(item internal.RawItem) string       { return item.Field(fieldHours...) }
func ItemJobNumber(item internal.RawItem) string   { return item.Field(fieldJobNumber...) }
func ItemTakeoff(item internal.RawItem) string     { return item.Field(fieldTakeoff...) }

// ComputeLine maps one raw record to its canonical line, applying the
// quantity reconciliation rule: when a unit price and a stated total
// are both present but disagree with price*qty beyond the tolerance,
// the stated total wins and quantity is recomputed from it. The price
// is never corrected the other way; it is treated as the more reliable
// source field. The returned LineTotal is always price*qty after any
// correction.
func ComputeLine(cfg config.Config, item internal.RawItem) internal.NormalizedLine {
	name := ItemName(item)
	if name == "" {
		name = ItemDescription(item)
	}

	price := util.ParseAmount(item.Field(fieldPriceEach...))
	cost := util.ParseAmount(item.Field(fieldCostEach...))
	statedTotal := util.ParseAmount(item.Field(fieldPriceTotal...))

	qtyRaw := item.Field(fieldQty...)
	if strings.TrimSpace(qtyRaw) == "" {
		qtyRaw = item.Field(fieldHours...)
	}
	qty := coerceNumber(qtyRaw)

	if price > 0 && statedTotal > 0 && math.Abs(price*qty-statedTotal) > cfg.QtyTolerance {
		qty = statedTotal / price
	}

	itemType := strings.ToLower(strings.TrimSpace(item.Field(fieldType...)))
	isLabour := itemType == "labor" || itemType == "labour"

	return internal.NormalizedLine{
		Name:      name,
		Quantity:  qty,
		UnitCost:  cost,
		UnitPrice: price,
		LineTotal: price * qty,
		IsLabour:  isLabour,
	}
}

// coerceNumber parses a plain numeric field. Unlike util.ParseAmount
// it does not scavenge digits out of arbitrary text: a quantity cell
// holding garbage degrades to 0 rather than a half-read number.
func coerceNumber(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return parsed
}
