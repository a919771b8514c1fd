package pipeline

import (
	"fmt"

	"fergusquote/internal"
	"fergusquote/internal/config"
)

// ValidateItems runs the preflight checks over a batch before any push
// is attempted. The result is advisory: the caller decides whether to
// proceed, but must show the problems first.
func ValidateItems(cfg config.Config, items []internal.RawItem) []internal.ValidationProblem {
	var problems []internal.ValidationProblem
	for idx, item := range items {
		row := idx + 1
		line := ComputeLine(cfg, item)
		if line.Name == "" {
			problems = append(problems, internal.ValidationProblem{Row: row, Message: "missing name/description."})
		}
		if line.UnitPrice < 0 || line.UnitCost < 0 || line.Quantity < 0 {
			problems = append(problems, internal.ValidationProblem{Row: row, Message: "negative values are not allowed (qty/cost/price)."})
		}
		if line.UnitPrice == 0 && line.LineTotal == 0 {
			problems = append(problems, internal.ValidationProblem{Row: row, Message: "price each and total are zero."})
		}
	}
	return problems
}

// FormatProblems renders at most limit problems as bullet lines, with
// a trailing count of anything truncated.
func FormatProblems(problems []internal.ValidationProblem, limit int) []string {
	if limit <= 0 || limit > len(problems) {
		limit = len(problems)
	}
	out := make([]string, 0, limit+1)
	for _, p := range problems[:limit] {
		out = append(out, "- "+p.String())
	}
	if rest := len(problems) - limit; rest > 0 {
		out = append(out, fmt.Sprintf("...and %d more.", rest))
	}
	return out
}
