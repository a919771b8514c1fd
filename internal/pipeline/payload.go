package pipeline

import (
	"strings"

	"fergusquote/internal"
	"fergusquote/internal/config"
	"fergusquote/internal/util"
)

// BuildSections turns a batch into the nested section structure the
// quoting API expects. A row is excluded iff its normalized name is
// empty or its unit price is <= 0; an excluded row still consumes its
// sortOrder slot so the remaining lines keep their source ordering.
// Labour lines carry isLabour and no sales account, and stay out of
// the section description; every retained non-labour line contributes
// one "- name" bullet to it.
func BuildSections(cfg config.Config, items []internal.RawItem) []internal.Section {
	groups := GroupItems(items)
	sections := make([]internal.Section, 0, len(groups))

	for sidx, group := range groups {
		lineItems := make([]internal.LineItem, 0, len(group.Items))
		var descLines []string

		for i, item := range group.Items {
			line := ComputeLine(cfg, item)
			if line.Name == "" || line.UnitPrice <= 0 {
				continue
			}
			li := internal.LineItem{
				ItemName:     line.Name,
				ItemQuantity: util.Round2(line.Quantity),
				ItemPrice:    line.UnitPrice,
				ItemCost:     line.UnitCost,
				DiscountRate: 0,
				SortOrder:    i,
			}
			if line.IsLabour {
				li.IsLabour = true
			} else {
				li.SalesAccountID = cfg.SalesAccountID
				descLines = append(descLines, "- "+line.Name)
			}
			lineItems = append(lineItems, li)
		}

		sections = append(sections, internal.Section{
			Name:                      group.Name,
			Description:               strings.Join(descLines, "\r\n"),
			SortOrder:                 sidx,
			SectionLineItemMultiplier: 1,
			ParentSectionID:           0,
			LineItems:                 lineItems,
			Sections:                  []internal.Section{},
		})
	}

	return sections
}

// BuildQuotePayload assembles the full create/update body. The payload
// is constructed fresh on every push and wholly replaces any remote
// content when used as an update.
func BuildQuotePayload(cfg config.Config, title string, items []internal.RawItem) internal.QuotePayload {
	return internal.QuotePayload{
		Title:       title,
		Description: "",
		DueDays:     cfg.QuoteDueDays,
		Sections:    BuildSections(cfg, items),
	}
}
