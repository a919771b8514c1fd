package extract

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"fergusquote/internal"
	"fergusquote/internal/util"
)

// headerAliases maps the column spellings seen in takeoff exports to
// the canonical field names the pipeline probes for. Unrecognized
// headers are carried through verbatim.
var headerAliases = map[string]string{
	"name":         "Name",
	"item":         "Name",
	"description":  "Description",
	"group":        "Group",
	"section":      "Group",
	"qty":          "Qty",
	"quantity":     "Qty",
	"units":        "Units",
	"unit":         "Units",
	"hours":        "Hours",
	"cost each":    "Cost Each",
	"unit cost":    "Cost Each",
	"cost":         "Cost Each",
	"price each":   "Price Each",
	"unit price":   "Price Each",
	"price":        "Price Each",
	"price total":  "Price Total",
	"total":        "Price Total",
	"result":       "Price Total",
	"type":         "Type",
	"job number":   "Job Number",
	"takeoff":      "Takeoff",
	"takeoff name": "Takeoff",
}

func canonicalHeader(h string) string {
	trimmed := strings.TrimSpace(h)
	if canon, ok := headerAliases[strings.ToLower(trimmed)]; ok {
		return canon
	}
	return trimmed
}

// ParseXLSX reads an xlsx takeoff export. The first non-empty row of
// the first sheet is the header row; every following row becomes one
// RawItem. Returns the items and the job-number hint, if any row
// carries one.
func ParseXLSX(content []byte) ([]internal.RawItem, string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", err
	}

	var headers []string
	var items []internal.RawItem
	jobHint := ""
	lineNo := 0

	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(row))
			for i, h := range row {
				headers[i] = canonicalHeader(h)
			}
			continue
		}

		fields := map[string]string{}
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				fields[headers[i]] = v
			}
		}
		if len(fields) == 0 {
			continue
		}

		if jobHint == "" {
			if v := fields["Job Number"]; v != "" {
				jobHint = util.ExtractDigits(v)
			}
		}

		lineNo++
		items = append(items, internal.RawItem{
			LineNo: lineNo,
			Source: internal.SourceXLSX,
			Fields: fields,
		})
	}

	return items, jobHint, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
