// Package extract holds the takeoff extraction front-ends. Both are
// deliberately lenient: they emit RawItem records with whatever fields
// were present and leave all numeric interpretation to the pipeline.
package extract

import (
	"encoding/xml"
	"strings"

	"fergusquote/internal"
	"fergusquote/internal/util"
)

// SpreadsheetML (Excel 2003 XML) export layout: fixed column
// positions, with ss:Index attributes allowed to skip empty cells.
var spreadsheetColumns = map[int]string{
	0:  "Name",
	1:  "Description",
	2:  "Qty",
	3:  "Units",
	5:  "Hours",
	9:  "Cost Each",
	10: "Price Each",
	11: "Price Total",
	12: "Type",
	14: "Job Number",
	15: "Group",
}

const jobNumberColumn = 14

type ssWorkbook struct {
	Worksheets []ssWorksheet `xml:"Worksheet"`
}

type ssWorksheet struct {
	Tables []ssTable `xml:"Table"`
}

type ssTable struct {
	Rows []ssRow `xml:"Row"`
}

type ssRow struct {
	Cells []ssCell `xml:"Cell"`
}

type ssCell struct {
	Index int    `xml:"Index,attr"`
	Data  string `xml:"Data"`
}

// cellValues expands a row's cells to column positions, honouring the
// ss:Index cursor semantics: an explicit Index jumps the cursor, and
// each cell advances it by one.
func cellValues(row ssRow) map[int]string {
	values := map[int]string{}
	cursor := 0
	for _, cell := range row.Cells {
		if cell.Index > 0 {
			cursor = cell.Index - 1
		}
		values[cursor] = strings.TrimSpace(cell.Data)
		cursor++
	}
	return values
}

// ParseSpreadsheetML reads a spreadsheet-style XML takeoff export and
// returns its raw items plus the job-number hint carried in the sheet.
func ParseSpreadsheetML(content []byte) ([]internal.RawItem, string, error) {
	var workbook ssWorkbook
	if err := xml.Unmarshal(content, &workbook); err != nil {
		return nil, "", err
	}

	var items []internal.RawItem
	jobHint := ""
	lineNo := 0

	for _, sheet := range workbook.Worksheets {
		for _, table := range sheet.Tables {
			for _, row := range table.Rows {
				values := cellValues(row)
				if len(values) == 0 {
					continue
				}

				if jobHint == "" {
					if v := values[jobNumberColumn]; v != "" {
						jobHint = util.ExtractDigits(v)
					}
				}

				fields := map[string]string{}
				for col, name := range spreadsheetColumns {
					if v := values[col]; v != "" {
						fields[name] = v
					}
				}
				if len(fields) == 0 {
					continue
				}

				lineNo++
				items = append(items, internal.RawItem{
					LineNo: lineNo,
					Source: internal.SourceSpreadsheetXML,
					Fields: fields,
				})
			}
		}
	}

	return items, jobHint, nil
}
