package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fergusquote/internal"
	"fergusquote/internal/config"
)

var exportHeaders = []string{"Group", "Name", "Qty", "Units", "Hours", "Cost Each", "Price Each", "Line Total"}

// ExportPreviewCSV writes the normalized view of every item, one row
// per raw record, for operator review before a push. Nothing is
// filtered here.
func ExportPreviewCSV(cfg config.Config, items []internal.RawItem, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeaders); err != nil {
		return err
	}
	for _, item := range items {
		line := ComputeLine(cfg, item)
		record := []string{
			GroupLabel(item),
			line.Name,
			fmt.Sprintf("%.2f", line.Quantity),
			ItemUnits(item),
			ItemHours(item),
			fmt.Sprintf("%.2f", line.UnitCost),
			fmt.Sprintf("%.2f", line.UnitPrice),
			fmt.Sprintf("%.2f", line.LineTotal),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportPreviewXLSX writes the same view as ExportPreviewCSV plus a
// Labour marker column.
func ExportPreviewXLSX(cfg config.Config, items []internal.RawItem, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := append(append([]string{}, exportHeaders...), "Labour")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, item := range items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		line := ComputeLine(cfg, item)
		set(1, GroupLabel(item))
		set(2, line.Name)
		set(3, line.Quantity)
		set(4, ItemUnits(item))
		set(5, ItemHours(item))
		set(6, line.UnitCost)
		set(7, line.UnitPrice)
		set(8, line.LineTotal)
		labour := ""
		if line.IsLabour {
			labour = "yes"
		}
		set(9, labour)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
