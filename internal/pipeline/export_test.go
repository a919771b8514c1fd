package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"fergusquote/internal"
)

func exportFixture() []internal.RawItem {
	return []internal.RawItem{
		item(map[string]string{"Name": "Paint", "Group": "Exterior", "Qty": "10", "Units": "L", "Price Each": "$10.00", "Price Total": "$150.00"}),
		item(map[string]string{"Name": "Install", "Hours": "8", "Price Each": "$80.00", "Type": "labour"}),
	}
}

func TestExportPreviewCSV(t *testing.T) {
	cfg := testConfig()
	path := filepath.Join(t.TempDir(), "out", "preview.csv")

	if err := ExportPreviewCSV(cfg, exportFixture(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0][0] != "Group" || records[0][7] != "Line Total" {
		t.Fatalf("headers = %v", records[0])
	}

	paint := records[1]
	if paint[0] != "Exterior" || paint[1] != "Paint" || paint[2] != "15.00" || paint[3] != "L" || paint[7] != "150.00" {
		t.Fatalf("paint = %v", paint)
	}
	install := records[2]
	if install[0] != "General" || install[2] != "8.00" || install[4] != "8" {
		t.Fatalf("install = %v", install)
	}
}

func TestExportPreviewXLSX(t *testing.T) {
	cfg := testConfig()
	path := filepath.Join(t.TempDir(), "out", "preview.xlsx")

	if err := ExportPreviewXLSX(cfg, exportFixture(), path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][8] != "Labour" {
		t.Fatalf("headers = %v", rows[0])
	}
	if rows[1][1] != "Paint" || rows[1][0] != "Exterior" {
		t.Fatalf("paint row = %v", rows[1])
	}
	if rows[2][1] != "Install" || rows[2][8] != "yes" {
		t.Fatalf("install row = %v", rows[2])
	}
}
