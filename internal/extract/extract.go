package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fergusquote/internal"
)

// FromFile reads a takeoff export from disk. kind selects the
// front-end ("xlsx" or "xml"); when empty it is inferred from the file
// extension.
func FromFile(path, kind string) ([]internal.RawItem, string, error) {
	if kind == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			kind = "xlsx"
		case ".xml":
			kind = "xml"
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	switch kind {
	case "xlsx":
		return ParseXLSX(content)
	case "xml":
		return ParseSpreadsheetML(content)
	default:
		return nil, "", fmt.Errorf("unsupported input type: %s", kind)
	}
}
