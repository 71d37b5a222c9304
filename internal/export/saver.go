package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"AssetCompare/internal/model"
)

// TableSaver writes an aligned price table to a file.
type TableSaver interface {
	Save(t *model.PriceTable, path string) error
	Extension() string
}

// NewTableSaver returns the saver for format (csv, json, parquet).
func NewTableSaver(format string) (TableSaver, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}, nil
	case "json":
		return JSONSaver{}, nil
	case "parquet":
		return ParquetSaver{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (use csv, json, parquet)", format)
	}
}

// FileName is "<A>_<B>_<first date>_<last date>.<ext>".
func FileName(t *model.PriceTable, ext string) string {
	names := t.Names()
	base := names[0] + "_" + names[1]
	if t.Len() > 0 {
		base += "_" + t.Date(0).Format(model.DateLayout) + "_" + t.Date(t.Len()-1).Format(model.DateLayout)
	}
	base = strings.NewReplacer("/", "-", "^", "", " ", "-").Replace(base)
	return base + "." + ext
}

// WriteTable saves t under dir and returns the written path.
func WriteTable(dir string, s TableSaver, t *model.PriceTable) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(t, s.Extension()))
	if err := s.Save(t, path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// cell returns nil for a missing value.
func cell(v float64) *float64 {
	if model.IsMissing(v) {
		return nil
	}
	return &v
}
