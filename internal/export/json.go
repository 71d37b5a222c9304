package export

import (
	"encoding/json"
	"os"

	"AssetCompare/internal/model"
)

// JSONSaver writes an indented array of records keyed by "date" and the column names.
// Missing cells are null.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(t *model.PriceTable, path string) error {
	names := t.Names()
	records := make([]map[string]any, t.Len())
	for row := range records {
		records[row] = map[string]any{
			"date":   t.Date(row).Format(model.DateLayout),
			names[0]: cell(t.Value(0, row)),
			names[1]: cell(t.Value(1, row)),
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return err
	}
	return f.Close()
}
