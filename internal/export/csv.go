package export

import (
	"encoding/csv"
	"os"

	"AssetCompare/internal/model"
)

// CSVSaver writes one row per date (header: date,<A>,<B>). Missing cells are empty.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(t *model.PriceTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)

	names := t.Names()
	if err := w.Write([]string{"date", names[0], names[1]}); err != nil {
		return err
	}
	for row := 0; row < t.Len(); row++ {
		rec := []string{t.Date(row).Format(model.DateLayout), "", ""}
		for col := 0; col < 2; col++ {
			if v := t.Value(col, row); !model.IsMissing(v) {
				rec[col+1] = floatStr(v)
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
