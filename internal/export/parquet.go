package export

import (
	"AssetCompare/internal/model"

	"github.com/parquet-go/parquet-go"
)

// PriceRow is the long-format parquet record: one row per (date, ticker).
type PriceRow struct {
	Date     string   `parquet:"date"`
	Ticker   string   `parquet:"ticker"`
	AdjClose *float64 `parquet:"adj_close,optional"`
}

// ParquetSaver writes the table in long format.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(t *model.PriceTable, path string) error {
	return parquet.WriteFile(path, Rows(t))
}

// Rows flattens t to date-major long rows.
func Rows(t *model.PriceTable) []PriceRow {
	names := t.Names()
	rows := make([]PriceRow, 0, 2*t.Len())
	for row := 0; row < t.Len(); row++ {
		date := t.Date(row).Format(model.DateLayout)
		for col := 0; col < 2; col++ {
			rows = append(rows, PriceRow{Date: date, Ticker: names[col], AdjClose: cell(t.Value(col, row))})
		}
	}
	return rows
}
