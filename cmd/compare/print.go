package main

import (
	"fmt"
	"io"

	"AssetCompare/internal/model"

	"github.com/fatih/color"
)

func printTable(w io.Writer, t *model.PriceTable) {
	head := color.New(color.FgCyan, color.Bold)
	miss := color.New(color.FgYellow)
	names := t.Names()
	head.Fprintf(w, "%-10s  %14s  %14s\n", "date", names[0], names[1])
	for row := 0; row < t.Len(); row++ {
		fmt.Fprintf(w, "%-10s", t.Date(row).Format(model.DateLayout))
		for col := 0; col < 2; col++ {
			if v := t.Value(col, row); model.IsMissing(v) {
				miss.Fprintf(w, "  %14s", "missing")
			} else {
				fmt.Fprintf(w, "  %14.4f", v)
			}
		}
		io.WriteString(w, "\n")
	}
}

func printPath(w io.Writer, path string) {
	color.New(color.FgGreen).Fprintln(w, path)
}
