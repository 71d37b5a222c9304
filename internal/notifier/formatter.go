package notifier

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"AssetCompare/internal/calculator"
	"AssetCompare/internal/model"

	"gopkg.in/yaml.v3"
)

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatReport renders a correlation report as text lines, JSON or YAML.
// Values are rounded to calculator.Precision in every format.
func FormatReport(r model.Report, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return formatText(r), nil
	case FormatJSON:
		b, err := json.MarshalIndent(rounded(r), "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal report: %w", err)
		}
		return string(b) + "\n", nil
	case FormatYAML:
		b, err := yaml.Marshal(rounded(r))
		if err != nil {
			return "", fmt.Errorf("marshal report: %w", err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

// FormatMessage renders a report as a Telegram HTML message.
func FormatMessage(r model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s vs %s</b> | %s (%d rows)\n\n",
		html.EscapeString(r.SeriesA), html.EscapeString(r.SeriesB), r.Range, r.Rows)
	for _, c := range r.Correlations {
		b.WriteString(html.EscapeString(calculator.FormatLine(c)))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatText(r model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s, %s, %d rows\n", r.SeriesA, r.SeriesB, r.Range, r.Rows)
	for _, c := range r.Correlations {
		b.WriteString(calculator.FormatLine(c))
		b.WriteByte('\n')
	}
	return b.String()
}

func rounded(r model.Report) model.Report {
	out := r
	out.Correlations = make([]model.Correlation, len(r.Correlations))
	for i, c := range r.Correlations {
		c.Value = calculator.RoundFloat(c.Value)
		out.Correlations[i] = c
	}
	return out
}
