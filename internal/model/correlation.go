package model

// Method names a correlation statistic.
type Method string

const (
	MethodPearson   Method = "Pearson"
	MethodQuantDare Method = "QuantDare"
)

// Correlation is the outcome of one correlation computation between the two columns of a table.
// Value is unset when Undefined is non-empty.
type Correlation struct {
	Method    Method  `json:"method" yaml:"method"`
	SeriesA   string  `json:"series_a" yaml:"series_a"`
	SeriesB   string  `json:"series_b" yaml:"series_b"`
	Value     float64 `json:"value" yaml:"value"`
	Undefined string  `json:"undefined,omitempty" yaml:"undefined,omitempty"`
}

// Report bundles the correlations computed for one aligned table.
type Report struct {
	SeriesA      string        `json:"series_a" yaml:"series_a"`
	SeriesB      string        `json:"series_b" yaml:"series_b"`
	Range        string        `json:"range" yaml:"range"`
	Rows         int           `json:"rows" yaml:"rows"`
	Correlations []Correlation `json:"correlations" yaml:"correlations"`
}
