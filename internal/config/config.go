package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"AssetCompare/internal/chart"
	"AssetCompare/internal/model"

	"github.com/ilyakaznacheev/cleanenv"
	"gonum.org/v1/plot/vg"
)

// Config holds all application configuration.
type Config struct {
	Env        string           `yaml:"env" env:"APP_ENV" env-default:"local"`
	Log        LogConfig        `yaml:"log"`
	DataSource DataSourceConfig `yaml:"data_source"`
	Compare    CompareConfig    `yaml:"compare"`
	Chart      ChartConfig      `yaml:"chart"`
	Export     ExportConfig     `yaml:"export"`
	Watch      WatchConfig      `yaml:"watch"`
	Telegram   TelegramConfig   `yaml:"telegram"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	// Format is json or console.
	Format     string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	OutputFile string `yaml:"output_file" env:"LOG_FILE"`
	// Environment is copied from Config.Env when empty.
	Environment string `yaml:"environment" env:"LOG_ENVIRONMENT"`
}

type DataSourceConfig struct {
	Provider string        `yaml:"provider" env:"DATA_PROVIDER" env-default:"yahoo"`
	BaseURL  string        `yaml:"base_url" env:"VSTRADER_BASE_URL"`
	APIKey   string        `yaml:"api_key" env:"VSTRADER_API_KEY"`
	Proxy    string        `yaml:"proxy" env:"HTTPS_PROXY"`
	Timeout  time.Duration `yaml:"timeout" env:"DATA_TIMEOUT" env-default:"30s"`
}

// CompareConfig names the two tickers and the inclusive date range. An empty End
// means today and an empty Start means one year before End.
type CompareConfig struct {
	TickerA string `yaml:"ticker_a" env:"TICKER_A"`
	TickerB string `yaml:"ticker_b" env:"TICKER_B"`
	Start   string `yaml:"start" env:"COMPARE_START"`
	End     string `yaml:"end" env:"COMPARE_END"`
}

type ChartConfig struct {
	LeftColor   string  `yaml:"left_color" env:"CHART_LEFT_COLOR" env-default:"blue"`
	RightColor  string  `yaml:"right_color" env:"CHART_RIGHT_COLOR" env-default:"orange"`
	LegendLeft  string  `yaml:"legend_left" env:"CHART_LEGEND_LEFT" env-default:"upper left"`
	LegendRight string  `yaml:"legend_right" env:"CHART_LEGEND_RIGHT" env-default:"lower left"`
	WidthIn     float64 `yaml:"width_in" env:"CHART_WIDTH_IN" env-default:"12"`
	HeightIn    float64 `yaml:"height_in" env:"CHART_HEIGHT_IN" env-default:"6"`
	Display     string  `yaml:"display" env:"CHART_DISPLAY" env-default:"window"`
	OutputDir   string  `yaml:"output_dir" env:"CHART_OUTPUT_DIR" env-default:"charts"`
	ListenAddr  string  `yaml:"listen_addr" env:"CHART_LISTEN_ADDR" env-default:"127.0.0.1:8765"`
}

type ExportConfig struct {
	Format string `yaml:"format" env:"EXPORT_FORMAT" env-default:"csv"`
	Dir    string `yaml:"dir" env:"EXPORT_DIR" env-default:"data"`
}

type WatchConfig struct {
	Cron         string `yaml:"cron" env:"WATCH_CRON" env-default:"0 0 22 * * 1-5"`
	LookbackDays int    `yaml:"lookback_days" env:"WATCH_LOOKBACK_DAYS" env-default:"365"`
	RunOnStart   bool   `yaml:"run_on_start" env:"RUN_ON_START"`
}

type TelegramConfig struct {
	BotToken      string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID        string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	BotTokenParam string `yaml:"bot_token_param" env:"TELEGRAM_BOT_TOKEN_PARAM"`
}

// Load reads config from a YAML file with environment overrides. A missing file
// leaves environment variables and defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.Log.Environment == "" {
		cfg.Log.Environment = cfg.Env
	}
	return cfg, nil
}

// Validate checks enumerations, dates and chart settings.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo":
	case "vstrader":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for vstrader")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not yahoo or vstrader", c.DataSource.Provider)
	}
	if c.Compare.TickerA == "" || c.Compare.TickerB == "" {
		return fmt.Errorf("compare.ticker_a and compare.ticker_b are required")
	}
	if c.Compare.TickerA == c.Compare.TickerB {
		return fmt.Errorf("compare tickers must differ, both are %q", c.Compare.TickerA)
	}
	rng, err := c.Compare.Range(time.Now())
	if err != nil {
		return err
	}
	if rng.End.Before(rng.Start) {
		return fmt.Errorf("compare range %s ends before it starts", rng)
	}
	if _, err := c.Chart.Options(); err != nil {
		return err
	}
	if c.Chart.Display != "window" && c.Chart.Display != "file" {
		return fmt.Errorf("chart.display %q is not window or file", c.Chart.Display)
	}
	switch strings.ToLower(c.Export.Format) {
	case "csv", "json", "parquet":
	default:
		return fmt.Errorf("export.format %q is not csv, json or parquet", c.Export.Format)
	}
	if c.Watch.LookbackDays <= 0 {
		return fmt.Errorf("watch.lookback_days must be positive")
	}
	return nil
}

// Range resolves Start and End against now.
func (c CompareConfig) Range(now time.Time) (model.DateRange, error) {
	end := c.End
	if end == "" {
		end = now.Format(model.DateLayout)
	}
	start := c.Start
	if start == "" {
		e, err := time.Parse(model.DateLayout, end)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("parse compare.end: %w", err)
		}
		start = e.AddDate(-1, 0, 0).Format(model.DateLayout)
	}
	return model.ParseDateRange(start, end)
}

// Options converts the chart section into renderer options.
func (c ChartConfig) Options() (chart.Options, error) {
	opts := chart.DefaultOptions()
	var err error
	if opts.LeftColor, err = chart.ParseColor(c.LeftColor); err != nil {
		return opts, fmt.Errorf("chart.left_color: %w", err)
	}
	if opts.RightColor, err = chart.ParseColor(c.RightColor); err != nil {
		return opts, fmt.Errorf("chart.right_color: %w", err)
	}
	if opts.LegendLeft, err = chart.ParseAnchor(c.LegendLeft); err != nil {
		return opts, fmt.Errorf("chart.legend_left: %w", err)
	}
	if opts.LegendRight, err = chart.ParseAnchor(c.LegendRight); err != nil {
		return opts, fmt.Errorf("chart.legend_right: %w", err)
	}
	if opts.LegendLeft == opts.LegendRight {
		return opts, fmt.Errorf("chart legends overlap, both at %q", opts.LegendLeft)
	}
	if c.WidthIn <= 0 || c.HeightIn <= 0 {
		return opts, fmt.Errorf("chart size must be positive, got %gx%g", c.WidthIn, c.HeightIn)
	}
	opts.Width = vg.Length(c.WidthIn) * vg.Inch
	opts.Height = vg.Length(c.HeightIn) * vg.Inch
	return opts, nil
}
