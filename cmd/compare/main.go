package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"AssetCompare/internal/app"
	"AssetCompare/internal/chart"
	"AssetCompare/internal/config"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = `usage: compare <command> [flags]

commands:
  align                 print the forward-filled price table
  corr                  print Pearson and QuantDare correlations
  plot timeseries       dual-axis price chart
  plot scatter          scatter of -y against -x
  export                write the aligned table (csv, json, parquet)
  watch                 recompute correlations on the watch cron schedule
`

type options struct {
	cmd        string
	configPath string
	tickerA    string
	tickerB    string
	start      string
	end        string
	legends    string
	display    string
	format     string
	x, y       string
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]
	kind := ""
	if cmd == "plot" && len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		kind, args = args[0], args[1:]
	}

	opts := parseFlags(cmd, args)
	boot, _ := zap.NewDevelopment()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		boot.Fatal("load config", zap.Error(err))
	}
	if err := opts.apply(cfg); err != nil {
		boot.Fatal("apply flags", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		boot.Fatal("config validation", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.ResolveSecrets(ctx); err != nil {
		boot.Fatal("resolve secrets", zap.Error(err))
	}

	a, err := InitializeApp(cfg, os.Stdout)
	if err != nil {
		boot.Fatal("init app", zap.Error(err))
	}
	defer a.Log.Sync()

	if err := run(ctx, a, cmd, kind, opts); err != nil {
		a.Log.Error("command failed", zap.String("command", cmd), zap.Error(err))
		color.New(color.FgRed).Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, cmd, kind string, opts options) error {
	switch cmd {
	case "align":
		tbl, _, err := a.Align(ctx)
		if err != nil {
			return err
		}
		printTable(a.Out, tbl)
	case "corr":
		_, err := a.Correlate(ctx, opts.format)
		return err
	case "plot":
		fig, err := a.Plot(ctx, kind, opts.y, opts.x)
		if err != nil {
			return err
		}
		if fs, ok := a.Surface.(*chart.FileSurface); ok {
			for _, p := range fs.Written {
				printPath(a.Out, p)
			}
		}
		a.Log.Debug("figure closed", zap.String("figure", fig.Name))
	case "export":
		path, err := a.Export(ctx)
		if err != nil {
			return err
		}
		printPath(a.Out, path)
	case "watch":
		a.Log.Info("watching",
			zap.String("ticker_a", a.Config.Compare.TickerA),
			zap.String("ticker_b", a.Config.Compare.TickerB),
			zap.String("cron", a.Config.Watch.Cron))
		return a.Watch(ctx)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	return nil
}

func parseFlags(cmd string, args []string) options {
	def := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		def = v
	}
	o := options{cmd: cmd}
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage, "\nflags:\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.configPath, "config", def, "config file path")
	fs.StringVar(&o.tickerA, "a", "", "first ticker (left axis)")
	fs.StringVar(&o.tickerB, "b", "", "second ticker (right axis)")
	fs.StringVar(&o.start, "start", "", "start date YYYY-MM-DD")
	fs.StringVar(&o.end, "end", "", "end date YYYY-MM-DD, inclusive")
	fs.StringVar(&o.legends, "legends", "", "legend placement: stacked or split")
	fs.StringVar(&o.display, "display", "", "chart display: window or file")
	fs.StringVar(&o.format, "format", "", "corr: text, json, yaml; export: csv, json, parquet")
	fs.StringVar(&o.x, "x", "", "scatter x column")
	fs.StringVar(&o.y, "y", "", "scatter y column")
	fs.Parse(args)
	return o
}

// apply overrides config values with the flags that were set.
func (o options) apply(cfg *config.Config) error {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Compare.TickerA, o.tickerA)
	set(&cfg.Compare.TickerB, o.tickerB)
	set(&cfg.Compare.Start, o.start)
	set(&cfg.Compare.End, o.end)
	set(&cfg.Chart.Display, o.display)
	if o.cmd == "export" {
		set(&cfg.Export.Format, o.format)
	}

	switch o.legends {
	case "":
	case "stacked":
		cfg.Chart.LegendLeft, cfg.Chart.LegendRight = string(chart.StackedLegends[0]), string(chart.StackedLegends[1])
	case "split":
		cfg.Chart.LegendLeft, cfg.Chart.LegendRight = string(chart.SplitLegends[0]), string(chart.SplitLegends[1])
	default:
		return fmt.Errorf("-legends %q is not stacked or split", o.legends)
	}
	return nil
}
