package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"AssetCompare/internal/calculator"
	"AssetCompare/internal/chart"
	"AssetCompare/internal/collector"
	"AssetCompare/internal/config"
	"AssetCompare/internal/export"
	"AssetCompare/internal/model"
	"AssetCompare/internal/notifier"
	"AssetCompare/internal/scheduler"

	"go.uber.org/zap"
)

// Chart kinds accepted by Plot.
const (
	KindTimeSeries = "timeseries"
	KindScatter    = "scatter"
)

// App runs the compare pipeline: align, correlate, plot, export and watch.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Aligner  *collector.Aligner
	Renderer *chart.Renderer
	Surface  chart.Surface
	Saver    export.TableSaver
	Notifier *notifier.TelegramNotifier
	Out      io.Writer
}

// Range returns the configured comparison range.
func (a *App) Range() (model.DateRange, error) {
	return a.Config.Compare.Range(timeNow())
}

// Align fetches and forward-fills the configured pair.
func (a *App) Align(ctx context.Context) (*model.PriceTable, model.DateRange, error) {
	rng, err := a.Range()
	if err != nil {
		return nil, rng, err
	}
	tbl, err := a.Aligner.Align(ctx, a.Config.Compare.TickerA, a.Config.Compare.TickerB, rng)
	return tbl, rng, err
}

// Correlate computes both correlations and writes them to Out. The text format
// prints one line per statistic; json and yaml print the whole report.
func (a *App) Correlate(ctx context.Context, format string) (model.Report, error) {
	tbl, rng, err := a.Align(ctx)
	if err != nil {
		return model.Report{}, err
	}
	text := format == "" || strings.EqualFold(format, notifier.FormatText)
	var lines io.Writer
	if text {
		lines = a.Out
	}
	report, err := calculator.NewCalculator(lines, a.Log).Report(tbl, rng)
	if err != nil || text {
		return report, err
	}
	out, err := notifier.FormatReport(report, format)
	if err != nil {
		return report, err
	}
	_, err = io.WriteString(a.Out, out)
	return report, err
}

// Plot draws the aligned table and shows it on the configured surface. For a
// scatter, empty yCol and xCol default to ticker B against ticker A.
func (a *App) Plot(ctx context.Context, kind, yCol, xCol string) (*chart.Figure, error) {
	tbl, _, err := a.Align(ctx)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "", KindTimeSeries:
		return a.Renderer.DualAxis(ctx, a.Surface, tbl)
	case KindScatter:
		if yCol == "" {
			yCol = tbl.Name(1)
		}
		if xCol == "" {
			xCol = tbl.Name(0)
		}
		return a.Renderer.Scatter(ctx, a.Surface, tbl, yCol, xCol)
	default:
		return nil, fmt.Errorf("unknown chart kind %q (use %s or %s)", kind, KindTimeSeries, KindScatter)
	}
}

// Export writes the aligned table under the configured export dir and returns the path.
func (a *App) Export(ctx context.Context) (string, error) {
	tbl, _, err := a.Align(ctx)
	if err != nil {
		return "", err
	}
	path, err := export.WriteTable(a.Config.Export.Dir, a.Saver, tbl)
	if err != nil {
		return "", err
	}
	a.Log.Info("exported aligned table", zap.String("path", path), zap.Int("rows", tbl.Len()))
	return path, nil
}

// Watch runs the cron watch job, and Telegram polling when configured, until ctx is done.
func (a *App) Watch(ctx context.Context) error {
	var sender notifier.Sender
	if a.Notifier != nil {
		sender = a.Notifier
	}
	s := scheduler.NewScheduler(ctx, a.Aligner, sender, scheduler.Watch{
		TickerA:      a.Config.Compare.TickerA,
		TickerB:      a.Config.Compare.TickerB,
		LookbackDays: a.Config.Watch.LookbackDays,
	}, a.Log)
	s.Out = a.Out
	if err := s.Register(a.Config.Watch.Cron); err != nil {
		return err
	}
	s.Start()
	defer s.Stop()

	if a.Notifier != nil {
		go a.Notifier.StartPolling(ctx, s.HandleCommand)
		a.Log.Info("telegram polling started")
	}
	if a.Config.Watch.RunOnStart {
		go s.RunWatchNow()
	}
	<-ctx.Done()
	return nil
}
