package app

import (
	"fmt"
	"time"

	"AssetCompare/internal/chart"
	"AssetCompare/internal/collector"
	"AssetCompare/internal/config"
	"AssetCompare/internal/export"
	"AssetCompare/internal/logger"
	"AssetCompare/internal/notifier"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var timeNow = time.Now

// ProviderSet builds an App from a validated config and an output writer.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideFetcher,
	collector.NewAligner,
	ProvideRenderer,
	ProvideSurface,
	ProvideTableSaver,
	ProvideNotifier,
	wire.Struct(new(App), "*"),
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log)
}

// ProvideFetcher selects the price source named by data_source.provider.
func ProvideFetcher(cfg *config.Config, log *zap.Logger) (collector.Fetcher, error) {
	ds := cfg.DataSource
	var f collector.Fetcher
	switch ds.Provider {
	case "yahoo":
		f = collector.NewYahooFetcher(ds.Proxy, ds.Timeout)
	case "vstrader":
		f = collector.NewVsTraderFetcher(ds.BaseURL, ds.APIKey, ds.Proxy, ds.Timeout)
	default:
		return nil, fmt.Errorf("unknown data provider %q", ds.Provider)
	}
	log.Info("data source", zap.String("provider", f.Name()))
	return f, nil
}

// ProvideRenderer creates the chart renderer from the chart section.
func ProvideRenderer(cfg *config.Config, log *zap.Logger) (*chart.Renderer, error) {
	opts, err := cfg.Chart.Options()
	if err != nil {
		return nil, err
	}
	return chart.NewRenderer(opts, log), nil
}

// ProvideSurface picks the browser window or PNG files per chart.display.
func ProvideSurface(cfg *config.Config, log *zap.Logger) chart.Surface {
	if cfg.Chart.Display == "file" {
		return &chart.FileSurface{Dir: cfg.Chart.OutputDir}
	}
	return &chart.BrowserSurface{Addr: cfg.Chart.ListenAddr, Log: log}
}

// ProvideTableSaver creates the saver for export.format.
func ProvideTableSaver(cfg *config.Config) (export.TableSaver, error) {
	return export.NewTableSaver(cfg.Export.Format)
}

// ProvideNotifier returns nil when Telegram is not configured.
func ProvideNotifier(cfg *config.Config, log *zap.Logger) *notifier.TelegramNotifier {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
		return nil
	}
	return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.DataSource.Proxy, log)
}
