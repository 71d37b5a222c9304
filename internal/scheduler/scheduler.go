package scheduler

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"AssetCompare/internal/calculator"
	"AssetCompare/internal/collector"
	"AssetCompare/internal/model"
	"AssetCompare/internal/notifier"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sendRetries = 3

const helpText = "Commands:\n/corr: recompute correlations now\n/help: show this message"

// Watch describes the pair and rolling window recomputed on each run.
type Watch struct {
	TickerA      string
	TickerB      string
	LookbackDays int
}

// Scheduler recomputes the correlation report on a cron schedule and delivers it.
type Scheduler struct {
	Cron     *cron.Cron
	Aligner  *collector.Aligner
	Notifier notifier.Sender
	Watch    Watch
	Log      *zap.Logger
	Ctx      context.Context

	// Out receives the text report when no Notifier is configured.
	Out io.Writer
	Now func() time.Time

	mu sync.Mutex
}

// NewScheduler creates a new Scheduler. sender may be nil; a nil logger discards logs.
func NewScheduler(ctx context.Context, aligner *collector.Aligner, sender notifier.Sender, w Watch, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Aligner:  aligner,
		Notifier: sender,
		Watch:    w,
		Log:      log,
		Ctx:      ctx,
		Now:      time.Now,
	}
}

// Register adds the watch job under a six-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RunNow aligns the watched pair over the lookback window ending today and
// computes both correlations.
func (s *Scheduler) RunNow(ctx context.Context) (model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rng := model.LastDays(s.Now(), s.Watch.LookbackDays)
	tbl, err := s.Aligner.Align(ctx, s.Watch.TickerA, s.Watch.TickerB, rng)
	if err != nil {
		return model.Report{}, fmt.Errorf("align %s/%s: %w", s.Watch.TickerA, s.Watch.TickerB, err)
	}
	return calculator.NewCalculator(nil, s.Log).Report(tbl, rng)
}

func (s *Scheduler) watchTask() {
	runID := uuid.NewString()
	log := s.Log.With(zap.String("run_id", runID))
	log.Info("running watch task",
		zap.String("ticker_a", s.Watch.TickerA),
		zap.String("ticker_b", s.Watch.TickerB))

	report, err := s.RunNow(s.Ctx)
	if err != nil {
		log.Error("watch task failed", zap.Error(err))
		s.trySend(log, fmt.Sprintf("watch %s/%s failed: %v", s.Watch.TickerA, s.Watch.TickerB, err))
		return
	}
	log.Info("watch task done", zap.Int("rows", report.Rows))
	s.deliver(log, report)
}

// RunWatchNow executes the watch task immediately (RUN_ON_START).
func (s *Scheduler) RunWatchNow() {
	s.watchTask()
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/corr":
		report, err := s.RunNow(ctx)
		if err != nil {
			s.Log.Error("corr command failed", zap.Error(err))
			return fmt.Sprintf("failed: %v", err)
		}
		return notifier.FormatMessage(report)
	default:
		return helpText
	}
}

func (s *Scheduler) deliver(log *zap.Logger, report model.Report) {
	if s.Notifier != nil {
		s.trySend(log, notifier.FormatMessage(report))
		return
	}
	text, err := notifier.FormatReport(report, notifier.FormatText)
	if err != nil {
		log.Error("format report", zap.Error(err))
		return
	}
	if s.Out == nil {
		log.Info("correlation report", zap.String("report", text))
		return
	}
	if _, err := io.WriteString(s.Out, text); err != nil {
		log.Error("write report", zap.Error(err))
	}
}

func (s *Scheduler) trySend(log *zap.Logger, text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Error("send notification", zap.Error(err))
	}
}
