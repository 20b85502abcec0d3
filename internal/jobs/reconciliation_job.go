package jobs

import (
	"context"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReconcileSchedule runs the scan once a minute.
const DefaultReconcileSchedule = "@every 1m"

type reconciler interface {
	Handle(ctx context.Context, command commands.ReconcileRidersCommand) (commands.ReconciliationReport, error)
}

// ReconciliationJob periodically runs ReconcileRidersCommand.
type ReconciliationJob struct {
	handler  reconciler
	schedule string
	repair   bool
	metrics  *metrics.Metrics
	logger   *zap.Logger
	cron     *cron.Cron
}

// NewReconciliationJob creates the job. An empty schedule means
// DefaultReconcileSchedule; m may be nil.
func NewReconciliationJob(
	handler reconciler,
	schedule string,
	repair bool,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	logger = logger.With(zap.String("component", "reconciliation_job"))
	cronLog := cronLogger{logger.Sugar()}

	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		repair:   repair,
		metrics:  m,
		logger:   logger,
		cron: cron.New(
			cron.WithParser(scheduleParser),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
	}
}

func (j *ReconciliationJob) Name() string { return "reconciliation" }

// Start schedules the job. Runs use ctx, so cancelling it aborts a run in
// progress.
func (j *ReconciliationJob) Start(ctx context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("reconciliation job started",
		zap.String("schedule", j.schedule),
		zap.Bool("repair", j.repair),
	)
	return nil
}

// Stop stops scheduling and waits for a running scan to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("reconciliation job stopped")
}

// Run performs one scan.
func (j *ReconciliationJob) Run(ctx context.Context) {
	report, err := j.handler.Handle(ctx, commands.NewReconcileRidersCommand(j.repair))
	if err != nil {
		j.logger.Error("reconciliation failed", zap.Error(err))
		return
	}

	if j.metrics != nil {
		j.metrics.ObserveReconciliation(len(report.Stale), len(report.Idle), report.Repaired)
	}
	if report.Drift() == 0 {
		j.logger.Debug("riders consistent with parcels")
		return
	}
	j.logger.Warn("rider availability drift",
		zap.Int("stale", len(report.Stale)),
		zap.Int("idle_with_parcels", len(report.Idle)),
		zap.Int("repaired", report.Repaired),
	)
}

// scheduleParser accepts an optional seconds field and descriptors.
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSchedule reports whether schedule can be used by a job.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// cronLogger routes cron's own logs to zap.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
