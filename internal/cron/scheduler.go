// Package cron runs the scheduled background jobs of the service.
package cron

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"invoicehub/internal/service/stats"
)

// ReportProvider computes the aggregate invoice report.
type ReportProvider interface {
	Report(ctx context.Context) (*stats.Report, error)
}

// Scheduler manages all cron jobs.
type Scheduler struct {
	cron       *cron.Cron
	stats      ReportProvider
	reportSpec string
	logger     *zap.Logger
}

// New creates a new cron scheduler. reportSpec is a six-field cron
// expression (with seconds) for the daily stats summary.
func New(statsProvider ReportProvider, reportSpec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		stats:      statsProvider,
		reportSpec: reportSpec,
		logger:     logger,
	}
}

// Start registers and starts all cron jobs.
func (s *Scheduler) Start() {
	s.logger.Info("Starting cron scheduler...")

	if _, err := s.cron.AddFunc(s.reportSpec, func() {
		s.logger.Debug("Running: daily stats summary")
		s.dailyStatsSummary()
	}); err != nil {
		s.logger.Error("Failed to schedule daily stats summary", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler and returns a context that is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) dailyStatsSummary() {
	report, err := s.stats.Report(context.Background())
	if err != nil {
		s.logger.Error("Daily stats summary failed", zap.Error(err))
		return
	}
	s.logger.Info("Daily invoice summary",
		zap.Int("total_invoices", report.TotalInvoices),
		zap.String("total_amount", report.TotalAmount.StringFixed(2)),
		zap.String("average_amount", report.AverageAmount.StringFixed(2)),
		zap.Int("statuses", len(report.ByStatus)),
	)
}
