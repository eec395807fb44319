// File: /jobs/summary_report_job.go
package jobs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"milestone-api/logger"
	"milestone-api/models"
)

const reportConcurrency = 4

type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, userID string, period string) (*models.PeriodSummary, error)
}

type ReportMailer interface {
	SendSummaryReport(to, username string, summary *models.PeriodSummary) error
}

// SummaryReportJob periodically emails every user their profit/loss summary
// for the current month.
type SummaryReportJob struct {
	users    UserLister
	reports  Summarizer
	mailer   ReportMailer
	log      *logger.Logger
	interval time.Duration
	timeout  time.Duration

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSummaryReportJob creates a new summary report job
func NewSummaryReportJob(users UserLister, reports Summarizer, mailer ReportMailer, interval time.Duration, log *logger.Logger) *SummaryReportJob {
	return &SummaryReportJob{
		users:    users,
		reports:  reports,
		mailer:   mailer,
		log:      log.WithComponent(logger.ComponentJobs),
		interval: interval,
		timeout:  5 * time.Minute,
		done:     make(chan struct{}),
	}
}

// Start runs the job once immediately and then on every tick until Stop.
func (j *SummaryReportJob) Start() {
	j.log.Info("summary report job started", "interval", j.interval.String())

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		j.run()

		for {
			select {
			case <-ticker.C:
				j.run()
			case <-j.done:
				j.log.Info("summary report job stopped")
				return
			}
		}
	}()
}

// Stop halts the job and waits for an in-flight run to finish. It is safe to
// call more than once.
func (j *SummaryReportJob) Stop() {
	j.stopOnce.Do(func() {
		close(j.done)
	})
	j.wg.Wait()
}

func (j *SummaryReportJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	go func() {
		select {
		case <-j.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	sent, failed, err := j.RunOnce(ctx)
	if err != nil {
		j.log.Error("summary report run failed", logger.FieldError, err)
		return
	}
	j.log.Info("summary report run completed", "sent", sent, "failed", failed)
}

// RunOnce sends the monthly summary to every user. A failure for one user is
// logged and counted without stopping the others; only failing to list users
// is returned as an error.
func (j *SummaryReportJob) RunOnce(ctx context.Context) (sent, failed int, err error) {
	users, err := j.users.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list users: %w", err)
	}

	var sentCount, failedCount atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reportConcurrency)

	for _, u := range users {
		u := u
		g.Go(func() error {
			if err := j.sendOne(gctx, u); err != nil {
				failedCount.Add(1)
				j.log.Warn("summary report not sent",
					logger.FieldUserID, u.ID,
					logger.FieldError, err,
				)
				return nil
			}
			sentCount.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(sentCount.Load()), int(failedCount.Load()), nil
}

func (j *SummaryReportJob) sendOne(ctx context.Context, u models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	summary, err := j.reports.Summarize(ctx, u.ID, string(models.PeriodMonthly))
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	if err := j.mailer.SendSummaryReport(u.Email, u.Username, summary); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}
