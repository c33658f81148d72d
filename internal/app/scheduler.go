package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
)

// ReminderJob is satisfied by the SendReminders use case.
type ReminderJob interface {
	Execute(ctx context.Context) (int, error)
}

// Scheduler runs the reminder job every day at clinic midnight.
type Scheduler struct {
	job    ReminderJob
	now    calendar.Clock
	logger *zap.Logger

	stopOnce sync.Once
	stopChan chan struct{}
}

func NewScheduler(job ReminderJob, now calendar.Clock, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		job:      job,
		now:      now,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// NextRun is the first midnight strictly after now.
func NextRun(now time.Time) time.Time {
	return calendar.AddDays(calendar.StartOfDay(now), 1)
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("starting reminder scheduler")
	go s.run(ctx)
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("stopping reminder scheduler")
		close(s.stopChan)
	})
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		now := s.now()
		timer := time.NewTimer(NextRun(now).Sub(now))

		select {
		case <-timer.C:
			s.RunOnce(ctx)
		case <-s.stopChan:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// RunOnce sends the reminders for tomorrow and logs the outcome.
func (s *Scheduler) RunOnce(ctx context.Context) {
	n, err := s.job.Execute(ctx)
	if err != nil {
		s.logger.Error("reminder run failed", zap.Error(err))
		return
	}
	s.logger.Info("reminder run completed", zap.Int("reminders", n))
}
