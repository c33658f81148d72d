package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

// SendReminders notifies every patient with an approved appointment
// tomorrow. It is meant to run once a day.
type SendReminders struct {
	repo      domain.Repository
	now       calendar.Clock
	publisher notification.Publisher
	logger    *zap.Logger
}

func NewSendReminders(
	repo domain.Repository,
	now calendar.Clock,
	publisher notification.Publisher,
	logger *zap.Logger,
) *SendReminders {
	return &SendReminders{
		repo:      repo,
		now:       now,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute returns how many reminders were published.
func (uc *SendReminders) Execute(ctx context.Context) (int, error) {
	tomorrow := calendar.AddDays(calendar.StartOfDay(uc.now()), 1)

	appointments, err := uc.repo.ListByStatusBetween(
		ctx,
		domain.StatusApproved,
		tomorrow,
		calendar.AddDays(tomorrow, 1),
	)
	if err != nil {
		return 0, domain.WrapStore("list reminders", err)
	}

	for i := range appointments {
		publish(uc.publisher, reminderEvent(&appointments[i]))
	}

	uc.logger.Info("reminders sent",
		zap.String("date", calendar.FormatDate(tomorrow)),
		zap.Int("count", len(appointments)),
	)

	return len(appointments), nil
}
