package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Decide(ap *models.Appointment, to Status, now time.Time) error {
	if to != StatusApproved && to != StatusRejected {
		return ErrInvalidStatus
	}
	if err := CanDecide(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(to)
	ap.DecidedAt = &now
	return nil
}

func SpanOf(ap *models.Appointment) Span {
	return Span{Start: ap.StartTime, End: ap.EndTime}
}
