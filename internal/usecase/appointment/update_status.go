package appointment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

type UpdateStatusInput struct {
	// DoctorUserID is the authenticated user, not the doctor profile id.
	DoctorUserID  uint
	AppointmentID uint
	Status        string
}

type UpdateStatus struct {
	repo      domain.Repository
	now       calendar.Clock
	audit     *audit.Dispatcher
	publisher notification.Publisher
	logger    *zap.Logger
}

func NewUpdateStatus(
	repo domain.Repository,
	now calendar.Clock,
	audit *audit.Dispatcher,
	publisher notification.Publisher,
	logger *zap.Logger,
) *UpdateStatus {
	return &UpdateStatus{
		repo:      repo,
		now:       now,
		audit:     audit,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	to, err := domain.ParseDecision(in.Status)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.repo.GetDoctorByUserID(ctx, in.DoctorUserID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrNotAppointmentOwner
	}
	if err != nil {
		return nil, domain.WrapStore("get doctor", err)
	}

	var ap *models.Appointment
	err = uc.repo.WithinDoctorLock(ctx, doctor.ID, func(tx domain.Repository) error {
		found, err := tx.GetAppointment(ctx, in.AppointmentID)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrAppointmentNotFound
		}
		if err != nil {
			return err
		}
		if found.DoctorID != doctor.ID {
			return domain.ErrNotAppointmentOwner
		}

		if err := domain.Decide(found, to, uc.now()); err != nil {
			return err
		}
		ap = found
		return tx.UpdateAppointment(ctx, found)
	})
	if err != nil {
		return nil, domain.WrapStore("update status", err)
	}

	uc.audit.Dispatch(audit.Event{
		DoctorID: doctor.ID,
		UserID:   &in.DoctorUserID,
		Action:   "appointment_" + ap.Status,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	publish(uc.publisher, decisionEvent(ap))

	uc.logger.Info("appointment status updated",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("doctor_id", ap.DoctorID),
		zap.String("status", ap.Status),
	)

	return ap, nil
}
