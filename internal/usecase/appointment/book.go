package appointment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	DoctorID  uint
	PatientID uint

	Date      string
	StartTime string
	EndTime   string
}

func (in BookInput) validate() error {
	switch {
	case in.DoctorID == 0:
		return domain.ValidationError{Field: "doctor_id", Problem: "is required"}
	case in.PatientID == 0:
		return domain.ValidationError{Field: "patient_id", Problem: "is required"}
	case in.Date == "":
		return domain.ValidationError{Field: "date", Problem: "is required"}
	case in.StartTime == "":
		return domain.ValidationError{Field: "start_time", Problem: "is required"}
	case in.EndTime == "":
		return domain.ValidationError{Field: "end_time", Problem: "is required"}
	}
	return nil
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo      domain.Repository
	checker   *domain.Checker
	audit     *audit.Dispatcher
	publisher notification.Publisher
	logger    *zap.Logger
}

func NewBookAppointment(
	repo domain.Repository,
	checker *domain.Checker,
	audit *audit.Dispatcher,
	publisher notification.Publisher,
	logger *zap.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:      repo,
		checker:   checker,
		audit:     audit,
		publisher: publisher,
		logger:    logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute creates a pending appointment or refuses with the reason. The
// availability test and the insert run under the doctor's lock, so two
// overlapping requests can never both succeed.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	cand, err := uc.checker.Parse(domain.Request{
		DoctorID:  in.DoctorID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Parties (snapshot only, read outside the lock)
	// --------------------------------------------------
	doctor, err := uc.repo.GetDoctor(ctx, in.DoctorID)
	if errors.Is(err, domain.ErrRecordNotFound) || (err == nil && doctor.Status != "approved") {
		return nil, domain.ErrDoctorNotFound
	}
	if err != nil {
		return nil, domain.WrapStore("get doctor", err)
	}

	patient, err := uc.repo.GetUser(ctx, in.PatientID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrPatientNotFound
	}
	if err != nil {
		return nil, domain.WrapStore("get patient", err)
	}

	ap := &models.Appointment{
		DoctorID:             doctor.ID,
		PatientID:            patient.ID,
		DoctorName:           doctor.FullName(),
		DoctorSpecialization: doctor.Specialization,
		PatientName:          patient.Name,
		PatientEmail:         patient.Email,
		StartTime:            cand.Start,
		EndTime:              cand.End,
		Status:               string(domain.InitialStatus()),
	}

	// --------------------------------------------------
	// Check and insert, atomically per doctor
	// --------------------------------------------------
	err = uc.repo.WithinDoctorLock(ctx, in.DoctorID, func(tx domain.Repository) error {
		av, err := uc.checker.WithRepository(tx).CheckCandidate(ctx, in.DoctorID, cand)
		if err != nil {
			return err
		}
		if !av.Available {
			if av.Reason == domain.ReasonAlreadyBooked {
				return domain.ErrSlotConflict
			}
			return domain.RuleViolation{Reason: av.Reason}
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if httperr.IsExclusionConflict(err) {
		err = domain.ErrSlotConflict
	}
	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			uc.audit.Dispatch(audit.Event{
				DoctorID: in.DoctorID,
				UserID:   &in.PatientID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]string{
					"date":  in.Date,
					"start": in.StartTime,
					"end":   in.EndTime,
				},
			})
		}
		return nil, domain.WrapStore("book appointment", err)
	}

	// --------------------------------------------------
	// After commit: audit + notifications, never fatal
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		DoctorID: ap.DoctorID,
		UserID:   &ap.PatientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	publish(uc.publisher, requestedEvents(ap, doctor)...)

	uc.logger.Info("appointment booked",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("doctor_id", ap.DoctorID),
		zap.Uint("patient_id", ap.PatientID),
	)

	return ap, nil
}
