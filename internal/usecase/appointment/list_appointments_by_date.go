package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
		loc:  loc,
	}
}

// Execute lists the calling doctor's appointments of one day, all statuses.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	doctorUserID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := calendar.ParseDate(date, uc.loc)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.repo.GetDoctorByUserID(ctx, doctorUserID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrDoctorNotFound
	}
	if err != nil {
		return nil, domain.WrapStore("get doctor", err)
	}

	appointments, err := uc.repo.ListAppointmentsForDoctor(
		ctx,
		doctor.ID,
		day,
		calendar.AddDays(day, 1),
	)
	if err != nil {
		return nil, domain.WrapStore("list doctor appointments", err)
	}

	return dto.AppointmentList(appointments), nil
}
