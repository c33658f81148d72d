package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

type ListPatientAppointments struct {
	repo domain.Repository
}

func NewListPatientAppointments(repo domain.Repository) *ListPatientAppointments {
	return &ListPatientAppointments{repo: repo}
}

// Execute returns the patient's appointments, newest first.
func (uc *ListPatientAppointments) Execute(
	ctx context.Context,
	patientID uint,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPatient(ctx, patientID)
	if err != nil {
		return nil, domain.WrapStore("list patient appointments", err)
	}

	return dto.AppointmentList(appointments), nil
}
