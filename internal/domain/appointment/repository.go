package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Conflict detection --------
	FindConflicting(
		ctx context.Context,
		doctorID uint,
		statuses []Status,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListBusy(
		ctx context.Context,
		doctorID uint,
		statuses []Status,
		from time.Time,
		to time.Time,
	) ([]Span, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForDoctor(
		ctx context.Context,
		doctorID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	ListByStatusBetween(
		ctx context.Context,
		status Status,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Parties --------
	GetDoctor(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	GetDoctorByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Doctor, error)

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Atomic scope --------

	// WithinDoctorLock runs fn with every other WithinDoctorLock call for the
	// same doctor excluded. fn receives a repository bound to the same
	// transaction; returning an error discards everything fn wrote.
	WithinDoctorLock(
		ctx context.Context,
		doctorID uint,
		fn func(tx Repository) error,
	) error
}
