package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB

	// timestamp columns carry no zone; values read back are put in loc
	loc *time.Location

	// set on the copy handed out by WithinDoctorLock
	inTx bool
}

func NewAppointmentGormRepository(db *gorm.DB, loc *time.Location) *AppointmentGormRepository {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentGormRepository{db: db, loc: loc}
}

func (r *AppointmentGormRepository) wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), r.loc)
}

func (r *AppointmentGormRepository) localize(apps []models.Appointment) []models.Appointment {
	for i := range apps {
		apps[i].StartTime = r.wall(apps[i].StartTime)
		apps[i].EndTime = r.wall(apps[i].EndTime)
	}
	return apps
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRecordNotFound
	}
	return err
}

// --------------------------------------------------
// Conflict detection
// --------------------------------------------------

func (r *AppointmentGormRepository) FindConflicting(
	ctx context.Context,
	doctorID uint,
	statuses []domain.Status,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var conflicts []models.Appointment
	if err := q.
		Where(
			"doctor_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			doctorID, statusStrings(statuses), end, start,
		).
		Find(&conflicts).Error; err != nil {
		return nil, err
	}

	return r.localize(conflicts), nil
}

func (r *AppointmentGormRepository) ListBusy(
	ctx context.Context,
	doctorID uint,
	statuses []domain.Status,
	from time.Time,
	to time.Time,
) ([]domain.Span, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"doctor_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			doctorID, statusStrings(statuses), to, from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	busy := make([]domain.Span, 0, len(apps))
	for i := range r.localize(apps) {
		busy = append(busy, domain.SpanOf(&apps[i]))
	}
	return busy, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ap models.Appointment
	if err := q.First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	ap.StartTime = r.wall(ap.StartTime)
	ap.EndTime = r.wall(ap.EndTime)
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForDoctor(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND start_time >= ? AND start_time < ?",
			doctorID, from, to,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return r.localize(apps), nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return r.localize(apps), nil
}

func (r *AppointmentGormRepository) ListByStatusBetween(
	ctx context.Context,
	status domain.Status,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"status = ? AND start_time >= ? AND start_time < ?",
			string(status), from, to,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return r.localize(apps), nil
}

// --------------------------------------------------
// Parties
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctor(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &doctor, nil
}

func (r *AppointmentGormRepository) GetDoctorByUserID(
	ctx context.Context,
	userID uint,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&doctor).Error; err != nil {
		return nil, notFound(err)
	}
	return &doctor, nil
}

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// --------------------------------------------------
// Atomic scope
// --------------------------------------------------

// WithinDoctorLock serializes writers per doctor with a transaction-scoped
// advisory lock. The appointments_no_overlap exclusion constraint still
// guards rows written outside this path.
func (r *AppointmentGormRepository) WithinDoctorLock(
	ctx context.Context,
	doctorID uint,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(doctorID)).Error; err != nil {
			return err
		}
		return fn(&AppointmentGormRepository{db: tx, loc: r.loc, inTx: true})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
