package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// MemoryRepository keeps everything in maps. It backs STORE=memory and the
// tests. Writers for one doctor are serialized by a per-doctor mutex, which
// plays the role of the advisory lock.
type MemoryRepository struct {
	mu           sync.RWMutex
	nextID       uint
	appointments map[uint]models.Appointment
	doctors      map[uint]models.Doctor
	users        map[uint]models.User

	locksMu     sync.Mutex
	doctorLocks map[uint]*sync.Mutex
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		appointments: make(map[uint]models.Appointment),
		doctors:      make(map[uint]models.Doctor),
		users:        make(map[uint]models.User),
		doctorLocks:  make(map[uint]*sync.Mutex),
	}
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *MemoryRepository) AddUser(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *MemoryRepository) AddDoctor(d models.Doctor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[d.ID] = d
}

// AddAppointment stores ap as is, status included.
func (r *MemoryRepository) AddAppointment(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.ID] = ap
	return ap
}

// --------------------------------------------------
// Conflict detection
// --------------------------------------------------

func hasStatus(statuses []domain.Status, s string) bool {
	for _, st := range statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) sorted(keep func(models.Appointment) bool) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func (r *MemoryRepository) FindConflicting(
	ctx context.Context,
	doctorID uint,
	statuses []domain.Status,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(ap models.Appointment) bool {
		return ap.DoctorID == doctorID &&
			hasStatus(statuses, ap.Status) &&
			domain.SpanOf(&ap).Overlaps(start, end)
	}), nil
}

func (r *MemoryRepository) ListBusy(
	ctx context.Context,
	doctorID uint,
	statuses []domain.Status,
	from time.Time,
	to time.Time,
) ([]domain.Span, error) {

	apps, err := r.FindConflicting(ctx, doctorID, statuses, from, to)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Span, 0, len(apps))
	for i := range apps {
		busy = append(busy, domain.SpanOf(&apps[i]))
	}
	return busy, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *MemoryRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()
	ap.ID = r.nextID
	ap.CreatedAt = now
	ap.UpdatedAt = now
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &ap, nil
}

func (r *MemoryRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	ap.UpdatedAt = time.Now()
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) ListAppointmentsForDoctor(
	_ context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(ap models.Appointment) bool {
		return ap.DoctorID == doctorID &&
			!ap.StartTime.Before(from) && ap.StartTime.Before(to)
	}), nil
}

func (r *MemoryRepository) ListAppointmentsForPatient(
	_ context.Context,
	patientID uint,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.sorted(func(ap models.Appointment) bool {
		return ap.PatientID == patientID
	})
	// newest first, like the postgres listing
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *MemoryRepository) ListByStatusBetween(
	_ context.Context,
	status domain.Status,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(ap models.Appointment) bool {
		return ap.Status == string(status) &&
			!ap.StartTime.Before(from) && ap.StartTime.Before(to)
	}), nil
}

// --------------------------------------------------
// Parties
// --------------------------------------------------

func (r *MemoryRepository) GetDoctor(_ context.Context, id uint) (*models.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.doctors[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &d, nil
}

func (r *MemoryRepository) GetDoctorByUserID(_ context.Context, userID uint) (*models.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.doctors {
		if d.UserID == userID {
			return &d, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *MemoryRepository) GetUser(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &u, nil
}

// --------------------------------------------------
// Atomic scope
// --------------------------------------------------

func (r *MemoryRepository) doctorLock(doctorID uint) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	l, ok := r.doctorLocks[doctorID]
	if !ok {
		l = &sync.Mutex{}
		r.doctorLocks[doctorID] = l
	}
	return l
}

// WithinDoctorLock has no rollback: callers write last, after every check
// has passed, so a failed fn leaves nothing behind.
func (r *MemoryRepository) WithinDoctorLock(
	ctx context.Context,
	doctorID uint,
	fn func(tx domain.Repository) error,
) error {

	l := r.doctorLock(doctorID)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r)
}

var _ domain.Repository = (*MemoryRepository)(nil)
