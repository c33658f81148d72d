package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

const (
	doctorUserID = 10
	doctorID     = 1
	patientID    = 20
)

// Friday 2024-05-31 08:00, clinic time.
var now = time.Date(2024, 5, 31, 8, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) *repository.MemoryRepository {
	t.Helper()

	repo := repository.NewMemoryRepository()
	repo.AddUser(models.User{ID: doctorUserID, Name: "Gregory House", Email: "house@clinic.test"})
	repo.AddUser(models.User{ID: patientID, Name: "John Doe", Email: "john@example.com"})
	repo.AddDoctor(models.Doctor{
		ID:             doctorID,
		UserID:         doctorUserID,
		FirstName:      "Gregory",
		LastName:       "House",
		Specialization: "Diagnostics",
		Status:         "approved",
	})
	return repo
}

func newChecker(repo domain.Repository) *domain.Checker {
	return domain.NewChecker(repo, time.UTC, calendar.FixedClock(now))
}

func newSuggestSlots(repo domain.Repository) *SuggestSlots {
	return NewSuggestSlots(domain.NewSuggester(repo), time.UTC, calendar.FixedClock(now), DefaultSuggestDefaults())
}

// recorder is a Publisher keeping every event.
type recorder struct {
	mu     sync.Mutex
	events []notification.Event
}

func (r *recorder) Publish(ev notification.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []notification.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]notification.Kind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

// failingRepo fails CreateAppointment and/or FindConflicting with err.
type failingRepo struct {
	domain.Repository
	err    error
	create bool
	find   bool
}

func (r *failingRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if r.create {
		return r.err
	}
	return r.Repository.CreateAppointment(ctx, ap)
}

func (r *failingRepo) FindConflicting(
	ctx context.Context,
	doctorID uint,
	statuses []domain.Status,
	start, end time.Time,
) ([]models.Appointment, error) {
	if r.find {
		return nil, r.err
	}
	return r.Repository.FindConflicting(ctx, doctorID, statuses, start, end)
}

// WithinDoctorLock hands fn the wrapper so the failures stay in effect.
func (r *failingRepo) WithinDoctorLock(
	ctx context.Context,
	doctorID uint,
	fn func(tx domain.Repository) error,
) error {
	return r.Repository.WithinDoctorLock(ctx, doctorID, func(domain.Repository) error {
		return fn(r)
	})
}

func newBook(repo domain.Repository, pub notification.Publisher) *BookAppointment {
	return NewBookAppointment(repo, newChecker(repo), nil, pub, zap.NewNop())
}
