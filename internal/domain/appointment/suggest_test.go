package appointment_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
)

func suggestReq(after time.Time) domain.SuggestRequest {
	return domain.SuggestRequest{
		DoctorID:       doctorID,
		After:          after,
		SlotDuration:   30 * time.Minute,
		MaxSuggestions: 3,
		MaxDays:        7,
	}
}

func TestSuggest_FirstFreeSlotAfterBooking(t *testing.T) {
	repo := repository.NewMemoryRepository()
	seed(repo, domain.StatusApproved, ts(1, 9, 0), ts(1, 9, 30))

	slots, err := domain.NewSuggester(repo).Suggest(context.Background(), suggestReq(ts(1, 9, 30)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Slot{
		{Date: "2024-06-01", Start: "09:30", End: "10:00"},
		{Date: "2024-06-01", Start: "10:00", End: "10:30"},
		{Date: "2024-06-01", Start: "10:30", End: "11:00"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestSuggest_SkipsBusyAndRollsOverSunday(t *testing.T) {
	repo := repository.NewMemoryRepository()
	seed(repo, domain.StatusPending, ts(1, 15, 0), ts(1, 15, 30))
	seed(repo, domain.StatusRejected, ts(3, 9, 0), ts(3, 9, 30))

	// Saturday 15:00 is busy, 15:30 is free, 16:00 is past the cutoff,
	// Sunday is closed, Monday 09:00 was rejected so it is free again.
	slots, err := domain.NewSuggester(repo).Suggest(context.Background(), suggestReq(ts(1, 15, 0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Slot{
		{Date: "2024-06-01", Start: "15:30", End: "16:00"},
		{Date: "2024-06-03", Start: "09:00", End: "09:30"},
		{Date: "2024-06-03", Start: "09:30", End: "10:00"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestSuggest_MovesEarlyStartToOpening(t *testing.T) {
	repo := repository.NewMemoryRepository()

	slots, err := domain.NewSuggester(repo).Suggest(context.Background(), suggestReq(ts(3, 6, 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) == 0 || slots[0].Start != "09:00" {
		t.Fatalf("expected first slot at 09:00, got %v", slots)
	}
}

func TestSuggest_SlotMustEndByClosing(t *testing.T) {
	repo := repository.NewMemoryRepository()

	req := suggestReq(ts(3, 17, 45))
	req.MaxSuggestions = 1

	slots, err := domain.NewSuggester(repo).Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Slot{{Date: "2024-06-04", Start: "09:00", End: "09:30"}}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestSuggest_Idempotent(t *testing.T) {
	repo := repository.NewMemoryRepository()
	seed(repo, domain.StatusApproved, ts(3, 10, 0), ts(3, 12, 0))

	s := domain.NewSuggester(repo)
	req := suggestReq(ts(3, 9, 30))

	first, err := s.Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestSuggest_EmptyWhenFullyBooked(t *testing.T) {
	repo := repository.NewMemoryRepository()
	for day := 3; day <= 9; day++ {
		seed(repo, domain.StatusApproved, ts(day, 0, 0), ts(day, 23, 59))
	}

	req := suggestReq(ts(3, 9, 0))
	req.MaxDays = 5

	slots, err := domain.NewSuggester(repo).Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no suggestions, got %v", slots)
	}
}

func TestSuggest_Validation(t *testing.T) {
	repo := repository.NewMemoryRepository()
	s := domain.NewSuggester(repo)

	mutations := map[string]func(*domain.SuggestRequest){
		"doctor_id":       func(r *domain.SuggestRequest) { r.DoctorID = 0 },
		"slot_duration":   func(r *domain.SuggestRequest) { r.SlotDuration = 0 },
		"max_suggestions": func(r *domain.SuggestRequest) { r.MaxSuggestions = -1 },
		"max_days":        func(r *domain.SuggestRequest) { r.MaxDays = domain.MaxDaysLimit + 1 },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			req := suggestReq(ts(3, 9, 0))
			mutate(&req)

			_, err := s.Suggest(context.Background(), req)
			var ve domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != field {
				t.Fatalf("expected validation error on %s, got %v", field, err)
			}
		})
	}
}
