package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

type SuggestSlotsInput struct {
	DoctorID uint

	// search starts at Date + Time
	Date string
	Time string

	SlotMinutes    int
	MaxSuggestions int
	MaxDays        int
}

type SuggestSlots struct {
	suggester *domain.Suggester
	loc       *time.Location
	clock     calendar.Clock
	defaults  SuggestDefaults
}

func NewSuggestSlots(
	suggester *domain.Suggester,
	loc *time.Location,
	clock calendar.Clock,
	defaults SuggestDefaults,
) *SuggestSlots {
	return &SuggestSlots{
		suggester: suggester,
		loc:       loc,
		clock:     clock,
		defaults:  defaults,
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// earliestStart keeps after when it is still ahead of now. Otherwise the
// walk starts at now rounded up to the next step boundary of the day.
func earliestStart(after, now time.Time, step time.Duration) time.Time {
	if !after.Before(now) {
		return after
	}
	if step < time.Minute {
		step = time.Minute
	}

	day := calendar.StartOfDay(now)
	elapsed := now.Sub(day)
	if rem := elapsed % step; rem != 0 {
		elapsed += step - rem
	}
	return day.Add(elapsed)
}

func (uc *SuggestSlots) Execute(
	ctx context.Context,
	in SuggestSlotsInput,
) ([]domain.Slot, error) {

	if in.DoctorID == 0 {
		return nil, domain.ValidationError{Field: "doctor_id", Problem: "is required"}
	}

	after, err := calendar.ParseDateTime(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(orDefault(in.SlotMinutes, uc.defaults.SlotMinutes)) * time.Minute

	return uc.suggester.Suggest(ctx, domain.SuggestRequest{
		DoctorID:       in.DoctorID,
		After:          earliestStart(after, uc.clock(), duration),
		SlotDuration:   duration,
		MaxSuggestions: orDefault(in.MaxSuggestions, uc.defaults.MaxSuggestions),
		MaxDays:        orDefault(in.MaxDays, uc.defaults.MaxDays),
	})
}
