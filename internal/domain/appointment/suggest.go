package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
)

const (
	DefaultSlotMinutes    = 30
	DefaultMaxSuggestions = 3
	DefaultMaxDays        = 7

	MaxSuggestionsLimit = 20
	MaxDaysLimit        = 60
)

type SuggestRequest struct {
	DoctorID       uint
	After          time.Time
	SlotDuration   time.Duration
	MaxSuggestions int
	MaxDays        int
}

type Slot struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func slotOf(start, end time.Time) Slot {
	return Slot{
		Date:  calendar.FormatDate(start),
		Start: calendar.FormatClock(start),
		End:   calendar.FormatClock(end),
	}
}

// Suggester proposes the first free slots after a point in time. It keeps
// no state between calls: same store contents and request, same answer.
type Suggester struct {
	repo Repository
	days RuleSet
}

func NewSuggester(repo Repository) *Suggester {
	return &Suggester{
		repo: repo,
		days: DayRules(),
	}
}

func (s *Suggester) validate(req SuggestRequest) error {
	switch {
	case req.DoctorID == 0:
		return missing("doctor_id")
	case req.After.IsZero():
		return missing("after")
	case req.SlotDuration < time.Minute:
		return ValidationError{Field: "slot_duration", Problem: "must be at least one minute"}
	case req.MaxSuggestions <= 0 || req.MaxSuggestions > MaxSuggestionsLimit:
		return ValidationError{Field: "max_suggestions", Problem: "out of range"}
	case req.MaxDays <= 0 || req.MaxDays > MaxDaysLimit:
		return ValidationError{Field: "max_days", Problem: "out of range"}
	}
	return nil
}

// Suggest walks forward from req.After in SlotDuration steps. The busy
// intervals of the whole search window are read once and tested in memory.
// An empty result means nothing was free within MaxDays.
func (s *Suggester) Suggest(ctx context.Context, req SuggestRequest) ([]Slot, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	windowStart := calendar.StartOfDay(req.After)
	windowEnd := calendar.AddDays(windowStart, req.MaxDays+1)

	busy, err := s.repo.ListBusy(
		ctx,
		req.DoctorID,
		ActiveStatuses(),
		windowStart,
		windowEnd,
	)
	if err != nil {
		return nil, WrapStore("list busy", err)
	}

	slots := make([]Slot, 0, req.MaxSuggestions)
	candidate := req.After
	daysChecked := 0

	for len(slots) < req.MaxSuggestions && daysChecked < req.MaxDays {
		opening := calendar.At(candidate, OpeningHour, 0)
		if candidate.Before(opening) {
			candidate = opening
		}

		end := candidate.Add(req.SlotDuration)
		closing := calendar.At(candidate, ClosingHour, 0)

		_, open := s.days.Evaluate(Candidate{Start: candidate, End: end}, candidate)
		if !open || end.After(closing) {
			// closed for the rest of this day
			candidate = calendar.AddDays(opening, 1)
			daysChecked++
			continue
		}

		if !OverlapsAny(busy, candidate, end) {
			slots = append(slots, slotOf(candidate, end))
		}

		candidate = end
	}

	return slots, nil
}
