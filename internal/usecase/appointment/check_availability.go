package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

// SuggestDefaults are used when a caller leaves a search parameter empty.
type SuggestDefaults struct {
	SlotMinutes    int
	MaxSuggestions int
	MaxDays        int
}

func DefaultSuggestDefaults() SuggestDefaults {
	return SuggestDefaults{
		SlotMinutes:    domain.DefaultSlotMinutes,
		MaxSuggestions: domain.DefaultMaxSuggestions,
		MaxDays:        domain.DefaultMaxDays,
	}
}

type CheckAvailabilityOutput struct {
	Available   bool          `json:"available"`
	Reason      domain.Reason `json:"reason,omitempty"`
	Suggestions []domain.Slot `json:"suggestions,omitempty"`
}

type CheckAvailability struct {
	checker   *domain.Checker
	suggester *domain.Suggester
	defaults  SuggestDefaults
}

func NewCheckAvailability(
	checker *domain.Checker,
	suggester *domain.Suggester,
	defaults SuggestDefaults,
) *CheckAvailability {
	return &CheckAvailability{
		checker:   checker,
		suggester: suggester,
		defaults:  defaults,
	}
}

// alternatives make sense only when the slot itself is the problem
func suggestable(r domain.Reason) bool {
	switch r {
	case domain.ReasonAlreadyBooked, domain.ReasonSundayForbidden, domain.ReasonSaturdayCutoff:
		return true
	}
	return false
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in domain.Request,
) (*CheckAvailabilityOutput, error) {

	av, err := uc.checker.Check(ctx, in)
	if err != nil {
		return nil, err
	}

	out := &CheckAvailabilityOutput{
		Available: av.Available,
		Reason:    av.Reason,
	}
	if av.Available || !suggestable(av.Reason) {
		return out, nil
	}

	duration := av.End.Sub(av.Start)
	if duration < time.Minute {
		duration = time.Duration(uc.defaults.SlotMinutes) * time.Minute
	}

	slots, err := uc.suggester.Suggest(ctx, domain.SuggestRequest{
		DoctorID:       in.DoctorID,
		After:          earliestStart(av.Start, uc.checker.Now(), duration),
		SlotDuration:   duration,
		MaxSuggestions: uc.defaults.MaxSuggestions,
		MaxDays:        uc.defaults.MaxDays,
	})
	if err != nil {
		return nil, err
	}

	out.Suggestions = slots
	return out, nil
}
