package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
)

// Clinic opening hours, local clinic time.
const (
	OpeningHour        = 9
	ClosingHour        = 18
	SaturdayCutoffHour = 16
)

// Candidate is a requested slot. Its date is the day of Start.
type Candidate struct {
	Start time.Time
	End   time.Time
}

type Rule struct {
	Reason   Reason
	Violated func(c Candidate, now time.Time) bool
}

var (
	NoSunday = Rule{
		Reason: ReasonSundayForbidden,
		Violated: func(c Candidate, _ time.Time) bool {
			return calendar.Weekday(c.Start) == time.Sunday
		},
	}

	SaturdayCutoff = Rule{
		Reason: ReasonSaturdayCutoff,
		Violated: func(c Candidate, _ time.Time) bool {
			return calendar.Weekday(c.Start) == time.Saturday &&
				c.Start.Hour() >= SaturdayCutoffHour
		},
	}

	// Any time of today is still bookable.
	NoPastDate = Rule{
		Reason: ReasonPastDate,
		Violated: func(c Candidate, now time.Time) bool {
			return calendar.DayBefore(c.Start, now)
		},
	}

	StartBeforeEnd = Rule{
		Reason: ReasonEndBeforeStart,
		Violated: func(c Candidate, _ time.Time) bool {
			return !c.Start.Before(c.End)
		},
	}
)

// RuleSet is evaluated in order; the first violation wins.
type RuleSet []Rule

func DefaultRules() RuleSet {
	return RuleSet{NoSunday, SaturdayCutoff, NoPastDate, StartBeforeEnd}
}

// DayRules only look at the day and the start hour. The suggester uses them
// to skip closed days.
func DayRules() RuleSet {
	return RuleSet{NoSunday, SaturdayCutoff}
}

func (rs RuleSet) Evaluate(c Candidate, now time.Time) (Reason, bool) {
	for _, r := range rs {
		if r.Violated(c, now) {
			return r.Reason, false
		}
	}
	return "", true
}
