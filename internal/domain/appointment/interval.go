package appointment

import "time"

// Span is a half-open [Start, End) interval.
type Span struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open semantics: touching endpoints do not conflict.
func (s Span) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && s.End.After(start)
}

func OverlapsAny(busy []Span, start, end time.Time) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
