package calendar

import "time"

const DefaultLocation = "Local"

func IsValid(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// Location resolves the clinic location. Unknown names fall back to the
// process local zone; all clinic times are naive wall-clock times anyway.
func Location(name string) *time.Location {
	if IsValid(name) {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.Local
}

// Clock yields "now" in clinic time. Business rules take a Clock so that
// the past-date rule can be pinned in tests.
type Clock func() time.Time

func SystemClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}
