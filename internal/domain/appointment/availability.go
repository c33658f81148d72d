package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
)

// Request is the canonical input of an availability check: one date and two
// HH:mm clocks.
type Request struct {
	DoctorID  uint
	Date      string
	StartTime string
	EndTime   string
}

type Availability struct {
	Available bool   `json:"available"`
	Reason    Reason `json:"reason,omitempty"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Checker is the single place where a slot is tested against the rules and
// the store. The booking transaction uses it too, through WithRepository.
type Checker struct {
	repo  Repository
	rules RuleSet
	loc   *time.Location
	now   calendar.Clock
}

func NewChecker(
	repo Repository,
	loc *time.Location,
	now calendar.Clock,
) *Checker {
	return &Checker{
		repo:  repo,
		rules: DefaultRules(),
		loc:   loc,
		now:   now,
	}
}

// WithRepository returns a copy of the checker reading through repo,
// typically a transaction-bound repository.
func (c *Checker) WithRepository(repo Repository) *Checker {
	cp := *c
	cp.repo = repo
	return &cp
}

func (c *Checker) Location() *time.Location {
	return c.loc
}

func (c *Checker) Now() time.Time {
	return c.now()
}

// Parse turns a request into absolute timestamps.
func (c *Checker) Parse(req Request) (Candidate, error) {
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return Candidate{}, ErrInvalidTimeFormat
	}

	start, err := calendar.ParseDateTime(req.Date, req.StartTime, c.loc)
	if err != nil {
		return Candidate{}, err
	}
	end, err := calendar.ParseDateTime(req.Date, req.EndTime, c.loc)
	if err != nil {
		return Candidate{}, err
	}

	return Candidate{Start: start, End: end}, nil
}

// Check is advisory: it reserves nothing.
func (c *Checker) Check(ctx context.Context, req Request) (Availability, error) {
	if req.DoctorID == 0 {
		return Availability{}, missing("doctor_id")
	}

	cand, err := c.Parse(req)
	if err != nil {
		return Availability{}, err
	}

	return c.CheckCandidate(ctx, req.DoctorID, cand)
}

func (c *Checker) CheckCandidate(
	ctx context.Context,
	doctorID uint,
	cand Candidate,
) (Availability, error) {

	out := Availability{Start: cand.Start, End: cand.End}

	// rules first, no I/O for a slot that can never be booked
	if reason, ok := c.rules.Evaluate(cand, c.now()); !ok {
		out.Reason = reason
		return out, nil
	}

	conflicts, err := c.repo.FindConflicting(
		ctx,
		doctorID,
		ActiveStatuses(),
		cand.Start,
		cand.End,
	)
	if err != nil {
		return Availability{}, WrapStore("find conflicting", err)
	}

	if len(conflicts) > 0 {
		out.Reason = ReasonAlreadyBooked
		return out, nil
	}

	out.Available = true
	return out, nil
}
