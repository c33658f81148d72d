package appointment

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// Reason explains why a slot is unavailable.
type Reason string

const (
	ReasonSundayForbidden Reason = "sunday-forbidden"
	ReasonSaturdayCutoff  Reason = "saturday-cutoff"
	ReasonPastDate        Reason = "past-date"
	ReasonEndBeforeStart  Reason = "end-before-start"
	ReasonAlreadyBooked   Reason = "already-booked"
)

var (
	ErrInvalidTimeFormat = calendar.ErrInvalidTimeFormat
	ErrSlotConflict      = httperr.ErrBusiness("slot_conflict")
	ErrInvalidStatus     = httperr.ErrBusiness("invalid_status")
	ErrInvalidState      = httperr.ErrBusiness("invalid_state")

	ErrDoctorNotFound      = httperr.ErrBusiness("doctor_not_found")
	ErrPatientNotFound     = httperr.ErrBusiness("patient_not_found")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")
	ErrNotAppointmentOwner = httperr.ErrBusiness("not_appointment_owner")

	// ErrRecordNotFound is what repositories return for a missing row.
	ErrRecordNotFound = errors.New("record not found")
)

type ValidationError struct {
	Field   string
	Problem string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation_error: %s %s", e.Field, e.Problem)
}

func missing(field string) error {
	return ValidationError{Field: field, Problem: "is required"}
}

// RuleViolation is a booking refused by a clinic rule.
type RuleViolation struct {
	Reason Reason
}

func (v RuleViolation) Error() string {
	return "rule_violation: " + string(v.Reason)
}

// StoreError wraps a persistence failure. It is never retried here.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStore turns unexpected errors into a StoreError and lets the domain
// taxonomy through untouched.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		be httperr.BusinessError
		ve ValidationError
		rv RuleViolation
		se *StoreError
	)
	switch {
	case errors.As(err, &be), errors.As(err, &ve), errors.As(err, &rv), errors.As(err, &se):
		return err
	}
	return &StoreError{Op: op, Err: err}
}
