package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ActiveStatuses are the statuses that hold a slot. Rejected appointments
// never block a booking.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusApproved}
}

func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusApproved
}

// ===============================
// Validations
// ===============================

// ParseDecision accepts only the two terminal statuses a doctor can set.
func ParseDecision(s string) (Status, error) {
	switch Status(s) {
	case StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// CanDecide: only pending appointments can be approved or rejected.
func CanDecide(current Status) error {
	if current != StatusPending {
		return ErrInvalidState
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
