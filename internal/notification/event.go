package notification

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindAppointmentRequested Kind = "appointment-requested"
	KindRequestSent          Kind = "appointment-request-sent"
	KindAppointmentApproved  Kind = "appointment-approved"
	KindAppointmentRejected  Kind = "appointment-rejected"
	KindAppointmentReminder  Kind = "appointment-reminder"
)

// Event is an outbound message for one recipient. It is emitted after a
// state change commits and delivered asynchronously.
type Event struct {
	ID          string    `json:"id"`
	RecipientID uint      `json:"recipient_id"`
	Kind        Kind      `json:"kind"`
	Message     string    `json:"message"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewEvent(recipientID uint, kind Kind, message, link string) Event {
	return Event{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		Kind:        kind,
		Message:     message,
		Link:        link,
		CreatedAt:   time.Now(),
	}
}
