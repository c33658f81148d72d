package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

func when(ap *models.Appointment) string {
	return fmt.Sprintf("%s, %s",
		calendar.FormatLong(ap.StartTime),
		calendar.FormatRange(ap.StartTime, ap.EndTime),
	)
}

func doctorLink(ap *models.Appointment) string {
	return fmt.Sprintf("/doctor-appointments/%d", ap.ID)
}

const patientLink = "/appointments"

// publish with a nil publisher is a no-op.
func publish(p notification.Publisher, events ...notification.Event) {
	if p == nil {
		return
	}
	for _, ev := range events {
		p.Publish(ev)
	}
}

func requestedEvents(ap *models.Appointment, doctor *models.Doctor) []notification.Event {
	return []notification.Event{
		notification.NewEvent(
			doctor.UserID,
			notification.KindAppointmentRequested,
			fmt.Sprintf("New appointment request from %s on %s.", ap.PatientName, when(ap)),
			doctorLink(ap),
		),
		notification.NewEvent(
			ap.PatientID,
			notification.KindRequestSent,
			fmt.Sprintf("Your request with Dr. %s on %s has been sent.", ap.DoctorName, when(ap)),
			patientLink,
		),
	}
}

func decisionEvent(ap *models.Appointment) notification.Event {
	if ap.Status == "approved" {
		return notification.NewEvent(
			ap.PatientID,
			notification.KindAppointmentApproved,
			fmt.Sprintf("Your appointment with Dr. %s on %s has been approved.", ap.DoctorName, when(ap)),
			patientLink,
		)
	}
	return notification.NewEvent(
		ap.PatientID,
		notification.KindAppointmentRejected,
		fmt.Sprintf("Your appointment request with Dr. %s on %s has been rejected. Please consider booking another time.", ap.DoctorName, when(ap)),
		patientLink,
	)
}

func reminderEvent(ap *models.Appointment) notification.Event {
	return notification.NewEvent(
		ap.PatientID,
		notification.KindAppointmentReminder,
		fmt.Sprintf("Reminder: appointment with Dr. %s on %s. Please arrive a few minutes early.", ap.DoctorName, when(ap)),
		patientLink,
	)
}
