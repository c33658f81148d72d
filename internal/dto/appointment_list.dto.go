package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID        uint      `json:"id"`
	DoctorID  uint      `json:"doctor_id"`
	PatientID uint      `json:"patient_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`

	DoctorName           string `json:"doctor_name"`
	DoctorSpecialization string `json:"doctor_specialization"`
	PatientName          string `json:"patient_name"`

	FormattedDate      string `json:"formatted_date"`
	FormattedTimeRange string `json:"formatted_time_range"`
}

func AppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, AppointmentListDTO{
			ID:                   ap.ID,
			DoctorID:             ap.DoctorID,
			PatientID:            ap.PatientID,
			StartTime:            ap.StartTime,
			EndTime:              ap.EndTime,
			Status:               ap.Status,
			DoctorName:           ap.DoctorName,
			DoctorSpecialization: ap.DoctorSpecialization,
			PatientName:          ap.PatientName,
			FormattedDate:        calendar.FormatLong(ap.StartTime),
			FormattedTimeRange:   calendar.FormatRange(ap.StartTime, ap.EndTime),
		})
	}
	return out
}
