package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID  uint `gorm:"index:idx_appointments_doctor_start,priority:1;not null" json:"doctor_id"`
	PatientID uint `gorm:"index;not null" json:"patient_id"`

	// Display snapshot taken at booking time; nothing in scheduling reads it.
	DoctorName           string `gorm:"size:200" json:"doctor_name"`
	DoctorSpecialization string `gorm:"size:100" json:"doctor_specialization"`
	PatientName          string `gorm:"size:100" json:"patient_name"`
	PatientEmail         string `gorm:"size:100" json:"patient_email"`

	StartTime time.Time `gorm:"type:timestamp;index:idx_appointments_doctor_start,priority:2;not null" json:"start_time"`
	EndTime   time.Time `gorm:"type:timestamp;not null" json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	DecidedAt *time.Time `json:"decided_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
