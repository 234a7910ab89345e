package dto

import (
	"time"

	"clinical-office-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	Date                  string `json:"date" validate:"required,futuredate"` // ISO 8601, strictly future
	PatientIdentification string `json:"patient_identification" validate:"required,max=20"`
	DoctorIdentification  string `json:"doctor_identification" validate:"required,max=20"`
}

type UpdateAppointmentRequest struct {
	Date                  string                   `json:"date" validate:"omitempty,futuredate"`
	PatientIdentification string                   `json:"patient_identification" validate:"omitempty,max=20"`
	DoctorIdentification  string                   `json:"doctor_identification" validate:"omitempty,max=20"`
	Status                entity.AppointmentStatus `json:"status" validate:"omitempty,oneof=SCHEDULED ATTENDED MISSED"`
}

type UpdateAppointmentStatusRequest struct {
	Status entity.AppointmentStatus `json:"status" validate:"required,oneof=SCHEDULED ATTENDED MISSED"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID                `json:"id"`
	Date      time.Time                `json:"date"`
	Status    entity.AppointmentStatus `json:"status"`
	Patient   *PatientResponse         `json:"patient,omitempty"`
	Doctor    *DoctorResponse          `json:"doctor,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AvailableDoctorsResponse struct {
	Date    string           `json:"date"`
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
