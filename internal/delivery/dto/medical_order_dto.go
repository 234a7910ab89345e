package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalOrderRequest struct {
	Description    string `json:"description" validate:"required"`
	Specialty      string `json:"specialty" validate:"required,max=100"`
	ExpirationDate string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type MedicalOrderResponse struct {
	ID             uuid.UUID            `json:"id"`
	AppointmentID  uuid.UUID            `json:"appointment_id"`
	Description    string               `json:"description"`
	Specialty      string               `json:"specialty"`
	ExpirationDate *string              `json:"expiration_date,omitempty"`
	Appointment    *AppointmentResponse `json:"appointment,omitempty"`
	Medications    []AttachmentResponse `json:"medications,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type MedicalOrderListResponse struct {
	MedicalOrders []MedicalOrderResponse `json:"medical_orders"`
	Total         int                    `json:"total"`
}
