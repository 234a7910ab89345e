package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicationRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Diseases    []string `json:"diseases" validate:"required,min=1,dive,required"`
}

type UpdateMedicationRequest struct {
	Name        string   `json:"name" validate:"omitempty,max=255"`
	Description string   `json:"description" validate:"omitempty"`
	Diseases    []string `json:"diseases" validate:"omitempty,min=1,dive,required"`
}

type AttachMedicationRequest struct {
	Dosage       string `json:"dosage" validate:"omitempty,max=100"`
	Frequency    string `json:"frequency" validate:"omitempty,max=100"`
	Duration     string `json:"duration" validate:"omitempty,max=100"`
	Instructions string `json:"instructions" validate:"omitempty"`
}

// Response DTOs

type MedicationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Diseases    []string  `json:"diseases"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MedicationListResponse struct {
	Medications []MedicationResponse `json:"medications"`
	Total       int                  `json:"total"`
}

type AttachmentResponse struct {
	ID             uuid.UUID           `json:"id"`
	MedicalOrderID uuid.UUID           `json:"medical_order_id"`
	MedicationID   uuid.UUID           `json:"medication_id"`
	Dosage         *string             `json:"dosage,omitempty"`
	Frequency      *string             `json:"frequency,omitempty"`
	Duration       *string             `json:"duration,omitempty"`
	Instructions   *string             `json:"instructions,omitempty"`
	Medication     *MedicationResponse `json:"medication,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type AttachmentListResponse struct {
	Medications []AttachmentResponse `json:"medications"`
	Total       int                  `json:"total"`
}
