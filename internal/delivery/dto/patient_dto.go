package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Identification string `json:"identification" validate:"required,numeric,max=20"`
	FirstName      string `json:"first_name" validate:"required,max=90"`
	LastName       string `json:"last_name" validate:"required,max=90"`
	Email          string `json:"email" validate:"required,email,max=200"`
	Phone          string `json:"phone" validate:"required,max=20"`
	Address        string `json:"address" validate:"required,max=200"`
	City           string `json:"city" validate:"required,max=90"`
}

type UpdatePatientRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=90"`
	LastName  string `json:"last_name" validate:"omitempty,max=90"`
	Email     string `json:"email" validate:"omitempty,email,max=200"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Address   string `json:"address" validate:"omitempty,max=200"`
	City      string `json:"city" validate:"omitempty,max=90"`
}

// Response DTOs

type PatientResponse struct {
	ID             uuid.UUID `json:"id"`
	Identification string    `json:"identification"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
