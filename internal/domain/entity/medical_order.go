package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalOrder is issued against an appointment. Orders are immutable after
// creation; only their medication attachments change.
type MedicalOrder struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Specialty      string     `gorm:"type:varchar(100);not null" json:"specialty"`
	ExpirationDate *time.Time `gorm:"type:date" json:"expiration_date,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment              `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Medications []MedicalOrderMedication `gorm:"foreignKey:MedicalOrderID" json:"medications,omitempty"`
}

func (MedicalOrder) TableName() string {
	return "medical_orders"
}
