package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalOrderMedication is the attachment joining a medical order to a
// medication, carrying the prescription details. A unique index over
// (medical_order_id, medication_id) guarantees a pair is attached at most once.
type MedicalOrderMedication struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MedicalOrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_medication" json:"medical_order_id"`
	MedicationID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_medication" json:"medication_id"`
	Dosage         *string   `gorm:"type:varchar(100)" json:"dosage,omitempty"`
	Frequency      *string   `gorm:"type:varchar(100)" json:"frequency,omitempty"`
	Duration       *string   `gorm:"type:varchar(100)" json:"duration,omitempty"`
	Instructions   *string   `gorm:"type:text" json:"instructions,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	MedicalOrder MedicalOrder `gorm:"foreignKey:MedicalOrderID" json:"medical_order,omitempty"`
	Medication   Medication   `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`
}

func (MedicalOrderMedication) TableName() string {
	return "medical_order_medications"
}
