package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a registered patient. Identification is the real-world
// document number and is distinct from the surrogate ID.
type Patient struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Identification string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"identification"`
	FirstName      string    `gorm:"type:varchar(90);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(90);not null" json:"last_name"`
	Email          string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	Phone          string    `gorm:"type:varchar(20);not null" json:"phone"`
	Address        string    `gorm:"type:varchar(200);not null" json:"address"`
	City           string    `gorm:"type:varchar(90);not null" json:"city"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
