package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a practicing doctor of the office.
type Doctor struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Identification   string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"identification"`
	FirstName        string    `gorm:"type:varchar(90);not null" json:"first_name"`
	LastName         string    `gorm:"type:varchar(90);not null" json:"last_name"`
	Email            string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	Phone            string    `gorm:"type:varchar(20);not null" json:"phone"`
	Address          string    `gorm:"type:varchar(200);not null" json:"address"`
	City             string    `gorm:"type:varchar(90);not null" json:"city"`
	ProfessionalCard string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"professional_card"`
	AdmissionDate    time.Time `gorm:"type:date;not null" json:"admission_date"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
