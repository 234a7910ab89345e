package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Medication is a formulary entry. Diseases holds the lowercase indication
// tags the medication is prescribed for.
type Medication struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Diseases    pq.StringArray `gorm:"type:text[];not null" json:"diseases"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Medication) TableName() string {
	return "medications"
}
