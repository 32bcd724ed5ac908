package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job is a recruiter-owned job opening.
type Job struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User             User           `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Title            string         `gorm:"type:text;not null" json:"title"`
	Department       *string        `gorm:"type:text" json:"department"`
	Description      *string        `gorm:"type:text" json:"description"`
	Requirements     *string        `gorm:"type:text" json:"requirements"`
	Responsibilities pq.StringArray `gorm:"type:text[]" json:"responsibilities"`
	Skills           pq.StringArray `gorm:"type:text[]" json:"skills"`
	Education        *string        `gorm:"type:text" json:"education"`
	Certifications   pq.StringArray `gorm:"type:text[]" json:"certifications"`
	EmploymentType   *string        `gorm:"type:text" json:"employment_type"`
	PublishedAt      *time.Time     `gorm:"type:timestamp" json:"published_at"`
	CreatedAt        time.Time      `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
