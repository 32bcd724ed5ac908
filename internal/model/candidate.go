package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Candidate represents a person being hired. Education and experience are
// stored as JSON text the same way the import pipeline delivers them; the
// interview snapshot copies them verbatim at scheduling time.
type Candidate struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User              User           `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Name              string         `gorm:"type:text;not null" json:"name"`
	Email             string         `gorm:"type:text;not null" json:"email"`
	Phone             *string        `gorm:"type:text" json:"phone"`
	Resume            *string        `gorm:"type:text" json:"resume"`
	Portfolio         *string        `gorm:"type:text" json:"portfolio"`
	LinkedIn          *string        `gorm:"type:text" json:"linkedin"`
	GitHub            *string        `gorm:"type:text" json:"github"`
	TechnicalSkills   pq.StringArray `gorm:"type:text[]" json:"technical_skills"`
	Experience        *string        `gorm:"type:text" json:"experience"`
	Education         *string        `gorm:"type:text" json:"education"`
	Location          *string        `gorm:"type:text" json:"location"`
	SalaryExpectation *int           `json:"salary_expectation"`
	CreatedAt         time.Time      `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
