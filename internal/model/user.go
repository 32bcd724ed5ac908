// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User is a recruiting platform account. Every interview, job and
// candidate record is owned by the user that created it.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:text" json:"-"`
	FirstName string    `gorm:"type:text" json:"first_name"`
	LastName  string    `gorm:"type:text" json:"last_name"`
	Avatar    string    `gorm:"type:text" json:"avatar"`
	Role      string    `gorm:"type:text;default:'RECRUITER'" json:"role"`

	// Company details collected during registration
	CompanyName        string         `gorm:"type:text" json:"company_name"`
	CompanySize        *string        `gorm:"type:text" json:"company_size"`
	Industry           *string        `gorm:"type:text" json:"industry"`
	HiringVolume       *string        `gorm:"type:text" json:"hiring_volume"`
	PrimaryHiringNeeds pq.StringArray `gorm:"type:text[]" json:"primary_hiring_needs"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// FullName joins first and last name for display and email templates.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

var (
	// RoleRecruiter is the default role for registered platform users
	RoleRecruiter = "RECRUITER"
	// RoleAdmin marks privileged accounts
	RoleAdmin = "ADMIN"
)
