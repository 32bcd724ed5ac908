package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusApplied indicates a fresh application waiting for review
	ApplicationStatusApplied = "APPLIED"
	// ApplicationStatusScreening indicates the application is being screened
	ApplicationStatusScreening = "SCREENING"
	// ApplicationStatusInterview indicates at least one interview was scheduled
	ApplicationStatusInterview = "INTERVIEW"
	// ApplicationStatusOffer indicates an offer was extended
	ApplicationStatusOffer = "OFFER"
	// ApplicationStatusHired indicates the candidate was hired
	ApplicationStatusHired = "HIRED"
	// ApplicationStatusRejected indicates the application has been rejected
	ApplicationStatusRejected = "REJECTED"
)

// Application links a candidate to a job. Scheduling the first interview
// promotes an APPLIED application to INTERVIEW.
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Candidate   Candidate `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	Job         Job       `gorm:"foreignKey:JobID;references:ID" json:"-"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Status      string    `gorm:"type:text;default:'APPLIED'" json:"status"`
	CoverLetter *string   `gorm:"type:text" json:"cover_letter"`
	AppliedAt   time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"applied_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
