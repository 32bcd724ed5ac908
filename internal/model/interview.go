package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Interview statuses. SCHEDULED is the entry state; CANCELLED, COMPLETED and
// NO_SHOW are terminal for join purposes.
var (
	InterviewStatusScheduled   = "SCHEDULED"
	InterviewStatusInvited     = "INVITED"
	InterviewStatusConfirmed   = "CONFIRMED"
	InterviewStatusJoined      = "JOINED"
	InterviewStatusInProgress  = "IN_PROGRESS"
	InterviewStatusCompleted   = "COMPLETED"
	InterviewStatusCancelled   = "CANCELLED"
	InterviewStatusNoShow      = "NO_SHOW"
	InterviewStatusRescheduled = "RESCHEDULED"
)

// Interview types
var (
	InterviewTypePhone      = "PHONE"
	InterviewTypeVideo      = "VIDEO"
	InterviewTypeInPerson   = "IN_PERSON"
	InterviewTypeTechnical  = "TECHNICAL"
	InterviewTypeBehavioral = "BEHAVIORAL"
	InterviewTypePanel      = "PANEL"
)

// InterviewStatuses lists every legal status value, for request validation.
var InterviewStatuses = []string{
	InterviewStatusScheduled, InterviewStatusInvited, InterviewStatusConfirmed,
	InterviewStatusJoined, InterviewStatusInProgress, InterviewStatusCompleted,
	InterviewStatusCancelled, InterviewStatusNoShow, InterviewStatusRescheduled,
}

// InterviewTypes lists every legal interview type value.
var InterviewTypes = []string{
	InterviewTypePhone, InterviewTypeVideo, InterviewTypeInPerson,
	InterviewTypeTechnical, InterviewTypeBehavioral, InterviewTypePanel,
}

// Interviewer is one member of the interview panel.
type Interviewer struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// InterviewerList is stored as a JSON text column.
type InterviewerList []Interviewer

// Value implements driver.Valuer.
func (l InterviewerList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *InterviewerList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into InterviewerList", src)
	}
}

// InterviewFeedback is the structured feedback a recruiter submits after a
// completed interview.
type InterviewFeedback struct {
	Rating                int       `json:"rating"`
	TechnicalSkills       int       `json:"technical_skills"`
	CommunicationSkills   int       `json:"communication_skills"`
	CulturalFit           int       `json:"cultural_fit"`
	OverallRecommendation string    `json:"overall_recommendation"`
	Strengths             []string  `json:"strengths"`
	Weaknesses            []string  `json:"weaknesses"`
	DetailedFeedback      string    `json:"detailed_feedback"`
	NextSteps             *string   `json:"next_steps,omitempty"`
	SubmittedBy           uuid.UUID `json:"submitted_by"`
	SubmittedAt           time.Time `json:"submitted_at"`
}

// Value implements driver.Valuer.
func (f InterviewFeedback) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner.
func (f *InterviewFeedback) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("cannot scan %T into InterviewFeedback", src)
	}
}

// Interview is one scheduled meeting between a candidate and the recruiter's
// panel. Candidate and job fields are snapshotted at scheduling time so the
// record stays meaningful if either source row changes later.
type Interview struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CandidateID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Candidate     Candidate   `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	ApplicationID uuid.UUID   `gorm:"type:uuid;not null;index" json:"application_id"`
	Application   Application `gorm:"foreignKey:ApplicationID;references:ID" json:"-"`
	JobID         uuid.UUID   `gorm:"type:uuid;not null;index" json:"job_id"`
	Job           Job         `gorm:"foreignKey:JobID;references:ID" json:"-"`

	// UserID is the recruiter that scheduled the interview and owns it for
	// authorization purposes.
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	Type         string             `gorm:"type:text;not null" json:"type"`
	Status       string             `gorm:"type:text;default:'SCHEDULED'" json:"status"`
	ScheduledAt  time.Time          `gorm:"type:timestamp;not null" json:"scheduled_at"`
	Duration     int                `gorm:"default:60" json:"duration"`
	Timezone     string             `gorm:"type:text" json:"timezone"`
	Interviewers InterviewerList    `gorm:"type:text" json:"interviewers"`
	MeetingLink  *string            `gorm:"type:text" json:"meeting_link"`
	Location     *string            `gorm:"type:text" json:"location"`
	Notes        string             `gorm:"type:text" json:"notes"`
	Feedback     *InterviewFeedback `gorm:"type:text" json:"feedback"`

	CalendarEventID *string    `gorm:"type:text" json:"calendar_event_id"`
	InvitationSent  bool       `gorm:"default:false" json:"invitation_sent"`
	JoinToken       *string    `gorm:"type:text;index" json:"join_token"`
	TokenExpiry     *time.Time `gorm:"type:timestamp" json:"token_expiry"`
	StartedAt       *time.Time `gorm:"type:timestamp" json:"started_at"`
	CompletedAt     *time.Time `gorm:"type:timestamp" json:"completed_at"`

	// Candidate snapshot, immutable once written
	CandidateEducation  *string        `gorm:"type:text;<-:create" json:"candidate_education"`
	CandidateExperience *string        `gorm:"type:text;<-:create" json:"candidate_experience"`
	CandidateSkills     pq.StringArray `gorm:"type:text[];<-:create" json:"candidate_skills"`
	CandidateResume     *string        `gorm:"type:text;<-:create" json:"candidate_resume"`
	CandidatePortfolio  *string        `gorm:"type:text;<-:create" json:"candidate_portfolio"`
	CandidateLinkedIn   *string        `gorm:"type:text;<-:create" json:"candidate_linkedin"`
	CandidateGitHub     *string        `gorm:"type:text;<-:create" json:"candidate_github"`
	CandidateLocation   *string        `gorm:"type:text;<-:create" json:"candidate_location"`

	// Application snapshot
	CoverLetter *string `gorm:"type:text;<-:create" json:"cover_letter"`

	// Job snapshot
	JobDepartment     *string        `gorm:"type:text;<-:create" json:"job_department"`
	JobDescription    *string        `gorm:"type:text;<-:create" json:"job_description"`
	JobType           *string        `gorm:"type:text;<-:create" json:"job_type"`
	JobResponsibility pq.StringArray `gorm:"type:text[];<-:create" json:"job_responsibility"`
	JobSkills         pq.StringArray `gorm:"type:text[];<-:create" json:"job_skills"`
	JobEducation      *string        `gorm:"type:text;<-:create" json:"job_education"`
	JobCertificates   pq.StringArray `gorm:"type:text[];<-:create" json:"job_certificates"`
	JobPublished      *time.Time     `gorm:"type:timestamp;<-:create" json:"job_published"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsTerminal reports whether the interview can no longer be joined.
func (i *Interview) IsTerminal() bool {
	return i.Status == InterviewStatusCancelled || i.Status == InterviewStatusCompleted
}
