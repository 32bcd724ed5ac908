package model

import (
	"time"

	"github.com/google/uuid"
)

// Question belongs to exactly one interview. Creation order is the canonical
// question order.
type Question struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	InterviewID          uuid.UUID `gorm:"type:uuid;not null;index" json:"interview_id"`
	Interview            Interview `gorm:"foreignKey:InterviewID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionText         string    `gorm:"type:text;not null" json:"question_text"`
	ExpectedAnswerFormat *string   `gorm:"type:text" json:"expected_answer_format"`
	CreatedAt            time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Answer holds at most one answer per question; a resubmission overwrites the
// text in place. InterviewID is denormalized so token authorization can check
// the answer without walking the question chain.
type Answer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	QuestionID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"question_id"`
	Question    Question  `gorm:"foreignKey:QuestionID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	InterviewID uuid.UUID `gorm:"type:uuid;not null;index" json:"interview_id"`
	AnswerText  string    `gorm:"type:text;not null" json:"answer_text"`
	AnsweredAt  time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"answered_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
