package model

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation is the AI-produced rating for one answer (1:1). Question text,
// answer text and interview id are denormalized so results stay readable even
// if the source rows are deleted. A re-evaluation fully replaces the row.
type Evaluation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	AnswerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"answer_id"`
	Answer      Answer    `gorm:"foreignKey:AnswerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	InterviewID uuid.UUID `gorm:"type:uuid;not null;index" json:"interview_id"`

	QuestionText string `gorm:"type:text" json:"question_text"`
	AnswerText   string `gorm:"type:text" json:"answer_text"`

	FactualAccuracy            *string `gorm:"type:text" json:"factual_accuracy"`
	FactualAccuracyExplanation *string `gorm:"type:text" json:"factual_accuracy_explanation"`
	Completeness               *string `gorm:"type:text" json:"completeness"`
	CompletenessExplanation    *string `gorm:"type:text" json:"completeness_explanation"`
	Relevance                  *string `gorm:"type:text" json:"relevance"`
	RelevanceExplanation       *string `gorm:"type:text" json:"relevance_explanation"`
	Coherence                  *string `gorm:"type:text" json:"coherence"`
	CoherenceExplanation       *string `gorm:"type:text" json:"coherence_explanation"`

	Score           float64    `json:"score"`
	InputTokens     int        `json:"input_tokens"`
	OutputTokens    int        `json:"output_tokens"`
	FinalEvaluation string     `gorm:"type:text" json:"final_evaluation"`
	EvaluatedAt     *time.Time `gorm:"type:timestamp" json:"evaluated_at"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// InterviewResult is the cached aggregate verdict for one interview,
// recomputed in full on every aggregation call.
type InterviewResult struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	InterviewID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"interview_id"`
	CandidateID   uuid.UUID `gorm:"type:uuid;not null" json:"candidate_id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null" json:"application_id"`
	JobID         uuid.UUID `gorm:"type:uuid;not null" json:"job_id"`

	EvaluatedCount int `json:"evaluated_count"`
	TotalQuestions int `json:"total_questions"`

	AverageFactualAccuracy float64 `json:"average_factual_accuracy"`
	AverageCompleteness    float64 `json:"average_completeness"`
	AverageRelevance       float64 `json:"average_relevance"`
	AverageCoherence       float64 `json:"average_coherence"`
	AverageScore           float64 `json:"average_score"`

	PassStatus      string  `gorm:"type:text" json:"pass_status"`
	SummaryResult   string  `gorm:"type:text" json:"summary_result"`
	KnowledgeLevel  string  `gorm:"type:text" json:"knowledge_level"`
	Recommendations *string `gorm:"type:text" json:"recommendations"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
