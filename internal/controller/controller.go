// Package controller contains the HTTP handlers for the interview lifecycle,
// the question/answer pipeline and the evaluation aggregation endpoints.
package controller

import (
	"github.com/manoj1689/hireLn-api/internal/ai"
	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/email"
	"github.com/manoj1689/hireLn-api/internal/model"
)

// InterviewController holds the dependencies of every interview-related
// handler. The AI evaluator and mailer are injected so tests can swap fakes
// in without touching process-global state.
type InterviewController struct {
	DB     *database.DBinstanceStruct
	AI     ai.Evaluator
	Mailer *email.Mailer
}

// NewInterviewController creates a new instance of InterviewController with
// the provided dependencies.
func NewInterviewController(db *database.DBinstanceStruct, evaluator ai.Evaluator, mailer *email.Mailer) *InterviewController {
	return &InterviewController{
		DB:     db,
		AI:     evaluator,
		Mailer: mailer,
	}
}

// interviewResponse is the wire shape for one interview with the candidate
// and job details the frontend renders alongside it.
type interviewResponse struct {
	model.Interview
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	JobTitle       string `json:"job_title"`
}

func buildInterviewResponse(interview model.Interview, candidate model.Candidate, job model.Job) interviewResponse {
	jobTitle := job.Title
	if jobTitle == "" {
		jobTitle = "Unknown Position"
	}
	return interviewResponse{
		Interview:      interview,
		CandidateName:  candidate.Name,
		CandidateEmail: candidate.Email,
		JobTitle:       jobTitle,
	}
}
