package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/manoj1689/hireLn-api/internal/ai"
	"github.com/manoj1689/hireLn-api/internal/auth"
	"github.com/manoj1689/hireLn-api/internal/evaluation"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/utilities"
)

const uniqueViolationCode = "23505"

// AutoEvaluateAnswer runs the AI rating for one answer and upserts its
// Evaluation. Re-running fully replaces the stored row; a parse failure of
// the AI payload writes nothing.
func (ctl *InterviewController) AutoEvaluateAnswer(c *gin.Context) {
	principal, err := auth.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	answer, ok := ctl.loadAnswer(c, c.Param("id"))
	if !ok {
		return
	}
	if !principal.CanAccessInterview(answer.InterviewID, answer.Question.Interview.UserID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to evaluate this answer"})
		return
	}

	knowledgeLevel := c.DefaultQuery("knowledge_level", "intermediate")

	result, usage, err := ctl.AI.EvaluateAnswer(answer.Question.QuestionText, answer.AnswerText, knowledgeLevel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Auto-evaluation failed: %s", err.Error())})
		return
	}
	applyEvaluationDefaults(result)

	now := time.Now().UTC()
	fields := map[string]interface{}{
		"question_text":                answer.Question.QuestionText,
		"answer_text":                  answer.AnswerText,
		"interview_id":                 answer.InterviewID,
		"factual_accuracy":             result.FactualAccuracy,
		"factual_accuracy_explanation": result.FactualAccuracyExplanation,
		"completeness":                 result.Completeness,
		"completeness_explanation":     result.CompletenessExplanation,
		"relevance":                    result.Relevance,
		"relevance_explanation":        result.RelevanceExplanation,
		"coherence":                    result.Coherence,
		"coherence_explanation":        result.CoherenceExplanation,
		"score":                        result.Score,
		"input_tokens":                 usage.InputTokens,
		"output_tokens":                usage.OutputTokens,
		"final_evaluation":             result.FinalEvaluation,
		"evaluated_at":                 now,
	}

	var eval model.Evaluation
	err = ctl.DB.Where("answer_id = ?", answer.ID).First(&eval).Error
	switch {
	case err == nil:
		if err := ctl.DB.Model(&eval).Updates(fields).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to update evaluation: %s", err.Error())})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		eval = model.Evaluation{
			AnswerID:                   answer.ID,
			InterviewID:                answer.InterviewID,
			QuestionText:               answer.Question.QuestionText,
			AnswerText:                 answer.AnswerText,
			FactualAccuracy:            &result.FactualAccuracy,
			FactualAccuracyExplanation: &result.FactualAccuracyExplanation,
			Completeness:               &result.Completeness,
			CompletenessExplanation:    &result.CompletenessExplanation,
			Relevance:                  &result.Relevance,
			RelevanceExplanation:       &result.RelevanceExplanation,
			Coherence:                  &result.Coherence,
			CoherenceExplanation:       &result.CoherenceExplanation,
			Score:                      result.Score,
			InputTokens:                usage.InputTokens,
			OutputTokens:               usage.OutputTokens,
			FinalEvaluation:            result.FinalEvaluation,
			EvaluatedAt:                &now,
		}
		if err := ctl.DB.Create(&eval).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to create evaluation: %s", err.Error())})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve evaluation: %s", err.Error())})
		return
	}

	if err := ctl.DB.Where("answer_id = ?", answer.ID).First(&eval).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to reload evaluation: %s", err.Error())})
		return
	}
	c.JSON(http.StatusOK, eval)
}

func applyEvaluationDefaults(e *ai.AnswerEvaluation) {
	def := func(s *string, fallback string) {
		if *s == "" {
			*s = fallback
		}
	}
	def(&e.FactualAccuracy, "Fair")
	def(&e.FactualAccuracyExplanation, "No explanation provided")
	def(&e.Completeness, "Fair")
	def(&e.CompletenessExplanation, "No explanation provided")
	def(&e.Relevance, "Fair")
	def(&e.RelevanceExplanation, "No explanation provided")
	def(&e.Coherence, "Fair")
	def(&e.CoherenceExplanation, "No explanation provided")
	def(&e.FinalEvaluation, "No final evaluation provided")
	if e.Score == 0 {
		e.Score = 3.0
	}
}

// AutoEvaluateInterview recomputes the interview-level aggregate from every
// stored evaluation and upserts the InterviewResult row. A concurrent
// duplicate create is recovered by retrying as an update.
func (ctl *InterviewController) AutoEvaluateInterview(c *gin.Context) {
	principal, err := auth.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	interview, ok := ctl.loadInterview(c, c.Param("id"))
	if !ok {
		return
	}
	if !principal.CanAccessInterview(interview.ID, interview.UserID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized"})
		return
	}

	knowledgeLevel := c.DefaultQuery("knowledge_level", "intermediate")

	items, ok := ctl.loadQuestionEvaluations(c, interview.ID)
	if !ok {
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "No questions found"})
		return
	}

	summary := evaluation.Aggregate(items)

	fields := map[string]interface{}{
		"evaluated_count":          summary.EvaluatedCount,
		"total_questions":          summary.TotalQuestions,
		"average_factual_accuracy": summary.AverageFactualAccuracy,
		"average_completeness":     summary.AverageCompleteness,
		"average_relevance":        summary.AverageRelevance,
		"average_coherence":        summary.AverageCoherence,
		"average_score":            summary.AverageScore,
		"pass_status":              summary.PassStatus,
		"summary_result":           summary.SummaryResult,
		"knowledge_level":          knowledgeLevel,
	}

	if err := ctl.upsertInterviewResult(interview, fields); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to save interview result: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                true,
		"interviewId":            interview.ID,
		"evaluatedCount":         summary.EvaluatedCount,
		"totalQuestions":         summary.TotalQuestions,
		"averageFactualAccuracy": summary.AverageFactualAccuracy,
		"averageCompleteness":    summary.AverageCompleteness,
		"averageRelevance":       summary.AverageRelevance,
		"averageCoherence":       summary.AverageCoherence,
		"averageScore":           summary.AverageScore,
		"passStatus":             summary.PassStatus,
		"summaryResult":          summary.SummaryResult,
		"evaluations":            summary.Breakdown,
	})
}

// loadQuestionEvaluations joins every question of the interview with its
// answer's evaluation, in question creation order. Unanswered or unevaluated
// questions come back with a nil evaluation.
func (ctl *InterviewController) loadQuestionEvaluations(c *gin.Context, interviewID uuid.UUID) ([]evaluation.QuestionEvaluation, bool) {
	var questions []model.Question
	if err := ctl.DB.Where("interview_id = ?", interviewID).Order("created_at").Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to fetch questions: %s", err.Error())})
		return nil, false
	}

	var answers []model.Answer
	if err := ctl.DB.Where("interview_id = ?", interviewID).Find(&answers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to fetch answers: %s", err.Error())})
		return nil, false
	}
	answerByQuestion := make(map[uuid.UUID]model.Answer, len(answers))
	for _, answer := range answers {
		answerByQuestion[answer.QuestionID] = answer
	}

	var evaluations []model.Evaluation
	if err := ctl.DB.Where("interview_id = ?", interviewID).Find(&evaluations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to fetch evaluations: %s", err.Error())})
		return nil, false
	}
	evalByAnswer := make(map[uuid.UUID]model.Evaluation, len(evaluations))
	for _, eval := range evaluations {
		evalByAnswer[eval.AnswerID] = eval
	}

	items := make([]evaluation.QuestionEvaluation, 0, len(questions))
	for _, question := range questions {
		item := evaluation.QuestionEvaluation{QuestionText: question.QuestionText}
		if answer, ok := answerByQuestion[question.ID]; ok {
			item.AnswerText = answer.AnswerText
			if eval, ok := evalByAnswer[answer.ID]; ok {
				item.Evaluation = &eval
			}
		}
		items = append(items, item)
	}
	return items, true
}

func (ctl *InterviewController) upsertInterviewResult(interview model.Interview, fields map[string]interface{}) error {
	var existing model.InterviewResult
	err := ctl.DB.Where("interview_id = ?", interview.ID).First(&existing).Error
	if err == nil {
		return ctl.DB.Model(&existing).Updates(fields).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	result := model.InterviewResult{
		InterviewID:   interview.ID,
		CandidateID:   interview.CandidateID,
		ApplicationID: interview.ApplicationID,
		JobID:         interview.JobID,
	}
	createErr := ctl.DB.Model(&model.InterviewResult{}).Create(&result).Error
	if createErr == nil {
		return ctl.DB.Model(&result).Updates(fields).Error
	}

	// another aggregation won the create race; fall back to updating its row
	var pgErr *pgconn.PgError
	if errors.As(createErr, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ctl.DB.Model(&model.InterviewResult{}).
			Where("interview_id = ?", interview.ID).
			Updates(fields).Error
	}
	return createErr
}

// GetInterviewResult returns the cached aggregate plus the per-answer
// evaluations backing it. Only the interview owner may read it.
func (ctl *InterviewController) GetInterviewResult(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	interview, ok := ctl.loadInterview(c, c.Param("id"))
	if !ok {
		return
	}
	if interview.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to access this interview result"})
		return
	}

	var result model.InterviewResult
	err = ctl.DB.Where("interview_id = ?", interview.ID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Interview result not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve interview result: %s", err.Error())})
		return
	}

	var evaluations []model.Evaluation
	if err := ctl.DB.Where("interview_id = ?", interview.ID).Order("created_at").Find(&evaluations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to fetch evaluations: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      result,
		"evaluations": evaluations,
	})
}

// GetEvaluation returns the evaluation of one answer, addressed through its
// interview for authorization.
func (ctl *InterviewController) GetEvaluation(c *gin.Context) {
	principal, err := auth.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	answer, ok := ctl.loadAnswer(c, c.Param("answer_id"))
	if !ok {
		return
	}
	if answer.InterviewID.String() != c.Param("id") {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Answer does not belong to the specified interview"})
		return
	}
	if !principal.CanAccessInterview(answer.InterviewID, answer.Question.Interview.UserID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to view this evaluation"})
		return
	}

	var eval model.Evaluation
	err = ctl.DB.Where("answer_id = ?", answer.ID).First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Evaluation not found for this answer"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve evaluation: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, eval)
}

// SendInterviewResult mails the final verdict to the candidate.
func (ctl *InterviewController) SendInterviewResult(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	interview, ok := ctl.loadInterview(c, c.Param("id"))
	if !ok {
		return
	}
	if interview.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized"})
		return
	}

	var result model.InterviewResult
	err = ctl.DB.Where("interview_id = ?", interview.ID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Interview result not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve interview result: %s", err.Error())})
		return
	}

	if ctl.Mailer == nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Email is not configured"})
		return
	}
	err = ctl.Mailer.SendInterviewResult(
		interview.Candidate.Email, interview.Candidate.Name, interview.Job.Title,
		result.PassStatus, result.SummaryResult,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Interview result email sent successfully"})
}
