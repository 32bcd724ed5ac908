package controller

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/manoj1689/hireLn-api/internal/auth"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/utilities"
)

type bulkUploadItem struct {
	QuestionText         string `json:"question_text"`
	ExpectedAnswerFormat string `json:"expected_answer_format"`
}

type bulkUploadRequest struct {
	Questions []bulkUploadItem `json:"questions" binding:"required"`
}

// BulkUploadQuestions creates questions for an interview in one call. Items
// with empty text are skipped rather than failing the batch; the request only
// fails when nothing survives validation.
func (ctl *InterviewController) BulkUploadQuestions(c *gin.Context) {
	principal, err := auth.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req bulkUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %s", err.Error())})
		return
	}
	if len(req.Questions) == 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "No questions provided"})
		return
	}

	interview, ok := ctl.loadInterview(c, c.Param("id"))
	if !ok {
		return
	}
	if !principal.CanAccessInterview(interview.ID, interview.UserID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to add questions to this interview"})
		return
	}

	created := make([]model.Question, 0, len(req.Questions))
	for _, item := range req.Questions {
		text := strings.TrimSpace(item.QuestionText)
		if text == "" {
			continue
		}
		question := model.Question{
			InterviewID:  interview.ID,
			QuestionText: text,
		}
		if format := strings.TrimSpace(item.ExpectedAnswerFormat); format != "" {
			question.ExpectedAnswerFormat = &format
		}
		if err := ctl.DB.Create(&question).Error; err != nil {
			log.Printf("Error creating question for interview %s: %v", interview.ID, err)
			continue
		}
		created = append(created, question)
	}

	if len(created) == 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "No valid questions could be created"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetInterviewQuestions returns an interview's questions in creation order.
func (ctl *InterviewController) GetInterviewQuestions(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to view questions for this interview"})
		return
	}

	var questions []model.Question
	if err := ctl.DB.Where("interview_id = ?", interview.ID).Order("created_at").Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to fetch questions: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, questions)
}

type answerRequest struct {
	AnswerText string `json:"answerText" binding:"required"`
}

// CreateAnswer records the candidate's answer to a question. A question holds
// at most one answer; submitting again overwrites the stored text.
func (ctl *InterviewController) CreateAnswer(c *gin.Context) {
	principal, err := auth.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %s", err.Error())})
		return
	}

	var question model.Question
	err = ctl.DB.Preload("Interview").Where("id = ?", c.Param("id")).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve question: %s", err.Error())})
		return
	}

	if !principal.CanAccessInterview(question.InterviewID, question.Interview.UserID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to answer this question"})
		return
	}

	// last write wins on resubmission
	var answer model.Answer
	err = ctl.DB.Where("question_id = ?", question.ID).First(&answer).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"answer_text": req.AnswerText,
			"answered_at": time.Now().UTC(),
		}
		if err := ctl.DB.Model(&answer).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to update answer: %s", err.Error())})
			return
		}
		answer.AnswerText = req.AnswerText
		c.JSON(http.StatusOK, answer)
	case errors.Is(err, gorm.ErrRecordNotFound):
		answer = model.Answer{
			QuestionID:  question.ID,
			InterviewID: question.InterviewID,
			AnswerText:  req.AnswerText,
			AnsweredAt:  time.Now().UTC(),
		}
		if err := ctl.DB.Create(&answer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to create answer: %s", err.Error())})
			return
		}
		c.JSON(http.StatusCreated, answer)
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve answer: %s", err.Error())})
	}
}

// UpdateAnswer overwrites the answer text in place. No history is kept.
func (ctl *InterviewController) UpdateAnswer(c *gin.Context) {
	principal, err := auth.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %s", err.Error())})
		return
	}

	answer, ok := ctl.loadAnswer(c, c.Param("id"))
	if !ok {
		return
	}
	if !principal.CanAccessInterview(answer.InterviewID, answer.Question.Interview.UserID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to update this answer"})
		return
	}

	if err := ctl.DB.Model(&answer).Update("answer_text", req.AnswerText).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to update answer: %s", err.Error())})
		return
	}
	answer.AnswerText = req.AnswerText

	c.JSON(http.StatusOK, answer)
}

// DeleteQuestion removes a question. Only the interview owner may delete.
func (ctl *InterviewController) DeleteQuestion(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var question model.Question
	err = ctl.DB.Preload("Interview").Where("id = ?", c.Param("id")).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve question: %s", err.Error())})
		return
	}

	if question.Interview.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to delete this question"})
		return
	}

	if err := ctl.DB.Delete(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to delete question: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Question deleted successfully"})
}

// GetInterviewQuestionStats reports answer and evaluation progress for one
// interview.
func (ctl *InterviewController) GetInterviewQuestionStats(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to view stats for this interview"})
		return
	}

	var totalQuestions int64
	if err := ctl.DB.Model(&model.Question{}).Where("interview_id = ?", interview.ID).Count(&totalQuestions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to count questions: %s", err.Error())})
		return
	}

	var answeredQuestions int64
	if err := ctl.DB.Model(&model.Answer{}).Where("interview_id = ?", interview.ID).Count(&answeredQuestions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to count answers: %s", err.Error())})
		return
	}

	var evaluations []model.Evaluation
	if err := ctl.DB.Where("interview_id = ? AND factual_accuracy IS NOT NULL", interview.ID).Find(&evaluations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to fetch evaluations: %s", err.Error())})
		return
	}

	var averageScore *float64
	if len(evaluations) > 0 {
		var sum float64
		for _, eval := range evaluations {
			sum += eval.Score
		}
		avg := sum / float64(len(evaluations))
		averageScore = &avg
	}

	completionRate := 0.0
	evaluationRate := 0.0
	if totalQuestions > 0 {
		completionRate = math.Round(float64(answeredQuestions)/float64(totalQuestions)*10000) / 100
		evaluationRate = math.Round(float64(len(evaluations))/float64(totalQuestions)*10000) / 100
	}

	c.JSON(http.StatusOK, gin.H{
		"interviewId":        interview.ID,
		"totalQuestions":     totalQuestions,
		"answeredQuestions":  answeredQuestions,
		"evaluatedQuestions": len(evaluations),
		"averageScore":       averageScore,
		"completionRate":     completionRate,
		"evaluationRate":     evaluationRate,
	})
}

// loadAnswer fetches an answer with its question chain preloaded, writing the
// error response itself when the lookup fails.
func (ctl *InterviewController) loadAnswer(c *gin.Context, id string) (model.Answer, bool) {
	var answer model.Answer
	err := ctl.DB.Preload("Question").Preload("Question.Interview").
		Where("id = ?", id).First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Answer not found"})
			return model.Answer{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve answer: %s", err.Error())})
		return model.Answer{}, false
	}
	return answer, true
}
