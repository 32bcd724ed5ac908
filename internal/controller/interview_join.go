package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/manoj1689/hireLn-api/internal/auth"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/utilities"
)

type joinInterviewResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Interview   interviewResponse `json:"interview"`
	RedirectURL string            `json:"redirectUrl"`
}

// JoinInterview validates the candidate's join link and moves a SCHEDULED
// interview to JOINED. The checks run in a fixed order: existence, token
// match, token expiry, then terminal status. Valid non-SCHEDULED states are
// returned as-is without mutation.
func (ctl *InterviewController) JoinInterview(c *gin.Context) {
	interviewID := c.Query("interview_id")
	token := c.Query("token")

	if interviewID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "interview_id is required"})
		return
	}

	interview, ok := ctl.loadInterview(c, interviewID)
	if !ok {
		return
	}

	if interview.JoinToken == nil || token == "" || token != *interview.JoinToken {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "Invalid or missing join token"})
		return
	}

	if auth.IsTokenExpired(interview.TokenExpiry) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "Join token has expired"})
		return
	}

	if interview.IsTerminal() {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Interview is %s", strings.ToLower(interview.Status))})
		return
	}

	if interview.Status == model.InterviewStatusScheduled {
		if err := ctl.DB.Model(&interview).Update("status", model.InterviewStatusJoined).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to join interview: %s", err.Error())})
			return
		}
		interview.Status = model.InterviewStatusJoined
	}

	c.JSON(http.StatusOK, joinInterviewResponse{
		Success:     true,
		Message:     "Successfully joined the interview",
		Interview:   buildInterviewResponse(interview, interview.Candidate, interview.Job),
		RedirectURL: fmt.Sprintf("/ai-interview-round?interview_id=%s&token=%s", interviewID, token),
	})
}

type confirmInterviewRequest struct {
	Confirmed       *bool   `json:"confirmed"`
	ResponseMessage *string `json:"response_message"`
}

// ConfirmInterview records the candidate's attendance response: CONFIRMED on
// acceptance, CANCELLED on decline. An optional response message is appended
// to the interview notes.
func (ctl *InterviewController) ConfirmInterview(c *gin.Context) {
	// an empty body means a plain confirmation
	var req confirmInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %s", err.Error())})
		return
	}

	confirmed := true
	if req.Confirmed != nil {
		confirmed = *req.Confirmed
	}

	var interview model.Interview
	if err := ctl.DB.Where("id = ?", c.Param("id")).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Interview not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve interview: %s", err.Error())})
		return
	}

	newStatus := model.InterviewStatusConfirmed
	verb := "confirmed"
	if !confirmed {
		newStatus = model.InterviewStatusCancelled
		verb = "cancelled"
	}

	updates := map[string]interface{}{"status": newStatus}
	if req.ResponseMessage != nil && *req.ResponseMessage != "" {
		updates["notes"] = fmt.Sprintf("%s\n\nCandidate response: %s", interview.Notes, *req.ResponseMessage)
	}
	if err := ctl.DB.Model(&interview).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to confirm interview: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Interview %s successfully", verb),
		"status":  newStatus,
	})
}

// StartInterview marks the interview IN_PROGRESS and records startedAt.
func (ctl *InterviewController) StartInterview(c *gin.Context) {
	ctl.transitionInterview(c, model.InterviewStatusInProgress, "started_at", "Interview started successfully")
}

// CompleteInterview marks the interview COMPLETED and records completedAt.
func (ctl *InterviewController) CompleteInterview(c *gin.Context) {
	ctl.transitionInterview(c, model.InterviewStatusCompleted, "completed_at", "Interview completed successfully")
}

func (ctl *InterviewController) transitionInterview(c *gin.Context, newStatus, timestampColumn, message string) {
	var interview model.Interview
	if err := ctl.DB.Where("id = ?", c.Param("id")).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Interview not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve interview: %s", err.Error())})
		return
	}

	updates := map[string]interface{}{
		"status":        newStatus,
		timestampColumn: time.Now().UTC(),
	}
	if err := ctl.DB.Model(&interview).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to update interview: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"status":  newStatus,
	})
}
