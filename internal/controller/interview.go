package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/manoj1689/hireLn-api/internal/auth"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/utilities"
)

const scheduleTimeLayout = "2006-01-02 15:04"

type scheduleInterviewRequest struct {
	CandidateID           string              `json:"candidateId" binding:"required"`
	ApplicationID         string              `json:"applicationId" binding:"required"`
	Type                  string              `json:"type" binding:"required"`
	ScheduledDate         string              `json:"scheduledDate" binding:"required"`
	ScheduledTime         string              `json:"scheduledTime" binding:"required"`
	Duration              int                 `json:"duration"`
	Timezone              string              `json:"timezone"`
	Interviewers          []model.Interviewer `json:"interviewers"`
	MeetingLink           *string             `json:"meetingLink"`
	Location              *string             `json:"location"`
	Notes                 string              `json:"notes"`
	SendEmailNotification bool                `json:"sendEmailNotification"`
}

// ScheduleInterview creates a new interview for an application, issues the
// candidate's join token, snapshots candidate and job fields, and promotes an
// APPLIED application to INTERVIEW. Sending the invitation email is best
// effort; a failure is logged and invitationSent stays false.
func (ctl *InterviewController) ScheduleInterview(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req scheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %s", err.Error())})
		return
	}

	if !utilities.Contains(model.InterviewTypes, req.Type) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid interview type: %s", req.Type)})
		return
	}

	var candidate model.Candidate
	if err := ctl.DB.Where("id = ?", req.CandidateID).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Candidate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve candidate: %s", err.Error())})
		return
	}

	var application model.Application
	if err := ctl.DB.Where("id = ?", req.ApplicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error())})
		return
	}

	var job model.Job
	if err := ctl.DB.Where("id = ?", application.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error())})
		return
	}

	scheduledAt, err := time.Parse(scheduleTimeLayout, req.ScheduledDate+" "+req.ScheduledTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid date or time format. Use YYYY-MM-DD for date and HH:MM for time."})
		return
	}

	joinToken, err := auth.GenerateInterviewToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to generate join token: %s", err.Error())})
		return
	}
	tokenExpiry := auth.GenerateTokenExpiry(48)

	duration := req.Duration
	if duration == 0 {
		duration = 60
	}

	interview := model.Interview{
		CandidateID:   candidate.ID,
		ApplicationID: application.ID,
		JobID:         job.ID,
		UserID:        user.ID,
		Type:          req.Type,
		Status:        model.InterviewStatusScheduled,
		ScheduledAt:   scheduledAt,
		Duration:      duration,
		Timezone:      req.Timezone,
		Interviewers:  req.Interviewers,
		MeetingLink:   req.MeetingLink,
		Location:      req.Location,
		Notes:         req.Notes,
		JoinToken:     &joinToken,
		TokenExpiry:   &tokenExpiry,

		CandidateEducation:  candidate.Education,
		CandidateExperience: candidate.Experience,
		CandidateSkills:     candidate.TechnicalSkills,
		CandidateResume:     candidate.Resume,
		CandidatePortfolio:  candidate.Portfolio,
		CandidateLinkedIn:   candidate.LinkedIn,
		CandidateGitHub:     candidate.GitHub,
		CandidateLocation:   candidate.Location,

		CoverLetter: application.CoverLetter,

		JobDepartment:     job.Department,
		JobDescription:    job.Description,
		JobType:           job.EmploymentType,
		JobResponsibility: job.Responsibilities,
		JobSkills:         job.Skills,
		JobEducation:      job.Education,
		JobCertificates:   job.Certifications,
		JobPublished:      job.PublishedAt,
	}

	if err := ctl.DB.Create(&interview).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to schedule interview: %s", err.Error())})
		return
	}

	if req.SendEmailNotification && ctl.Mailer != nil {
		err := ctl.Mailer.SendInterviewInvitation(
			candidate.Email, candidate.Name, job.Title,
			scheduledAt.Format(time.RFC1123), joinToken, interview.ID.String(),
		)
		if err != nil {
			log.Printf("Error sending interview invitation for %s: %v", interview.ID, err)
		} else {
			interview.InvitationSent = true
			if err := ctl.DB.Model(&interview).Update("invitation_sent", true).Error; err != nil {
				log.Printf("Failed to record invitation sent for %s: %v", interview.ID, err)
			}
		}
	}

	if application.Status == model.ApplicationStatusApplied {
		if err := ctl.DB.Model(&application).Update("status", model.ApplicationStatusInterview).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to promote application: %s", err.Error())})
			return
		}
	}

	c.JSON(http.StatusCreated, buildInterviewResponse(interview, candidate, job))
}

// GetInterviews lists the caller's interviews with optional filtering on
// candidate, application, job, status, type and scheduled date range.
func (ctl *InterviewController) GetInterviews(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	query := ctl.DB.Model(&model.Interview{}).
		Preload("Candidate").Preload("Job").
		Where("user_id = ?", user.ID)

	if v := c.Query("candidate_id"); v != "" {
		query = query.Where("candidate_id = ?", v)
	}
	if v := c.Query("application_id"); v != "" {
		query = query.Where("application_id = ?", v)
	}
	if v := c.Query("job_id"); v != "" {
		query = query.Where("job_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		if !utilities.Contains(model.InterviewStatuses, v) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid status: %s", v)})
			return
		}
		query = query.Where("status = ?", v)
	}
	if v := c.Query("type"); v != "" {
		if !utilities.Contains(model.InterviewTypes, v) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid type: %s", v)})
			return
		}
		query = query.Where("type = ?", v)
	}
	if v := c.Query("from_date"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid from_date format. Use YYYY-MM-DD."})
			return
		}
		query = query.Where("scheduled_at >= ?", from)
	}
	if v := c.Query("to_date"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid to_date format. Use YYYY-MM-DD."})
			return
		}
		// include the entire day
		query = query.Where("scheduled_at <= ?", to.AddDate(0, 0, 1))
	}

	skip := 0
	limit := 10
	if _, err := fmt.Sscan(c.DefaultQuery("skip", "0"), &skip); err != nil || skip < 0 {
		skip = 0
	}
	if _, err := fmt.Sscan(c.DefaultQuery("limit", "10"), &limit); err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	var interviews []model.Interview
	if err := query.Order("scheduled_at").Offset(skip).Limit(limit).Find(&interviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to fetch interviews: %s", err.Error())})
		return
	}

	responses := make([]interviewResponse, 0, len(interviews))
	for _, interview := range interviews {
		responses = append(responses, buildInterviewResponse(interview, interview.Candidate, interview.Job))
	}
	c.JSON(http.StatusOK, responses)
}

// GetInterview returns a single interview. It accepts either auth channel:
// a user principal must own the interview, a token principal must be bound
// to it.
func (ctl *InterviewController) GetInterview(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to access this interview"})
		return
	}

	c.JSON(http.StatusOK, buildInterviewResponse(interview, interview.Candidate, interview.Job))
}

type rescheduleInterviewRequest struct {
	NewDate string `json:"newDate" binding:"required"`
	NewTime string `json:"newTime" binding:"required"`
	Reason  string `json:"reason"`
}

// RescheduleInterview overwrites scheduledAt, appends the reason to the
// interview notes and marks the interview RESCHEDULED.
func (ctl *InterviewController) RescheduleInterview(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req rescheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %s", err.Error())})
		return
	}

	newScheduledAt, err := time.Parse(scheduleTimeLayout, req.NewDate+" "+req.NewTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid date or time format. Use YYYY-MM-DD for date and HH:MM for time."})
		return
	}

	interview, ok := ctl.loadInterview(c, c.Param("id"))
	if !ok {
		return
	}
	if interview.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to reschedule this interview"})
		return
	}

	updates := map[string]interface{}{
		"scheduled_at": newScheduledAt,
		"status":       model.InterviewStatusRescheduled,
		"notes":        fmt.Sprintf("%s\n\nRescheduled: %s", interview.Notes, req.Reason),
	}
	if err := ctl.DB.Model(&interview).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to reschedule interview: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, buildInterviewResponse(interview, interview.Candidate, interview.Job))
}

// UpdateInterviewStatus sets the interview status to the value of the
// new_status query parameter. Completing an interview this way also records
// completedAt.
func (ctl *InterviewController) UpdateInterviewStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	newStatus := c.Query("new_status")
	if !utilities.Contains(model.InterviewStatuses, newStatus) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid status: %s", newStatus)})
		return
	}

	interview, ok := ctl.loadInterview(c, c.Param("id"))
	if !ok {
		return
	}
	if interview.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to update this interview"})
		return
	}

	updates := map[string]interface{}{"status": newStatus}
	if newStatus == model.InterviewStatusCompleted {
		updates["completed_at"] = time.Now().UTC()
	}
	if err := ctl.DB.Model(&interview).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to update interview status: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, buildInterviewResponse(interview, interview.Candidate, interview.Job))
}

type interviewFeedbackRequest struct {
	Rating                int      `json:"rating" binding:"required"`
	TechnicalSkills       int      `json:"technicalSkills"`
	CommunicationSkills   int      `json:"communicationSkills"`
	CulturalFit           int      `json:"culturalFit"`
	OverallRecommendation string   `json:"overallRecommendation"`
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	DetailedFeedback      string   `json:"detailedFeedback"`
	NextSteps             *string  `json:"nextSteps"`
}

// SubmitInterviewFeedback attaches structured feedback to a COMPLETED
// interview. Any other status is rejected.
func (ctl *InterviewController) SubmitInterviewFeedback(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req interviewFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %s", err.Error())})
		return
	}

	interview, ok := ctl.loadInterview(c, c.Param("id"))
	if !ok {
		return
	}
	if interview.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to submit feedback for this interview"})
		return
	}
	if interview.Status != model.InterviewStatusCompleted {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Feedback can only be submitted for completed interviews"})
		return
	}

	feedback := model.InterviewFeedback{
		Rating:                req.Rating,
		TechnicalSkills:       req.TechnicalSkills,
		CommunicationSkills:   req.CommunicationSkills,
		CulturalFit:           req.CulturalFit,
		OverallRecommendation: req.OverallRecommendation,
		Strengths:             req.Strengths,
		Weaknesses:            req.Weaknesses,
		DetailedFeedback:      req.DetailedFeedback,
		NextSteps:             req.NextSteps,
		SubmittedBy:           user.ID,
		SubmittedAt:           time.Now().UTC(),
	}

	interview.Feedback = &feedback
	if err := ctl.DB.Model(&interview).Update("feedback", &feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to save feedback: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, buildInterviewResponse(interview, interview.Candidate, interview.Job))
}

// DeleteInterview removes an interview the caller owns.
func (ctl *InterviewController) DeleteInterview(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Not authorized to delete this interview"})
		return
	}

	if err := ctl.DB.Delete(&interview).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to delete interview: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Interview deleted successfully"})
}

// loadInterview fetches an interview with its candidate and job preloaded,
// writing the error response itself when the lookup fails.
func (ctl *InterviewController) loadInterview(c *gin.Context, id string) (model.Interview, bool) {
	var interview model.Interview
	err := ctl.DB.Preload("Candidate").Preload("Job").
		Where("id = ?", id).First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Interview not found"})
			return model.Interview{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: fmt.Sprintf("Failed to retrieve interview: %s", err.Error())})
		return model.Interview{}, false
	}
	return interview, true
}
