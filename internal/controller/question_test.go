package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manoj1689/hireLn-api/internal/auth"
	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/middleware"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/testutil"
)

func newQuestionRouter() *gin.Engine {
	ctl := NewInterviewController(testDB, nil, nil)
	r := gin.Default()
	either := r.Group("", middleware.UserOrInterviewAuth(testDB))
	either.POST("/questions/interview/:id/bulk-upload", ctl.BulkUploadQuestions)
	either.GET("/questions/interview-questions/:id", ctl.GetInterviewQuestions)
	either.POST("/questions/questions/:id/answer", ctl.CreateAnswer)
	either.PUT("/questions/answers/:id", ctl.UpdateAnswer)

	userOnly := r.Group("", middleware.RequireAuth(testDB))
	userOnly.DELETE("/questions/questions/:id", ctl.DeleteQuestion)
	userOnly.GET("/questions/interview/:id/stats", ctl.GetInterviewQuestionStats)
	return r
}

func TestBulkUploadQuestions_skipsEmptyItems(t *testing.T) {
	userToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusScheduled)
	r := newQuestionRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"questions": []gin.H{
			{"question_text": "What is a goroutine?", "expected_answer_format": "Short description"},
			{"question_text": "   "},
			{"question_text": "Explain channels."},
		},
	}, userToken, r, "/questions/interview/"+interview.ID.String()+"/bulk-upload", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var questions []model.Question
	require.NoError(t, testDB.Where("interview_id = ?", interview.ID).Order("created_at").Find(&questions).Error)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is a goroutine?", questions[0].QuestionText)
	require.NotNil(t, questions[0].ExpectedAnswerFormat)
	assert.Equal(t, "Short description", *questions[0].ExpectedAnswerFormat)
	assert.Equal(t, "Explain channels.", questions[1].QuestionText)
}

func TestBulkUploadQuestions_allEmptyFails(t *testing.T) {
	userToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusScheduled)
	r := newQuestionRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"questions": []gin.H{{"question_text": ""}, {"question_text": "  "}},
	}, userToken, r, "/questions/interview/"+interview.ID.String()+"/bulk-upload", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No valid questions could be created", resp["error"])
}

func TestBulkUploadQuestions_interviewTokenChannel(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusJoined)
	r := newQuestionRouter()

	rec, _ := testutil.MakeInterviewTokenRequest(gin.H{
		"questions": []gin.H{{"question_text": "Describe the scheduler."}},
	}, *interview.JoinToken, r, "/questions/interview/"+interview.ID.String()+"/bulk-upload", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBulkUploadQuestions_crossInterviewToken(t *testing.T) {
	interviewA := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusJoined)
	interviewB := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusJoined)
	r := newQuestionRouter()

	rec, _ := testutil.MakeInterviewTokenRequest(gin.H{
		"questions": []gin.H{{"question_text": "Sneaky question"}},
	}, *interviewA.JoinToken, r, "/questions/interview/"+interviewB.ID.String()+"/bulk-upload", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateAnswer_overwritesOnResubmission(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusInProgress)
	question, _ := createTestQuestion(t, interview, "What is a goroutine?", "")
	r := newQuestionRouter()

	endpoint := "/questions/questions/" + question.ID.String() + "/answer"

	rec, _ := testutil.MakeInterviewTokenRequest(gin.H{"answerText": "First attempt"},
		*interview.JoinToken, r, endpoint, http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = testutil.MakeInterviewTokenRequest(gin.H{"answerText": "Second attempt"},
		*interview.JoinToken, r, endpoint, http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)

	var answers []model.Answer
	require.NoError(t, testDB.Where("question_id = ?", question.ID).Find(&answers).Error)
	require.Len(t, answers, 1)
	assert.Equal(t, "Second attempt", answers[0].AnswerText)
}

func TestUpdateAnswer(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusInProgress)
	_, answer := createTestQuestion(t, interview, "Explain channels.", "Old text")
	r := newQuestionRouter()

	rec, _ := testutil.MakeInterviewTokenRequest(gin.H{"answerText": "New text"},
		*interview.JoinToken, r, "/questions/answers/"+answer.ID.String(), http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)

	var reloaded model.Answer
	require.NoError(t, testDB.First(&reloaded, "id = ?", answer.ID).Error)
	assert.Equal(t, "New text", reloaded.AnswerText)
}

func TestDeleteQuestion_ownerOnly(t *testing.T) {
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusScheduled)
	question, _ := createTestQuestion(t, interview, "To be kept", "")
	r := newQuestionRouter()

	rec, _ := testutil.MakeJSONRequest(nil, otherToken, r,
		"/questions/questions/"+question.ID.String(), http.MethodDelete)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	rec, _ = testutil.MakeJSONRequest(nil, ownerToken, r,
		"/questions/questions/"+question.ID.String(), http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	testDB.Model(&model.Question{}).Where("id = ?", question.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetInterviewQuestionStats(t *testing.T) {
	userToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusInProgress)
	createTestQuestion(t, interview, "Q1", "A1")
	createTestQuestion(t, interview, "Q2", "")
	r := newQuestionRouter()

	rec, resp := testutil.MakeJSONRequest(nil, userToken, r,
		"/questions/interview/"+interview.ID.String()+"/stats", http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code, "body: %v", resp)
	assert.Equal(t, 2.0, resp["totalQuestions"])
	assert.Equal(t, 1.0, resp["answeredQuestions"])
	assert.Equal(t, 0.0, resp["evaluatedQuestions"])
	assert.Equal(t, 50.0, resp["completionRate"])
}

func TestGetInterviewQuestions_unauthenticated(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusScheduled)
	r := newQuestionRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r,
		"/questions/interview-questions/"+interview.ID.String(), http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, resp["error"], "Authentication required")
}
