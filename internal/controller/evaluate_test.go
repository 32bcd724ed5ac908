package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manoj1689/hireLn-api/internal/ai"
	"github.com/manoj1689/hireLn-api/internal/auth"
	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/middleware"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/testutil"
)

func newEvaluateRouter(evaluator ai.Evaluator) *gin.Engine {
	ctl := NewInterviewController(testDB, evaluator, nil)
	r := gin.Default()
	either := r.Group("", middleware.UserOrInterviewAuth(testDB))
	either.POST("/questions/answers/:id/auto-evaluate", ctl.AutoEvaluateAnswer)
	either.POST("/interviews/interview/:id/auto-evaluate", ctl.AutoEvaluateInterview)
	either.GET("/interviews/:id/answers/:answer_id/evaluation", ctl.GetEvaluation)

	userOnly := r.Group("", middleware.RequireAuth(testDB))
	userOnly.GET("/interviews/interview/:id/result", ctl.GetInterviewResult)
	return r
}

func TestAutoEvaluateAnswer_idempotentUpsert(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusInProgress)
	_, answer := createTestQuestion(t, interview, "What is a goroutine?", "A lightweight thread managed by the runtime.")

	fake := &fakeEvaluator{results: []*ai.AnswerEvaluation{
		uniformEvaluation("Good", 3.0),
		uniformEvaluation("Excellent", 4.0),
	}}
	r := newEvaluateRouter(fake)

	endpoint := "/questions/answers/" + answer.ID.String() + "/auto-evaluate"

	rec, resp := testutil.MakeInterviewTokenRequest(nil, *interview.JoinToken, r, endpoint, http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", resp)
	assert.Equal(t, "Good", resp["factual_accuracy"])
	assert.Equal(t, 3.0, resp["score"])

	// second run fully replaces the stored row, never adds one
	rec, resp = testutil.MakeInterviewTokenRequest(nil, *interview.JoinToken, r, endpoint, http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", resp)
	assert.Equal(t, "Excellent", resp["factual_accuracy"])
	assert.Equal(t, 4.0, resp["score"])

	var count int64
	testDB.Model(&model.Evaluation{}).Where("answer_id = ?", answer.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var eval model.Evaluation
	require.NoError(t, testDB.First(&eval, "answer_id = ?", answer.ID).Error)
	require.NotNil(t, eval.FactualAccuracy)
	assert.Equal(t, "Excellent", *eval.FactualAccuracy)
	assert.Equal(t, 4.0, eval.Score)
	assert.NotNil(t, eval.EvaluatedAt)
}

func TestAutoEvaluateAnswer_crossInterviewTokenForbidden(t *testing.T) {
	interviewA := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusInProgress)
	interviewB := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusInProgress)
	_, answerB := createTestQuestion(t, interviewB, "Explain channels.", "Typed conduits between goroutines.")

	fake := &fakeEvaluator{results: []*ai.AnswerEvaluation{uniformEvaluation("Good", 3.0)}}
	r := newEvaluateRouter(fake)

	// token bound to interview A must not evaluate interview B's answer,
	// even though both interviews share an owner
	rec, _ := testutil.MakeInterviewTokenRequest(nil, *interviewA.JoinToken, r,
		"/questions/answers/"+answerB.ID.String()+"/auto-evaluate", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, fake.calls)

	var count int64
	testDB.Model(&model.Evaluation{}).Where("answer_id = ?", answerB.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAutoEvaluateInterview_noQuestions(t *testing.T) {
	userToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusCompleted)
	r := newEvaluateRouter(&fakeEvaluator{results: []*ai.AnswerEvaluation{uniformEvaluation("Good", 3.0)}})

	rec, resp := testutil.MakeJSONRequest(nil, userToken, r,
		"/interviews/interview/"+interview.ID.String()+"/auto-evaluate", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No questions found", resp["error"])
}

// Full lifecycle: three questions, two answered and evaluated with scores
// 3.0 and 4.0, aggregated into a 3.5 pass with "Good performance".
func TestAutoEvaluateInterview_aggregates(t *testing.T) {
	userToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)

	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusInProgress)
	_, answer1 := createTestQuestion(t, interview, "What is a goroutine?", "A lightweight thread.")
	_, answer2 := createTestQuestion(t, interview, "Explain channels.", "Typed conduits.")
	createTestQuestion(t, interview, "Describe the scheduler.", "")

	fake := &fakeEvaluator{results: []*ai.AnswerEvaluation{
		uniformEvaluation("Good", 3.0),
		uniformEvaluation("Excellent", 4.0),
	}}
	r := newEvaluateRouter(fake)

	for _, answer := range []*model.Answer{answer1, answer2} {
		rec, resp := testutil.MakeInterviewTokenRequest(nil, *interview.JoinToken, r,
			"/questions/answers/"+answer.ID.String()+"/auto-evaluate", http.MethodPost)
		require.Equal(t, http.StatusOK, rec.Code, "body: %v", resp)
	}

	rec, resp := testutil.MakeJSONRequest(nil, userToken, r,
		"/interviews/interview/"+interview.ID.String()+"/auto-evaluate", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", resp)

	assert.Equal(t, true, resp["success"])
	assert.Equal(t, 2.0, resp["evaluatedCount"])
	assert.Equal(t, 3.0, resp["totalQuestions"])
	assert.Equal(t, 3.5, resp["averageScore"])
	assert.Equal(t, 3.5, resp["averageFactualAccuracy"])
	assert.Equal(t, "pass", resp["passStatus"])
	assert.Equal(t, "Candidate passed with Good performance", resp["summaryResult"])

	breakdown, ok := resp["evaluations"].([]interface{})
	require.True(t, ok)
	assert.Len(t, breakdown, 3)
	pending := breakdown[2].(map[string]interface{})
	assert.Equal(t, 0.0, pending["score"])
	assert.Equal(t, "Evaluation not available yet", pending["finalEvaluation"])

	var result model.InterviewResult
	require.NoError(t, testDB.First(&result, "interview_id = ?", interview.ID).Error)
	assert.Equal(t, 2, result.EvaluatedCount)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 3.5, result.AverageScore)
	assert.Equal(t, "pass", result.PassStatus)
	assert.Equal(t, database.TestCandidate1.ID, result.CandidateID)

	// re-aggregation overwrites the cached row in place
	rec, resp = testutil.MakeJSONRequest(nil, userToken, r,
		"/interviews/interview/"+interview.ID.String()+"/auto-evaluate", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", resp)

	var count int64
	testDB.Model(&model.InterviewResult{}).Where("interview_id = ?", interview.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// the owner can read the persisted aggregate back
	rec, resp = testutil.MakeJSONRequest(nil, userToken, r,
		"/interviews/interview/"+interview.ID.String()+"/result", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", resp)
	persisted, ok := resp["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 3.5, persisted["average_score"])
}

func TestGetInterviewResult_notOwner(t *testing.T) {
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusCompleted)
	r := newEvaluateRouter(&fakeEvaluator{results: []*ai.AnswerEvaluation{uniformEvaluation("Good", 3.0)}})

	rec, _ := testutil.MakeJSONRequest(nil, otherToken, r,
		"/interviews/interview/"+interview.ID.String()+"/result", http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetEvaluation_wrongInterview(t *testing.T) {
	userToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)

	interviewA := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusInProgress)
	interviewB := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusInProgress)
	_, answerA := createTestQuestion(t, interviewA, "Q", "A")

	r := newEvaluateRouter(&fakeEvaluator{results: []*ai.AnswerEvaluation{uniformEvaluation("Good", 3.0)}})

	rec, resp := testutil.MakeJSONRequest(nil, userToken, r,
		"/interviews/"+interviewB.ID.String()+"/answers/"+answerA.ID.String()+"/evaluation", http.MethodGet)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Answer does not belong to the specified interview", resp["error"])
}
