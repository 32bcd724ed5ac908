package controller

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/testutil"
)

func newJoinRouter() *gin.Engine {
	ctl := NewInterviewController(testDB, nil, nil)
	r := gin.Default()
	r.GET("/interview-join/join", ctl.JoinInterview)
	r.POST("/interview-join/confirm/:id", ctl.ConfirmInterview)
	r.PUT("/interview-join/:id/start", ctl.StartInterview)
	r.PUT("/interview-join/:id/complete", ctl.CompleteInterview)
	return r
}

func joinURL(interview model.Interview, token string) string {
	return fmt.Sprintf("/interview-join/join?interview_id=%s&token=%s", interview.ID, token)
}

func TestJoinInterview_success(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusScheduled)
	r := newJoinRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, joinURL(interview, *interview.JoinToken), http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t,
		fmt.Sprintf("/ai-interview-round?interview_id=%s&token=%s", interview.ID, *interview.JoinToken),
		resp["redirectUrl"])

	var reloaded model.Interview
	require.NoError(t, testDB.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, model.InterviewStatusJoined, reloaded.Status)
}

func TestJoinInterview_invalidToken(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusScheduled)
	r := newJoinRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, joinURL(interview, "wrong-token"), http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or missing join token", resp["error"])

	var reloaded model.Interview
	require.NoError(t, testDB.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, model.InterviewStatusScheduled, reloaded.Status)
}

func TestJoinInterview_expiredToken(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusScheduled)
	expired := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, testDB.Model(&interview).Update("token_expiry", expired).Error)
	r := newJoinRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, joinURL(interview, *interview.JoinToken), http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Join token has expired", resp["error"])

	var reloaded model.Interview
	require.NoError(t, testDB.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, model.InterviewStatusScheduled, reloaded.Status)
}

func TestJoinInterview_cancelled(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusCancelled)
	r := newJoinRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, joinURL(interview, *interview.JoinToken), http.MethodGet)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Interview is cancelled", resp["error"])
}

func TestJoinInterview_notFound(t *testing.T) {
	r := newJoinRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r,
		"/interview-join/join?interview_id=00000000-0000-0000-0000-000000000000&token=x", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Already joined interviews are returned as-is without another transition.
func TestJoinInterview_joinedIsIdempotent(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusJoined)
	r := newJoinRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, joinURL(interview, *interview.JoinToken), http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)

	var reloaded model.Interview
	require.NoError(t, testDB.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, model.InterviewStatusJoined, reloaded.Status)
}

func TestConfirmInterview_declineAppendsNotes(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusScheduled)
	r := newJoinRouter()

	rec, resp := testutil.MakeJSONRequest(
		gin.H{"confirmed": false, "response_message": "Cannot make it"},
		"", r, "/interview-join/confirm/"+interview.ID.String(), http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.InterviewStatusCancelled, resp["status"])

	var reloaded model.Interview
	require.NoError(t, testDB.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, model.InterviewStatusCancelled, reloaded.Status)
	assert.Contains(t, reloaded.Notes, "Candidate response: Cannot make it")
}

func TestStartAndCompleteInterview(t *testing.T) {
	interview := createTestInterview(t, database.TestRecruiter1, database.TestCandidate1,
		database.TestApplication1, database.TestJob1, model.InterviewStatusJoined)
	r := newJoinRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/interview-join/"+interview.ID.String()+"/start", http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)

	var reloaded model.Interview
	require.NoError(t, testDB.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, model.InterviewStatusInProgress, reloaded.Status)
	assert.NotNil(t, reloaded.StartedAt)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/interview-join/"+interview.ID.String()+"/complete", http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, testDB.First(&reloaded, "id = ?", interview.ID).Error)
	assert.Equal(t, model.InterviewStatusCompleted, reloaded.Status)
	assert.NotNil(t, reloaded.CompletedAt)
}
