package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/model"
)

// Interview token validation failures, distinguished so callers can answer
// with the precise reason.
var (
	ErrInvalidInterviewToken = errors.New("Invalid interview token")
	ErrInterviewTokenExpired = errors.New("Interview token has expired")
)

// VerifyInterviewToken resolves a join token to an interview principal. The
// token must match a stored joinToken and be inside its expiry window. Status
// is not checked here: an already confirmed or in-progress interview is still
// reachable by its token holder until it reaches a terminal state.
func VerifyInterviewToken(db *database.DBinstanceStruct, token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrInvalidInterviewToken
	}

	var interview model.Interview
	err := db.Preload("Candidate").Preload("Job").Preload("User").
		Where("join_token = ?", token).First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Principal{}, ErrInvalidInterviewToken
		}
		return Principal{}, err
	}

	if interview.TokenExpiry != nil && IsTokenExpired(interview.TokenExpiry) {
		return Principal{}, ErrInterviewTokenExpired
	}

	return Principal{
		Kind:      PrincipalInterview,
		Interview: interview,
		Candidate: interview.Candidate,
		Job:       interview.Job,
		Recruiter: interview.User,
	}, nil
}
