package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/manoj1689/hireLn-api/internal/model"
)

// PrincipalKind tags which channel authenticated the request.
type PrincipalKind string

var (
	// PrincipalUser is an authenticated platform user (bearer JWT)
	PrincipalUser = PrincipalKind("user")
	// PrincipalInterview is an anonymous interview token bearer
	PrincipalInterview = PrincipalKind("interview")
)

// Principal is the resolved identity driving authorization decisions. Exactly
// one of User or Interview is populated, selected by Kind.
type Principal struct {
	Kind PrincipalKind

	// Populated when Kind == PrincipalUser
	User model.User

	// Populated when Kind == PrincipalInterview
	Interview model.Interview
	Candidate model.Candidate
	Job       model.Job
	Recruiter model.User
}

// CanAccessInterview reports whether the principal may act on the interview
// with the given id and owner. A user principal must own the interview; an
// interview principal must be bound to that exact interview.
func (p Principal) CanAccessInterview(interviewID, ownerID uuid.UUID) bool {
	switch p.Kind {
	case PrincipalUser:
		return p.User.ID == ownerID
	case PrincipalInterview:
		return p.Interview.ID == interviewID
	default:
		return false
	}
}

// SetPrincipal stores the resolved principal in the gin context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set("principal", p)
}

// ExtractPrincipal retrieves the resolved principal from the gin context.
func ExtractPrincipal(c *gin.Context) (Principal, error) {
	v, _ := c.Get("principal")
	if v == nil {
		return Principal{}, errors.New("Principal information not provided")
	}
	p, ok := v.(Principal)
	if !ok {
		return Principal{}, errors.New("Failed to assert type")
	}
	return p, nil
}
