package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manoj1689/hireLn-api/internal/auth"
	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/utilities"
)

// InterviewTokenHeader carries the anonymous candidate join token.
const InterviewTokenHeader = "X-Interview-Token"

// UserOrInterviewAuth resolves either principal kind from a single request.
// The interview token is tried first; an invalid or expired token falls
// through to the user bearer instead of hard-failing. Only when both channels
// are absent or both fail does the request get a 401.
func UserOrInterviewAuth(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := ctx.GetHeader(InterviewTokenHeader); token != "" {
			principal, err := auth.VerifyInterviewToken(db, token)
			if err == nil {
				auth.SetPrincipal(ctx, principal)
				ctx.Next()
				return
			}
			log.Printf("interview token rejected: %v", err)
		}

		if tokenString, err := utilities.ExtractBearerToken(ctx); err == nil {
			foundUser, err := resolveUser(db, tokenString)
			if err == nil {
				ctx.Set("user", foundUser)
				auth.SetPrincipal(ctx, auth.Principal{Kind: auth.PrincipalUser, User: foundUser})
				ctx.Next()
				return
			}
			log.Printf("user token rejected: %v", err)
		}

		ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Authentication required. Provide either Authorization Bearer token or X-Interview-Token header.",
		})
	}
}

// InterviewTokenAuth accepts only the interview token channel. Its failure is
// terminal, with the precise reason (invalid vs expired) in the body.
func InterviewTokenAuth(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader(InterviewTokenHeader)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "X-Interview-Token header is required",
			})
			return
		}

		principal, err := auth.VerifyInterviewToken(db, token)
		if err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, auth.ErrInvalidInterviewToken) && !errors.Is(err, auth.ErrInterviewTokenExpired) {
				status = http.StatusInternalServerError
			}
			ctx.AbortWithStatusJSON(status, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		auth.SetPrincipal(ctx, principal)
		ctx.Next()
	}
}
