// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/manoj1689/hireLn-api/internal/auth"
	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/utilities"
)

// RequireAuth validates a Bearer token in the Authorization header and checks
// that the user associated with the token exists before allowing access to the
// endpoint. This is the user-only authentication mode: failure is terminal.
func RequireAuth(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		foundUser, err := resolveUser(db, tokenString)
		if err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, jwt.ErrTokenExpired) &&
				!errors.Is(err, gorm.ErrRecordNotFound) &&
				!isAuthFailure(err) {
				status = http.StatusInternalServerError
			}
			ctx.AbortWithStatusJSON(status, utilities.ErrorResponse{
				Error: authErrorMessage(err),
			})
			return
		}

		ctx.Set("user", foundUser)
		auth.SetPrincipal(ctx, auth.Principal{Kind: auth.PrincipalUser, User: foundUser})
		ctx.Next()
	}
}

var (
	errInvalidToken  = errors.New("Invalid access token")
	errInvalidIssuer = errors.New("Invalid token issuer")
)

func isAuthFailure(err error) bool {
	return errors.Is(err, errInvalidToken) || errors.Is(err, errInvalidIssuer)
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Access token expired"
	case errors.Is(err, errInvalidIssuer):
		return "Invalid token issuer"
	case errors.Is(err, errInvalidToken):
		return "Invalid access token"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "User not exist"
	default:
		return fmt.Sprintf("Failed to validate token: %s", err.Error())
	}
}

// resolveUser decodes a bearer token and loads the matching user row.
func resolveUser(db *database.DBinstanceStruct, tokenString string) (model.User, error) {
	token, err := auth.ValidatedToken(tokenString)
	if err != nil {
		return model.User{}, err
	}

	if !token.Valid {
		return model.User{}, errInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return model.User{}, errInvalidToken
	}

	if claims.Issuer != auth.JwtIssuer {
		return model.User{}, errInvalidIssuer
	}

	var foundUser model.User
	if err := db.Where("id = ?", claims.Subject).First(&foundUser).Error; err != nil {
		return model.User{}, err
	}

	return foundUser, nil
}
