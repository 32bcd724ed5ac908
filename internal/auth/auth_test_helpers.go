package auth

import (
	"errors"
	"testing"

	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/utilities"
)

// GetAccessToken logs a seeded user in and returns a signed access token.
// Intended for handler tests that need an authenticated request.
func GetAccessToken(t *testing.T, db *database.DBinstanceStruct, email, password string) (string, error) {
	t.Helper()

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", err
	}

	if !utilities.VerifyPassword(password, user.Password) {
		return "", errors.New("password mismatch for seeded user")
	}

	token, _, err := GenerateToken(user.ID)
	return token, err
}
