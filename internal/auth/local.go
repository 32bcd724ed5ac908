package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/utilities"
)

// LocalAuthHandler holds the database connection for register/login endpoints.
type LocalAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewLocalAuthHandler construct new LocalAuthHandler instance
func NewLocalAuthHandler(db *database.DBinstanceStruct) *LocalAuthHandler {
	return &LocalAuthHandler{DB: db}
}

// RegisterHandler creates a recruiter account from email and password plus
// company details, and returns the new user with an access token.
func (h *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	var info struct {
		Email              string   `json:"email" binding:"required,email"`
		Password           string   `json:"password" binding:"required"`
		ConfirmPassword    string   `json:"confirm_password" binding:"required"`
		FirstName          string   `json:"first_name" binding:"required"`
		LastName           string   `json:"last_name"`
		CompanyName        string   `json:"company_name"`
		CompanySize        *string  `json:"company_size"`
		Industry           *string  `json:"industry"`
		HiringVolume       *string  `json:"hiring_volume"`
		PrimaryHiringNeeds []string `json:"primary_hiring_needs"`
	}

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid registration body: %s", err.Error()),
		})
		return
	}

	if info.Password != info.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Password should longer or equal to 8 characters",
		})
		return
	}

	var existing model.User
	err := h.DB.Where("email = ?", info.Email).First(&existing).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	user := model.User{
		Email:              info.Email,
		Password:           hashedPassword,
		FirstName:          info.FirstName,
		LastName:           info.LastName,
		Role:               model.RoleRecruiter,
		CompanyName:        info.CompanyName,
		CompanySize:        info.CompanySize,
		Industry:           info.Industry,
		HiringVolume:       info.HiringVolume,
		PrimaryHiringNeeds: pq.StringArray(info.PrimaryHiringNeeds),
	}

	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	accessToken, _, err := GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":         user,
		"access_token": accessToken,
	})
}

// LoginHandler authenticates a recruiter with email and password.
func (h *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Email or password is not provided",
		})
		return
	}

	var user model.User
	err := h.DB.Where("email = ?", info.Email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Email or password is incorrect",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Email or password is incorrect",
		})
		return
	}

	accessToken, _, err := GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"access_token": accessToken,
	})
}
