// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"github.com/manoj1689/hireLn-api/internal/auth"
	"github.com/manoj1689/hireLn-api/internal/controller"
	"github.com/manoj1689/hireLn-api/internal/middleware"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrigins := strings.Split(allowOriginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	ctl := controller.NewInterviewController(s.DB, s.AI, s.Mailer)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", middleware.InterviewTokenHeader},
		AllowCredentials: true,
	}))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	{
		authRoute := api.Group("/auth")
		{
			authRoute.POST("register", lAuth.RegisterHandler)
			authRoute.POST("login", lAuth.LoginHandler)
		}

		// Candidate-facing join flow: authenticated by the join token carried
		// in the link itself, rate limited against token guessing.
		joinRoute := api.Group("/interview-join")
		{
			joinRoute.Use(middleware.EnvRateLimitMiddleware())
			joinRoute.GET("join", ctl.JoinInterview)
			joinRoute.POST("confirm/:id", ctl.ConfirmInterview)
			joinRoute.PUT(":id/start", ctl.StartInterview)
			joinRoute.PUT(":id/complete", ctl.CompleteInterview)
		}

		interviews := api.Group("/interviews")
		{
			userOnly := interviews.Group("")
			{
				userOnly.Use(middleware.RequireAuth(s.DB))
				userOnly.POST("schedule", ctl.ScheduleInterview)
				userOnly.GET("", ctl.GetInterviews)
				userOnly.PUT(":id/reschedule", ctl.RescheduleInterview)
				userOnly.PUT(":id/status", ctl.UpdateInterviewStatus)
				userOnly.POST(":id/feedback", ctl.SubmitInterviewFeedback)
				userOnly.DELETE(":id", ctl.DeleteInterview)
				userOnly.GET("interview/:id/result", ctl.GetInterviewResult)
				userOnly.POST("interview/:id/send-result", ctl.SendInterviewResult)
			}

			either := interviews.Group("")
			{
				either.Use(middleware.UserOrInterviewAuth(s.DB))
				either.GET(":id", ctl.GetInterview)
				either.POST("interview/:id/auto-evaluate", ctl.AutoEvaluateInterview)
				either.GET(":id/answers/:answer_id/evaluation", ctl.GetEvaluation)
			}
		}

		questions := api.Group("/questions")
		{
			userOnly := questions.Group("")
			{
				userOnly.Use(middleware.RequireAuth(s.DB))
				userOnly.DELETE("questions/:id", ctl.DeleteQuestion)
				userOnly.GET("interview/:id/stats", ctl.GetInterviewQuestionStats)
			}

			either := questions.Group("")
			{
				either.Use(middleware.UserOrInterviewAuth(s.DB))
				either.POST("interview/:id/bulk-upload", ctl.BulkUploadQuestions)
				either.GET("interview-questions/:id", ctl.GetInterviewQuestions)
				either.POST("questions/:id/answer", ctl.CreateAnswer)
				either.PUT("answers/:id", ctl.UpdateAnswer)
				either.POST("answers/:id/auto-evaluate", ctl.AutoEvaluateAnswer)
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *Server) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
