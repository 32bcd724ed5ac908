package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/manoj1689/hireLn-api/internal/ai"
	"github.com/manoj1689/hireLn-api/internal/database"
	"github.com/manoj1689/hireLn-api/internal/email"
)

// Server bundles the dependencies every route handler needs.
type Server struct {
	port int

	DB     *database.DBinstanceStruct
	AI     ai.Evaluator
	Mailer *email.Mailer
}

// NewServer constructs the HTTP server: database, AI client and mailer are
// initialized here and injected into the handlers.
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	evaluator, err := ai.NewClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
	if err != nil {
		log.Fatalf("AI client failed to initialize: %s", err)
	}

	s := &Server{
		port:   port,
		DB:     db,
		AI:     evaluator,
		Mailer: email.NewMailerFromEnv(),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
