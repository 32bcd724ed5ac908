package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/manoj1689/hireLn-api/internal/model"
	"github.com/manoj1689/hireLn-api/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seed data for handler tests
var (
	TestRecruiter1 m.User
	TestRecruiter2 m.User

	TestCandidate1 m.Candidate
	TestCandidate2 m.Candidate

	TestJob1 m.Job
	TestJob2 m.Job

	// TestApplication1 belongs to recruiter 1 and starts as APPLIED so
	// scheduling tests can observe the APPLIED -> INTERVIEW promotion.
	TestApplication1 m.Application
	TestApplication2 m.Application

	// TestSeedPassword is the plain password shared by seeded users
	TestSeedPassword = "SeedPass123!"
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts two recruiters with a candidate, job and application
// each, if the database is still empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	users := []m.User{
		{
			Email:       "recruiter1@example.com",
			Password:    hashedPwd,
			FirstName:   "Rita",
			LastName:    "Sharma",
			Role:        m.RoleRecruiter,
			CompanyName: "TechNova",
		},
		{
			Email:       "recruiter2@example.com",
			Password:    hashedPwd,
			FirstName:   "Omar",
			LastName:    "Farouk",
			Role:        m.RoleRecruiter,
			CompanyName: "DataForge",
		},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestRecruiter1 = users[0]
	TestRecruiter2 = users[1]

	edu := `[{"degree":"B.Tech","field":"Computer Science","institution":"IIT Delhi"}]`
	exp := `[{"company":"Initech","role":"Backend Developer","years":3}]`

	candidates := []m.Candidate{
		{
			UserID:          TestRecruiter1.ID,
			Name:            "Asha Verma",
			Email:           "asha.verma@example.com",
			TechnicalSkills: pq.StringArray{"Go", "PostgreSQL", "Docker"},
			Education:       &edu,
			Experience:      &exp,
		},
		{
			UserID:          TestRecruiter2.ID,
			Name:            "Ben Carter",
			Email:           "ben.carter@example.com",
			TechnicalSkills: pq.StringArray{"Python", "ML"},
		},
	}
	if err := db.Create(&candidates).Error; err != nil {
		return err
	}
	TestCandidate1 = candidates[0]
	TestCandidate2 = candidates[1]

	desc1 := "Build and operate Go services."
	desc2 := "Analytics pipelines and dashboards."
	jobs := []m.Job{
		{
			UserID:      TestRecruiter1.ID,
			Title:       "Backend Engineer",
			Description: &desc1,
			Skills:      pq.StringArray{"go", "sql"},
		},
		{
			UserID:      TestRecruiter2.ID,
			Title:       "Data Analyst",
			Description: &desc2,
			Skills:      pq.StringArray{"python", "sql"},
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1 = jobs[0]
	TestJob2 = jobs[1]

	applications := []m.Application{
		{
			CandidateID: TestCandidate1.ID,
			JobID:       TestJob1.ID,
			UserID:      TestRecruiter1.ID,
			Status:      m.ApplicationStatusApplied,
		},
		{
			CandidateID: TestCandidate2.ID,
			JobID:       TestJob2.ID,
			UserID:      TestRecruiter2.ID,
			Status:      m.ApplicationStatusApplied,
		},
	}
	if err := db.Create(&applications).Error; err != nil {
		return err
	}
	TestApplication1 = applications[0]
	TestApplication2 = applications[1]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.First(&TestRecruiter1, "email = ?", "recruiter1@example.com").Error; err != nil {
		return err
	}
	if err := db.First(&TestRecruiter2, "email = ?", "recruiter2@example.com").Error; err != nil {
		return err
	}
	_ = db.First(&TestCandidate1, "user_id = ?", TestRecruiter1.ID).Error
	_ = db.First(&TestCandidate2, "user_id = ?", TestRecruiter2.ID).Error
	_ = db.First(&TestJob1, "user_id = ?", TestRecruiter1.ID).Error
	_ = db.First(&TestJob2, "user_id = ?", TestRecruiter2.ID).Error
	_ = db.First(&TestApplication1, "user_id = ?", TestRecruiter1.ID).Error
	_ = db.First(&TestApplication2, "user_id = ?", TestRecruiter2.ID).Error
	return nil
}
