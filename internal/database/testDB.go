package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded users, jobs, and applications for package tests
var (
	TestAdminUser m.User
	TestMember1   m.User
	TestMember2   m.User

	// Shared plaintext password of all seeded users
	TestSeedPassword = "SeedPass123!"

	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job

	TestApplication1 m.Application
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

// seedTestData inserts an admin, two members, three jobs, and one application
// if the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	userSpecs := []struct {
		username string
		email    string
		role     string
	}{
		{"admin_user", "admin@example.com", m.RoleAdmin},
		{"member_user_1", "member1@example.com", m.RoleMember},
		{"member_user_2", "member2@example.com", m.RoleMember},
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			Username: s.username,
			Email:    s.email,
			Password: hashedPwd,
			Role:     s.role,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Username {
		case "admin_user":
			TestAdminUser = u
		case "member_user_1":
			TestMember1 = u
		case "member_user_2":
			TestMember2 = u
		}
	}

	jobs := []m.Job{
		{
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Backend Engineer",
				Company:     "TechNova",
				Location:    "Bangkok (Hybrid)",
				Description: "Build Go services and the relational data layer.",
			},
		},
		{
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Frontend Developer",
				Company:     "PixelWorks",
				Location:    "Remote",
				Description: "Build the component library in React.",
			},
		},
		{
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Data Analyst",
				Company:     "DataForge",
				Location:    "Chiang Mai (On-site)",
				Description: "Support data cleansing and dashboard creation.",
			},
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1, TestJob2, TestJob3 = jobs[0], jobs[1], jobs[2]

	application := m.Application{
		UserID: TestMember1.ID,
		JobID:  TestJob1.ID,
		Resume: "alice_resume.pdf",
	}
	if err := db.Create(&application).Error; err != nil {
		return err
	}
	TestApplication1 = application

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{
		"admin_user", "member_user_1", "member_user_2",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "admin_user":
			TestAdminUser = u
		case "member_user_1":
			TestMember1 = u
		case "member_user_2":
			TestMember2 = u
		}
	}

	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err != nil {
		return err
	}
	if len(jobs) > 0 {
		TestJob1 = jobs[0]
	}
	if len(jobs) > 1 {
		TestJob2 = jobs[1]
	}
	if len(jobs) > 2 {
		TestJob3 = jobs[2]
	}

	_ = db.Where("user_id = ?", TestMember1.ID).Order("id ASC").First(&TestApplication1).Error

	return nil
}
