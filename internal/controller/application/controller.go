// Package application provides HTTP handlers for the application workflow.
package application

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"jobboard-backend/internal/controller/file"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/notifier"
	"jobboard-backend/internal/utilities"
)

// Extensions accepted for uploaded resumes.
var allowedResumeExtensions = []string{".pdf", ".doc", ".docx"}

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB       *database.DBinstanceStruct
	Storage  file.StorageClient
	Notifier notifier.Notifier
}

// NewApplicationController creates a new instance of ApplicationController.
func NewApplicationController(db *database.DBinstanceStruct, storage file.StorageClient, n notifier.Notifier) *ApplicationController {
	return &ApplicationController{
		DB:       db,
		Storage:  storage,
		Notifier: n,
	}
}

// Apply handles a job application submitted by an authenticated user: the
// resume file is validated against the allow-list, stored under its sanitized
// name, and the application row is created with reviewed=false. The
// confirmation mail is sent after the write and its failure is only logged.
// @Summary Apply to a job posting with a resume upload
// @Description Only .pdf, .doc, or .docx files smaller than 10 MB are permitted
// @Tags Application
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job posting to apply to"
// @Param resume formData file true "Upload your resume file"
// @Success 201 {object} model.Application "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Invalid filename or missing file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database or storage error"
// @Router /jobs/{id}/apply [post]
func (ac *ApplicationController) Apply(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID := c.Param("id")

	job := model.Job{}
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	rawFile, err := c.FormFile("resume")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Please upload your resume",
		})
		return
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !utilities.Contains(allowedResumeExtensions, extension) {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: "Only PDF/DOC/DOCX files are allowed",
		})
		return
	}

	filename := utilities.SanitizeFilename(rawFile.Filename)
	if filename == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid filename"})
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close uploaded file: %v", err)
		}
	}()

	if err := ac.Storage.UploadFile(filename, f); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store resume: %s", err.Error()),
		})
		return
	}

	application := model.Application{
		UserID: user.ID,
		JobID:  job.ID,
		Resume: filename,
	}

	if err := ac.DB.Create(&application).Error; err != nil {
		var pqErr *pgconn.PgError
		// Foreign key violation means the job or user disappeared mid-request
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Job not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	// Best-effort confirmation, never blocks or fails the submission
	go func(applicant model.User, job model.Job) {
		if err := ac.Notifier.ApplicationReceived(applicant, job); err != nil {
			log.Printf("failed to send application confirmation: %v", err)
		}
	}(user, job)

	c.JSON(http.StatusCreated, application)
}

// GetMyApplications lists the authenticated user's applications, newest first.
// @Summary List own applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var applications []model.Application
	if err := ac.DB.Where("user_id = ?", user.ID).Order("applied_on DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// GetAllApplications lists every application joined with its applicant and job.
// @Summary List all applications with applicant and job details
// @Description Only admin have access to this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.ApplicationRecord
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applications [get]
func (ac *ApplicationController) GetAllApplications(c *gin.Context) {
	records, err := ac.joinedApplications()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, records)
}

// MarkReviewed marks an application as reviewed. Reviewing an application
// that is already reviewed succeeds without change.
// @Summary Mark application as reviewed
// @Description Only admin have access to this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applications/{id}/review [patch]
func (ac *ApplicationController) MarkReviewed(c *gin.Context) {
	id := c.Param("id")

	application := model.Application{}
	if err := ac.DB.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	if !application.Reviewed {
		if err := ac.DB.Model(&application).Update("reviewed", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
			})
			return
		}
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{
		Message: fmt.Sprintf("Application #%d marked as reviewed", application.ID),
	})
}

// Dashboard returns all jobs plus the caller's applications, or every
// application joined with applicant and job details when the caller is admin.
// @Summary Get dashboard data for the current user
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /dashboard [get]
func (ac *ApplicationController) Dashboard(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var jobs []model.Job
	if err := ac.DB.Order("posted_on DESC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch jobs: %s", err.Error()),
		})
		return
	}

	if user.IsAdmin() {
		records, err := ac.joinedApplications()
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs, "applications": records})
		return
	}

	var applications []model.Application
	if err := ac.DB.Where("user_id = ?", user.ID).Order("applied_on DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "applications": applications})
}

func (ac *ApplicationController) joinedApplications() ([]model.ApplicationRecord, error) {
	records := []model.ApplicationRecord{}
	err := ac.DB.Model(&model.Application{}).
		Select("applications.id, users.username AS applicant_name, users.email AS applicant_email, jobs.title AS job_title, applications.resume, applications.applied_on, applications.reviewed").
		Joins("JOIN users ON users.id = applications.user_id").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Order("applications.applied_on DESC").
		Scan(&records).Error
	return records, err
}
