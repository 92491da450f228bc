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

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/controller/admin"
	"jobboard-backend/internal/controller/application"
	"jobboard-backend/internal/controller/contact"
	"jobboard-backend/internal/controller/file"
	"jobboard-backend/internal/controller/job"
	"jobboard-backend/internal/middleware"
	"jobboard-backend/internal/model"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	blacklistStore := auth.NewInMemoryBlacklistStore()

	lAuth := auth.NewLocalAuthHandler(s.DB)
	logoutController := auth.NewLogoutController(blacklistStore)
	jobController := job.NewJobController(s.DB)
	applicationController := application.NewApplicationController(s.DB, s.Storage, s.Notifier)
	adminController := admin.NewAdminController(s.DB)
	fileController := file.NewFileController(s.Storage)
	contactController := contact.NewContactController(s.Notifier)

	r.Use(middleware.SafeHeader())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", lAuth.LoginHandler)
			authRoute.POST("register", lAuth.RegisterHandler)
		}

		jobRoute := v1.Group("/jobs")
		{
			jobRoute.GET("", jobController.GetJobs)
			jobRoute.GET("search", jobController.SearchJobs)
			jobRoute.GET(":id", jobController.GetJobByID)
		}

		v1.GET("about", s.aboutHandler)
		v1.POST("contact", contactController.Submit)

		// Any routes
		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(blacklistStore))

			needAuth.POST("auth/logout", logoutController.LogoutHandler)
			needAuth.GET("dashboard", applicationController.Dashboard)
			needAuth.POST("jobs/:id/apply", middleware.SizeLimit(10<<20), applicationController.Apply)
			needAuth.GET("applications", applicationController.GetMyApplications)

			fileRoute := needAuth.Group("/file")
			{
				fileRoute.GET(":name", fileController.GetFile)
			}

			needAdmin := needAuth.Group("")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
				needAdmin.POST("jobs", jobController.CreateJob)
				needAdmin.PATCH("jobs/:id", jobController.EditJob)
				needAdmin.DELETE("jobs/:id", jobController.DeleteJob)

				adminRoute := needAdmin.Group("/admin")
				{
					adminRoute.GET("applications", applicationController.GetAllApplications)
					adminRoute.PATCH("applications/:id/review", applicationController.MarkReviewed)
					adminRoute.GET("users", adminController.GetUsers)
					adminRoute.PATCH("users/:id/promote", adminController.PromoteUser)
					adminRoute.PATCH("users/:id/demote", adminController.DemoteUser)
					adminRoute.DELETE("users/:id", adminController.DeleteUser)
				}
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}

func (s *MyServer) aboutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Job Board API",
		"description": "Browse job postings, apply with a resume, and manage applications.",
	})
}
