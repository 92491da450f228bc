package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/controller/file"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/middleware"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/notifier"
	"jobboard-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func newTestController(t *testing.T) (*ApplicationController, string) {
	t.Helper()
	dir := t.TempDir()
	storage, err := file.NewLocalStorageClient(dir)
	assert.NoError(t, err)
	ac := NewApplicationController(testDB, storage, notifier.NewLogNotifier(slog.Default()))
	return ac, dir
}

func applyRouter(ac *ApplicationController, sizeLimit int64) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequireAuth(testDB))
	r.POST("/jobs/:id/apply", middleware.SizeLimit(sizeLimit), ac.Apply)
	r.GET("/applications", ac.GetMyApplications)
	r.GET("/dashboard", ac.Dashboard)
	return r
}

func adminRouter(ac *ApplicationController) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	r.GET("/admin/applications", ac.GetAllApplications)
	r.PATCH("/admin/applications/:id/review", ac.MarkReviewed)
	return r
}

func TestApply(t *testing.T) {
	memberToken, err := auth.GetAccessToken(t, testDB, database.TestMember2.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, dir := newTestController(t)
	r := applyRouter(ac, 10<<20)

	endpoint := fmt.Sprintf("/jobs/%d/apply", database.TestJob2.ID)
	rec, resp := testutil.MakeMultipartRequest("resume", "my resume.pdf", []byte("%PDF-1.4 test"), memberToken, r, endpoint)

	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())
	assert.Equal(t, false, resp["reviewed"], "new applications start unreviewed")
	assert.Equal(t, "my_resume.pdf", resp["resume"], "filename must be sanitized")

	// The sanitized file must exist in storage
	_, err = os.Stat(filepath.Join(dir, "my_resume.pdf"))
	assert.NoError(t, err)

	var count int64
	testDB.Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", database.TestMember2.ID, database.TestJob2.ID).
		Count(&count)
	assert.GreaterOrEqual(t, count, int64(1))
}

func TestApplyDuplicateAllowed(t *testing.T) {
	memberToken, err := auth.GetAccessToken(t, testDB, database.TestMember2.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := applyRouter(ac, 10<<20)

	endpoint := fmt.Sprintf("/jobs/%d/apply", database.TestJob3.ID)

	var before int64
	testDB.Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", database.TestMember2.ID, database.TestJob3.ID).
		Count(&before)

	for i := 0; i < 2; i++ {
		rec, _ := testutil.MakeMultipartRequest("resume", "resume.docx", []byte("updated resume"), memberToken, r, endpoint)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	var after int64
	testDB.Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", database.TestMember2.ID, database.TestJob3.ID).
		Count(&after)
	assert.Equal(t, before+2, after, "re-applying creates a separate application")
}

func TestApplyDisallowedExtension(t *testing.T) {
	memberToken, err := auth.GetAccessToken(t, testDB, database.TestMember1.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, dir := newTestController(t)
	r := applyRouter(ac, 10<<20)

	endpoint := fmt.Sprintf("/jobs/%d/apply", database.TestJob2.ID)
	rec, resp := testutil.MakeMultipartRequest("resume", "malware.exe", []byte("MZ"), memberToken, r, endpoint)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, resp["error"], "PDF/DOC/DOCX")

	// Nothing stored, nothing recorded
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	var count int64
	testDB.Model(&model.Application{}).Where("resume = ?", "malware.exe").Count(&count)
	assert.Zero(t, count)
}

func TestApplyMissingFile(t *testing.T) {
	memberToken, err := auth.GetAccessToken(t, testDB, database.TestMember1.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := applyRouter(ac, 10<<20)

	endpoint := fmt.Sprintf("/jobs/%d/apply", database.TestJob2.ID)
	rec, resp := testutil.MakeJSONRequest(nil, memberToken, r, endpoint, http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "upload your resume")
}

func TestApplyFileTooLarge(t *testing.T) {
	memberToken, err := auth.GetAccessToken(t, testDB, database.TestMember1.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := applyRouter(ac, 1024) // 1 KB limit for the test

	// Well past the limit plus the multipart overhead padding
	payload := make([]byte, 64*1024)
	endpoint := fmt.Sprintf("/jobs/%d/apply", database.TestJob2.ID)
	rec, _ := testutil.MakeMultipartRequest("resume", "big.pdf", payload, memberToken, r, endpoint)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestApplyJobNotFound(t *testing.T) {
	memberToken, err := auth.GetAccessToken(t, testDB, database.TestMember1.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := applyRouter(ac, 10<<20)

	rec, resp := testutil.MakeMultipartRequest("resume", "resume.pdf", []byte("content"), memberToken, r, "/jobs/999999/apply")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp["error"], "Job not found")
}

func TestGetMyApplications(t *testing.T) {
	memberToken, err := auth.GetAccessToken(t, testDB, database.TestMember1.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := applyRouter(ac, 10<<20)

	rec, _ := testutil.MakeJSONRequest(nil, memberToken, r, "/applications", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), database.TestApplication1.Resume)
	// Other members' applications must not leak
	assert.NotContains(t, rec.Body.String(), fmt.Sprintf(`"user_id":%d`, database.TestMember2.ID))
}

func TestGetAllApplications(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := adminRouter(ac)

	rec, _ := testutil.MakeJSONRequest(nil, adminToken, r, "/admin/applications", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The joined read model exposes applicant and job details
	assert.Contains(t, rec.Body.String(), database.TestMember1.Username)
	assert.Contains(t, rec.Body.String(), database.TestMember1.Email)
	assert.Contains(t, rec.Body.String(), database.TestJob1.Title)
	assert.Contains(t, rec.Body.String(), `"applicant_name"`)
}

func TestGetAllApplicationsForbiddenForMember(t *testing.T) {
	memberToken, err := auth.GetAccessToken(t, testDB, database.TestMember1.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := adminRouter(ac)

	rec, _ := testutil.MakeJSONRequest(nil, memberToken, r, "/admin/applications", http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMarkReviewedIdempotent(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	application := model.Application{
		UserID: database.TestMember2.ID,
		JobID:  database.TestJob1.ID,
		Resume: "review_me.pdf",
	}
	assert.NoError(t, testDB.Create(&application).Error)

	ac, _ := newTestController(t)
	r := adminRouter(ac)
	endpoint := fmt.Sprintf("/admin/applications/%d/review", application.ID)

	// Reviewing twice succeeds both times and the flag stays set
	for i := 0; i < 2; i++ {
		rec, _ := testutil.MakeJSONRequest(nil, adminToken, r, endpoint, http.MethodPatch)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	reloaded := model.Application{}
	assert.NoError(t, testDB.Where("id = ?", application.ID).First(&reloaded).Error)
	assert.True(t, reloaded.Reviewed)
}

func TestMarkReviewedNotFound(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := adminRouter(ac)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r, "/admin/applications/999999/review", http.MethodPatch)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp["error"], "Application not found")
}

func TestDashboardMember(t *testing.T) {
	memberToken, err := auth.GetAccessToken(t, testDB, database.TestMember1.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := applyRouter(ac, 10<<20)

	rec, resp := testutil.MakeJSONRequest(nil, memberToken, r, "/dashboard", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp, "jobs")
	assert.Contains(t, resp, "applications")
	// Members see plain application rows, not the joined admin view
	assert.NotContains(t, rec.Body.String(), `"applicant_name"`)
}

func TestDashboardAdmin(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	ac, _ := newTestController(t)
	r := applyRouter(ac, 10<<20)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r, "/dashboard", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp, "jobs")
	assert.Contains(t, resp, "applications")
	assert.Contains(t, rec.Body.String(), `"applicant_name"`)
}
