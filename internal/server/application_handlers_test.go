package server

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hirehub/internal/models"
	"hirehub/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// applyRequest builds the multipart POST /api/applications body. An empty
// resumeName skips the file part.
func applyRequest(t *testing.T, jobID uint, coverLetter, resumeName string, resume []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("job_posting_id", fmt.Sprintf("%d", jobID)))
	require.NoError(t, w.WriteField("cover_letter", coverLetter))
	if resumeName != "" {
		part, err := w.CreateFormFile("resume", resumeName)
		require.NoError(t, err)
		_, err = part.Write(resume)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func createApprovedJob(t *testing.T, db *gorm.DB, employerID uint) *models.JobPosting {
	t.Helper()

	job := &models.JobPosting{
		Title:           "Backend Engineer",
		Company:         "Acme Corp",
		Location:        "Remote",
		Description:     "Build APIs",
		JobType:         "Full-time",
		ExperienceLevel: "Mid",
		Requirements:    "Go",
		Status:          models.JobStatusApproved,
		IsActive:        true,
		PostedDate:      time.Now().UTC(),
		EmployerID:      employerID,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func TestApplicationFlowOverHTTP(t *testing.T) {
	s, app, db := setupTestServer(t)

	employer := createUser(t, db, "employer@test.com", models.RoleEmployer)
	seeker := createUser(t, db, "seeker@test.com", models.RoleJobSeeker)
	employerToken := tokenFor(t, s, employer)
	seekerToken := tokenFor(t, s, seeker)

	job := createApprovedJob(t, db, employer.ID)

	var appID uint

	t.Run("seeker applies with a resume", func(t *testing.T) {
		req := authed(applyRequest(t, job.ID, "I would love this role.",
			"resume.pdf", []byte("%PDF-1.4 test resume")), seekerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var application models.JobApplication
		decodeBody(t, resp, &application)
		assert.Equal(t, models.ApplicationStatusPending, application.Status)
		assert.Equal(t, seeker.ID, application.JobSeekerID)
		assert.NotEmpty(t, application.ResumePath)
		appID = application.ID
	})

	t.Run("second application to the same posting conflicts", func(t *testing.T) {
		req := authed(applyRequest(t, job.ID, "Me again.", "", nil), seekerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("employer role cannot apply", func(t *testing.T) {
		req := authed(applyRequest(t, job.ID, "Wrong hat.", "", nil), employerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("seeker sees it in their list", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodGet, "/api/applications/me", nil), seekerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var apps []models.JobApplication
		decodeBody(t, resp, &apps)
		require.Len(t, apps, 1)
		assert.Equal(t, appID, apps[0].ID)
	})

	t.Run("employer sees it across their postings", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodGet, "/api/applications/employer", nil), employerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var apps []models.JobApplication
		decodeBody(t, resp, &apps)
		require.Len(t, apps, 1)

		req = authed(jsonRequest(http.MethodGet,
			fmt.Sprintf("/api/jobs/%d/applications", job.ID), nil), employerToken)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("employer downloads the resume", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodGet,
			fmt.Sprintf("/api/applications/%d/resume", appID), nil), employerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, "%PDF-1.4 test resume", string(body))
	})

	t.Run("foreign seeker cannot read the application", func(t *testing.T) {
		stranger := createUser(t, db, "stranger@test.com", models.RoleJobSeeker)
		req := authed(jsonRequest(http.MethodGet,
			fmt.Sprintf("/api/applications/%d", appID), nil), tokenFor(t, s, stranger))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("employer shortlists", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodPut,
			fmt.Sprintf("/api/applications/%d/status", appID),
			map[string]any{"status": "Shortlisted", "notes": "Strong resume"}), employerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var application models.JobApplication
		decodeBody(t, resp, &application)
		assert.Equal(t, models.ApplicationStatusShortlisted, application.Status)
		assert.Equal(t, "Strong resume", application.Notes)
	})

	t.Run("hired is terminal", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodPut,
			fmt.Sprintf("/api/applications/%d/status", appID),
			map[string]any{"status": "Hired"}), employerToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req = authed(jsonRequest(http.MethodPut,
			fmt.Sprintf("/api/applications/%d/status", appID),
			map[string]any{"status": "Rejected"}), employerToken)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestApplicationUploadRejectedOverHTTP(t *testing.T) {
	s, app, db := setupTestServer(t)

	employer := createUser(t, db, "employer@test.com", models.RoleEmployer)
	seeker := createUser(t, db, "seeker@test.com", models.RoleJobSeeker)
	job := createApprovedJob(t, db, employer.ID)

	req := authed(applyRequest(t, job.ID, "Trust me.", "resume.exe",
		[]byte("MZ")), tokenFor(t, s, seeker))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&models.JobApplication{}).Count(&count)
	assert.Zero(t, count)
}

func TestBulkStatusOverHTTP(t *testing.T) {
	s, app, db := setupTestServer(t)

	admin := createUser(t, db, "admin@test.com", models.RoleAdmin)
	employer := createUser(t, db, "employer@test.com", models.RoleEmployer)
	job := createApprovedJob(t, db, employer.ID)

	var ids []uint
	for i := 0; i < 3; i++ {
		seeker := createUser(t, db, fmt.Sprintf("seeker%d@test.com", i), models.RoleJobSeeker)
		application := &models.JobApplication{
			JobPostingID: job.ID,
			JobSeekerID:  seeker.ID,
			Status:       models.ApplicationStatusPending,
			AppliedDate:  time.Now().UTC(),
		}
		require.NoError(t, db.Create(application).Error)
		ids = append(ids, application.ID)
	}

	t.Run("employer is refused", func(t *testing.T) {
		req := authed(jsonRequest(http.MethodPost, "/api/applications/bulk-status", map[string]any{
			"application_ids": ids,
			"status":          "Rejected",
		}), tokenFor(t, s, employer))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	req := authed(jsonRequest(http.MethodPost, "/api/applications/bulk-status", map[string]any{
		"application_ids": append(ids, 99999),
		"status":          "Rejected",
	}), tokenFor(t, s, admin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result service.BulkUpdateResult
	decodeBody(t, resp, &result)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 3, result.Updated)
	assert.Equal(t, []uint{99999}, result.Skipped)

	var rejected int64
	db.Model(&models.JobApplication{}).
		Where("status = ?", models.ApplicationStatusRejected).Count(&rejected)
	assert.EqualValues(t, 3, rejected)
}
