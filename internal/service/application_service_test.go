package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hirehub/internal/models"
	"hirehub/internal/notifications"
	"hirehub/internal/repository"
	"hirehub/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMailer records scenario calls and can be told to fail specific
// recipients, so tests can prove a broken mailbox never blocks a write.
type fakeMailer struct {
	confirmations []string
	rejections    []string
	shortlists    []string
	notices       []string
	failFor       map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: map[string]bool{}}
}

func (m *fakeMailer) deliver(bucket *[]string, to string) error {
	if m.failFor[to] {
		return fmt.Errorf("mailbox unavailable: %s", to)
	}
	*bucket = append(*bucket, to)
	return nil
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	return m.deliver(&m.notices, to)
}

func (m *fakeMailer) SendApplicationConfirmation(ctx context.Context, toEmail, seekerName, jobTitle, company string) error {
	return m.deliver(&m.confirmations, toEmail)
}

func (m *fakeMailer) SendApplicationRejection(ctx context.Context, toEmail, seekerName, jobTitle, company string) error {
	return m.deliver(&m.rejections, toEmail)
}

func (m *fakeMailer) SendApplicationShortlist(ctx context.Context, toEmail, seekerName, jobTitle, company string) error {
	return m.deliver(&m.shortlists, toEmail)
}

func (m *fakeMailer) SendNewApplicationNotice(ctx context.Context, toEmail, employerName, jobTitle, applicantName string) error {
	return m.deliver(&m.notices, toEmail)
}

type appTestEnv struct {
	db       *gorm.DB
	svc      *ApplicationService
	mail     *fakeMailer
	store    *storage.LocalStore
	employer *models.User
	seeker   *models.User
	admin    *models.User
	job      *models.JobPosting
}

func setupAppTestEnv(t *testing.T) *appTestEnv {
	t.Helper()
	db := setupServiceTestDB(t)
	mail := newFakeMailer()
	store := storage.NewLocalStore(t.TempDir())

	svc := NewApplicationService(
		repository.NewApplicationRepository(db),
		repository.NewJobRepository(db),
		repository.NewUserRepository(db),
		store,
		mail,
		notifications.NewNotifier(nil),
		0,
		adminChecker(db),
	)

	employer := createTestUser(t, db, "employer@test.com", models.RoleEmployer)
	seeker := createTestUser(t, db, "seeker@test.com", models.RoleJobSeeker)
	admin := createTestUser(t, db, "admin@test.com", models.RoleAdmin)

	now := time.Now().UTC()
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
		PostedDate:      now,
		EmployerID:      employer.ID,
	}
	require.NoError(t, db.Create(job).Error)

	return &appTestEnv{
		db: db, svc: svc, mail: mail, store: store,
		employer: employer, seeker: seeker, admin: admin, job: job,
	}
}

func TestApplicationService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("success notifies seeker and employer", func(t *testing.T) {
		env := setupAppTestEnv(t)

		app, err := env.svc.Apply(ctx, ApplyInput{
			SeekerID:     env.seeker.ID,
			JobPostingID: env.job.ID,
			CoverLetter:  "Hello",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusPending, app.Status)
		assert.Equal(t, []string{"seeker@test.com"}, env.mail.confirmations)
		assert.Equal(t, []string{"employer@test.com"}, env.mail.notices)
	})

	t.Run("email failure does not fail the application", func(t *testing.T) {
		env := setupAppTestEnv(t)
		env.mail.failFor["seeker@test.com"] = true

		app, err := env.svc.Apply(ctx, ApplyInput{
			SeekerID:     env.seeker.ID,
			JobPostingID: env.job.ID,
		})
		require.NoError(t, err)

		var count int64
		env.db.Model(&models.JobApplication{}).Where("id = ?", app.ID).Count(&count)
		assert.EqualValues(t, 1, count)
		// The employer notice still goes out.
		assert.Equal(t, []string{"employer@test.com"}, env.mail.notices)
	})

	t.Run("duplicate application", func(t *testing.T) {
		env := setupAppTestEnv(t)

		_, err := env.svc.Apply(ctx, ApplyInput{SeekerID: env.seeker.ID, JobPostingID: env.job.ID})
		require.NoError(t, err)

		_, err = env.svc.Apply(ctx, ApplyInput{SeekerID: env.seeker.ID, JobPostingID: env.job.ID})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "DUPLICATE_APPLICATION", appErr.Code)
	})

	t.Run("unlisted posting looks missing", func(t *testing.T) {
		env := setupAppTestEnv(t)
		require.NoError(t, env.db.Model(env.job).Update("is_active", false).Error)

		_, err := env.svc.Apply(ctx, ApplyInput{SeekerID: env.seeker.ID, JobPostingID: env.job.ID})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("deadline passed", func(t *testing.T) {
		env := setupAppTestEnv(t)
		past := time.Now().UTC().Add(-24 * time.Hour)
		require.NoError(t, env.db.Model(env.job).Update("application_deadline", past).Error)

		_, err := env.svc.Apply(ctx, ApplyInput{SeekerID: env.seeker.ID, JobPostingID: env.job.ID})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("bad resume extension leaves nothing behind", func(t *testing.T) {
		env := setupAppTestEnv(t)

		_, err := env.svc.Apply(ctx, ApplyInput{
			SeekerID:       env.seeker.ID,
			JobPostingID:   env.job.ID,
			Resume:         strings.NewReader("#!/bin/sh"),
			ResumeFileName: "resume.exe",
			ResumeSize:     9,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UPLOAD_REJECTED", appErr.Code)

		var count int64
		env.db.Model(&models.JobApplication{}).Count(&count)
		assert.Zero(t, count)
		assert.Empty(t, env.mail.confirmations)
	})

	t.Run("resume stored and downloadable", func(t *testing.T) {
		env := setupAppTestEnv(t)

		app, err := env.svc.Apply(ctx, ApplyInput{
			SeekerID:       env.seeker.ID,
			JobPostingID:   env.job.ID,
			Resume:         strings.NewReader("%PDF-1.4 fake"),
			ResumeFileName: "resume.pdf",
			ResumeSize:     13,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, app.ResumePath)

		rc, name, err := env.svc.OpenResume(ctx, app.ID, env.employer.ID)
		require.NoError(t, err)
		defer rc.Close()
		assert.Equal(t, app.ResumePath, name)
	})
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	apply := func(t *testing.T, env *appTestEnv) *models.JobApplication {
		t.Helper()
		app, err := env.svc.Apply(ctx, ApplyInput{SeekerID: env.seeker.ID, JobPostingID: env.job.ID})
		require.NoError(t, err)
		env.mail.confirmations = nil
		env.mail.notices = nil
		return app
	}

	t.Run("rejection emails the seeker once", func(t *testing.T) {
		env := setupAppTestEnv(t)
		app := apply(t, env)

		updated, err := env.svc.UpdateStatus(ctx, UpdateApplicationStatusInput{
			ActorID:       env.employer.ID,
			ApplicationID: app.ID,
			Status:        models.ApplicationStatusRejected,
			Notes:         "not a fit",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusRejected, updated.Status)
		assert.NotNil(t, updated.ReviewedDate)
		assert.Equal(t, []string{"seeker@test.com"}, env.mail.rejections)

		// Same-status write updates notes but sends nothing.
		_, err = env.svc.UpdateStatus(ctx, UpdateApplicationStatusInput{
			ActorID:       env.employer.ID,
			ApplicationID: app.ID,
			Status:        models.ApplicationStatusRejected,
			Notes:         "still not a fit",
		})
		require.NoError(t, err)
		assert.Len(t, env.mail.rejections, 1)
	})

	t.Run("reviewed does not email", func(t *testing.T) {
		env := setupAppTestEnv(t)
		app := apply(t, env)

		_, err := env.svc.UpdateStatus(ctx, UpdateApplicationStatusInput{
			ActorID:       env.employer.ID,
			ApplicationID: app.ID,
			Status:        models.ApplicationStatusReviewed,
		})
		require.NoError(t, err)
		assert.Empty(t, env.mail.rejections)
		assert.Empty(t, env.mail.shortlists)
	})

	t.Run("hired is terminal", func(t *testing.T) {
		env := setupAppTestEnv(t)
		app := apply(t, env)

		_, err := env.svc.UpdateStatus(ctx, UpdateApplicationStatusInput{
			ActorID: env.employer.ID, ApplicationID: app.ID, Status: models.ApplicationStatusHired,
		})
		require.NoError(t, err)

		_, err = env.svc.UpdateStatus(ctx, UpdateApplicationStatusInput{
			ActorID: env.employer.ID, ApplicationID: app.ID, Status: models.ApplicationStatusReviewed,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_TRANSITION", appErr.Code)
	})

	t.Run("foreign employer sees not found", func(t *testing.T) {
		env := setupAppTestEnv(t)
		app := apply(t, env)
		other := createTestUser(t, env.db, "other@test.com", models.RoleEmployer)

		_, err := env.svc.UpdateStatus(ctx, UpdateApplicationStatusInput{
			ActorID: other.ID, ApplicationID: app.ID, Status: models.ApplicationStatusReviewed,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("admin may review for any posting", func(t *testing.T) {
		env := setupAppTestEnv(t)
		app := apply(t, env)

		updated, err := env.svc.UpdateStatus(ctx, UpdateApplicationStatusInput{
			ActorID: env.admin.ID, ApplicationID: app.ID, Status: models.ApplicationStatusShortlisted,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusShortlisted, updated.Status)
		assert.Equal(t, []string{"seeker@test.com"}, env.mail.shortlists)
	})
}

func TestApplicationService_BulkUpdateStatus(t *testing.T) {
	ctx := context.Background()

	seedApplication := func(t *testing.T, env *appTestEnv, email string, status models.ApplicationStatus) *models.JobApplication {
		t.Helper()
		seeker := createTestUser(t, env.db, email, models.RoleJobSeeker)
		app := &models.JobApplication{
			JobPostingID: env.job.ID,
			JobSeekerID:  seeker.ID,
			Status:       status,
			AppliedDate:  time.Now().UTC(),
		}
		require.NoError(t, env.db.Create(app).Error)
		return app
	}

	t.Run("statuses persist even when a mailbox is down", func(t *testing.T) {
		env := setupAppTestEnv(t)
		a := seedApplication(t, env, "a@test.com", models.ApplicationStatusPending)
		b := seedApplication(t, env, "b@test.com", models.ApplicationStatusReviewed)
		c := seedApplication(t, env, "c@test.com", models.ApplicationStatusPending)
		env.mail.failFor["b@test.com"] = true

		result, err := env.svc.BulkUpdateStatus(ctx, env.admin.ID,
			[]uint{a.ID, b.ID, c.ID}, models.ApplicationStatusRejected)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 3, result.Updated)
		assert.Equal(t, 2, result.EmailsSent)
		assert.Empty(t, result.Skipped)

		// The failed send did not roll anything back.
		var got models.JobApplication
		require.NoError(t, env.db.First(&got, b.ID).Error)
		assert.Equal(t, models.ApplicationStatusRejected, got.Status)
	})

	t.Run("terminal and missing rows are skipped", func(t *testing.T) {
		env := setupAppTestEnv(t)
		hired := seedApplication(t, env, "h@test.com", models.ApplicationStatusHired)
		ok := seedApplication(t, env, "ok@test.com", models.ApplicationStatusPending)

		result, err := env.svc.BulkUpdateStatus(ctx, env.admin.ID,
			[]uint{hired.ID, ok.ID, 99999}, models.ApplicationStatusShortlisted)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 1, result.Updated)
		assert.ElementsMatch(t, []uint{hired.ID, 99999}, result.Skipped)
	})

	t.Run("employers are refused", func(t *testing.T) {
		env := setupAppTestEnv(t)
		app := seedApplication(t, env, "mine@test.com", models.ApplicationStatusPending)

		_, err := env.svc.BulkUpdateStatus(ctx, env.employer.ID,
			[]uint{app.ID}, models.ApplicationStatusRejected)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)

		var got models.JobApplication
		require.NoError(t, env.db.First(&got, app.ID).Error)
		assert.Equal(t, models.ApplicationStatusPending, got.Status)
	})

	t.Run("unsupported bulk status", func(t *testing.T) {
		env := setupAppTestEnv(t)
		app := seedApplication(t, env, "x@test.com", models.ApplicationStatusPending)

		_, err := env.svc.BulkUpdateStatus(ctx, env.admin.ID,
			[]uint{app.ID}, models.ApplicationStatusHired)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}
