package service

import (
	"context"
	"testing"
	"time"

	"hirehub/internal/database"
	"hirehub/internal/models"
	"hirehub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func adminChecker(db *gorm.DB) func(ctx context.Context, userID uint) (bool, error) {
	return func(ctx context.Context, userID uint) (bool, error) {
		var user models.User
		if err := db.WithContext(ctx).Select("role").First(&user, userID).Error; err != nil {
			return false, err
		}
		return user.Role == models.RoleAdmin, nil
	}
}

func newTestJobService(t *testing.T, db *gorm.DB) *JobService {
	t.Helper()
	return NewJobService(
		repository.NewJobRepository(db),
		repository.NewUserRepository(db),
		adminChecker(db),
	)
}

func validSubmitInput(employerID uint) SubmitJobInput {
	return SubmitJobInput{
		EmployerID:      employerID,
		Title:           "Backend Engineer",
		Company:         "Acme Corp",
		Location:        "Remote",
		Description:     "Build APIs",
		JobType:         "Full-time",
		ExperienceLevel: "Mid",
		Requirements:    "Go, SQL",
	}
}

func TestJobService_Submit(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestJobService(t, db)
	employer := createTestUser(t, db, "employer@test.com", models.RoleEmployer)
	ctx := context.Background()

	t.Run("starts pending regardless of input", func(t *testing.T) {
		job, err := svc.Submit(ctx, validSubmitInput(employer.ID))
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusPending, job.Status)
		assert.True(t, job.IsActive)
		assert.Equal(t, employer.ID, job.EmployerID)
		assert.False(t, job.PostedDate.IsZero())
	})

	t.Run("missing required field", func(t *testing.T) {
		in := validSubmitInput(employer.ID)
		in.Title = "  "
		_, err := svc.Submit(ctx, in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("salary range inverted", func(t *testing.T) {
		in := validSubmitInput(employer.ID)
		lo, hi := 90000.0, 60000.0
		in.SalaryMin, in.SalaryMax = &lo, &hi
		_, err := svc.Submit(ctx, in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestJobService_ApproveReject(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestJobService(t, db)
	employer := createTestUser(t, db, "employer@test.com", models.RoleEmployer)
	admin := createTestUser(t, db, "admin@test.com", models.RoleAdmin)
	ctx := context.Background()

	t.Run("approve stamps reviewer and time", func(t *testing.T) {
		job, err := svc.Submit(ctx, validSubmitInput(employer.ID))
		require.NoError(t, err)

		approved, err := svc.Approve(ctx, job.ID, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusApproved, approved.Status)
		assert.Equal(t, admin.Email, approved.ApprovedBy)
		require.NotNil(t, approved.ApprovedAt)
		assert.WithinDuration(t, time.Now().UTC(), *approved.ApprovedAt, time.Minute)
	})

	t.Run("re-approval refreshes the stamp", func(t *testing.T) {
		job, err := svc.Submit(ctx, validSubmitInput(employer.ID))
		require.NoError(t, err)

		first, err := svc.Approve(ctx, job.ID, admin.ID)
		require.NoError(t, err)
		firstAt := *first.ApprovedAt

		second, err := svc.Approve(ctx, job.ID, admin.ID)
		require.NoError(t, err)
		assert.False(t, second.ApprovedAt.Before(firstAt))
	})

	t.Run("reject keeps a prior approval stamp", func(t *testing.T) {
		job, err := svc.Submit(ctx, validSubmitInput(employer.ID))
		require.NoError(t, err)
		_, err = svc.Approve(ctx, job.ID, admin.ID)
		require.NoError(t, err)

		rejected, err := svc.Reject(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusRejected, rejected.Status)
		assert.NotNil(t, rejected.ApprovedAt)
		assert.Equal(t, admin.Email, rejected.ApprovedBy)
	})

	t.Run("rejected posting can be approved again", func(t *testing.T) {
		job, err := svc.Submit(ctx, validSubmitInput(employer.ID))
		require.NoError(t, err)
		_, err = svc.Reject(ctx, job.ID)
		require.NoError(t, err)

		approved, err := svc.Approve(ctx, job.ID, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusApproved, approved.Status)
	})

	t.Run("closed posting refuses rejection", func(t *testing.T) {
		job, err := svc.Submit(ctx, validSubmitInput(employer.ID))
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.JobPosting{}).Where("id = ?", job.ID).
			Update("status", models.JobStatusClosed).Error)

		_, err = svc.Reject(ctx, job.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_TRANSITION", appErr.Code)
	})
}

func TestJobService_Update(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestJobService(t, db)
	owner := createTestUser(t, db, "owner@test.com", models.RoleEmployer)
	other := createTestUser(t, db, "other@test.com", models.RoleEmployer)
	admin := createTestUser(t, db, "admin@test.com", models.RoleAdmin)
	ctx := context.Background()

	job, err := svc.Submit(ctx, validSubmitInput(owner.ID))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, job.ID, admin.ID)
	require.NoError(t, err)

	updateInput := func(actorID uint) UpdateJobInput {
		return UpdateJobInput{
			ActorID:         actorID,
			JobID:           job.ID,
			Title:           "Senior Backend Engineer",
			Company:         "Acme Corp",
			Location:        "Remote",
			Description:     "Build more APIs",
			JobType:         "Full-time",
			ExperienceLevel: "Senior",
			Requirements:    "Go, SQL, Redis",
		}
	}

	t.Run("non-owner sees not found", func(t *testing.T) {
		_, err := svc.Update(ctx, updateInput(other.ID))
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("owner edit keeps status", func(t *testing.T) {
		updated, err := svc.Update(ctx, updateInput(owner.ID))
		require.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer", updated.Title)
		assert.Equal(t, models.JobStatusApproved, updated.Status)
	})

	t.Run("admin may edit any posting", func(t *testing.T) {
		in := updateInput(admin.ID)
		in.Title = "Staff Backend Engineer"
		updated, err := svc.Update(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "Staff Backend Engineer", updated.Title)
	})
}

func TestJobService_ToggleActive(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestJobService(t, db)
	owner := createTestUser(t, db, "owner@test.com", models.RoleEmployer)
	other := createTestUser(t, db, "other@test.com", models.RoleEmployer)
	admin := createTestUser(t, db, "admin@test.com", models.RoleAdmin)
	ctx := context.Background()

	job, err := svc.Submit(ctx, validSubmitInput(owner.ID))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, job.ID, admin.ID)
	require.NoError(t, err)

	t.Run("owner cannot toggle", func(t *testing.T) {
		_, err := svc.ToggleActive(ctx, job.ID, owner.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)

		_, err = svc.ToggleActive(ctx, job.ID, other.ID)
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("admin toggle hides and restores without re-review", func(t *testing.T) {
		hidden, err := svc.ToggleActive(ctx, job.ID, admin.ID)
		require.NoError(t, err)
		assert.False(t, hidden.IsActive)
		assert.Equal(t, models.JobStatusApproved, hidden.Status)

		restored, err := svc.ToggleActive(ctx, job.ID, admin.ID)
		require.NoError(t, err)
		assert.True(t, restored.IsActive)
		assert.Equal(t, models.JobStatusApproved, restored.Status)
	})
}

func TestJobService_GetVisibility(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestJobService(t, db)
	owner := createTestUser(t, db, "owner@test.com", models.RoleEmployer)
	other := createTestUser(t, db, "other@test.com", models.RoleEmployer)
	admin := createTestUser(t, db, "admin@test.com", models.RoleAdmin)
	ctx := context.Background()

	pending, err := svc.Submit(ctx, validSubmitInput(owner.ID))
	require.NoError(t, err)

	t.Run("pending is hidden from the public", func(t *testing.T) {
		_, err := svc.Get(ctx, pending.ID, 0)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("pending is hidden from other employers", func(t *testing.T) {
		_, err := svc.Get(ctx, pending.ID, other.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("owner and admin see pending", func(t *testing.T) {
		got, err := svc.Get(ctx, pending.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, pending.ID, got.ID)

		got, err = svc.Get(ctx, pending.ID, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, pending.ID, got.ID)
	})

	t.Run("approved active is public", func(t *testing.T) {
		_, err := svc.Approve(ctx, pending.ID, admin.ID)
		require.NoError(t, err)

		got, err := svc.Get(ctx, pending.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, pending.ID, got.ID)
	})
}

func TestJobService_Delete(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestJobService(t, db)
	owner := createTestUser(t, db, "owner@test.com", models.RoleEmployer)
	seeker := createTestUser(t, db, "seeker@test.com", models.RoleJobSeeker)
	admin := createTestUser(t, db, "admin@test.com", models.RoleAdmin)
	ctx := context.Background()

	job, err := svc.Submit(ctx, validSubmitInput(owner.ID))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, job.ID, admin.ID)
	require.NoError(t, err)

	app := models.JobApplication{
		JobPostingID: job.ID,
		JobSeekerID:  seeker.ID,
		Status:       models.ApplicationStatusPending,
		AppliedDate:  time.Now().UTC(),
	}
	require.NoError(t, db.Create(&app).Error)

	require.NoError(t, svc.Delete(ctx, job.ID, owner.ID))

	var jobCount, appCount int64
	db.Model(&models.JobPosting{}).Where("id = ?", job.ID).Count(&jobCount)
	db.Model(&models.JobApplication{}).Where("job_posting_id = ?", job.ID).Count(&appCount)
	assert.Zero(t, jobCount)
	assert.Zero(t, appCount)
}
