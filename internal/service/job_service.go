package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"hirehub/internal/cache"
	"hirehub/internal/middleware"
	"hirehub/internal/models"
	"hirehub/internal/observability"
	"hirehub/internal/repository"

	"gorm.io/gorm"
)

// JobService owns the posting lifecycle: submission, the approval workflow,
// visibility, edits, and removal.
type JobService struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type SubmitJobInput struct {
	EmployerID          uint
	Title               string
	Company             string
	Location            string
	Description         string
	JobType             string
	ExperienceLevel     string
	SalaryMin           *float64
	SalaryMax           *float64
	SalaryCurrency      string
	Requirements        string
	Benefits            string
	ApplicationDeadline *time.Time
	CategoryID          *uint
}

type UpdateJobInput struct {
	ActorID             uint
	JobID               uint
	Title               string
	Company             string
	Location            string
	Description         string
	JobType             string
	ExperienceLevel     string
	SalaryMin           *float64
	SalaryMax           *float64
	SalaryCurrency      string
	Requirements        string
	Benefits            string
	ApplicationDeadline *time.Time
	CategoryID          *uint
}

func NewJobService(
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		isAdmin:  isAdmin,
	}
}

func validateJobFields(title, company, location, description, jobType, experienceLevel, requirements string) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", title},
		{"company", company},
		{"location", location},
		{"description", description},
		{"job_type", jobType},
		{"experience_level", experienceLevel},
		{"requirements", requirements},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return models.NewValidationError(f.name + " is required")
		}
	}
	if len(title) > 200 {
		return models.NewValidationError("title must not exceed 200 characters")
	}
	return nil
}

// Submit creates a new posting awaiting review. Whatever the client sent for
// status, visibility, posted date, or owner is discarded here.
func (s *JobService) Submit(ctx context.Context, in SubmitJobInput) (*models.JobPosting, error) {
	if err := validateJobFields(in.Title, in.Company, in.Location, in.Description, in.JobType, in.ExperienceLevel, in.Requirements); err != nil {
		return nil, err
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return nil, models.NewValidationError("salary_min must not exceed salary_max")
	}

	currency := in.SalaryCurrency
	if currency == "" {
		currency = "USD"
	}

	job := &models.JobPosting{
		Title:               in.Title,
		Company:             in.Company,
		Location:            in.Location,
		Description:         in.Description,
		JobType:             in.JobType,
		ExperienceLevel:     in.ExperienceLevel,
		SalaryMin:           in.SalaryMin,
		SalaryMax:           in.SalaryMax,
		SalaryCurrency:      currency,
		Requirements:        in.Requirements,
		Benefits:            in.Benefits,
		ApplicationDeadline: in.ApplicationDeadline,
		CategoryID:          in.CategoryID,
		EmployerID:          in.EmployerID,
		Status:              models.JobStatusPending,
		IsActive:            true,
		PostedDate:          time.Now().UTC(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.JobStatusTransitions.WithLabelValues(string(models.JobStatusPending)).Inc()
	middleware.Logger.InfoContext(ctx, "job posting submitted",
		slog.Uint64("job_id", uint64(job.ID)),
		slog.Uint64("employer_id", uint64(in.EmployerID)),
	)
	return job, nil
}

// Approve moves a posting to Approved and stamps who approved it and when.
// Re-approving an approved posting is permitted and refreshes the stamp.
func (s *JobService) Approve(ctx context.Context, jobID, adminID uint) (*models.JobPosting, error) {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !job.Status.CanTransition(models.JobStatusApproved) {
		return nil, models.NewInvalidTransitionError(string(job.Status), string(models.JobStatusApproved))
	}

	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	now := time.Now().UTC()
	job.Status = models.JobStatusApproved
	job.ApprovedAt = &now
	job.ApprovedBy = admin.Email

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateJob(ctx, job.ID)
	observability.JobStatusTransitions.WithLabelValues(string(models.JobStatusApproved)).Inc()
	middleware.Logger.InfoContext(ctx, "job posting approved",
		slog.Uint64("job_id", uint64(job.ID)),
		slog.String("approved_by", admin.Email),
	)
	return job, nil
}

// Reject marks a posting Rejected. The approval stamp, if any, is left
// untouched as a record of the prior decision.
func (s *JobService) Reject(ctx context.Context, jobID uint) (*models.JobPosting, error) {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !job.Status.CanTransition(models.JobStatusRejected) {
		return nil, models.NewInvalidTransitionError(string(job.Status), string(models.JobStatusRejected))
	}

	job.Status = models.JobStatusRejected
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateJob(ctx, job.ID)
	observability.JobStatusTransitions.WithLabelValues(string(models.JobStatusRejected)).Inc()
	return job, nil
}

// ToggleActive flips the visibility switch. Administrator only; Status is
// never touched, so a hidden approved posting comes back without re-review.
func (s *JobService) ToggleActive(ctx context.Context, jobID, actorID uint) (*models.JobPosting, error) {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	admin, err := s.isAdmin(ctx, actorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !admin {
		return nil, models.NewUnauthorizedError("only administrators can change posting visibility")
	}

	job.IsActive = !job.IsActive
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateJob(ctx, job.ID)
	return job, nil
}

// Update edits descriptive fields of the caller's own posting. Status and
// visibility are not editable here; an edit never sends the posting back to
// review.
func (s *JobService) Update(ctx context.Context, in UpdateJobInput) (*models.JobPosting, error) {
	job, err := s.getJob(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	admin, err := s.isAdmin(ctx, in.ActorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !canModify(in.ActorID, job.EmployerID, admin) {
		// Do not reveal that the posting exists to non-owners.
		return nil, models.NewNotFoundError("job posting", in.JobID)
	}

	if err := validateJobFields(in.Title, in.Company, in.Location, in.Description, in.JobType, in.ExperienceLevel, in.Requirements); err != nil {
		return nil, err
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return nil, models.NewValidationError("salary_min must not exceed salary_max")
	}

	job.Title = in.Title
	job.Company = in.Company
	job.Location = in.Location
	job.Description = in.Description
	job.JobType = in.JobType
	job.ExperienceLevel = in.ExperienceLevel
	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
	if in.SalaryCurrency != "" {
		job.SalaryCurrency = in.SalaryCurrency
	}
	job.Requirements = in.Requirements
	job.Benefits = in.Benefits
	job.ApplicationDeadline = in.ApplicationDeadline
	job.CategoryID = in.CategoryID

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateJob(ctx, job.ID)
	return job, nil
}

// Delete removes the caller's own posting together with its applications.
func (s *JobService) Delete(ctx context.Context, jobID, actorID uint) error {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return err
	}

	admin, err := s.isAdmin(ctx, actorID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !canModify(actorID, job.EmployerID, admin) {
		return models.NewNotFoundError("job posting", jobID)
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateJob(ctx, jobID)
	middleware.Logger.InfoContext(ctx, "job posting deleted",
		slog.Uint64("job_id", uint64(jobID)),
		slog.Uint64("actor_id", uint64(actorID)),
	)
	return nil
}

// Get returns one posting for the public detail view. Postings that are not
// listable are only visible to their owner and admins.
func (s *JobService) Get(ctx context.Context, jobID, viewerID uint) (*models.JobPosting, error) {
	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Listable() {
		return job, nil
	}

	admin := false
	if viewerID != 0 {
		admin, err = s.isAdmin(ctx, viewerID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	if !canModify(viewerID, job.EmployerID, admin) {
		return nil, models.NewNotFoundError("job posting", jobID)
	}
	return job, nil
}

// ListApproved returns the public listing page, cache-aside through Redis.
func (s *JobService) ListApproved(ctx context.Context, limit, offset int) ([]*models.JobPosting, error) {
	limit, offset = clampPage(limit, offset)

	var jobs []*models.JobPosting
	// Only the first page is cached; deeper pages go straight to the DB.
	if offset == 0 {
		err := cache.CacheAside(ctx, cache.JobListingsKey, &jobs, cache.JobListingsTTL, func() error {
			var fetchErr error
			jobs, fetchErr = s.jobRepo.ListApproved(ctx, limit, 0)
			return fetchErr
		})
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		return jobs, nil
	}

	jobs, err := s.jobRepo.ListApproved(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

// ListMine returns the employer's postings with application counts.
func (s *JobService) ListMine(ctx context.Context, employerID uint) ([]*models.JobPosting, error) {
	jobs, err := s.jobRepo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

// ListAll returns every posting, optionally filtered by status. Admin only;
// the handler gates the route.
func (s *JobService) ListAll(ctx context.Context, status models.JobStatus, limit, offset int) ([]*models.JobPosting, error) {
	if status != "" && !status.Valid() {
		return nil, models.NewValidationError("unknown status filter")
	}
	limit, offset = clampPage(limit, offset)
	jobs, err := s.jobRepo.ListAll(ctx, status, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

// Search runs the public filtered search over approved active postings.
func (s *JobService) Search(ctx context.Context, f repository.JobSearchFilters, limit, offset int) ([]*models.JobPosting, error) {
	limit, offset = clampPage(limit, offset)
	jobs, err := s.jobRepo.Search(ctx, f, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

func (s *JobService) getJob(ctx context.Context, jobID uint) (*models.JobPosting, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("job posting", jobID)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return job, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
