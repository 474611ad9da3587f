package service

import (
	"context"
	"errors"

	"hirehub/internal/cache"
	"hirehub/internal/models"
	"hirehub/internal/repository"

	"gorm.io/gorm"
)

// DashboardStats aggregates the admin landing-page numbers.
type DashboardStats struct {
	TotalUsers          int64                    `json:"total_users"`
	TotalEmployers      int64                    `json:"total_employers"`
	TotalJobSeekers     int64                    `json:"total_job_seekers"`
	TotalPostings       int64                    `json:"total_postings"`
	PendingPostings     int64                    `json:"pending_postings"`
	ApprovedPostings    int64                    `json:"approved_postings"`
	TotalApplications   int64                    `json:"total_applications"`
	PendingApplications int64                    `json:"pending_applications"`
	RecentPostings      []*models.JobPosting     `json:"recent_postings"`
	RecentApplications  []*models.JobApplication `json:"recent_applications"`
}

// MonthlyReport is the postings/applications-per-month admin report.
type MonthlyReport struct {
	Postings     []repository.MonthlyCount `json:"postings"`
	Applications []repository.MonthlyCount `json:"applications"`
}

// AdminService provides moderation aggregates, user management, and
// category CRUD.
type AdminService struct {
	userRepo repository.UserRepository
	jobRepo  repository.JobRepository
	appRepo  repository.ApplicationRepository
	catRepo  repository.CategoryRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	jobRepo repository.JobRepository,
	appRepo repository.ApplicationRepository,
	catRepo repository.CategoryRepository,
) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		catRepo:  catRepo,
	}
}

// Dashboard gathers the admin landing-page aggregates, cache-aside with a
// short TTL since the numbers move constantly.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	err := cache.CacheAside(ctx, cache.DashboardStatsKey, &stats, cache.DashboardTTL, func() error {
		return s.loadDashboard(ctx, &stats)
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &stats, nil
}

func (s *AdminService) loadDashboard(ctx context.Context, stats *DashboardStats) error {
	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx, ""); err != nil {
		return err
	}
	if stats.TotalEmployers, err = s.userRepo.Count(ctx, models.RoleEmployer); err != nil {
		return err
	}
	if stats.TotalJobSeekers, err = s.userRepo.Count(ctx, models.RoleJobSeeker); err != nil {
		return err
	}
	if stats.TotalPostings, err = s.jobRepo.CountByStatus(ctx, ""); err != nil {
		return err
	}
	if stats.PendingPostings, err = s.jobRepo.CountByStatus(ctx, models.JobStatusPending); err != nil {
		return err
	}
	if stats.ApprovedPostings, err = s.jobRepo.CountByStatus(ctx, models.JobStatusApproved); err != nil {
		return err
	}
	if stats.TotalApplications, err = s.appRepo.Count(ctx, ""); err != nil {
		return err
	}
	if stats.PendingApplications, err = s.appRepo.Count(ctx, models.ApplicationStatusPending); err != nil {
		return err
	}
	if stats.RecentPostings, err = s.jobRepo.Recent(ctx, 5); err != nil {
		return err
	}
	if stats.RecentApplications, err = s.appRepo.Recent(ctx, 5); err != nil {
		return err
	}
	return nil
}

// Reports returns postings and applications grouped by month.
func (s *AdminService) Reports(ctx context.Context, months int) (*MonthlyReport, error) {
	if months <= 0 || months > 36 {
		months = 12
	}
	postings, err := s.jobRepo.CountsByMonth(ctx, months)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	applications, err := s.appRepo.CountsByMonth(ctx, months)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &MonthlyReport{Postings: postings, Applications: applications}, nil
}

// ListUsers pages over accounts, optionally filtered by role.
func (s *AdminService) ListUsers(ctx context.Context, role models.UserRole, limit, offset int) ([]*models.User, error) {
	limit, offset = clampPage(limit, offset)
	users, err := s.userRepo.List(ctx, role, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// ToggleUserActive flips an account's active switch. Deactivated accounts
// cannot log in.
func (s *AdminService) ToggleUserActive(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("user", userID)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.SetActive(ctx, userID, user.IsActive); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return user, nil
}

// CreateCategory adds a job category.
func (s *AdminService) CreateCategory(ctx context.Context, name, description string) (*models.JobCategory, error) {
	if name == "" {
		return nil, models.NewValidationError("category name is required")
	}
	if _, err := s.catRepo.GetByName(ctx, name); err == nil {
		return nil, models.NewConflictError("a category with that name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}
	cat := &models.JobCategory{Name: name, Description: description, IsActive: true}
	if err := s.catRepo.Create(ctx, cat); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateCategories(ctx)
	return cat, nil
}

// UpdateCategory edits a category's name and description.
func (s *AdminService) UpdateCategory(ctx context.Context, id uint, name, description string) (*models.JobCategory, error) {
	cat, err := s.catRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("job category", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if name == "" {
		return nil, models.NewValidationError("category name is required")
	}

	cat.Name = name
	cat.Description = description
	if err := s.catRepo.Update(ctx, cat); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateCategories(ctx)
	return cat, nil
}

// ToggleCategory flips a category's active switch.
func (s *AdminService) ToggleCategory(ctx context.Context, id uint) (*models.JobCategory, error) {
	cat, err := s.catRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("job category", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	cat.IsActive = !cat.IsActive
	if err := s.catRepo.Update(ctx, cat); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateCategories(ctx)
	return cat, nil
}

// DeleteCategory removes a category; its postings are left uncategorized.
func (s *AdminService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.catRepo.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("job category", id)
	} else if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.catRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCategories(ctx)
	return nil
}

// ListCategories returns categories, active-only for the public surface.
func (s *AdminService) ListCategories(ctx context.Context, activeOnly bool) ([]*models.JobCategory, error) {
	var cats []*models.JobCategory
	if activeOnly {
		err := cache.CacheAside(ctx, cache.CategoriesKey, &cats, cache.CategoriesTTL, func() error {
			var fetchErr error
			cats, fetchErr = s.catRepo.List(ctx, true)
			return fetchErr
		})
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		return cats, nil
	}

	cats, err := s.catRepo.List(ctx, false)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return cats, nil
}
