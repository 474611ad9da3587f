package repository

import (
	"context"

	"hirehub/internal/models"

	"gorm.io/gorm"
)

// JobSearchFilters narrows public job searches. Zero values mean "no filter".
type JobSearchFilters struct {
	Keyword         string
	Location        string
	JobType         string
	ExperienceLevel string
	Company         string
	CategoryID      uint
	SalaryMin       float64
	SalaryMax       float64
}

// MonthlyCount is one month's worth of rows for the admin reports.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// JobRepository defines the interface for job posting data operations
type JobRepository interface {
	Create(ctx context.Context, job *models.JobPosting) error
	GetByID(ctx context.Context, id uint) (*models.JobPosting, error)
	Update(ctx context.Context, job *models.JobPosting) error
	Delete(ctx context.Context, id uint) error
	ListApproved(ctx context.Context, limit, offset int) ([]*models.JobPosting, error)
	ListByEmployer(ctx context.Context, employerID uint) ([]*models.JobPosting, error)
	ListAll(ctx context.Context, status models.JobStatus, limit, offset int) ([]*models.JobPosting, error)
	Search(ctx context.Context, f JobSearchFilters, limit, offset int) ([]*models.JobPosting, error)
	CountByStatus(ctx context.Context, status models.JobStatus) (int64, error)
	Recent(ctx context.Context, limit int) ([]*models.JobPosting, error)
	CountsByMonth(ctx context.Context, months int) ([]MonthlyCount, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job posting repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.JobPosting) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.JobPosting, error) {
	var job models.JobPosting
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Preload("Category").
		First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *models.JobPosting) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// Delete removes the posting and its applications in one transaction.
func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_posting_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.JobPosting{}, id).Error
	})
}

func (r *jobRepository) ListApproved(ctx context.Context, limit, offset int) ([]*models.JobPosting, error) {
	var jobs []*models.JobPosting
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND status = ?", true, models.JobStatusApproved).
		Preload("Category").
		Order("posted_date DESC").
		Limit(limit).Offset(offset).
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListByEmployer(ctx context.Context, employerID uint) ([]*models.JobPosting, error) {
	var jobs []*models.JobPosting
	err := r.db.WithContext(ctx).
		Select("job_postings.*, (SELECT COUNT(*) FROM job_applications a WHERE a.job_posting_id = job_postings.id) AS application_count").
		Where("employer_id = ?", employerID).
		Preload("Category").
		Order("posted_date DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListAll(ctx context.Context, status models.JobStatus, limit, offset int) ([]*models.JobPosting, error) {
	var jobs []*models.JobPosting
	q := r.db.WithContext(ctx).
		Preload("Employer").
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) Search(ctx context.Context, f JobSearchFilters, limit, offset int) ([]*models.JobPosting, error) {
	var jobs []*models.JobPosting
	q := r.db.WithContext(ctx).
		Where("is_active = ? AND status = ?", true, models.JobStatusApproved)

	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR requirements LIKE ?", kw, kw, kw)
	}
	if f.Location != "" {
		q = q.Where("location LIKE ?", "%"+f.Location+"%")
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}
	if f.ExperienceLevel != "" {
		q = q.Where("experience_level = ?", f.ExperienceLevel)
	}
	if f.Company != "" {
		q = q.Where("company LIKE ?", "%"+f.Company+"%")
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.SalaryMin > 0 {
		q = q.Where("salary_max >= ? OR salary_max IS NULL", f.SalaryMin)
	}
	if f.SalaryMax > 0 {
		q = q.Where("salary_min <= ? OR salary_min IS NULL", f.SalaryMax)
	}

	err := q.Preload("Category").
		Order("posted_date DESC").
		Limit(limit).Offset(offset).
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) CountByStatus(ctx context.Context, status models.JobStatus) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&models.JobPosting{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *jobRepository) Recent(ctx context.Context, limit int) ([]*models.JobPosting, error) {
	var jobs []*models.JobPosting
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

// CountsByMonth groups postings by creation month, newest first.
func (r *jobRepository) CountsByMonth(ctx context.Context, months int) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	err := r.db.WithContext(ctx).Model(&models.JobPosting{}).
		Select(monthExpr(r.db) + " AS month, COUNT(*) AS count").
		Group("month").
		Order("month DESC").
		Limit(months).
		Scan(&rows).Error
	return rows, err
}
