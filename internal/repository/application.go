package repository

import (
	"context"
	"errors"

	"hirehub/internal/models"

	"gorm.io/gorm"
)

// ApplicationRepository defines the interface for job application data operations
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.JobApplication) error
	GetByID(ctx context.Context, id uint) (*models.JobApplication, error)
	Update(ctx context.Context, app *models.JobApplication) error
	Exists(ctx context.Context, postingID, seekerID uint) (bool, error)
	ListBySeeker(ctx context.Context, seekerID uint) ([]*models.JobApplication, error)
	ListByPosting(ctx context.Context, postingID uint) ([]*models.JobApplication, error)
	ListByEmployer(ctx context.Context, employerID uint) ([]*models.JobApplication, error)
	ListAll(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]*models.JobApplication, error)
	Count(ctx context.Context, status models.ApplicationStatus) (int64, error)
	Recent(ctx context.Context, limit int) ([]*models.JobApplication, error)
	CountsByMonth(ctx context.Context, months int) ([]MonthlyCount, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new job application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.JobApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("JobPosting").
		Preload("JobPosting.Employer").
		Preload("JobSeeker").
		First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Update(ctx context.Context, app *models.JobApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// Exists reports whether the seeker already applied to the posting. This is
// a plain read, not a lock; the caller's check-then-insert has a window.
func (r *applicationRepository) Exists(ctx context.Context, postingID, seekerID uint) (bool, error) {
	var app models.JobApplication
	err := r.db.WithContext(ctx).
		Where("job_posting_id = ? AND job_seeker_id = ?", postingID, seekerID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *applicationRepository) ListBySeeker(ctx context.Context, seekerID uint) ([]*models.JobApplication, error) {
	var apps []*models.JobApplication
	err := r.db.WithContext(ctx).
		Where("job_seeker_id = ?", seekerID).
		Preload("JobPosting").
		Order("applied_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListByPosting(ctx context.Context, postingID uint) ([]*models.JobApplication, error) {
	var apps []*models.JobApplication
	err := r.db.WithContext(ctx).
		Where("job_posting_id = ?", postingID).
		Preload("JobSeeker").
		Order("applied_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListByEmployer(ctx context.Context, employerID uint) ([]*models.JobApplication, error) {
	var apps []*models.JobApplication
	err := r.db.WithContext(ctx).
		Joins("JOIN job_postings ON job_postings.id = job_applications.job_posting_id").
		Where("job_postings.employer_id = ?", employerID).
		Preload("JobPosting").
		Preload("JobSeeker").
		Order("job_applications.applied_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListAll(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]*models.JobApplication, error) {
	var apps []*models.JobApplication
	q := r.db.WithContext(ctx).
		Preload("JobPosting").
		Preload("JobSeeker").
		Order("applied_date DESC").
		Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) Count(ctx context.Context, status models.ApplicationStatus) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&models.JobApplication{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *applicationRepository) Recent(ctx context.Context, limit int) ([]*models.JobApplication, error) {
	var apps []*models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("JobPosting").
		Preload("JobSeeker").
		Order("created_at DESC").
		Limit(limit).
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) CountsByMonth(ctx context.Context, months int) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	err := r.db.WithContext(ctx).Model(&models.JobApplication{}).
		Select(monthExpr(r.db) + " AS month, COUNT(*) AS count").
		Group("month").
		Order("month DESC").
		Limit(months).
		Scan(&rows).Error
	return rows, err
}
