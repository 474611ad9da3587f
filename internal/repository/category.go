package repository

import (
	"context"

	"hirehub/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for job category data operations
type CategoryRepository interface {
	Create(ctx context.Context, cat *models.JobCategory) error
	GetByID(ctx context.Context, id uint) (*models.JobCategory, error)
	GetByName(ctx context.Context, name string) (*models.JobCategory, error)
	Update(ctx context.Context, cat *models.JobCategory) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]*models.JobCategory, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new job category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, cat *models.JobCategory) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.JobCategory, error) {
	var cat models.JobCategory
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*models.JobCategory, error) {
	var cat models.JobCategory
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepository) Update(ctx context.Context, cat *models.JobCategory) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

// Delete removes the category and detaches it from any postings.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.JobPosting{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.JobCategory{}, id).Error
	})
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]*models.JobCategory, error) {
	var cats []*models.JobCategory
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&cats).Error
	return cats, err
}
