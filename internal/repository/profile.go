package repository

import (
	"context"

	"hirehub/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for user profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, userID uint) (*models.UserProfile, error)
	Update(ctx context.Context, profile *models.UserProfile) error

	AddSkill(ctx context.Context, skill *models.UserSkill) error
	DeleteSkill(ctx context.Context, profileID, skillID uint) error
	AddEducation(ctx context.Context, edu *models.UserEducation) error
	DeleteEducation(ctx context.Context, profileID, eduID uint) error
	AddExperience(ctx context.Context, exp *models.UserExperience) error
	DeleteExperience(ctx context.Context, profileID, expID uint) error

	SearchCandidates(ctx context.Context, keyword, location, skill string, limit, offset int) ([]*models.UserProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new user profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Skills").
		Preload("Education").
		Preload("Experience").
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) AddSkill(ctx context.Context, skill *models.UserSkill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *profileRepository) DeleteSkill(ctx context.Context, profileID, skillID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.UserSkill{}, skillID).Error
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *models.UserEducation) error {
	return r.db.WithContext(ctx).Create(edu).Error
}

func (r *profileRepository) DeleteEducation(ctx context.Context, profileID, eduID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.UserEducation{}, eduID).Error
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.UserExperience) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

func (r *profileRepository) DeleteExperience(ctx context.Context, profileID, expID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.UserExperience{}, expID).Error
}

// SearchCandidates looks through job seeker profiles by free text, location,
// and skill name. Only profiles of active job seeker accounts are returned.
func (r *profileRepository) SearchCandidates(ctx context.Context, keyword, location, skill string, limit, offset int) ([]*models.UserProfile, error) {
	var profiles []*models.UserProfile
	q := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = user_profiles.user_id").
		Where("users.role = ? AND users.is_active = ?", models.RoleJobSeeker, true)

	if keyword != "" {
		kw := "%" + keyword + "%"
		q = q.Where("user_profiles.bio LIKE ? OR user_profiles.current_position LIKE ? OR user_profiles.current_company LIKE ?", kw, kw, kw)
	}
	if location != "" {
		q = q.Where("user_profiles.location LIKE ?", "%"+location+"%")
	}
	if skill != "" {
		q = q.Where("EXISTS (SELECT 1 FROM user_skills s WHERE s.profile_id = user_profiles.id AND s.name LIKE ?)", "%"+skill+"%")
	}

	err := q.Preload("User").
		Preload("Skills").
		Order("user_profiles.updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&profiles).Error
	return profiles, err
}
