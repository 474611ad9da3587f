package service

import (
	"context"
	"errors"
	"io"

	"hirehub/internal/models"
	"hirehub/internal/observability"
	"hirehub/internal/repository"
	"hirehub/internal/storage"
	"hirehub/internal/validation"

	"gorm.io/gorm"
)

// ProfileService owns the career profile: lazy creation, edits, the profile
// resume, and child collections (skills, education, experience).
type ProfileService struct {
	profileRepo repository.ProfileRepository
	store       storage.ResumeStore
	maxBytes    int64
}

type UpdateProfileInput struct {
	UserID          uint
	Bio             string
	CurrentPosition string
	CurrentCompany  string
	Location        string
	Phone           string
	Website         string
	LinkedIn        string
	GitHub          string
}

func NewProfileService(profileRepo repository.ProfileRepository, store storage.ResumeStore, maxBytes int64) *ProfileService {
	if maxBytes <= 0 {
		maxBytes = validation.MaxResumeBytes
	}
	return &ProfileService{profileRepo: profileRepo, store: store, maxBytes: maxBytes}
}

// Get returns the user's profile, creating an empty one on first access.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = &models.UserProfile{UserID: userID}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, models.NewInternalError(err)
		}
		return profile, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profile, nil
}

// Update edits the profile's own fields. Child collections have their own
// operations.
func (s *ProfileService) Update(ctx context.Context, in UpdateProfileInput) (*models.UserProfile, error) {
	profile, err := s.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	profile.Bio = in.Bio
	profile.CurrentPosition = in.CurrentPosition
	profile.CurrentCompany = in.CurrentCompany
	profile.Location = in.Location
	profile.Phone = in.Phone
	profile.Website = in.Website
	profile.LinkedIn = in.LinkedIn
	profile.GitHub = in.GitHub

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, models.NewInternalError(err)
	}
	return profile, nil
}

// UploadResume validates and stores a resume on the profile, replacing any
// previous one. Validation happens before the old file is touched.
func (s *ProfileService) UploadResume(ctx context.Context, userID uint, fileName string, size int64, r io.Reader) (*models.UserProfile, error) {
	if err := validation.ValidateResumeUpload(fileName, size, s.maxBytes); err != nil {
		observability.ResumeUploadsRejected.WithLabelValues("validation").Inc()
		return nil, models.NewUploadRejectedError(err.Error())
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := s.store.Save(ctx, userID, fileName, r)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	previous := profile.ResumePath
	profile.ResumePath = key
	profile.ResumeFileName = fileName
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		_ = s.store.Remove(ctx, key)
		return nil, models.NewInternalError(err)
	}

	if previous != "" {
		_ = s.store.Remove(ctx, previous)
	}
	return profile, nil
}

// AddSkill appends a skill to the caller's profile.
func (s *ProfileService) AddSkill(ctx context.Context, userID uint, skill models.UserSkill) (*models.UserSkill, error) {
	if skill.Name == "" {
		return nil, models.NewValidationError("skill name is required")
	}
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	skill.ID = 0
	skill.ProfileID = profile.ID
	if err := s.profileRepo.AddSkill(ctx, &skill); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

// RemoveSkill deletes a skill owned by the caller.
func (s *ProfileService) RemoveSkill(ctx context.Context, userID, skillID uint) error {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.profileRepo.DeleteSkill(ctx, profile.ID, skillID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// AddEducation appends an education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, edu models.UserEducation) (*models.UserEducation, error) {
	if edu.Institution == "" {
		return nil, models.NewValidationError("institution is required")
	}
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	edu.ID = 0
	edu.ProfileID = profile.ID
	if err := s.profileRepo.AddEducation(ctx, &edu); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &edu, nil
}

// RemoveEducation deletes an education entry owned by the caller.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) error {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.profileRepo.DeleteEducation(ctx, profile.ID, eduID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// AddExperience appends a work-history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, exp models.UserExperience) (*models.UserExperience, error) {
	if exp.Company == "" || exp.Position == "" {
		return nil, models.NewValidationError("company and position are required")
	}
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	exp.ID = 0
	exp.ProfileID = profile.ID
	if err := s.profileRepo.AddExperience(ctx, &exp); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &exp, nil
}

// RemoveExperience deletes a work-history entry owned by the caller.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) error {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.profileRepo.DeleteExperience(ctx, profile.ID, expID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SearchCandidates runs the employer-facing candidate search.
func (s *ProfileService) SearchCandidates(ctx context.Context, keyword, location, skill string, limit, offset int) ([]*models.UserProfile, error) {
	limit, offset = clampPage(limit, offset)
	profiles, err := s.profileRepo.SearchCandidates(ctx, keyword, location, skill, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
