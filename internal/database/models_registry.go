package database

import "hirehub/internal/models"

// PersistentModels returns every model registered for AutoMigrate, in
// dependency order so foreign keys resolve.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.JobCategory{},
		&models.JobPosting{},
		&models.JobApplication{},
		&models.UserProfile{},
		&models.UserSkill{},
		&models.UserEducation{},
		&models.UserExperience{},
	}
}
