package seed

import (
	"errors"
	"fmt"
	"log"
	"time"

	"hirehub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminEmail is the well-known admin account created by AdminAccount.
// Admin accounts are never created through signup.
const AdminEmail = "admin@hirehub.com"

// defaultCategories are provisioned on every seed run so the public
// category filter is never empty.
var defaultCategories = []models.JobCategory{
	{Name: "Software Development", Description: "Engineering roles across the stack", IsActive: true},
	{Name: "Data & Analytics", Description: "Data engineering, analytics, and ML", IsActive: true},
	{Name: "Design", Description: "Product, UX, and visual design", IsActive: true},
	{Name: "Marketing", Description: "Growth, content, and brand", IsActive: true},
	{Name: "Sales", Description: "Account executives and sales development", IsActive: true},
	{Name: "Operations", Description: "People, finance, and business operations", IsActive: true},
}

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, SeedOptions{})}
}

// NewSeederWithOptions creates a Seeder with explicit factory options.
func NewSeederWithOptions(db *gorm.DB, opts SeedOptions) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll deletes all seeded rows, children first so foreign keys hold.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []any{
		&models.JobApplication{},
		&models.JobPosting{},
		&models.UserSkill{},
		&models.UserEducation{},
		&models.UserExperience{},
		&models.UserProfile{},
		&models.JobCategory{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	return nil
}

// Categories provisions the built-in job categories, skipping ones that
// already exist. Safe to run repeatedly.
func Categories(db *gorm.DB) error {
	for _, c := range defaultCategories {
		c := c
		var existing models.JobCategory
		err := db.Where("name = ?", c.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}

// AdminAccount provisions the well-known admin user if it does not exist.
func AdminAccount(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:     AdminEmail,
		Password:  string(hashed),
		FirstName: "HireHub",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	return db.Create(&admin).Error
}

// SeedJobBoard populates employers, seekers with profiles, postings in every
// review state, and applications. Returns the created employers and seekers.
func (s *Seeder) SeedJobBoard(numEmployers, numSeekers, numJobs int) ([]*models.User, []*models.User, error) {
	log.Printf("Seeding %d employers, %d seekers, %d postings...", numEmployers, numSeekers, numJobs)

	employers := make([]*models.User, 0, numEmployers)
	for i := 0; i < numEmployers; i++ {
		u, err := s.factory.CreateUser(models.RoleEmployer)
		if err != nil {
			return nil, nil, fmt.Errorf("creating employer: %w", err)
		}
		employers = append(employers, u)
	}

	seekers := make([]*models.User, 0, numSeekers)
	for i := 0; i < numSeekers; i++ {
		u, err := s.factory.CreateUser(models.RoleJobSeeker)
		if err != nil {
			return nil, nil, fmt.Errorf("creating seeker: %w", err)
		}
		if _, err := s.factory.CreateProfile(u); err != nil {
			return nil, nil, fmt.Errorf("creating profile: %w", err)
		}
		seekers = append(seekers, u)
	}

	var categories []models.JobCategory
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, nil, err
	}

	jobs := make([]*models.JobPosting, 0, numJobs)
	for i := 0; i < numJobs; i++ {
		employer := employers[i%len(employers)]
		job := s.factory.BuildJobPosting(employer, func(j *models.JobPosting) {
			if len(categories) > 0 {
				id := categories[gofakeit.Number(0, len(categories)-1)].ID
				j.CategoryID = &id
			}
			// Roughly 70% approved so public listings have content,
			// the rest split between pending and rejected.
			switch gofakeit.Number(1, 10) {
			case 1, 2:
				j.Status = models.JobStatusPending
			case 3:
				j.Status = models.JobStatusRejected
			default:
				j.Status = models.JobStatusApproved
				at := j.PostedDate.Add(24 * time.Hour)
				j.ApprovedAt = &at
				j.ApprovedBy = AdminEmail
			}
		})
		jobs = append(jobs, job)
	}
	if err := s.factory.CreateJobPostingsBatch(jobs); err != nil {
		return nil, nil, fmt.Errorf("creating postings: %w", err)
	}

	// Each seeker applies to a few approved postings.
	approved := make([]*models.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if j.Status == models.JobStatusApproved {
			approved = append(approved, j)
		}
	}
	statuses := []models.ApplicationStatus{
		models.ApplicationStatusPending,
		models.ApplicationStatusPending,
		models.ApplicationStatusReviewed,
		models.ApplicationStatusShortlisted,
		models.ApplicationStatusRejected,
	}
	applied := make(map[string]bool)
	for _, seeker := range seekers {
		if len(approved) == 0 {
			break
		}
		for i := 0; i < gofakeit.Number(1, 4); i++ {
			job := approved[gofakeit.Number(0, len(approved)-1)]
			key := fmt.Sprintf("%d-%d", job.ID, seeker.ID)
			if applied[key] {
				continue
			}
			applied[key] = true
			_, err := s.factory.CreateApplication(job, seeker, func(a *models.JobApplication) {
				a.Status = statuses[gofakeit.Number(0, len(statuses)-1)]
			})
			if err != nil {
				return nil, nil, fmt.Errorf("creating application: %w", err)
			}
		}
	}

	log.Printf("Seeded %d postings and %d applications", len(jobs), len(applied))
	return employers, seekers, nil
}

// ApplyPreset runs a named seeding scenario.
func (s *Seeder) ApplyPreset(name string) error {
	switch name {
	case "Minimal":
		_, _, err := s.SeedJobBoard(2, 5, 6)
		return err
	case "Demo":
		_, _, err := s.SeedJobBoard(5, 20, 30)
		return err
	case "MegaPopulated":
		_, _, err := s.SeedJobBoard(25, 200, 400)
		return err
	default:
		return fmt.Errorf("unknown preset %q", name)
	}
}
