// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"log"
	"math/rand"
	"time"

	"hirehub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tunes how the factory generates and persists data.
type SeedOptions struct {
	// DryRun logs instead of writing to the database.
	DryRun bool
	// SkipBcrypt stores plaintext passwords for faster bulk seeding.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// pastTime returns a timestamp spread over the configured window.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(role models.UserRole, overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      role,
		IsActive:  true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s (%s)", user.Email, user.Role)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory constructs and persists a sample `models.JobCategory`.
func (f *Factory) CreateCategory(overrides ...func(*models.JobCategory)) (*models.JobCategory, error) {
	category := &models.JobCategory{
		Name:        gofakeit.JobDescriptor() + " " + gofakeit.JobLevel(),
		Description: gofakeit.Sentence(8),
		IsActive:    true,
	}

	for _, override := range overrides {
		override(category)
	}

	if f.opts.DryRun {
		f.nextID++
		category.ID = f.nextID
		log.Printf("[dry-run] CreateCategory: %s", category.Name)
		return category, nil
	}

	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// BuildJobPosting constructs a posting struct without persisting it.
// Useful for batching.
func (f *Factory) BuildJobPosting(employer *models.User, overrides ...func(*models.JobPosting)) *models.JobPosting {
	salaryMin := float64(gofakeit.Number(40, 120)) * 1000
	salaryMax := salaryMin + float64(gofakeit.Number(10, 60))*1000
	jobTypes := []string{"Full-time", "Part-time", "Contract", "Internship", "Remote"}
	levels := []string{"Entry", "Mid", "Senior", "Lead"}

	deadline := time.Now().AddDate(0, 0, gofakeit.Number(14, 90))
	job := &models.JobPosting{
		Title:               gofakeit.JobTitle(),
		Company:             gofakeit.Company(),
		Location:            gofakeit.City() + ", " + gofakeit.StateAbr(),
		Description:         gofakeit.Paragraph(2, 4, 8, "\n"),
		JobType:             jobTypes[f.rng.Intn(len(jobTypes))],
		ExperienceLevel:     levels[f.rng.Intn(len(levels))],
		SalaryMin:           &salaryMin,
		SalaryMax:           &salaryMax,
		SalaryCurrency:      "USD",
		Requirements:        gofakeit.Paragraph(1, 3, 6, "\n"),
		Benefits:            gofakeit.Paragraph(1, 2, 6, "\n"),
		ApplicationDeadline: &deadline,
		Status:              models.JobStatusPending,
		IsActive:            true,
		PostedDate:          f.pastTime(),
		EmployerID:          employer.ID,
	}

	for _, override := range overrides {
		override(job)
	}
	return job
}

// CreateJobPosting constructs and persists a sample posting for the employer.
func (f *Factory) CreateJobPosting(employer *models.User, overrides ...func(*models.JobPosting)) (*models.JobPosting, error) {
	job := f.BuildJobPosting(employer, overrides...)

	if f.opts.DryRun {
		f.nextID++
		job.ID = f.nextID
		log.Printf("[dry-run] CreateJobPosting: %s at %s", job.Title, job.Company)
		return job, nil
	}

	if err := f.db.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// CreateJobPostingsBatch persists multiple postings in a single DB call when possible.
func (f *Factory) CreateJobPostingsBatch(jobs []*models.JobPosting) error {
	if f.opts.DryRun {
		for _, j := range jobs {
			f.nextID++
			j.ID = f.nextID
		}
		log.Printf("[dry-run] CreateJobPostingsBatch: %d postings (no DB write)", len(jobs))
		return nil
	}
	return f.db.Create(&jobs).Error
}

// CreateApplication constructs and persists a sample application from the
// seeker to the posting.
func (f *Factory) CreateApplication(job *models.JobPosting, seeker *models.User, overrides ...func(*models.JobApplication)) (*models.JobApplication, error) {
	app := &models.JobApplication{
		JobPostingID: job.ID,
		JobSeekerID:  seeker.ID,
		CoverLetter:  gofakeit.Paragraph(1, 3, 8, "\n"),
		Status:       models.ApplicationStatusPending,
		AppliedDate:  f.pastTime(),
	}

	for _, override := range overrides {
		override(app)
	}

	if f.opts.DryRun {
		f.nextID++
		app.ID = f.nextID
		log.Printf("[dry-run] CreateApplication: seeker %d -> posting %d", seeker.ID, job.ID)
		return app, nil
	}

	if err := f.db.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// CreateProfile constructs and persists a career profile for the user,
// with a handful of skills and one experience entry.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.UserProfile)) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		UserID:          user.ID,
		Bio:             gofakeit.Sentence(12),
		CurrentPosition: gofakeit.JobTitle(),
		CurrentCompany:  gofakeit.Company(),
		Location:        gofakeit.City() + ", " + gofakeit.StateAbr(),
		Phone:           gofakeit.Phone(),
		Website:         gofakeit.URL(),
	}

	for _, override := range overrides {
		override(profile)
	}

	if f.opts.DryRun {
		f.nextID++
		profile.ID = f.nextID
		log.Printf("[dry-run] CreateProfile: user %d", user.ID)
		return profile, nil
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}

	levels := []string{"Beginner", "Intermediate", "Advanced", "Expert"}
	for i := 0; i < 3+f.rng.Intn(4); i++ {
		skill := models.UserSkill{
			ProfileID:         profile.ID,
			Name:              gofakeit.ProgrammingLanguage(),
			ProficiencyLevel:  levels[f.rng.Intn(len(levels))],
			YearsOfExperience: gofakeit.Number(1, 12),
		}
		if err := f.db.Create(&skill).Error; err != nil {
			return nil, err
		}
	}

	start := f.pastTime().AddDate(-gofakeit.Number(1, 6), 0, 0)
	exp := models.UserExperience{
		ProfileID:   profile.ID,
		Company:     gofakeit.Company(),
		Position:    gofakeit.JobTitle(),
		Location:    gofakeit.City(),
		StartDate:   &start,
		IsCurrent:   true,
		Description: gofakeit.Sentence(15),
	}
	if err := f.db.Create(&exp).Error; err != nil {
		return nil, err
	}

	return profile, nil
}
