package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"hirehub/internal/mailer"
	"hirehub/internal/middleware"
	"hirehub/internal/models"
	"hirehub/internal/notifications"
	"hirehub/internal/observability"
	"hirehub/internal/repository"
	"hirehub/internal/storage"
	"hirehub/internal/validation"

	"gorm.io/gorm"
)

// ApplicationService owns the application lifecycle: submission with the
// duplicate check and resume validation, status reviews, and every
// notification side effect. Notifications are strictly best-effort: once the
// database write has committed, no mail or publish failure can undo it.
type ApplicationService struct {
	appRepo  repository.ApplicationRepository
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
	store    storage.ResumeStore
	mail     mailer.Mailer
	notifier *notifications.Notifier
	maxBytes int64
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type ApplyInput struct {
	SeekerID     uint
	JobPostingID uint
	CoverLetter  string
	// Resume is optional. When set, ResumeFileName and ResumeSize describe it
	// and are validated before any file or row is written.
	Resume         io.Reader
	ResumeFileName string
	ResumeSize     int64
}

type UpdateApplicationStatusInput struct {
	ActorID       uint
	ApplicationID uint
	Status        models.ApplicationStatus
	Notes         string
}

// BulkUpdateResult reports the outcome of a bulk review. Updated counts
// persisted status changes; EmailsSent counts notification successes. The
// two can differ: a failed send never rolls back its status change.
type BulkUpdateResult struct {
	Total      int    `json:"total"`
	Updated    int    `json:"updated"`
	EmailsSent int    `json:"emails_sent"`
	Skipped    []uint `json:"skipped,omitempty"`
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	store storage.ResumeStore,
	mail mailer.Mailer,
	notifier *notifications.Notifier,
	maxBytes int64,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ApplicationService {
	if maxBytes <= 0 {
		maxBytes = validation.MaxResumeBytes
	}
	return &ApplicationService{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		store:    store,
		mail:     mail,
		notifier: notifier,
		maxBytes: maxBytes,
		isAdmin:  isAdmin,
	}
}

// Apply submits an application to a listed posting. The duplicate check and
// resume validation both happen before anything is persisted, so a rejected
// upload leaves no file and no row behind. The check-then-insert pair is not
// atomic: two concurrent requests for the same pair can both pass the check.
func (s *ApplicationService) Apply(ctx context.Context, in ApplyInput) (*models.JobApplication, error) {
	job, err := s.jobRepo.GetByID(ctx, in.JobPostingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("job posting", in.JobPostingID)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !job.Listable() {
		return nil, models.NewNotFoundError("job posting", in.JobPostingID)
	}
	if job.ApplicationDeadline != nil && time.Now().UTC().After(*job.ApplicationDeadline) {
		return nil, models.NewValidationError("the application deadline for this posting has passed")
	}

	exists, err := s.appRepo.Exists(ctx, in.JobPostingID, in.SeekerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if exists {
		return nil, models.NewDuplicateApplicationError(in.JobPostingID)
	}

	if in.Resume != nil {
		if err := validation.ValidateResumeUpload(in.ResumeFileName, in.ResumeSize, s.maxBytes); err != nil {
			observability.ResumeUploadsRejected.WithLabelValues("validation").Inc()
			return nil, models.NewUploadRejectedError(err.Error())
		}
	}

	app := &models.JobApplication{
		JobPostingID: in.JobPostingID,
		JobSeekerID:  in.SeekerID,
		CoverLetter:  in.CoverLetter,
		Status:       models.ApplicationStatusPending,
		AppliedDate:  time.Now().UTC(),
	}

	if in.Resume != nil {
		key, err := s.store.Save(ctx, in.SeekerID, in.ResumeFileName, in.Resume)
		if err != nil {
			return nil, models.NewInternalError(fmt.Errorf("store resume: %w", err))
		}
		app.ResumePath = key
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		if app.ResumePath != "" {
			// The row never existed, so the file must not either.
			_ = s.store.Remove(ctx, app.ResumePath)
		}
		return nil, models.NewInternalError(err)
	}

	observability.ApplicationsSubmitted.Inc()
	middleware.Logger.InfoContext(ctx, "application submitted",
		slog.Uint64("application_id", uint64(app.ID)),
		slog.Uint64("job_id", uint64(in.JobPostingID)),
		slog.Uint64("seeker_id", uint64(in.SeekerID)),
	)

	s.notifyApplied(ctx, app, job)
	return app, nil
}

// notifyApplied sends the confirmation to the seeker, the notice to the
// employer, and the Redis event. Failures are logged only: the application
// row is already committed.
func (s *ApplicationService) notifyApplied(ctx context.Context, app *models.JobApplication, job *models.JobPosting) {
	seeker, err := s.userRepo.GetByID(ctx, app.JobSeekerID)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "post-apply notifications skipped: seeker lookup failed",
			slog.Uint64("application_id", uint64(app.ID)),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.mail.SendApplicationConfirmation(ctx, seeker.Email, seeker.FullName(), job.Title, job.Company); err != nil {
		middleware.Logger.WarnContext(ctx, "confirmation email failed",
			slog.Uint64("application_id", uint64(app.ID)),
			slog.String("error", err.Error()),
		)
	}

	employer := job.Employer
	if employer == nil {
		employer, err = s.userRepo.GetByID(ctx, job.EmployerID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "employer notice skipped: employer lookup failed",
				slog.Uint64("application_id", uint64(app.ID)),
				slog.String("error", err.Error()),
			)
			return
		}
	}
	if err := s.mail.SendNewApplicationNotice(ctx, employer.Email, employer.FullName(), job.Title, seeker.FullName()); err != nil {
		middleware.Logger.WarnContext(ctx, "new application notice failed",
			slog.Uint64("application_id", uint64(app.ID)),
			slog.String("error", err.Error()),
		)
	}

	if err := s.notifier.PublishUser(ctx, job.EmployerID, notifications.Event{
		Type:          "application_submitted",
		JobPostingID:  job.ID,
		ApplicationID: app.ID,
		Message:       seeker.FullName() + " applied to " + job.Title,
	}); err != nil {
		middleware.Logger.WarnContext(ctx, "application event publish failed",
			slog.Uint64("application_id", uint64(app.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// UpdateStatus moves one application through the review graph. Only the
// employer owning the posting (or an admin) may review. Entering Rejected or
// Shortlisted from a different status e-mails the seeker; a same-status
// write updates notes silently.
func (s *ApplicationService) UpdateStatus(ctx context.Context, in UpdateApplicationStatusInput) (*models.JobApplication, error) {
	if !in.Status.Valid() {
		return nil, models.NewValidationError("unknown application status")
	}

	app, err := s.getApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	admin, err := s.isAdmin(ctx, in.ActorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	ownerID := uint(0)
	if app.JobPosting != nil {
		ownerID = app.JobPosting.EmployerID
	}
	if !canModify(in.ActorID, ownerID, admin) {
		return nil, models.NewNotFoundError("job application", in.ApplicationID)
	}

	if !app.Status.CanTransition(in.Status) {
		return nil, models.NewInvalidTransitionError(string(app.Status), string(in.Status))
	}

	previous := app.Status
	now := time.Now().UTC()
	app.Status = in.Status
	// Notes travel with the employer review path; the admin path sets
	// status only.
	if in.ActorID == ownerID {
		app.Notes = in.Notes
	}
	app.ReviewedDate = &now

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.ApplicationStatusTransitions.WithLabelValues(string(in.Status)).Inc()

	if in.Status != previous {
		s.notifyStatusChange(ctx, app, in.Status)
	}
	return app, nil
}

// notifyStatusChange e-mails the seeker for statuses that carry a message
// and publishes the status event. Best-effort; the update is committed.
func (s *ApplicationService) notifyStatusChange(ctx context.Context, app *models.JobApplication, status models.ApplicationStatus) {
	if status.NotifiesSeeker() {
		seeker := app.JobSeeker
		var err error
		if seeker == nil {
			seeker, err = s.userRepo.GetByID(ctx, app.JobSeekerID)
		}
		if err != nil {
			middleware.Logger.WarnContext(ctx, "status email skipped: seeker lookup failed",
				slog.Uint64("application_id", uint64(app.ID)),
				slog.String("error", err.Error()),
			)
		} else {
			title, company := "", ""
			if app.JobPosting != nil {
				title, company = app.JobPosting.Title, app.JobPosting.Company
			}
			switch status {
			case models.ApplicationStatusRejected:
				err = s.mail.SendApplicationRejection(ctx, seeker.Email, seeker.FullName(), title, company)
			case models.ApplicationStatusShortlisted:
				err = s.mail.SendApplicationShortlist(ctx, seeker.Email, seeker.FullName(), title, company)
			}
			if err != nil {
				middleware.Logger.WarnContext(ctx, "status email failed",
					slog.Uint64("application_id", uint64(app.ID)),
					slog.String("status", string(status)),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	if err := s.notifier.PublishUser(ctx, app.JobSeekerID, notifications.Event{
		Type:          "application_status",
		ApplicationID: app.ID,
		JobPostingID:  app.JobPostingID,
		Status:        string(status),
	}); err != nil {
		middleware.Logger.WarnContext(ctx, "status event publish failed",
			slog.Uint64("application_id", uint64(app.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// BulkUpdateStatus applies Rejected or Shortlisted to a batch of
// applications. Administrator only. Every valid transition is persisted
// first; each e-mail is then attempted on its own, so one broken mailbox
// cannot block the rest of the batch or any status change. Ids whose
// transition is invalid or whose row is missing are skipped and reported.
func (s *ApplicationService) BulkUpdateStatus(ctx context.Context, actorID uint, ids []uint, status models.ApplicationStatus) (*BulkUpdateResult, error) {
	if status != models.ApplicationStatusRejected && status != models.ApplicationStatusShortlisted {
		return nil, models.NewValidationError("bulk updates support only Rejected and Shortlisted")
	}
	if len(ids) == 0 {
		return nil, models.NewValidationError("no application ids given")
	}

	admin, err := s.isAdmin(ctx, actorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !admin {
		return nil, models.NewUnauthorizedError("only administrators can bulk-review applications")
	}

	result := &BulkUpdateResult{Total: len(ids)}
	updated := make([]*models.JobApplication, 0, len(ids))
	now := time.Now().UTC()

	for _, id := range ids {
		app, err := s.getApplication(ctx, id)
		if err != nil {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		if !app.Status.CanTransition(status) {
			result.Skipped = append(result.Skipped, id)
			continue
		}

		changed := app.Status != status
		app.Status = status
		app.ReviewedDate = &now
		if err := s.appRepo.Update(ctx, app); err != nil {
			middleware.Logger.ErrorContext(ctx, "bulk status update failed",
				slog.Uint64("application_id", uint64(id)),
				slog.String("error", err.Error()),
			)
			result.Skipped = append(result.Skipped, id)
			continue
		}
		result.Updated++
		observability.ApplicationStatusTransitions.WithLabelValues(string(status)).Inc()
		if changed {
			updated = append(updated, app)
		}
	}

	// Mail pass, after all writes are committed.
	for _, app := range updated {
		if s.sendBulkEmail(ctx, app, status) {
			result.EmailsSent++
		}
	}

	middleware.Logger.InfoContext(ctx, "bulk application review finished",
		slog.String("status", string(status)),
		slog.Int("total", result.Total),
		slog.Int("updated", result.Updated),
		slog.Int("emails_sent", result.EmailsSent),
	)
	return result, nil
}

func (s *ApplicationService) sendBulkEmail(ctx context.Context, app *models.JobApplication, status models.ApplicationStatus) bool {
	seeker := app.JobSeeker
	var err error
	if seeker == nil {
		seeker, err = s.userRepo.GetByID(ctx, app.JobSeekerID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "bulk email skipped: seeker lookup failed",
				slog.Uint64("application_id", uint64(app.ID)),
				slog.String("error", err.Error()),
			)
			return false
		}
	}

	title, company := "", ""
	if app.JobPosting != nil {
		title, company = app.JobPosting.Title, app.JobPosting.Company
	}
	switch status {
	case models.ApplicationStatusRejected:
		err = s.mail.SendApplicationRejection(ctx, seeker.Email, seeker.FullName(), title, company)
	case models.ApplicationStatusShortlisted:
		err = s.mail.SendApplicationShortlist(ctx, seeker.Email, seeker.FullName(), title, company)
	}
	if err != nil {
		middleware.Logger.WarnContext(ctx, "bulk email failed",
			slog.Uint64("application_id", uint64(app.ID)),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// Get returns one application. Visible to its seeker, the employer owning
// the posting, and admins; everyone else gets NotFound.
func (s *ApplicationService) Get(ctx context.Context, applicationID, viewerID uint) (*models.JobApplication, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, app, viewerID); err != nil {
		return nil, err
	}
	return app, nil
}

// ListMine returns the seeker's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, seekerID uint) ([]*models.JobApplication, error) {
	apps, err := s.appRepo.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

// ListForPosting returns a posting's applications to its owning employer.
func (s *ApplicationService) ListForPosting(ctx context.Context, postingID, actorID uint) ([]*models.JobApplication, error) {
	job, err := s.jobRepo.GetByID(ctx, postingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("job posting", postingID)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	admin, err := s.isAdmin(ctx, actorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !canModify(actorID, job.EmployerID, admin) {
		return nil, models.NewNotFoundError("job posting", postingID)
	}

	apps, err := s.appRepo.ListByPosting(ctx, postingID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

// ListForEmployer returns applications across all of the employer's postings.
func (s *ApplicationService) ListForEmployer(ctx context.Context, employerID uint) ([]*models.JobApplication, error) {
	apps, err := s.appRepo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

// ListAll returns every application, optionally filtered by status. Admin
// only; the handler gates the route.
func (s *ApplicationService) ListAll(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]*models.JobApplication, error) {
	if status != "" && !status.Valid() {
		return nil, models.NewValidationError("unknown status filter")
	}
	limit, offset = clampPage(limit, offset)
	apps, err := s.appRepo.ListAll(ctx, status, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

// OpenResume opens the stored resume of an application for download, gated
// by the same visibility rule as Get.
func (s *ApplicationService) OpenResume(ctx context.Context, applicationID, viewerID uint) (io.ReadCloser, string, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, "", err
	}
	if err := s.authorizeView(ctx, app, viewerID); err != nil {
		return nil, "", err
	}
	if app.ResumePath == "" {
		return nil, "", models.NewNotFoundError("resume for application", applicationID)
	}

	rc, err := s.store.Open(ctx, app.ResumePath)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return rc, app.ResumePath, nil
}

func (s *ApplicationService) authorizeView(ctx context.Context, app *models.JobApplication, viewerID uint) error {
	if viewerID == app.JobSeekerID {
		return nil
	}
	ownerID := uint(0)
	if app.JobPosting != nil {
		ownerID = app.JobPosting.EmployerID
	}
	admin, err := s.isAdmin(ctx, viewerID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !canModify(viewerID, ownerID, admin) {
		return models.NewNotFoundError("job application", app.ID)
	}
	return nil
}

func (s *ApplicationService) getApplication(ctx context.Context, id uint) (*models.JobApplication, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("job application", id)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return app, nil
}
