package models

import "time"

// ApplicationStatus defines lifecycle states for a job application.
type ApplicationStatus string

const (
	// ApplicationStatusPending indicates the application awaits employer review.
	ApplicationStatusPending ApplicationStatus = "Pending"
	// ApplicationStatusReviewed indicates the employer has looked at it.
	ApplicationStatusReviewed ApplicationStatus = "Reviewed"
	// ApplicationStatusShortlisted indicates the candidate advanced.
	ApplicationStatusShortlisted ApplicationStatus = "Shortlisted"
	// ApplicationStatusRejected indicates the candidate was declined.
	ApplicationStatusRejected ApplicationStatus = "Rejected"
	// ApplicationStatusHired indicates the candidate was hired.
	ApplicationStatusHired ApplicationStatus = "Hired"
)

// applicationTransitions lists permitted status changes. Rejected and Hired
// are terminal apart from same-status writes (notes-only updates).
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:     {ApplicationStatusReviewed, ApplicationStatusShortlisted, ApplicationStatusRejected, ApplicationStatusHired},
	ApplicationStatusReviewed:    {ApplicationStatusShortlisted, ApplicationStatusRejected, ApplicationStatusHired},
	ApplicationStatusShortlisted: {ApplicationStatusReviewed, ApplicationStatusRejected, ApplicationStatusHired},
	ApplicationStatusRejected:    {},
	ApplicationStatusHired:       {},
}

// CanTransition reports whether an application may move from s to next.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusShortlisted,
		ApplicationStatusRejected, ApplicationStatusHired:
		return true
	}
	return false
}

// NotifiesSeeker reports whether entering this status e-mails the applicant.
// Only rejection and shortlist notices exist; the message is sent once, when
// the status actually changes.
func (s ApplicationStatus) NotifiesSeeker() bool {
	return s == ApplicationStatusRejected || s == ApplicationStatusShortlisted
}

// JobApplication records one job seeker's application to one posting.
// At most one application exists per (posting, seeker) pair; the invariant
// is enforced by a check before insert, not by a database constraint, so two
// simultaneous requests can slip through the window.
type JobApplication struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	JobPostingID uint              `gorm:"not null;index:idx_applications_posting_seeker" json:"job_posting_id"`
	JobPosting   *JobPosting       `gorm:"foreignKey:JobPostingID" json:"job_posting,omitempty"`
	JobSeekerID  uint              `gorm:"not null;index:idx_applications_posting_seeker" json:"job_seeker_id"`
	JobSeeker    *User             `gorm:"foreignKey:JobSeekerID" json:"job_seeker,omitempty"`
	CoverLetter  string            `gorm:"type:text" json:"cover_letter"`
	ResumePath   string            `gorm:"size:500" json:"resume_path,omitempty"`
	AppliedDate  time.Time         `gorm:"not null" json:"applied_date"`
	Status       ApplicationStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Notes        string            `gorm:"type:text" json:"notes"`
	ReviewedDate *time.Time        `json:"reviewed_date,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
