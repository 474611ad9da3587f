package models

import "time"

// JobStatus defines lifecycle states for the posting approval workflow.
type JobStatus string

const (
	// JobStatusPending indicates the posting is awaiting admin review.
	JobStatusPending JobStatus = "Pending"
	// JobStatusApproved indicates the posting passed review and may be listed.
	JobStatusApproved JobStatus = "Approved"
	// JobStatusRejected indicates the posting was denied by an admin.
	JobStatusRejected JobStatus = "Rejected"
	// JobStatusClosed indicates the posting is retired. No handler currently
	// drives this transition; the state is reachable only through the graph.
	JobStatusClosed JobStatus = "Closed"
)

// jobTransitions lists permitted status changes. Same-status writes are
// always allowed so that repeated moderation actions stay idempotent.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusPending:  {JobStatusApproved, JobStatusRejected},
	JobStatusApproved: {JobStatusClosed, JobStatusRejected},
	JobStatusRejected: {JobStatusApproved},
	JobStatusClosed:   {},
}

// CanTransition reports whether a posting may move from s to next.
func (s JobStatus) CanTransition(next JobStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known posting status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusApproved, JobStatusRejected, JobStatusClosed:
		return true
	}
	return false
}

// JobPosting is an employer's job advertisement. Status tracks the admin
// approval workflow; IsActive is an independent visibility switch, so an
// approved posting can be hidden and re-shown without re-review.
type JobPosting struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	Title               string       `gorm:"size:200;not null" json:"title"`
	Company             string       `gorm:"size:200;not null" json:"company"`
	Location            string       `gorm:"size:200;not null" json:"location"`
	Description         string       `gorm:"type:text;not null" json:"description"`
	JobType             string       `gorm:"size:50;not null" json:"job_type"`
	ExperienceLevel     string       `gorm:"size:50;not null" json:"experience_level"`
	SalaryMin           *float64     `json:"salary_min,omitempty"`
	SalaryMax           *float64     `json:"salary_max,omitempty"`
	SalaryCurrency      string       `gorm:"size:10;default:'USD'" json:"salary_currency"`
	Requirements        string       `gorm:"type:text;not null" json:"requirements"`
	Benefits            string       `gorm:"type:text" json:"benefits"`
	PostedDate          time.Time    `gorm:"not null" json:"posted_date"`
	ApplicationDeadline *time.Time   `json:"application_deadline,omitempty"`
	IsActive            bool         `gorm:"not null;default:true;index" json:"is_active"`
	Status              JobStatus    `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	ApprovedAt          *time.Time   `json:"approved_at,omitempty"`
	ApprovedBy          string       `gorm:"size:255" json:"approved_by,omitempty"`
	EmployerID          uint         `gorm:"not null;index" json:"employer_id"`
	Employer            *User        `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
	CategoryID          *uint        `gorm:"index" json:"category_id,omitempty"`
	Category            *JobCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
	// Applications are removed together with the posting.
	Applications []JobApplication `gorm:"foreignKey:JobPostingID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
	// ApplicationCount is not persisted; computed at query time
	ApplicationCount int `gorm:"->" json:"application_count"`
}

// Listable reports whether the posting appears in public listings.
func (p *JobPosting) Listable() bool {
	return p.IsActive && p.Status == JobStatusApproved
}
