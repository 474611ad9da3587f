// Package models contains data structures for HireHub's domain entities.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole defines the access level of an account.
type UserRole string

const (
	// RoleAdmin moderates postings, applications, users, and categories.
	RoleAdmin UserRole = "admin"
	// RoleEmployer owns job postings and reviews their applicants.
	RoleEmployer UserRole = "employer"
	// RoleJobSeeker browses approved postings and submits applications.
	RoleJobSeeker UserRole = "job_seeker"
)

// ValidSignupRole reports whether a role may be chosen at registration.
// Admin accounts are provisioned out of band (seeder or SQL), never via signup.
func ValidSignupRole(r UserRole) bool {
	return r == RoleEmployer || r == RoleJobSeeker
}

// User represents an account in the HireHub application.
type User struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Email       string           `gorm:"unique;not null" json:"email"`
	Password    string           `gorm:"not null" json:"-"`
	FirstName   string           `gorm:"size:100;not null" json:"first_name"`
	LastName    string           `gorm:"size:100;not null" json:"last_name"`
	Role        UserRole         `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive    bool             `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
	Postings    []JobPosting     `gorm:"foreignKey:EmployerID" json:"postings,omitempty"`
	Applications []JobApplication `gorm:"foreignKey:JobSeekerID" json:"applications,omitempty"`
	Profile     *UserProfile     `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// FullName returns the display name used in notification e-mails.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
