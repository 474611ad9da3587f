package models

import "time"

// JobCategory groups postings for browsing and search filters.
type JobCategory struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:100;unique;not null" json:"name"`
	Description string       `gorm:"size:500" json:"description"`
	IsActive    bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Postings    []JobPosting `gorm:"foreignKey:CategoryID" json:"postings,omitempty"`
}
