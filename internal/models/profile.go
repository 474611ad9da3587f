package models

import "time"

// UserProfile holds the extended career profile for a user. One per user,
// created lazily on first access.
type UserProfile struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	UserID          uint             `gorm:"not null;uniqueIndex" json:"user_id"`
	User            *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bio             string           `gorm:"type:text" json:"bio"`
	CurrentPosition string           `gorm:"size:200" json:"current_position"`
	CurrentCompany  string           `gorm:"size:200" json:"current_company"`
	Location        string           `gorm:"size:200" json:"location"`
	Phone           string           `gorm:"size:50" json:"phone"`
	Website         string           `gorm:"size:500" json:"website"`
	LinkedIn        string           `gorm:"size:500" json:"linkedin"`
	GitHub          string           `gorm:"size:500" json:"github"`
	ResumePath      string           `gorm:"size:500" json:"resume_path,omitempty"`
	ResumeFileName  string           `gorm:"size:255" json:"resume_file_name,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Skills          []UserSkill      `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	Education       []UserEducation  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education,omitempty"`
	Experience      []UserExperience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience,omitempty"`
}

// UserSkill is a named skill with a proficiency level on a profile.
type UserSkill struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProfileID         uint      `gorm:"not null;index" json:"profile_id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	ProficiencyLevel  string    `gorm:"size:50" json:"proficiency_level"`
	YearsOfExperience int       `json:"years_of_experience"`
	CreatedAt         time.Time `json:"created_at"`
}

// UserEducation is one education entry on a profile.
type UserEducation struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"profile_id"`
	Institution  string     `gorm:"size:200;not null" json:"institution"`
	Degree       string     `gorm:"size:200" json:"degree"`
	FieldOfStudy string     `gorm:"size:200" json:"field_of_study"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  string     `gorm:"type:text" json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserExperience is one work-history entry on a profile.
type UserExperience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"profile_id"`
	Company     string     `gorm:"size:200;not null" json:"company"`
	Position    string     `gorm:"size:200;not null" json:"position"`
	Location    string     `gorm:"size:200" json:"location"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsCurrent   bool       `json:"is_current"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}
