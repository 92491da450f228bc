package model

import "time"

// Application represents a job application record
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	// UserID references User.ID
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;references:ID" json:"-"`

	// JobID references Job.ID
	JobID uint `gorm:"not null;index" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	// Resume is the sanitized filename of the uploaded document.
	Resume    string    `gorm:"type:text;not null" json:"resume"`
	AppliedOn time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"applied_on"`
	Reviewed  bool      `gorm:"not null;default:false" json:"reviewed"`
}

// ApplicationRecord is a read model for the admin application listing,
// joining the applicant and the job posting.
type ApplicationRecord struct {
	ID             uint      `json:"id"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
	JobTitle       string    `json:"job_title"`
	Resume         string    `json:"resume"`
	AppliedOn      time.Time `json:"applied_on"`
	Reviewed       bool      `json:"reviewed"`
}
