package model

import "time"

// EditableJobInfo is the part of a job posting that admins can create or edit.
type EditableJobInfo struct {
	Title       string `gorm:"type:text;not null" json:"title"`
	Company     string `gorm:"type:text;not null" json:"company"`
	Location    string `gorm:"type:text;not null" json:"location"`
	Description string `gorm:"type:text;not null" json:"description"`
}

// Job is gorm model for store job posting data in DB
type Job struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`
	EditableJobInfo
	PostedOn time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"posted_on"`

	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
}
