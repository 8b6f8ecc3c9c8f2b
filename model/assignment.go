package model

import (
	"time"

	"gorm.io/datatypes"
)

// Assignment is coursework published by the course mentor
type Assignment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	CourseID    uint           `gorm:"not null;index" json:"course_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	DueDate     *time.Time     `json:"due_date"`
	MaxScore    int            `gorm:"not null" json:"max_score"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"` // rubric, allowed formats, ...

	// Relationships
	Course      *Course                `gorm:"foreignKey:CourseID" json:"-"`
	Submissions []AssignmentSubmission `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// AssignmentSubmission is a student's uploaded answer
type AssignmentSubmission struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AssignmentID  uint      `gorm:"not null;index" json:"assignment_id"`
	StudentID     uint      `gorm:"not null;index" json:"student_id"`
	SubmissionURL string    `gorm:"type:text;not null" json:"submission_url"`
	SubmittedAt   time.Time `gorm:"not null;index" json:"submitted_at"`

	// Relationships
	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}

// SubmissionSummary is a student's view of one of their submissions
type SubmissionSummary struct {
	SubmissionID    uint      `json:"submission_id"`
	AssignmentID    uint      `json:"assignment_id"`
	AssignmentTitle string    `json:"assignment_title"`
	SubmissionURL   string    `json:"submission_url"`
	SubmittedAt     time.Time `json:"submitted_at"`
}
