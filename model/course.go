package model

import (
	"time"

	"gorm.io/gorm"
)

// Category groups courses (e.g. "Programming", "Design")
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
}

// Course is authored and owned by a single mentor
type Course struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	CategoryID   uint           `gorm:"not null;index" json:"category_id"`
	MentorID     uint           `gorm:"not null;index" json:"mentor_id"`
	ThumbnailURL *string        `gorm:"type:text" json:"thumbnail_url"`
	ExtraNote    string         `gorm:"type:text" json:"extra_note"`

	// Relationships
	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Mentor      *User        `gorm:"foreignKey:MentorID" json:"-"`
	Sections    []Section    `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Assignments []Assignment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// Enrollment links a student to a course
type Enrollment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"student_id"`
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_enrollment_student_course;index" json:"course_id"`
	EnrolledAt time.Time `gorm:"not null" json:"enrolled_at"`

	// Relationships
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// Section is a chapter of a course
type Section struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Position  int       `gorm:"default:0" json:"position"`

	// Relationships
	Course *Course        `gorm:"foreignKey:CourseID" json:"-"`
	Topics []SectionTopic `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"topics,omitempty"`
}

// SectionTopic is a lesson inside a section; materials hang off topics
type SectionTopic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	SectionID uint      `gorm:"not null;index" json:"section_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Position  int       `gorm:"default:0" json:"position"`

	// Relationships
	Section   *Section          `gorm:"foreignKey:SectionID" json:"-"`
	Materials []LectureMaterial `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"materials,omitempty"`
}
