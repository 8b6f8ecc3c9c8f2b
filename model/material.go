package model

import (
	"time"
)

// MaterialType is a free-form label for uploaded lecture files (pdf, ppt, video, ...)
type MaterialType string

// LectureMaterial is an uploaded file attached to a topic
type LectureMaterial struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	TopicID      uint         `gorm:"not null;index" json:"topic_id"`
	MaterialType MaterialType `gorm:"type:varchar(50);not null" json:"material_type"`
	MaterialURL  string       `gorm:"type:text;not null" json:"material_url"`
	Title        string       `gorm:"type:varchar(255);not null" json:"title"`
	PageCount    int          `gorm:"default:0" json:"page_count,omitempty"` // PDFs only

	// Relationships
	Topic *SectionTopic `gorm:"foreignKey:TopicID" json:"-"`
}
