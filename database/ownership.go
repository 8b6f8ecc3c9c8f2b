package database

import (
	"context"

	"gorm.io/gorm"
)

// Owner is the result of walking a course hierarchy up to its mentor.
// Found is false when the starting row does not exist. MentorID is nil when
// the chain is broken (missing section or soft-deleted course).
type Owner struct {
	Found    bool
	MentorID *uint
}

// OwnedBy reports whether the chain resolves to mentorID
func (o Owner) OwnedBy(mentorID uint) bool {
	return o.MentorID != nil && *o.MentorID == mentorID
}

type ownerRow struct {
	ID       uint
	MentorID *uint
}

// TopicOwner resolves topic -> section -> course -> mentor in one query
func TopicOwner(ctx context.Context, db *gorm.DB, topicID uint) (Owner, error) {
	var rows []ownerRow
	err := db.WithContext(ctx).
		Table("section_topics").
		Select("section_topics.id AS id, courses.mentor_id AS mentor_id").
		Joins("LEFT JOIN sections ON sections.id = section_topics.section_id").
		Joins("LEFT JOIN courses ON courses.id = sections.course_id AND courses.deleted_at IS NULL").
		Where("section_topics.id = ?", topicID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return Owner{}, &StorageError{Op: "topic owner", Err: err}
	}
	if len(rows) == 0 {
		return Owner{}, nil
	}
	return Owner{Found: true, MentorID: rows[0].MentorID}, nil
}

// SectionOwner resolves section -> course -> mentor
func SectionOwner(ctx context.Context, db *gorm.DB, sectionID uint) (Owner, error) {
	var rows []ownerRow
	err := db.WithContext(ctx).
		Table("sections").
		Select("sections.id AS id, courses.mentor_id AS mentor_id").
		Joins("LEFT JOIN courses ON courses.id = sections.course_id AND courses.deleted_at IS NULL").
		Where("sections.id = ?", sectionID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return Owner{}, &StorageError{Op: "section owner", Err: err}
	}
	if len(rows) == 0 {
		return Owner{}, nil
	}
	return Owner{Found: true, MentorID: rows[0].MentorID}, nil
}
