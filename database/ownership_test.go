package database_test

import (
	"context"
	"testing"

	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/database/dbtest"
	"github.com/sahilchouksey/online-lms/model"
	"gorm.io/gorm"
)

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func TestTopicOwner(t *testing.T) {
	store := dbtest.New(t)
	db := store.GetDB()
	ctx := context.Background()

	course := &model.Course{Title: "Go", CategoryID: 1, MentorID: 9}
	mustCreate(t, db, course)
	section := &model.Section{CourseID: course.ID, Title: "Basics"}
	mustCreate(t, db, section)
	topic := &model.SectionTopic{SectionID: section.ID, Title: "Slices"}
	mustCreate(t, db, topic)
	orphan := &model.SectionTopic{SectionID: 999, Title: "Lost"}
	mustCreate(t, db, orphan)

	owner, err := database.TopicOwner(ctx, db, topic.ID)
	if err != nil {
		t.Fatalf("topic owner: %v", err)
	}
	if !owner.Found || !owner.OwnedBy(9) {
		t.Fatalf("expected topic owned by 9, got %+v", owner)
	}
	if owner.OwnedBy(7) {
		t.Fatal("topic must not be owned by 7")
	}

	owner, err = database.TopicOwner(ctx, db, orphan.ID)
	if err != nil {
		t.Fatalf("topic owner: %v", err)
	}
	if !owner.Found || owner.MentorID != nil {
		t.Fatalf("orphan topic should be found without an owner, got %+v", owner)
	}

	owner, err = database.TopicOwner(ctx, db, 12345)
	if err != nil {
		t.Fatalf("topic owner: %v", err)
	}
	if owner.Found {
		t.Fatal("missing topic must not be found")
	}

	// soft-deleted course breaks the chain
	if err := db.Delete(course).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}
	owner, err = database.TopicOwner(ctx, db, topic.ID)
	if err != nil {
		t.Fatalf("topic owner: %v", err)
	}
	if !owner.Found || owner.MentorID != nil {
		t.Fatalf("expected broken chain after course delete, got %+v", owner)
	}
}

func TestSectionOwner(t *testing.T) {
	store := dbtest.New(t)
	db := store.GetDB()

	course := &model.Course{Title: "Go", CategoryID: 1, MentorID: 5}
	mustCreate(t, db, course)
	section := &model.Section{CourseID: course.ID, Title: "Basics"}
	mustCreate(t, db, section)

	owner, err := database.SectionOwner(context.Background(), db, section.ID)
	if err != nil {
		t.Fatalf("section owner: %v", err)
	}
	if !owner.OwnedBy(5) {
		t.Fatalf("expected owner 5, got %+v", owner)
	}
}
