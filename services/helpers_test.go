package services

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sahilchouksey/online-lms/database/dbtest"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/services/storage"
	"github.com/sahilchouksey/online-lms/services/storage/storagetest"
	"github.com/sahilchouksey/online-lms/utils/apperr"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T) (*Services, *gorm.DB, *storagetest.Fake) {
	t.Helper()
	store := dbtest.New(t)
	files := storagetest.New()
	return New(store, files, logger.Nop()), store.GetDB(), files
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func fileUpload(name string, data []byte) *storage.Upload {
	return &storage.Upload{
		Filename: name,
		Size:     int64(len(data)),
		Body:     bytes.NewReader(data),
	}
}

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("expected %s error, got %s (%v)", kind, got, err)
	}
}

var treeSeq int

// courseTree creates category -> course(mentorID) -> section -> topic
func courseTree(t *testing.T, db *gorm.DB, mentorID uint) (*model.Course, *model.Section, *model.SectionTopic) {
	t.Helper()
	treeSeq++
	cat := &model.Category{Name: fmt.Sprintf("category-%d", treeSeq)}
	mustCreate(t, db, cat)
	course := &model.Course{Title: "Go", CategoryID: cat.ID, MentorID: mentorID}
	mustCreate(t, db, course)
	section := &model.Section{CourseID: course.ID, Title: "Basics"}
	mustCreate(t, db, section)
	topic := &model.SectionTopic{SectionID: section.ID, Title: "Slices"}
	mustCreate(t, db, topic)
	return course, section, topic
}
