package services

import (
	"context"
	"time"

	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/utils/apperr"
)

// EnrollmentService links students to courses
type EnrollmentService struct {
	store database.Storage
	now   func() time.Time
}

func NewEnrollmentService(store database.Storage) *EnrollmentService {
	return &EnrollmentService{store: store, now: time.Now}
}

// Enroll adds studentID to an existing course
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID uint) (*model.Enrollment, error) {
	db := s.store.GetDB()

	course, err := database.Find[model.Course](ctx, db, "id = ?", courseID)
	if err != nil {
		return nil, apperr.Internal("Failed to load course.", err)
	}
	if course == nil {
		return nil, apperr.NotFound("Course not found.")
	}

	// the unique index on (student_id, course_id) decides between concurrent requests
	e := &model.Enrollment{StudentID: studentID, CourseID: courseID, EnrolledAt: s.now().UTC()}
	uow := s.store.NewUnitOfWork()
	uow.Add(e)
	if err := uow.Commit(ctx); err != nil {
		if database.IsDuplicate(err) {
			return nil, apperr.Conflict("Already enrolled.")
		}
		return nil, apperr.Internal("Failed to enroll.", err)
	}
	return e, nil
}

// Courses lists the courses studentID is enrolled in
func (s *EnrollmentService) Courses(ctx context.Context, studentID uint) ([]model.Course, error) {
	db := s.store.GetDB()
	enrolled := db.Model(&model.Enrollment{}).Select("course_id").Where("student_id = ?", studentID)

	courses, err := database.List[model.Course](ctx, db.Preload("Category"), "id DESC", "id IN (?)", enrolled)
	if err != nil {
		return nil, apperr.Internal("Failed to load courses.", err)
	}
	return courses, nil
}

// Materials lists every lecture material of a course the student is enrolled in
func (s *EnrollmentService) Materials(ctx context.Context, studentID, courseID uint) ([]model.LectureMaterial, error) {
	db := s.store.GetDB()

	ok, err := database.Exists[model.Enrollment](ctx, db, "course_id = ? AND student_id = ?", courseID, studentID)
	if err != nil {
		return nil, apperr.Internal("Failed to check enrollment.", err)
	}
	if !ok {
		return nil, apperr.Forbidden("Enroll first.")
	}

	topics := db.Table("section_topics").
		Select("section_topics.id").
		Joins("JOIN sections ON sections.id = section_topics.section_id").
		Where("sections.course_id = ?", courseID)

	materials, err := database.List[model.LectureMaterial](ctx, db, "topic_id ASC, id ASC", "topic_id IN (?)", topics)
	if err != nil {
		return nil, apperr.Internal("Failed to load materials.", err)
	}
	return materials, nil
}
