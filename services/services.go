package services

import (
	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/services/storage"
	"github.com/sahilchouksey/online-lms/utils/logger"
)

// Services bundles every domain service built over one store and one file backend
type Services struct {
	Courses     *CourseService
	Materials   *MaterialService
	Assignments *AssignmentService
	Enrollments *EnrollmentService
	Users       *UserService
	Categories  *CategoryService
}

func New(store database.Storage, files storage.Store, log *logger.Logger) *Services {
	if log == nil {
		log = logger.Nop()
	}
	return &Services{
		Courses:     NewCourseService(store, files, log),
		Materials:   NewMaterialService(store, files, log),
		Assignments: NewAssignmentService(store, files, log),
		Enrollments: NewEnrollmentService(store),
		Users:       NewUserService(store, log),
		Categories:  NewCategoryService(store),
	}
}
