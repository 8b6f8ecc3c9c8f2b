package enrollment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/handlers"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/utils/middleware"
	"github.com/sahilchouksey/online-lms/utils/response"
)

// EnrollmentHandler serves the student's course catalogue
type EnrollmentHandler struct {
	enrollments *services.EnrollmentService
}

func NewEnrollmentHandler(enrollments *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Enroll handles POST /api/student/courses/:courseId/enroll
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	courseID, err := handlers.ParamID(c, "courseId")
	if err != nil {
		return err
	}

	e, err := h.enrollments.Enroll(c.UserContext(), studentID, courseID)
	if err != nil {
		return err
	}
	return response.Created(c, e)
}

// ListCourses handles GET /api/student/courses
func (h *EnrollmentHandler) ListCourses(c *fiber.Ctx) error {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courses, err := h.enrollments.Courses(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	return response.Success(c, courses)
}

// ListMaterials handles GET /api/student/courses/:courseId/materials
func (h *EnrollmentHandler) ListMaterials(c *fiber.Ctx) error {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	courseID, err := handlers.ParamID(c, "courseId")
	if err != nil {
		return err
	}

	materials, err := h.enrollments.Materials(c.UserContext(), studentID, courseID)
	if err != nil {
		return err
	}
	return response.Success(c, materials)
}
