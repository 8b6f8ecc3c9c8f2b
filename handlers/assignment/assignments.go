package assignment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/handlers"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/utils/middleware"
	"github.com/sahilchouksey/online-lms/utils/response"
	"github.com/sahilchouksey/online-lms/utils/validation"
)

// AssignmentHandler serves both the student and the mentor assignment routes
type AssignmentHandler struct {
	assignments *services.AssignmentService
	validator   *validation.Validator
}

func NewAssignmentHandler(assignments *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignments: assignments,
		validator:   validation.NewValidator(),
	}
}

// ListForCourse handles GET /api/student/assignments/course/:courseId
func (h *AssignmentHandler) ListForCourse(c *fiber.Ctx) error {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	courseID, err := handlers.ParamID(c, "courseId")
	if err != nil {
		return err
	}

	list, err := h.assignments.ListForCourse(c.UserContext(), studentID, courseID)
	if err != nil {
		return err
	}
	return response.Success(c, list)
}

// Submit handles POST /api/student/assignments/:assignmentId/submit
func (h *AssignmentHandler) Submit(c *fiber.Ctx) error {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	assignmentID, err := handlers.ParamID(c, "assignmentId")
	if err != nil {
		return err
	}

	file, closeFile, err := handlers.FormFile(c, "file")
	if err != nil {
		return err
	}
	defer closeFile()

	sub, err := h.assignments.Submit(c.UserContext(), studentID, assignmentID, file)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(c, "Submitted successfully.", sub)
}

// MySubmissions handles GET /api/student/assignments/my-submissions
func (h *AssignmentHandler) MySubmissions(c *fiber.Ctx) error {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	subs, err := h.assignments.MySubmissions(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	return response.Success(c, subs)
}

// Create handles POST /api/mentor/courses/:courseId/assignments
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	mentorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	courseID, err := handlers.ParamID(c, "courseId")
	if err != nil {
		return err
	}

	var req services.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	a, err := h.assignments.Create(c.UserContext(), courseID, mentorID, req)
	if err != nil {
		return err
	}
	return response.Created(c, a)
}
