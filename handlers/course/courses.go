package course

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/handlers"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/utils/middleware"
	"github.com/sahilchouksey/online-lms/utils/response"
	"github.com/sahilchouksey/online-lms/utils/validation"
)

// CourseHandler handles mentor course requests
type CourseHandler struct {
	courses   *services.CourseService
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courses *services.CourseService) *CourseHandler {
	return &CourseHandler{
		courses:   courses,
		validator: validation.NewValidator(),
	}
}

// CreateCourse handles POST /api/mentor/courses (multipart, optional "thumbnail" file)
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	mentorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req services.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CategoryID == 0 {
		req.CategoryID = handlers.FormUint(c, "category_id")
	}
	if req.ExtraNote == "" {
		req.ExtraNote = handlers.FormValue(c, "extra_note")
	}

	// Sanitize inputs
	req.Title = validation.SanitizeString(req.Title)
	req.Description = validation.SanitizeString(req.Description)
	req.ExtraNote = validation.SanitizeString(req.ExtraNote)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	thumbnail, closeFile, err := handlers.FormFile(c, "thumbnail")
	if err != nil {
		return err
	}
	defer closeFile()

	course, err := h.courses.Create(c.UserContext(), mentorID, req, thumbnail)
	if err != nil {
		return err
	}

	return response.Success(c, course)
}

// ListMyCourses handles GET /api/mentor/courses/my
func (h *CourseHandler) ListMyCourses(c *fiber.Ctx) error {
	mentorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courses, err := h.courses.ListByMentor(c.UserContext(), mentorID)
	if err != nil {
		return err
	}

	return response.Success(c, courses)
}

// UpdateCourse handles PUT /api/mentor/courses/:courseId
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	mentorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := handlers.ParamID(c, "courseId")
	if err != nil {
		return err
	}

	var req services.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	req.Description = validation.SanitizeString(req.Description)
	req.ExtraNote = validation.SanitizeString(req.ExtraNote)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	course, err := h.courses.Update(c.UserContext(), courseID, mentorID, req)
	if err != nil {
		return err
	}

	return response.Success(c, course)
}

// DeleteCourse handles DELETE /api/mentor/courses/:courseId
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	mentorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseID, err := handlers.ParamID(c, "courseId")
	if err != nil {
		return err
	}

	if err := h.courses.Delete(c.UserContext(), courseID, mentorID); err != nil {
		return err
	}

	return response.SuccessWithMessage(c, "Course deleted.", nil)
}
