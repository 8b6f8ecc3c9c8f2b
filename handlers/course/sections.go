package course

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/handlers"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/utils/middleware"
	"github.com/sahilchouksey/online-lms/utils/response"
	"github.com/sahilchouksey/online-lms/utils/validation"
)

// CreateSection handles POST /api/mentor/courses/:courseId/sections
func (h *CourseHandler) CreateSection(c *fiber.Ctx) error {
	mentorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	courseID, err := handlers.ParamID(c, "courseId")
	if err != nil {
		return err
	}

	var req services.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	section, err := h.courses.CreateSection(c.UserContext(), courseID, mentorID, req)
	if err != nil {
		return err
	}
	return response.Created(c, section)
}

// ListSections handles GET /api/mentor/courses/:courseId/sections
func (h *CourseHandler) ListSections(c *fiber.Ctx) error {
	mentorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	courseID, err := handlers.ParamID(c, "courseId")
	if err != nil {
		return err
	}

	sections, err := h.courses.ListSections(c.UserContext(), courseID, mentorID)
	if err != nil {
		return err
	}
	return response.Success(c, sections)
}

// CreateTopic handles POST /api/mentor/sections/:sectionId/topics
func (h *CourseHandler) CreateTopic(c *fiber.Ctx) error {
	mentorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	sectionID, err := handlers.ParamID(c, "sectionId")
	if err != nil {
		return err
	}

	var req services.CreateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Title = validation.SanitizeString(req.Title)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	topic, err := h.courses.CreateTopic(c.UserContext(), sectionID, mentorID, req)
	if err != nil {
		return err
	}
	return response.Created(c, topic)
}
