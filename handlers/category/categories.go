package category

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/utils/response"
	"github.com/sahilchouksey/online-lms/utils/validation"
)

type CategoryHandler struct {
	categories *services.CategoryService
	validator  *validation.Validator
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		validator:  validation.NewValidator(),
	}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, list)
}

// CreateCategory handles POST /api/admin/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req services.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = validation.SanitizeString(req.Name)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	cat, err := h.categories.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return response.Created(c, cat)
}
