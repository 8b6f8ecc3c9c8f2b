package material

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/handlers"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/utils/middleware"
	"github.com/sahilchouksey/online-lms/utils/response"
	"github.com/sahilchouksey/online-lms/utils/validation"
)

// MaterialHandler handles lecture material uploads
type MaterialHandler struct {
	materials *services.MaterialService
	validator *validation.Validator
}

func NewMaterialHandler(materials *services.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		materials: materials,
		validator: validation.NewValidator(),
	}
}

// UploadMaterial handles POST /api/mentor/materials/upload
//
// Multipart fields: file, topic_id, material_type, title.
func (h *MaterialHandler) UploadMaterial(c *fiber.Ctx) error {
	mentorID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req services.UploadMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.TopicID == 0 {
		req.TopicID = handlers.FormUint(c, "topic_id")
	}
	if req.MaterialType == "" {
		req.MaterialType = handlers.FormValue(c, "materialType", "material_type")
	}
	req.Title = validation.SanitizeString(req.Title)
	req.MaterialType = validation.SanitizeString(req.MaterialType)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	file, closeFile, err := handlers.FormFile(c, "file")
	if err != nil {
		return err
	}
	defer closeFile()

	material, err := h.materials.Upload(c.UserContext(), mentorID, req, file)
	if err != nil {
		return err
	}

	return response.Success(c, material)
}
