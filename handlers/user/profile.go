package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/handlers"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/utils/middleware"
	"github.com/sahilchouksey/online-lms/utils/response"
)

// ProfileHandler handles /api/users requests
type ProfileHandler struct {
	users *services.UserService
}

func NewProfileHandler(users *services.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// GetProfile handles GET /api/users/:id
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, profile)
}

// UpdateProfile handles PUT /api/users/:id. Fields missing from the body are kept.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	callerRole, _ := middleware.GetUserRole(c)

	id, err := handlers.ParamID(c, "id")
	if err != nil {
		return err
	}

	var patch model.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.users.Update(c.UserContext(), callerID, callerRole, id, patch)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(c, "Profile updated.", user.ToProfile())
}
