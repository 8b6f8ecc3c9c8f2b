package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/utils/apperr"
	"github.com/sahilchouksey/online-lms/utils/response"
)

// LoginRequest accepts either an email or a username
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if req.identifier() == "" {
		return response.BadRequest(c, "Email or username is required")
	}

	ip := c.IP()

	user, err := h.users.Authenticate(c.UserContext(), req.identifier(), req.Password)
	if err != nil {
		if apperr.Is(err, apperr.KindUnauthorized) && h.bruteForceProtection != nil {
			_ = h.bruteForceProtection.RecordFailedAttempt(c, ip, req.identifier())
		}
		return err
	}

	// Clear failed attempts on successful login
	if h.bruteForceProtection != nil {
		_ = h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	res, err := h.issue(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	return response.Success(c, res)
}
