package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/utils/middleware"
	"github.com/sahilchouksey/online-lms/utils/response"
)

// Logout handles POST /api/auth/logout by revoking the presented token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	if err := h.revoker.Revoke(c.UserContext(), claims.ID, claims.ExpiresAt.Time); err != nil {
		h.log.Error("token revocation failed", "user_id", claims.UserID, "error", err)
		return response.InternalServerError(c, "Failed to revoke token")
	}

	return response.SuccessWithMessage(c, "Logged out successfully.", nil)
}
