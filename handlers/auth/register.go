package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/services"
	authutil "github.com/sahilchouksey/online-lms/utils/auth"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"github.com/sahilchouksey/online-lms/utils/middleware"
	"github.com/sahilchouksey/online-lms/utils/response"
	"github.com/sahilchouksey/online-lms/utils/validation"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	users                *services.UserService
	jwtManager           *authutil.JWTManager
	revoker              authutil.Revoker
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
	log                  *logger.Logger
}

// NewAuthHandler creates a new auth handler. bruteForceProtection may be nil.
func NewAuthHandler(users *services.UserService, jwtManager *authutil.JWTManager, revoker authutil.Revoker, bruteForceProtection *middleware.BruteForceProtection, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:                users,
		jwtManager:           jwtManager,
		revoker:              revoker,
		bruteForceProtection: bruteForceProtection,
		validator:            validation.NewValidator(),
		log:                  log,
	}
}

// TokenResponse is returned by register and login
type TokenResponse struct {
	User        model.Profile `json:"user"`
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int           `json:"expires_in"` // in seconds
}

func (h *AuthHandler) issue(user *model.User) (*TokenResponse, error) {
	token, _, expiresAt, err := h.jwtManager.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		h.log.Error("token generation failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	return &TokenResponse{
		User:        user.ToProfile(),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(expiresAt).Seconds()),
	}, nil
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.FirstName = validation.SanitizeString(req.FirstName)
	req.LastName = validation.SanitizeString(req.LastName)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if ok, problems := validation.ValidatePassword(req.Password); !ok {
		return response.BadRequest(c, strings.Join(problems, "; "))
	}

	user, err := h.users.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	res, err := h.issue(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	return response.Created(c, res)
}
