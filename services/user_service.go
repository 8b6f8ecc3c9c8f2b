package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/utils/apperr"
	"github.com/sahilchouksey/online-lms/utils/auth"
	"github.com/sahilchouksey/online-lms/utils/logger"
)

// UserService handles accounts and profiles
type UserService struct {
	store database.Storage
	log   *logger.Logger
}

func NewUserService(store database.Storage, log *logger.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	FirstName        string     `json:"first_name" validate:"required,max=100"`
	LastName         string     `json:"last_name" validate:"max=100"`
	Email            string     `json:"email" validate:"required,email,max=255"`
	Username         string     `json:"username" validate:"required,username"`
	Password         string     `json:"password" validate:"required,min=8"`
	Role             string     `json:"role" validate:"required"`
	MobileNumber     string     `json:"mobile_number" validate:"max=30"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	HighestEducation string     `json:"highest_education" validate:"max=255"`
}

func (s *UserService) find(ctx context.Context, id uint) (*model.User, error) {
	user, err := database.Find[model.User](ctx, s.store.GetDB(), "id = ?", id)
	if err != nil {
		return nil, apperr.Internal("Failed to load user.", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found.")
	}
	return user, nil
}

// Get returns the public profile of a user
func (s *UserService) Get(ctx context.Context, id uint) (*model.Profile, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	p := user.ToProfile()
	return &p, nil
}

// Update applies patch to user id. Only the user themself or an admin may do this.
func (s *UserService) Update(ctx context.Context, callerID uint, callerRole model.Role, id uint, patch model.ProfilePatch) (*model.User, error) {
	if callerID != id && callerRole != model.RoleAdmin {
		return nil, apperr.Forbidden("You can only update your own profile.")
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)

	uow := s.store.NewUnitOfWork()
	uow.Update(user)
	if err := uow.Commit(ctx); err != nil {
		s.log.Error("profile update failed", "user_id", id, "error", err)
		return nil, apperr.Internal("Failed to update profile.", err)
	}
	return user, nil
}

// Register creates a Student or Mentor account
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	role, ok := model.ParseRole(req.Role)
	if !ok || role == model.RoleAdmin {
		return nil, apperr.BadRequest("Role must be Student or Mentor.")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	db := s.store.GetDB()

	taken, err := database.Exists[model.User](ctx, db, "email = ?", email)
	if err != nil {
		return nil, apperr.Internal("Failed to create account.", err)
	}
	if taken {
		return nil, apperr.Conflict("Email already registered.")
	}
	taken, err = database.Exists[model.User](ctx, db, "username = ?", req.Username)
	if err != nil {
		return nil, apperr.Internal("Failed to create account.", err)
	}
	if taken {
		return nil, apperr.Conflict("Username already taken.")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, apperr.BadRequest(err.Error())
		}
		return nil, apperr.Internal("Failed to create account.", err)
	}

	user := &model.User{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            email,
		Username:         req.Username,
		PasswordHash:     hash,
		Role:             role,
		MobileNumber:     req.MobileNumber,
		DateOfBirth:      req.DateOfBirth,
		HighestEducation: req.HighestEducation,
	}

	uow := s.store.NewUnitOfWork()
	uow.Add(user)
	if err := uow.Commit(ctx); err != nil {
		return nil, apperr.Internal("Failed to create account.", err)
	}

	s.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Authenticate checks a password against the account found by email or username
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := database.Find[model.User](ctx, s.store.GetDB(),
		"email = ? OR username = ?", strings.ToLower(identifier), identifier)
	if err != nil {
		return nil, apperr.Internal("Failed to sign in.", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("Invalid credentials.")
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, apperr.Unauthorized("Invalid credentials.")
	}
	return user, nil
}
