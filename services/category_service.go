package services

import (
	"context"
	"strings"

	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/utils/apperr"
)

// CategoryService lists and creates course categories
type CategoryService struct {
	store database.Storage
}

func NewCategoryService(store database.Storage) *CategoryService {
	return &CategoryService{store: store}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	cats, err := database.List[model.Category](ctx, s.store.GetDB(), "name ASC", nil)
	if err != nil {
		return nil, apperr.Internal("Failed to load categories.", err)
	}
	return cats, nil
}

// Create adds a category; names are unique ignoring surrounding whitespace
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	exists, err := database.Exists[model.Category](ctx, s.store.GetDB(), "name = ?", name)
	if err != nil {
		return nil, apperr.Internal("Failed to create category.", err)
	}
	if exists {
		return nil, apperr.Conflict("Category already exists.")
	}

	cat := &model.Category{Name: name, Description: req.Description}
	uow := s.store.NewUnitOfWork()
	uow.Add(cat)
	if err := uow.Commit(ctx); err != nil {
		return nil, apperr.Internal("Failed to create category.", err)
	}
	return cat, nil
}
