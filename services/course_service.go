package services

import (
	"context"
	"encoding/json"

	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/services/storage"
	"github.com/sahilchouksey/online-lms/utils/apperr"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"gorm.io/gorm"
)

// CourseService manages mentor-owned courses and their sections and topics
type CourseService struct {
	store database.Storage
	files storage.Store
	log   *logger.Logger
}

// NewCourseService creates a new course service
func NewCourseService(store database.Storage, files storage.Store, log *logger.Logger) *CourseService {
	return &CourseService{store: store, files: files, log: log}
}

// CreateCourseRequest is the multipart form for a new course
type CreateCourseRequest struct {
	Title       string `form:"title" json:"title" validate:"required,max=255"`
	Description string `form:"description" json:"description"`
	CategoryID  uint   `form:"categoryId" json:"categoryId" validate:"required"`
	ExtraNote   string `form:"extraNote" json:"extraNote"`
}

// UpdateCourseRequest overwrites every mutable course field
type UpdateCourseRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	CategoryID  uint   `json:"categoryId" validate:"required"`
	ExtraNote   string `json:"extraNote"`
}

// UnmarshalJSON also accepts the snake_case keys older clients send
func (r *UpdateCourseRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateCourseRequest
	aux := struct {
		*plain
		SnakeCategoryID uint   `json:"category_id"`
		SnakeExtraNote  string `json:"extra_note"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.CategoryID == 0 {
		r.CategoryID = aux.SnakeCategoryID
	}
	if r.ExtraNote == "" {
		r.ExtraNote = aux.SnakeExtraNote
	}
	return nil
}

type CreateSectionRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Position int    `json:"position" validate:"gte=0"`
}

type CreateTopicRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Position int    `json:"position" validate:"gte=0"`
}

func (s *CourseService) category(ctx context.Context, id uint) (*model.Category, error) {
	cat, err := database.Find[model.Category](ctx, s.store.GetDB(), "id = ?", id)
	if err != nil {
		return nil, apperr.Internal("Failed to load category.", err)
	}
	if cat == nil {
		return nil, apperr.NotFound("Category not found.")
	}
	return cat, nil
}

// Create uploads the optional thumbnail and inserts a course owned by mentorID
func (s *CourseService) Create(ctx context.Context, mentorID uint, req CreateCourseRequest, thumbnail *storage.Upload) (*model.Course, error) {
	cat, err := s.category(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		MentorID:    mentorID,
		ExtraNote:   req.ExtraNote,
	}

	if thumbnail != nil {
		url, err := s.files.Upload(ctx, *thumbnail)
		if err != nil {
			return nil, apperr.Internal("Failed to upload thumbnail.", err)
		}
		course.ThumbnailURL = &url
	}

	uow := s.store.NewUnitOfWork()
	uow.Add(course)
	if err := uow.Commit(ctx); err != nil {
		// an uploaded thumbnail is left behind
		return nil, apperr.Internal("Failed to create course.", err)
	}

	course.Category = cat
	s.log.Info("course created", "course_id", course.ID, "mentor_id", mentorID)
	return course, nil
}

// ListByMentor returns the mentor's courses, newest first
func (s *CourseService) ListByMentor(ctx context.Context, mentorID uint) ([]model.Course, error) {
	courses, err := database.List[model.Course](ctx, s.store.GetDB().Preload("Category"), "id DESC", "mentor_id = ?", mentorID)
	if err != nil {
		return nil, apperr.Internal("Failed to load courses.", err)
	}
	return courses, nil
}

func (s *CourseService) owned(ctx context.Context, courseID, mentorID uint) (*model.Course, error) {
	return findOwnedCourse(ctx, s.store, courseID, mentorID)
}

// findOwnedCourse loads a course only when mentorID owns it; anything else is reported as not found
func findOwnedCourse(ctx context.Context, store database.Storage, courseID, mentorID uint) (*model.Course, error) {
	course, err := database.Find[model.Course](ctx, store.GetDB(), "id = ? AND mentor_id = ?", courseID, mentorID)
	if err != nil {
		return nil, apperr.Internal("Failed to load course.", err)
	}
	if course == nil {
		return nil, apperr.NotFound("Course not found.")
	}
	return course, nil
}

// Update overwrites the mutable fields of an owned course
func (s *CourseService) Update(ctx context.Context, courseID, mentorID uint, req UpdateCourseRequest) (*model.Course, error) {
	course, err := s.owned(ctx, courseID, mentorID)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != course.CategoryID {
		if _, err := s.category(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	course.Title = req.Title
	course.Description = req.Description
	course.CategoryID = req.CategoryID
	course.ExtraNote = req.ExtraNote

	uow := s.store.NewUnitOfWork()
	uow.Update(course)
	if err := uow.Commit(ctx); err != nil {
		return nil, apperr.Internal("Failed to update course.", err)
	}
	return course, nil
}

// Delete soft-deletes an owned course
func (s *CourseService) Delete(ctx context.Context, courseID, mentorID uint) error {
	course, err := s.owned(ctx, courseID, mentorID)
	if err != nil {
		return err
	}

	uow := s.store.NewUnitOfWork()
	uow.Remove(course)
	if err := uow.Commit(ctx); err != nil {
		return apperr.Internal("Failed to delete course.", err)
	}
	s.log.Info("course deleted", "course_id", courseID, "mentor_id", mentorID)
	return nil
}

// CreateSection adds a section to an owned course
func (s *CourseService) CreateSection(ctx context.Context, courseID, mentorID uint, req CreateSectionRequest) (*model.Section, error) {
	if _, err := s.owned(ctx, courseID, mentorID); err != nil {
		return nil, err
	}

	section := &model.Section{CourseID: courseID, Title: req.Title, Position: req.Position}
	uow := s.store.NewUnitOfWork()
	uow.Add(section)
	if err := uow.Commit(ctx); err != nil {
		return nil, apperr.Internal("Failed to create section.", err)
	}
	return section, nil
}

// ListSections returns the sections of an owned course with their topics
func (s *CourseService) ListSections(ctx context.Context, courseID, mentorID uint) ([]model.Section, error) {
	if _, err := s.owned(ctx, courseID, mentorID); err != nil {
		return nil, err
	}

	db := s.store.GetDB().Preload("Topics", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC, id ASC")
	})
	sections, err := database.List[model.Section](ctx, db, "position ASC, id ASC", "course_id = ?", courseID)
	if err != nil {
		return nil, apperr.Internal("Failed to load sections.", err)
	}
	return sections, nil
}

// CreateTopic adds a topic to a section of an owned course
func (s *CourseService) CreateTopic(ctx context.Context, sectionID, mentorID uint, req CreateTopicRequest) (*model.SectionTopic, error) {
	owner, err := database.SectionOwner(ctx, s.store.GetDB(), sectionID)
	if err != nil {
		return nil, apperr.Internal("Failed to load section.", err)
	}
	if !owner.Found {
		return nil, apperr.NotFound("Section not found.")
	}
	if !owner.OwnedBy(mentorID) {
		return nil, apperr.Forbidden("Not your section.")
	}

	topic := &model.SectionTopic{SectionID: sectionID, Title: req.Title, Position: req.Position}
	uow := s.store.NewUnitOfWork()
	uow.Add(topic)
	if err := uow.Commit(ctx); err != nil {
		return nil, apperr.Internal("Failed to create topic.", err)
	}
	return topic, nil
}
