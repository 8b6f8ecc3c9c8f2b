package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/services/storage"
	"github.com/sahilchouksey/online-lms/utils/apperr"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"github.com/sahilchouksey/online-lms/utils/pdfvalidation"
)

// MaterialService stores lecture materials on topics
type MaterialService struct {
	store database.Storage
	files storage.Store
	log   *logger.Logger
}

func NewMaterialService(store database.Storage, files storage.Store, log *logger.Logger) *MaterialService {
	return &MaterialService{store: store, files: files, log: log}
}

// UploadMaterialRequest is the multipart form accompanying the material file
type UploadMaterialRequest struct {
	TopicID      uint   `form:"topicId" validate:"required"`
	MaterialType string `form:"type" validate:"required,max=50"`
	Title        string `form:"title" validate:"required,max=255"`
}

// Upload checks that mentorID owns the topic's course, stores the file and records it
func (s *MaterialService) Upload(ctx context.Context, mentorID uint, req UploadMaterialRequest, file *storage.Upload) (*model.LectureMaterial, error) {
	owner, err := database.TopicOwner(ctx, s.store.GetDB(), req.TopicID)
	if err != nil {
		return nil, apperr.Internal("Failed to load topic.", err)
	}
	if !owner.Found {
		return nil, apperr.NotFound("Topic not found.")
	}
	if !owner.OwnedBy(mentorID) {
		return nil, apperr.Forbidden("Not your topic.")
	}

	if file == nil || file.Body == nil || file.Size == 0 {
		return nil, apperr.BadRequest("File is required.")
	}

	material := &model.LectureMaterial{
		TopicID:      req.TopicID,
		MaterialType: model.MaterialType(req.MaterialType),
		Title:        req.Title,
	}

	if strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		res, err := pdfvalidation.ValidatePDF(file.Body, pdfvalidation.MaterialLimits)
		if err != nil {
			return nil, apperr.Internal("Failed to read file.", err)
		}
		if !res.Valid {
			return nil, apperr.BadRequest(res.Error)
		}
		material.PageCount = res.PageCount
	}

	url, err := s.files.Upload(ctx, *file)
	if err != nil {
		return nil, apperr.Internal("Failed to upload material.", err)
	}
	material.MaterialURL = url

	uow := s.store.NewUnitOfWork()
	uow.Add(material)
	if err := uow.Commit(ctx); err != nil {
		return nil, apperr.Internal("Failed to save material.", err)
	}

	s.log.Info("material uploaded", "material_id", material.ID, "topic_id", req.TopicID, "mentor_id", mentorID)
	return material, nil
}
