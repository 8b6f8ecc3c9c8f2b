package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/services/storage"
	"github.com/sahilchouksey/online-lms/utils/apperr"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"gorm.io/datatypes"
)

// AssignmentService handles assignment publishing and student submissions
type AssignmentService struct {
	store database.Storage
	files storage.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewAssignmentService(store database.Storage, files storage.Store, log *logger.Logger) *AssignmentService {
	return &AssignmentService{store: store, files: files, log: log, now: time.Now}
}

// DefaultMaxScore applies when max_score is left out of the request
const DefaultMaxScore = 100

type CreateAssignmentRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"due_date"`
	MaxScore    *int            `json:"max_score" validate:"omitempty,gte=0"`
	Metadata    json.RawMessage `json:"metadata"`
}

// Create publishes an assignment on a course owned by mentorID
func (s *AssignmentService) Create(ctx context.Context, courseID, mentorID uint, req CreateAssignmentRequest) (*model.Assignment, error) {
	if _, err := findOwnedCourse(ctx, s.store, courseID, mentorID); err != nil {
		return nil, err
	}

	a := &model.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		MaxScore:    DefaultMaxScore,
	}
	if req.MaxScore != nil {
		a.MaxScore = *req.MaxScore
	}
	if len(req.Metadata) > 0 && string(req.Metadata) != "null" {
		a.Metadata = datatypes.JSON(req.Metadata)
	}

	uow := s.store.NewUnitOfWork()
	uow.Add(a)
	if err := uow.Commit(ctx); err != nil {
		return nil, apperr.Internal("Failed to create assignment.", err)
	}
	return a, nil
}

func (s *AssignmentService) enrolled(ctx context.Context, studentID, courseID uint) error {
	ok, err := database.Exists[model.Enrollment](ctx, s.store.GetDB(), "course_id = ? AND student_id = ?", courseID, studentID)
	if err != nil {
		return apperr.Internal("Failed to check enrollment.", err)
	}
	if !ok {
		return apperr.Forbidden("Enroll first.")
	}
	return nil
}

// ListForCourse returns a course's assignments, newest first, to an enrolled student
func (s *AssignmentService) ListForCourse(ctx context.Context, studentID, courseID uint) ([]model.Assignment, error) {
	if err := s.enrolled(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	list, err := database.List[model.Assignment](ctx, s.store.GetDB(), "id DESC", "course_id = ?", courseID)
	if err != nil {
		return nil, apperr.Internal("Failed to load assignments.", err)
	}
	return list, nil
}

// Submit stores the file and records a submission for an enrolled student
func (s *AssignmentService) Submit(ctx context.Context, studentID, assignmentID uint, file *storage.Upload) (*model.AssignmentSubmission, error) {
	if file == nil || file.Body == nil || file.Size == 0 {
		return nil, apperr.BadRequest("File is required.")
	}

	a, err := database.Find[model.Assignment](ctx, s.store.GetDB(), "id = ?", assignmentID)
	if err != nil {
		return nil, apperr.Internal("Failed to load assignment.", err)
	}
	if a == nil {
		return nil, apperr.NotFound("Assignment not found.")
	}

	if err := s.enrolled(ctx, studentID, a.CourseID); err != nil {
		return nil, err
	}

	url, err := s.files.Upload(ctx, *file)
	if err != nil {
		return nil, apperr.Internal("Failed to store submission.", err)
	}

	sub := &model.AssignmentSubmission{
		AssignmentID:  assignmentID,
		StudentID:     studentID,
		SubmissionURL: url,
		SubmittedAt:   s.now().UTC(),
	}

	uow := s.store.NewUnitOfWork()
	uow.Add(sub)
	if err := uow.Commit(ctx); err != nil {
		return nil, apperr.Internal("Failed to save submission.", err)
	}

	s.log.Info("assignment submitted", "submission_id", sub.ID, "assignment_id", assignmentID, "student_id", studentID)
	return sub, nil
}

// MySubmissions lists the student's submissions with assignment titles, newest first
func (s *AssignmentService) MySubmissions(ctx context.Context, studentID uint) ([]model.SubmissionSummary, error) {
	subs, err := database.List[model.AssignmentSubmission](ctx,
		s.store.GetDB().Preload("Assignment"),
		"submitted_at DESC, id DESC",
		"student_id = ?", studentID)
	if err != nil {
		return nil, apperr.Internal("Failed to load submissions.", err)
	}

	out := make([]model.SubmissionSummary, 0, len(subs))
	for _, sub := range subs {
		summary := model.SubmissionSummary{
			SubmissionID:  sub.ID,
			AssignmentID:  sub.AssignmentID,
			SubmissionURL: sub.SubmissionURL,
			SubmittedAt:   sub.SubmittedAt,
		}
		if sub.Assignment != nil {
			summary.AssignmentTitle = sub.Assignment.Title
		}
		out = append(out, summary)
	}
	return out, nil
}
