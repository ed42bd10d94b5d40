package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/parsuni/registry-api/internal/models"
	"github.com/parsuni/registry-api/internal/repository"
	"github.com/parsuni/registry-api/internal/validation"
	appErrors "github.com/parsuni/registry-api/pkg/errors"
)

const courseCachePattern = "courses:list:*"

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id string, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// teacherLookup is the slice of the teacher store the course service needs
// for its reference check.
type teacherLookup interface {
	ExistsByTeacherID(ctx context.Context, teacherID string) (bool, error)
}

// CourseRequest holds the full payload for creating or updating a course.
type CourseRequest struct {
	Name       string `json:"name" validate:"required"`
	Units      int    `json:"units" validate:"required"`
	Department string `json:"department" validate:"required"`
	TeacherID  string `json:"teacher_id" validate:"required"`
}

type cachedCourseList struct {
	Items []models.Course `json:"items"`
	Total int             `json:"total"`
}

// CourseService handles course use-cases.
type CourseService struct {
	repo      courseRepository
	teachers  teacherLookup
	cache     *repository.CacheRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, teachers teacherLookup, cache *repository.CacheRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, teachers: teachers, cache: cache, metrics: metrics, validator: validate, logger: logger, cacheTTL: cacheTTL}
}

// List returns courses and pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	key := fmt.Sprintf("courses:list:%s|%s|%d|%d", filter.Department, filter.Search, filter.Limit, filter.Offset)
	var cached cachedCourseList
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.metrics.RecordCacheLookup(true)
		return cached.Items, &models.Pagination{Limit: filter.Limit, Offset: filter.Offset, TotalCount: cached.Total}, nil
	}
	s.metrics.RecordCacheLookup(false)

	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}

	if s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, cachedCourseList{Items: courses, Total: total}, s.cacheTTL); err != nil {
			s.logger.Warn("course list cache set failed", zap.Error(err))
		}
	}

	return courses, &models.Pagination{Limit: filter.Limit, Offset: filter.Offset, TotalCount: total}, nil
}

// Get returns one course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "درس یافت نشد")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load course")
	}
	return course, nil
}

// Create registers a new course. The referenced teacher must exist at
// creation time. Domain rules run before the struct-shape guard so a zero
// value such as units 0 surfaces its field message, not the generic one.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	course := courseFromRequest(req)
	if v := validation.Course(course); v != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, v.Message)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	if err := s.checkTeacherExists(ctx, course.TeacherID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "خطا در ذخیره درس")
	}

	s.invalidate(ctx)
	return course, nil
}

// Update replaces the course stored under id with a fully revalidated record.
// The teacher reference may change, so existence is re-checked.
func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest) (*models.Course, error) {
	course := courseFromRequest(req)
	if v := validation.Course(course); v != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, v.Message)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "درس یافت نشد")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load course")
	}

	if err := s.checkTeacherExists(ctx, course.TeacherID); err != nil {
		return nil, err
	}

	course.ID = id
	course.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, id, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "خطا در به‌روزرسانی درس")
	}

	s.invalidate(ctx)
	return course, nil
}

// Delete removes a course record.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "درس یافت نشد")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load course")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "خطا در حذف درس")
	}
	s.invalidate(ctx)
	return nil
}

func (s *CourseService) checkTeacherExists(ctx context.Context, teacherID string) error {
	exists, err := s.teachers.ExistsByTeacherID(ctx, teacherID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check teacher reference")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrMissingReference, "استاد یافت نشد")
	}
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if err := s.cache.DeleteByPattern(ctx, courseCachePattern); err != nil {
		s.logger.Warn("course list cache invalidation failed", zap.Error(err))
	}
}

func courseFromRequest(req CourseRequest) *models.Course {
	return &models.Course{
		Name:       req.Name,
		Units:      req.Units,
		Department: req.Department,
		TeacherID:  req.TeacherID,
	}
}
