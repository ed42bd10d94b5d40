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
	"github.com/parsuni/registry-api/pkg/database"
	appErrors "github.com/parsuni/registry-api/pkg/errors"
)

const teacherCachePattern = "teachers:list:*"

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error)
	ExistsByNationalID(ctx context.Context, nationalID string, excludeTeacherID string) (bool, error)
	ExistsByTeacherID(ctx context.Context, teacherID string) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacherID string, teacher *models.Teacher) error
	Delete(ctx context.Context, teacherID string) error
}

// TeacherRequest holds the full payload for creating or updating a teacher.
// The teacher id is never part of the payload; it is allocator assigned on
// create and immutable on update.
type TeacherRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	FatherName   string `json:"father_name" validate:"required"`
	SerialNumber string `json:"serial_number" validate:"required"`
	SerialLetter string `json:"serial_letter" validate:"required"`
	SerialCode   string `json:"serial_code" validate:"required"`
	BirthCity    string `json:"birth_city" validate:"required"`
	Address      string `json:"address"`
	PostalCode   string `json:"postal_code" validate:"required"`
	HomePhone    string `json:"home_phone" validate:"required"`
	Department   string `json:"department" validate:"required"`
	NationalID   string `json:"national_id" validate:"required"`
	BirthDate    string `json:"birth_date" validate:"required"`
}

type cachedTeacherList struct {
	Items []models.Teacher `json:"items"`
	Total int              `json:"total"`
}

// TeacherService handles teacher use-cases.
type TeacherService struct {
	repo      teacherRepository
	allocator *TeacherIDAllocator
	cache     *repository.CacheRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(repo teacherRepository, allocator *TeacherIDAllocator, cache *repository.CacheRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, allocator: allocator, cache: cache, metrics: metrics, validator: validate, logger: logger, cacheTTL: cacheTTL}
}

// List returns teachers and pagination metadata.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	key := fmt.Sprintf("teachers:list:%s|%s|%d|%d", filter.Department, filter.Search, filter.Limit, filter.Offset)
	var cached cachedTeacherList
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.metrics.RecordCacheLookup(true)
		return cached.Items, &models.Pagination{Limit: filter.Limit, Offset: filter.Offset, TotalCount: cached.Total}, nil
	}
	s.metrics.RecordCacheLookup(false)

	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list teachers")
	}
	if teachers == nil {
		teachers = []models.Teacher{}
	}

	if s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, cachedTeacherList{Items: teachers, Total: total}, s.cacheTTL); err != nil {
			s.logger.Warn("teacher list cache set failed", zap.Error(err))
		}
	}

	return teachers, &models.Pagination{Limit: filter.Limit, Offset: filter.Offset, TotalCount: total}, nil
}

// Get returns one teacher by teacher id.
func (s *TeacherService) Get(ctx context.Context, teacherID string) (*models.Teacher, error) {
	teacher, err := s.repo.FindByTeacherID(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "استاد یافت نشد")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load teacher")
	}
	return teacher, nil
}

// Create registers a new teacher: validation pass, national-id uniqueness,
// then a fresh teacher id from the allocator. Domain rules run before the
// struct-shape guard so an empty field surfaces its own Persian message.
func (s *TeacherService) Create(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	teacher := teacherFromRequest(req)
	if v := validation.Teacher(teacher); v != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, v.Message)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	exists, err := s.repo.ExistsByNationalID(ctx, teacher.NationalID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check national id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "کدملی قبلاً ثبت شده است")
	}

	teacherID, err := s.allocator.Allocate(ctx)
	if err != nil {
		return nil, err
	}
	teacher.TeacherID = teacherID

	if err := s.repo.Create(ctx, teacher); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "کدملی یا شماره استاد قبلاً ثبت شده است")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "خطا در ذخیره استاد")
	}

	s.invalidate(ctx)
	return teacher, nil
}

// Update replaces the teacher stored under teacherID with a fully revalidated
// record; the teacher id itself stays fixed.
func (s *TeacherService) Update(ctx context.Context, teacherID string, req TeacherRequest) (*models.Teacher, error) {
	teacher := teacherFromRequest(req)
	if v := validation.Teacher(teacher); v != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, v.Message)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	current, err := s.repo.FindByTeacherID(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "استاد یافت نشد")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load teacher")
	}

	exists, err := s.repo.ExistsByNationalID(ctx, teacher.NationalID, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check national id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "کدملی قبلاً ثبت شده است")
	}

	teacher.TeacherID = teacherID
	teacher.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, teacherID, teacher); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "کدملی قبلاً ثبت شده است")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "خطا در به‌روزرسانی استاد")
	}

	s.invalidate(ctx)
	return teacher, nil
}

// Delete removes a teacher record. Courses referencing it are left with a
// dangling teacher id; no cascade rule exists.
func (s *TeacherService) Delete(ctx context.Context, teacherID string) error {
	if _, err := s.repo.FindByTeacherID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "استاد یافت نشد")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load teacher")
	}
	if err := s.repo.Delete(ctx, teacherID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "خطا در حذف استاد")
	}
	s.invalidate(ctx)
	return nil
}

func (s *TeacherService) invalidate(ctx context.Context) {
	if err := s.cache.DeleteByPattern(ctx, teacherCachePattern); err != nil {
		s.logger.Warn("teacher list cache invalidation failed", zap.Error(err))
	}
}

func teacherFromRequest(req TeacherRequest) *models.Teacher {
	return &models.Teacher{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		FatherName:   req.FatherName,
		SerialNumber: req.SerialNumber,
		SerialLetter: req.SerialLetter,
		SerialCode:   req.SerialCode,
		BirthCity:    req.BirthCity,
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		HomePhone:    req.HomePhone,
		Department:   req.Department,
		NationalID:   req.NationalID,
		BirthDate:    req.BirthDate,
	}
}
