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

const studentCachePattern = "students:list:*"

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindBySTID(ctx context.Context, stid string) (*models.Student, error)
	ExistsByNationalID(ctx context.Context, nationalID string, excludeSTID string) (bool, error)
	ExistsBySTID(ctx context.Context, stid string, excludeSTID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, stid string, student *models.Student) error
	Delete(ctx context.Context, stid string) error
}

// StudentRequest holds the full payload for creating or updating a student.
// Updates replace the stored record wholesale; there is no partial patch.
type StudentRequest struct {
	STID          string `json:"stid" validate:"required"`
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	FatherName    string `json:"father_name" validate:"required"`
	SerialNumber  string `json:"serial_number" validate:"required"`
	SerialLetter  string `json:"serial_letter" validate:"required"`
	SerialCode    string `json:"serial_code" validate:"required"`
	BirthCity     string `json:"birth_city" validate:"required"`
	Address       string `json:"address"`
	PostalCode    string `json:"postal_code" validate:"required"`
	HomePhone     string `json:"home_phone" validate:"required"`
	Department    string `json:"department" validate:"required"`
	Major         string `json:"major" validate:"required"`
	MaritalStatus string `json:"marital_status" validate:"required"`
	NationalID    string `json:"national_id" validate:"required"`
	BirthDate     string `json:"birth_date" validate:"required"`
}

type cachedStudentList struct {
	Items []models.Student `json:"items"`
	Total int              `json:"total"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	cache     *repository.CacheRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewStudentService constructs the student service. A nil cache disables list
// caching.
func NewStudentService(repo studentRepository, cache *repository.CacheRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, cacheTTL: cacheTTL}
}

// List returns students and pagination metadata. Results are served from the
// list cache when a fresh entry exists for the same filter and window.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	key := fmt.Sprintf("students:list:%s|%s|%s|%d|%d", filter.Department, filter.Major, filter.Search, filter.Limit, filter.Offset)
	var cached cachedStudentList
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.metrics.RecordCacheLookup(true)
		return cached.Items, &models.Pagination{Limit: filter.Limit, Offset: filter.Offset, TotalCount: cached.Total}, nil
	}
	s.metrics.RecordCacheLookup(false)

	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list students")
	}
	if students == nil {
		students = []models.Student{}
	}

	if s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, cachedStudentList{Items: students, Total: total}, s.cacheTTL); err != nil {
			s.logger.Warn("student list cache set failed", zap.Error(err))
		}
	}

	return students, &models.Pagination{Limit: filter.Limit, Offset: filter.Offset, TotalCount: total}, nil
}

// Get returns one student by student number.
func (s *StudentService) Get(ctx context.Context, stid string) (*models.Student, error) {
	student, err := s.repo.FindBySTID(ctx, stid)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "دانشجو یافت نشد")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a new student after the full validation pass and the
// uniqueness checks on national id and student number. Domain rules run
// before the struct-shape guard so an empty field surfaces its own Persian
// message rather than the generic one.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	student := studentFromRequest(req)
	if v := validation.Student(student); v != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, v.Message)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	exists, err := s.repo.ExistsByNationalID(ctx, student.NationalID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check national id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "کدملی قبلاً ثبت شده است")
	}

	exists, err = s.repo.ExistsBySTID(ctx, student.STID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check stid")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "شماره دانشجویی قبلاً ثبت شده است")
	}

	if err := s.repo.Create(ctx, student); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "کدملی یا شماره دانشجویی قبلاً ثبت شده است")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "خطا در ذخیره دانشجو")
	}

	s.invalidate(ctx)
	return student, nil
}

// Update replaces the student stored under stid with a fully revalidated
// record. Re-saving the record's own keys is not a conflict.
func (s *StudentService) Update(ctx context.Context, stid string, req StudentRequest) (*models.Student, error) {
	student := studentFromRequest(req)
	if v := validation.Student(student); v != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, v.Message)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	current, err := s.repo.FindBySTID(ctx, stid)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "دانشجو یافت نشد")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load student")
	}

	exists, err := s.repo.ExistsByNationalID(ctx, student.NationalID, stid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check national id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "کدملی قبلاً ثبت شده است")
	}

	exists, err = s.repo.ExistsBySTID(ctx, student.STID, stid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check stid")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "شماره دانشجویی قبلاً ثبت شده است")
	}

	student.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, stid, student); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "کدملی یا شماره دانشجویی قبلاً ثبت شده است")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "خطا در به‌روزرسانی دانشجو")
	}

	s.invalidate(ctx)
	return student, nil
}

// Delete removes a student record. Deletion is hard; there is no soft-delete.
func (s *StudentService) Delete(ctx context.Context, stid string) error {
	if _, err := s.repo.FindBySTID(ctx, stid); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "دانشجو یافت نشد")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load student")
	}
	if err := s.repo.Delete(ctx, stid); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "خطا در حذف دانشجو")
	}
	s.invalidate(ctx)
	return nil
}

func (s *StudentService) invalidate(ctx context.Context) {
	if err := s.cache.DeleteByPattern(ctx, studentCachePattern); err != nil {
		s.logger.Warn("student list cache invalidation failed", zap.Error(err))
	}
}

func studentFromRequest(req StudentRequest) *models.Student {
	return &models.Student{
		STID:          req.STID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		FatherName:    req.FatherName,
		SerialNumber:  req.SerialNumber,
		SerialLetter:  req.SerialLetter,
		SerialCode:    req.SerialCode,
		BirthCity:     req.BirthCity,
		Address:       req.Address,
		PostalCode:    req.PostalCode,
		HomePhone:     req.HomePhone,
		Department:    req.Department,
		Major:         req.Major,
		MaritalStatus: req.MaritalStatus,
		NationalID:    req.NationalID,
		BirthDate:     req.BirthDate,
	}
}
