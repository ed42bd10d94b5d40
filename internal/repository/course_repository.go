package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parsuni/registry-api/internal/models"
)

const courseColumns = "id, name, units, department, teacher_id, created_at, updated_at"

// CourseRepository manages persistence for course records.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching the provided filters with the total match
// count. Search covers the course name and the teacher reference; results are
// ordered by id ascending. Course names carry no uniqueness constraint.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	base := "FROM courses WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Search != "" {
		n := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(name LIKE $%d OR teacher_id LIKE $%d)", n, n))
		args = append(args, "%"+filter.Search+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY id ASC LIMIT %d OFFSET %d", courseColumns, base, limit, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	return courses, total, nil
}

// FindByID fetches a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course record inside a transaction.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create course: %w", err)
	}
	const query = `INSERT INTO courses (id, name, units, department, teacher_id, created_at, updated_at)
        VALUES (:id, :name, :units, :department, :teacher_id, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, course); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("create course: %w", err)
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit create course: %w", err)
	}
	return nil
}

// Update replaces the course row stored under id.
func (r *CourseRepository) Update(ctx context.Context, id string, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update course: %w", err)
	}
	const query = `UPDATE courses SET name = $1, units = $2, department = $3, teacher_id = $4, updated_at = $5 WHERE id = $6`
	if _, err := tx.ExecContext(ctx, query,
		course.Name, course.Units, course.Department, course.TeacherID, course.UpdatedAt, id,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update course: %w", err)
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit update course: %w", err)
	}
	return nil
}

// Delete removes a course row.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete course: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete course: %w", err)
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit delete course: %w", err)
	}
	return nil
}
