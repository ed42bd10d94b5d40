package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/parsuni/registry-api/internal/models"
)

const teacherColumns = "teacher_id, first_name, last_name, father_name, serial_number, serial_letter, serial_code, birth_city, address, postal_code, home_phone, department, national_id, birth_date, created_at, updated_at"

// TeacherRepository manages persistence for teacher records.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers matching the provided filters with the total match
// count. Search covers names, the teacher id and the national id; results are
// ordered by teacher id ascending.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	base := "FROM teachers WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Search != "" {
		n := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(first_name LIKE $%d OR last_name LIKE $%d OR teacher_id LIKE $%d OR national_id LIKE $%d)", n, n, n, n))
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY teacher_id ASC LIMIT %d OFFSET %d", teacherColumns, base, limit, offset)
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}

	return teachers, total, nil
}

// FindByTeacherID fetches a teacher by teacher id.
func (r *TeacherRepository) FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE teacher_id = $1", teacherColumns)
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, teacherID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ExistsByNationalID checks if a teacher with the given national id exists,
// optionally excluding one teacher id.
func (r *TeacherRepository) ExistsByNationalID(ctx context.Context, nationalID string, excludeTeacherID string) (bool, error) {
	query := "SELECT 1 FROM teachers WHERE national_id = $1"
	args := []interface{}{nationalID}
	if excludeTeacherID != "" {
		query += " AND teacher_id <> $2"
		args = append(args, excludeTeacherID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check national id: %w", err)
	}
	return true, nil
}

// ExistsByTeacherID reports whether a teacher id is already taken. Used both
// by the id allocator and by the course reference check.
func (r *TeacherRepository) ExistsByTeacherID(ctx context.Context, teacherID string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM teachers WHERE teacher_id = $1 LIMIT 1", teacherID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher id: %w", err)
	}
	return true, nil
}

// Create inserts a new teacher record inside a transaction.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	now := time.Now().UTC()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	teacher.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create teacher: %w", err)
	}
	const query = `INSERT INTO teachers (teacher_id, first_name, last_name, father_name, serial_number, serial_letter, serial_code, birth_city, address, postal_code, home_phone, department, national_id, birth_date, created_at, updated_at)
        VALUES (:teacher_id, :first_name, :last_name, :father_name, :serial_number, :serial_letter, :serial_code, :birth_city, :address, :postal_code, :home_phone, :department, :national_id, :birth_date, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, teacher); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("create teacher: %w", err)
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit create teacher: %w", err)
	}
	return nil
}

// Update replaces the teacher row stored under teacherID. The teacher id
// itself never changes; it is excluded from the SET list.
func (r *TeacherRepository) Update(ctx context.Context, teacherID string, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update teacher: %w", err)
	}
	const query = `UPDATE teachers SET first_name = $1, last_name = $2, father_name = $3, serial_number = $4, serial_letter = $5, serial_code = $6, birth_city = $7, address = $8, postal_code = $9, home_phone = $10, department = $11, national_id = $12, birth_date = $13, updated_at = $14 WHERE teacher_id = $15`
	if _, err := tx.ExecContext(ctx, query,
		teacher.FirstName, teacher.LastName, teacher.FatherName,
		teacher.SerialNumber, teacher.SerialLetter, teacher.SerialCode,
		teacher.BirthCity, teacher.Address, teacher.PostalCode, teacher.HomePhone,
		teacher.Department, teacher.NationalID, teacher.BirthDate,
		teacher.UpdatedAt, teacherID,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update teacher: %w", err)
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit update teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher row. Courses referencing the teacher are left
// untouched; the schema carries no foreign key, so the reference dangles.
func (r *TeacherRepository) Delete(ctx context.Context, teacherID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete teacher: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM teachers WHERE teacher_id = $1", teacherID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete teacher: %w", err)
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit delete teacher: %w", err)
	}
	return nil
}
