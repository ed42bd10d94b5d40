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

const studentColumns = "stid, first_name, last_name, father_name, serial_number, serial_letter, serial_code, birth_city, address, postal_code, home_phone, department, major, marital_status, national_id, birth_date, created_at, updated_at"

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters together with the
// total match count. Search is a case-sensitive substring match over names,
// the student number and the national id; results are ordered by student
// number ascending for a stable window.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	base := "FROM students WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Major != "" {
		conditions = append(conditions, fmt.Sprintf("major = $%d", len(args)+1))
		args = append(args, filter.Major)
	}
	if filter.Search != "" {
		n := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(first_name LIKE $%d OR last_name LIKE $%d OR stid LIKE $%d OR national_id LIKE $%d)", n, n, n, n))
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY stid ASC LIMIT %d OFFSET %d", studentColumns, base, limit, offset)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	return students, total, nil
}

// FindBySTID fetches a student by student number.
func (r *StudentRepository) FindBySTID(ctx context.Context, stid string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE stid = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, stid); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByNationalID checks if a student with the given national id exists,
// optionally excluding one student number.
func (r *StudentRepository) ExistsByNationalID(ctx context.Context, nationalID string, excludeSTID string) (bool, error) {
	query := "SELECT 1 FROM students WHERE national_id = $1"
	args := []interface{}{nationalID}
	if excludeSTID != "" {
		query += " AND stid <> $2"
		args = append(args, excludeSTID)
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

// ExistsBySTID checks if a student with the given student number exists,
// optionally excluding one student number (the record being updated).
func (r *StudentRepository) ExistsBySTID(ctx context.Context, stid string, excludeSTID string) (bool, error) {
	query := "SELECT 1 FROM students WHERE stid = $1"
	args := []interface{}{stid}
	if excludeSTID != "" {
		query += " AND stid <> $2"
		args = append(args, excludeSTID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check stid: %w", err)
	}
	return true, nil
}

// Create inserts a new student record inside a transaction.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create student: %w", err)
	}
	const query = `INSERT INTO students (stid, first_name, last_name, father_name, serial_number, serial_letter, serial_code, birth_city, address, postal_code, home_phone, department, major, marital_status, national_id, birth_date, created_at, updated_at)
        VALUES (:stid, :first_name, :last_name, :father_name, :serial_number, :serial_letter, :serial_code, :birth_city, :address, :postal_code, :home_phone, :department, :major, :marital_status, :national_id, :birth_date, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, student); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("create student: %w", err)
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit create student: %w", err)
	}
	return nil
}

// Update replaces the student row stored under stid with the provided record.
// The student number itself may change as part of the replacement.
func (r *StudentRepository) Update(ctx context.Context, stid string, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update student: %w", err)
	}
	const query = `UPDATE students SET stid = $1, first_name = $2, last_name = $3, father_name = $4, serial_number = $5, serial_letter = $6, serial_code = $7, birth_city = $8, address = $9, postal_code = $10, home_phone = $11, department = $12, major = $13, marital_status = $14, national_id = $15, birth_date = $16, updated_at = $17 WHERE stid = $18`
	if _, err := tx.ExecContext(ctx, query,
		student.STID, student.FirstName, student.LastName, student.FatherName,
		student.SerialNumber, student.SerialLetter, student.SerialCode,
		student.BirthCity, student.Address, student.PostalCode, student.HomePhone,
		student.Department, student.Major, student.MaritalStatus,
		student.NationalID, student.BirthDate, student.UpdatedAt, stid,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update student: %w", err)
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit update student: %w", err)
	}
	return nil
}

// Delete removes a student row.
func (r *StudentRepository) Delete(ctx context.Context, stid string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM students WHERE stid = $1", stid); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete student: %w", err)
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit delete student: %w", err)
	}
	return nil
}
