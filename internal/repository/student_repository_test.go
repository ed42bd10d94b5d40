package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsuni/registry-api/internal/models"
	"github.com/parsuni/registry-api/pkg/database"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"stid", "first_name", "last_name", "father_name", "serial_number", "serial_letter", "serial_code", "birth_city", "address", "postal_code", "home_phone", "department", "major", "marital_status", "national_id", "birth_date", "created_at", "updated_at"}).
		AddRow("40211415012", "علی", "رضایی", "محمد", "123456", "ب", "12", "تهران", "خیابان آزادی", "1234567890", "02112345678", "فنی مهندسی", "مهندسی کامپیوتر", "مجرد", "1234567890", "1380/05/12", time.Now(), time.Now())
}

func TestStudentRepositoryListDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + studentColumns + " FROM students WHERE 1=1 ORDER BY stid ASC LIMIT 10 OFFSET 0")).
		WillReturnRows(studentRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+studentColumns+" FROM students WHERE 1=1 AND department = $1 AND major = $2 AND (first_name LIKE $3 OR last_name LIKE $3 OR stid LIKE $3 OR national_id LIKE $3) ORDER BY stid ASC LIMIT 5 OFFSET 10")).
		WithArgs("فنی مهندسی", "مهندسی کامپیوتر", "%علی%").
		WillReturnRows(studentRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE 1=1 AND department = $1 AND major = $2 AND (first_name LIKE $3 OR last_name LIKE $3 OR stid LIKE $3 OR national_id LIKE $3)")).
		WithArgs("فنی مهندسی", "مهندسی کامپیوتر", "%علی%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	filter := models.StudentFilter{Department: "فنی مهندسی", Major: "مهندسی کامپیوتر", Search: "علی", Limit: 5, Offset: 10}
	students, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindBySTID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + studentColumns + " FROM students WHERE stid = $1")).
		WithArgs("40211415012").
		WillReturnRows(studentRows())

	student, err := repo.FindBySTID(context.Background(), "40211415012")
	require.NoError(t, err)
	assert.Equal(t, "علی", student.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExistsByNationalID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE national_id = $1 LIMIT 1")).
		WithArgs("1234567890").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByNationalID(context.Background(), "1234567890", "")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE national_id = $1 AND stid <> $2 LIMIT 1")).
		WithArgs("1234567890", "40211415012").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err = repo.ExistsByNationalID(context.Background(), "1234567890", "40211415012")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	student := &models.Student{STID: "40211415012", FirstName: "علی"}
	err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	assert.False(t, student.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateUniqueViolationRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Student{STID: "40211415012"})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "40211415012", &models.Student{STID: "40211415012", FirstName: "رضا"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM students").
		WithArgs("40211415012").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "40211415012")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
