package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsuni/registry-api/internal/models"
)

func teacherRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"teacher_id", "first_name", "last_name", "father_name", "serial_number", "serial_letter", "serial_code", "birth_city", "address", "postal_code", "home_phone", "department", "national_id", "birth_date", "created_at", "updated_at"}).
		AddRow("123456", "مریم", "احمدی", "حسین", "654321", "م", "21", "شیراز", "خیابان زند", "9876543210", "07112345678", "علوم پایه", "0987654321", "1360/01/15", time.Now(), time.Now())
}

func TestTeacherRepositoryListBySearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+teacherColumns+" FROM teachers WHERE 1=1 AND (first_name LIKE $1 OR last_name LIKE $1 OR teacher_id LIKE $1 OR national_id LIKE $1) ORDER BY teacher_id ASC LIMIT 10 OFFSET 0")).
		WithArgs("%احمدی%").
		WillReturnRows(teacherRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers WHERE 1=1 AND (first_name LIKE $1 OR last_name LIKE $1 OR teacher_id LIKE $1 OR national_id LIKE $1)")).
		WithArgs("%احمدی%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	teachers, total, err := repo.List(context.Background(), models.TeacherFilter{Search: "احمدی"})
	require.NoError(t, err)
	assert.Len(t, teachers, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryExistsByTeacherID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teachers WHERE teacher_id = $1 LIMIT 1")).
		WithArgs("123456").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teachers WHERE teacher_id = $1 LIMIT 1")).
		WithArgs("654321").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsByTeacherID(context.Background(), "123456")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByTeacherID(context.Background(), "654321")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO teachers").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), &models.Teacher{TeacherID: "123456"}))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM teachers").
		WithArgs("123456").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "123456"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryUpdateKeepsTeacherID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE teachers SET first_name").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	teacher := &models.Teacher{TeacherID: "123456", FirstName: "زهرا"}
	require.NoError(t, repo.Update(context.Background(), "123456", teacher))
	assert.NoError(t, mock.ExpectationsWereMet())
}
