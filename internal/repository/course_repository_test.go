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

func courseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "units", "department", "teacher_id", "created_at", "updated_at"}).
		AddRow("6f1b0c1e-4f1a-4a26-9d86-0c9a6c1c0a11", "ریاضی مهندسی", 3, "فنی مهندسی", "123456", time.Now(), time.Now())
}

func TestCourseRepositoryListByDepartment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+courseColumns+" FROM courses WHERE 1=1 AND department = $1 ORDER BY id ASC LIMIT 10 OFFSET 0")).
		WithArgs("فنی مهندسی").
		WillReturnRows(courseRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE 1=1 AND department = $1")).
		WithArgs("فنی مهندسی").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{Department: "فنی مهندسی"})
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO courses").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	course := &models.Course{Name: "فیزیک", Units: 3, Department: "علوم پایه", TeacherID: "123456"}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.NotEmpty(t, course.ID)
	assert.False(t, course.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE courses SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	course := &models.Course{Name: "شیمی", Units: 2, Department: "علوم پایه", TeacherID: "123456"}
	require.NoError(t, repo.Update(context.Background(), "6f1b0c1e-4f1a-4a26-9d86-0c9a6c1c0a11", course))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM courses").
		WithArgs("6f1b0c1e-4f1a-4a26-9d86-0c9a6c1c0a11").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "6f1b0c1e-4f1a-4a26-9d86-0c9a6c1c0a11"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
