package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsuni/registry-api/internal/models"
	"github.com/parsuni/registry-api/internal/service"
)

type stubStudentRepo struct {
	students []models.Student
}

func (s *stubStudentRepo) List(_ context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	return s.students, len(s.students), nil
}

func (s *stubStudentRepo) FindBySTID(_ context.Context, stid string) (*models.Student, error) {
	for i := range s.students {
		if s.students[i].STID == stid {
			return &s.students[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubStudentRepo) ExistsByNationalID(_ context.Context, nationalID string, excludeSTID string) (bool, error) {
	for _, st := range s.students {
		if st.NationalID == nationalID && st.STID != excludeSTID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStudentRepo) ExistsBySTID(_ context.Context, stid string, excludeSTID string) (bool, error) {
	for _, st := range s.students {
		if st.STID == stid && st.STID != excludeSTID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStudentRepo) Create(_ context.Context, student *models.Student) error {
	s.students = append(s.students, *student)
	return nil
}

func (s *stubStudentRepo) Update(_ context.Context, stid string, student *models.Student) error {
	return nil
}

func (s *stubStudentRepo) Delete(_ context.Context, stid string) error {
	return nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"error"`
}

func newStudentRouter(repo *stubStudentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewStudentService(repo, nil, nil, nil, nil, 0)
	h := NewStudentHandler(svc)

	router := gin.New()
	router.GET("/students/:stid", h.Get)
	router.POST("/students", h.Create)
	return router
}

func studentPayload() map[string]string {
	return map[string]string{
		"stid":           "40211415012",
		"first_name":     "علی",
		"last_name":      "رضایی",
		"father_name":    "محمد",
		"serial_number":  "123456",
		"serial_letter":  "ب",
		"serial_code":    "12",
		"birth_city":     "تهران",
		"address":        "خیابان آزادی",
		"postal_code":    "1234567890",
		"home_phone":     "02112345678",
		"department":     "فنی مهندسی",
		"major":          "مهندسی کامپیوتر",
		"marital_status": "مجرد",
		"national_id":    "1234567890",
		"birth_date":     "1380/05/12",
	}
}

func TestStudentHandlerGetNotFoundEnvelope(t *testing.T) {
	router := newStudentRouter(&stubStudentRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/students/40211415099", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "دانشجو یافت نشد", body.Error.Message)
}

func TestStudentHandlerCreate(t *testing.T) {
	repo := &stubStudentRepo{}
	router := newStudentRouter(repo)

	payload, err := json.Marshal(studentPayload())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Nil(t, body.Error)

	var created models.Student
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "40211415012", created.STID)
	assert.Len(t, repo.students, 1)
}

func TestStudentHandlerCreateDuplicateEnvelope(t *testing.T) {
	repo := &stubStudentRepo{students: []models.Student{{STID: "40211415011", NationalID: "1234567890"}}}
	router := newStudentRouter(repo)

	payload, err := json.Marshal(studentPayload())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "DUPLICATE_KEY", body.Error.Code)
	assert.Equal(t, "کدملی قبلاً ثبت شده است", body.Error.Message)
	assert.Len(t, repo.students, 1)
}
