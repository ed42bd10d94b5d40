package handler

import (
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

func TestDepartmentHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	h := NewDepartmentHandler(service.NewDepartmentService())
	router.GET("/departments", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/departments", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string][]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, len(models.Departments))
	for _, department := range models.Departments {
		assert.Len(t, body.Data[department], 10)
	}
	assert.Contains(t, body.Data["فنی مهندسی"], "مهندسی کامپیوتر")
}
