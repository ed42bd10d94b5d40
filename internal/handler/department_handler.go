package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsuni/registry-api/internal/service"
	"github.com/parsuni/registry-api/pkg/response"
)

// DepartmentHandler exposes the department reference endpoint.
type DepartmentHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentHandler constructs DepartmentHandler.
func NewDepartmentHandler(departments *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

// List godoc
// @Summary Department to major reference data
// @Tags Departments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.departments.Majors(), nil)
}
