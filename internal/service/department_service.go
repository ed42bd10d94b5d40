package service

import "github.com/parsuni/registry-api/internal/models"

// DepartmentService exposes the fixed department→major reference data. The
// mapping is static configuration, served verbatim, never derived from stored
// records.
type DepartmentService struct{}

// NewDepartmentService constructs the department service.
func NewDepartmentService() *DepartmentService {
	return &DepartmentService{}
}

// Majors returns the department→major mapping.
func (s *DepartmentService) Majors() map[string][]string {
	return models.DepartmentMajors
}
