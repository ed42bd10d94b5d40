package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/parsuni/registry-api/pkg/errors"
)

type staticIDSource struct {
	taken map[string]bool
}

func (s staticIDSource) ExistsByTeacherID(_ context.Context, teacherID string) (bool, error) {
	return s.taken[teacherID], nil
}

func TestTeacherIDFromStaysSixDigits(t *testing.T) {
	assert.Equal(t, "100000", teacherIDFrom(0))
	assert.Equal(t, "100001", teacherIDFrom(1))
	assert.Equal(t, "999999", teacherIDFrom(899999))
}

func TestAllocatorSkipsTakenIDs(t *testing.T) {
	source := staticIDSource{taken: map[string]bool{"100000": true, "100001": true}}
	allocator := NewTeacherIDAllocator(source, nil, 10)

	draws := []int{0, 1, 2}
	allocator.intn = func(int) int {
		n := draws[0]
		draws = draws[1:]
		return n
	}

	id, err := allocator.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100002", id)
}

func TestAllocatorExhaustion(t *testing.T) {
	source := staticIDSource{taken: map[string]bool{"100000": true}}
	allocator := NewTeacherIDAllocator(source, nil, 5)

	probes := 0
	allocator.intn = func(int) int {
		probes++
		return 0
	}

	_, err := allocator.Allocate(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrAllocationExhausted))
	assert.Equal(t, "شناسه استاد آزاد یافت نشد", appErrors.FromError(err).Message)
	assert.Equal(t, 5, probes)
}
