package service

import (
	"context"
	"math/rand"

	appErrors "github.com/parsuni/registry-api/pkg/errors"
)

// teacherIDSource is the store probe the allocator needs.
type teacherIDSource interface {
	ExistsByTeacherID(ctx context.Context, teacherID string) (bool, error)
}

// TeacherIDAllocator draws random 6-digit teacher identifiers and probes the
// store until it finds a free one. The probe and the eventual insert are not
// atomic; the unique index on teachers.teacher_id is the backstop for the
// remaining race window. Attempts are capped so a nearly full identifier
// space fails fast instead of spinning.
type TeacherIDAllocator struct {
	source      teacherIDSource
	metrics     *MetricsService
	maxAttempts int
	intn        func(n int) int
}

// NewTeacherIDAllocator constructs an allocator. maxAttempts values below 1
// fall back to 100.
func NewTeacherIDAllocator(source teacherIDSource, metrics *MetricsService, maxAttempts int) *TeacherIDAllocator {
	if maxAttempts < 1 {
		maxAttempts = 100
	}
	return &TeacherIDAllocator{source: source, metrics: metrics, maxAttempts: maxAttempts, intn: rand.Intn}
}

// Allocate returns a 6-digit teacher id not currently in use.
func (a *TeacherIDAllocator) Allocate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		a.metrics.RecordAllocatorDraw()
		candidate := teacherIDFrom(a.intn(900000))
		taken, err := a.source.ExistsByTeacherID(ctx, candidate)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to probe teacher id")
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrAllocationExhausted, "شناسه استاد آزاد یافت نشد")
}

func teacherIDFrom(n int) string {
	n = 100000 + n%900000
	digits := [6]byte{}
	for i := 5; i >= 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[:])
}
