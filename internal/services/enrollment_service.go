// Package services – EnrollmentService
//
// Enrollment statuses follow a forward-only lifecycle:
// provisional → confirmed → in_progress → completed. The service rejects
// unknown statuses and backwards transitions; the current status may be
// re-asserted (a no-op transition is allowed for retry friendliness).
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/picocico/StudentManagement-sub000/internal/domain"
	"github.com/picocico/StudentManagement-sub000/internal/repo"
)

// EnrollmentRepo defines the repository contract required by
// EnrollmentService.
type EnrollmentRepo interface {
	GetEnrollmentStatus(ctx context.Context, db *gorm.DB, studentCourseID string) (*domain.EnrollmentStatus, error)
	UpdateEnrollmentStatus(ctx context.Context, db *gorm.DB, studentCourseID, status string) error
}

// EnrollmentService owns enrollment status transitions.
type EnrollmentService struct {
	DB   *gorm.DB
	Repo EnrollmentRepo
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(db *gorm.DB, r EnrollmentRepo) *EnrollmentService {
	return &EnrollmentService{DB: db, Repo: r}
}

// UpdateStatus moves one enrollment to a new status. It returns
// ErrUnknownStatus for values outside the lifecycle, ErrStatusRegression
// for backwards moves, and NotFoundError when the enrollment is unknown.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, studentCourseID, status string) error {
	if domain.StatusRank(status) < 0 {
		return ErrUnknownStatus
	}
	cur, err := s.Repo.GetEnrollmentStatus(ctx, s.DB, studentCourseID)
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Resource: "enrollment", Key: studentCourseID}
	}
	if err != nil {
		return err
	}
	if domain.StatusRank(status) < domain.StatusRank(cur.Status) {
		return ErrStatusRegression
	}
	if status == cur.Status {
		return nil
	}
	return s.Repo.UpdateEnrollmentStatus(ctx, s.DB, studentCourseID, status)
}
