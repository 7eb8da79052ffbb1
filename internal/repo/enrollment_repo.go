// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for enrollment
// statuses.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/picocico/StudentManagement-sub000/internal/domain"
)

// GetEnrollmentStatus fetches the status row for one enrollment, or
// ErrNotFound.
func GetEnrollmentStatus(ctx context.Context, db *gorm.DB, studentCourseID string) (*domain.EnrollmentStatus, error) {
	var st domain.EnrollmentStatus
	err := db.WithContext(ctx).
		First(&st, "student_course_id = ?", studentCourseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// UpdateEnrollmentStatus overwrites the status of one enrollment in place.
// Returns ErrNotFound when the enrollment has no status row.
func UpdateEnrollmentStatus(ctx context.Context, db *gorm.DB, studentCourseID, status string) error {
	res := db.WithContext(ctx).Model(&domain.EnrollmentStatus{}).
		Where("student_course_id = ?", studentCourseID).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListStatusesByCourseIDs returns the status rows for a set of enrollments.
// Used when assembling student detail responses.
func ListStatusesByCourseIDs(ctx context.Context, db *gorm.DB, courseIDs []string) ([]domain.EnrollmentStatus, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var out []domain.EnrollmentStatus
	err := db.WithContext(ctx).
		Where("student_course_id IN ?", courseIDs).
		Find(&out).Error
	return out, err
}
