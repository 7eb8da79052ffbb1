// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Student
// model and its course enrollments.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a student is not found, functions return ErrNotFound (an alias of
//     gorm.ErrRecordNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/picocico/StudentManagement-sub000/internal/domain"
	"github.com/picocico/StudentManagement-sub000/internal/ident"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateStudent inserts a new Student row together with its course
// enrollments and their initial (provisional) statuses, atomically.
// All generated identifiers are random UUIDs rendered as UUID text.
func CreateStudent(ctx context.Context, db *gorm.DB, s *domain.Student, courses []domain.StudentCourse) error {
	now := time.Now().UTC()
	if s.ID == "" {
		id, err := ident.EncodeUUIDString(ident.New())
		if err != nil {
			return err
		}
		s.ID = id
	}
	s.CreatedAt = now

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		for i := range courses {
			cid, err := ident.EncodeUUIDString(ident.New())
			if err != nil {
				return err
			}
			courses[i].ID = cid
			courses[i].StudentID = s.ID
			courses[i].CreatedAt = now
			if err := tx.Create(&courses[i]).Error; err != nil {
				return err
			}
			sid, err := ident.EncodeUUIDString(ident.New())
			if err != nil {
				return err
			}
			st := domain.EnrollmentStatus{
				ID:              sid,
				StudentCourseID: courses[i].ID,
				Status:          domain.StatusProvisional,
				CreatedAt:       now,
			}
			if err := tx.Create(&st).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetStudent fetches one student by UUID-text id, or ErrNotFound.
// Logically deleted students are still returned; visibility policy
// belongs to the service layer.
func GetStudent(ctx context.Context, db *gorm.DB, id string) (*domain.Student, error) {
	var s domain.Student
	if err := db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListCourses returns the course enrollments of one student, oldest first.
func ListCourses(ctx context.Context, db *gorm.DB, studentID string) ([]domain.StudentCourse, error) {
	var out []domain.StudentCourse
	err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// CountStudents returns the number of students, optionally including
// logically deleted rows.
func CountStudents(ctx context.Context, db *gorm.DB, includeDeleted bool) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Student{})
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ListStudentsPage returns a page of students ordered by creation time
// descending, optionally including logically deleted rows.
func ListStudentsPage(ctx context.Context, db *gorm.DB, includeDeleted bool, offset, limit int) ([]domain.Student, error) {
	q := db.WithContext(ctx)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	var out []domain.Student
	err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// ListAllStudents returns every non-deleted student. Used to seed the
// in-memory search index at startup.
func ListAllStudents(ctx context.Context, db *gorm.DB) ([]domain.Student, error) {
	var out []domain.Student
	err := db.WithContext(ctx).Where("is_deleted = ?", false).Find(&out).Error
	return out, err
}

// UpdateStudent applies profile changes to an existing student. Returns
// ErrNotFound when no row was updated.
func UpdateStudent(ctx context.Context, db *gorm.DB, s *domain.Student) error {
	res := db.WithContext(ctx).Model(&domain.Student{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":       s.Name,
			"kana_name":  s.KanaName,
			"nickname":   s.Nickname,
			"email":      s.Email,
			"area":       s.Area,
			"age":        s.Age,
			"sex":        s.Sex,
			"remark":     s.Remark,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteStudent flips the logical deletion flag. Returns ErrNotFound
// when the student does not exist or is already deleted.
func SoftDeleteStudent(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Model(&domain.Student{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
