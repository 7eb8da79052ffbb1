package services

import (
	"context"
	"errors"
	"testing"

	"github.com/picocico/StudentManagement-sub000/internal/domain"
)

func TestEnrollmentService_UpdateStatus_Lifecycle(t *testing.T) {
	db := newServiceDB(t)
	students := NewStudentService(db, repoShim{})
	enrollments := NewEnrollmentService(db, repoShim{})
	ctx := context.Background()

	d, err := students.Register(ctx, registerInput("enr@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	courseID := d.Courses[0].Course.ID

	if err := enrollments.UpdateStatus(ctx, courseID, domain.StatusConfirmed); err != nil {
		t.Fatalf("provisional→confirmed: %v", err)
	}
	if err := enrollments.UpdateStatus(ctx, courseID, domain.StatusCompleted); err != nil {
		t.Fatalf("confirmed→completed: %v", err)
	}

	// Re-asserting the current status is a no-op, not an error.
	if err := enrollments.UpdateStatus(ctx, courseID, domain.StatusCompleted); err != nil {
		t.Fatalf("completed→completed: %v", err)
	}

	// Backwards is rejected.
	if err := enrollments.UpdateStatus(ctx, courseID, domain.StatusProvisional); !errors.Is(err, ErrStatusRegression) {
		t.Fatalf("err = %v, want ErrStatusRegression", err)
	}
}

func TestEnrollmentService_UpdateStatus_UnknownAndMissing(t *testing.T) {
	db := newServiceDB(t)
	enrollments := NewEnrollmentService(db, repoShim{})
	ctx := context.Background()

	if err := enrollments.UpdateStatus(ctx, "x", "cancelled"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("err = %v, want ErrUnknownStatus", err)
	}

	var nf *NotFoundError
	err := enrollments.UpdateStatus(ctx, "55555555-5555-5555-5555-555555555555", domain.StatusConfirmed)
	if !errors.As(err, &nf) {
		t.Fatalf("err = %T, want *NotFoundError", err)
	}
	if nf.Resource != "enrollment" {
		t.Fatalf("resource = %q", nf.Resource)
	}
}
