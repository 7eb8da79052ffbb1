package repo

import (
	"context"
	"testing"

	"github.com/picocico/StudentManagement-sub000/internal/domain"
)

func TestUpdateEnrollmentStatus(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()

	s := sampleStudent("enr@example.com")
	if err := CreateStudent(ctx, db, s, []domain.StudentCourse{{CourseName: "Design"}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	courses, err := ListCourses(ctx, db, s.ID)
	if err != nil || len(courses) != 1 {
		t.Fatalf("courses: %v %d", err, len(courses))
	}

	if err := UpdateEnrollmentStatus(ctx, db, courses[0].ID, domain.StatusConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}
	st, err := GetEnrollmentStatus(ctx, db, courses[0].ID)
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if st.Status != domain.StatusConfirmed {
		t.Fatalf("status = %q", st.Status)
	}
}

func TestUpdateEnrollmentStatus_NotFound(t *testing.T) {
	db := newTestDB(t, allModels()...)
	err := UpdateEnrollmentStatus(context.Background(), db, "22222222-2222-2222-2222-222222222222", domain.StatusConfirmed)
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListStatusesByCourseIDs_Empty(t *testing.T) {
	db := newTestDB(t, allModels()...)
	out, err := ListStatusesByCourseIDs(context.Background(), db, nil)
	if err != nil || out != nil {
		t.Fatalf("got %v, %v", out, err)
	}
}
