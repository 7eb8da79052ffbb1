package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/picocico/StudentManagement-sub000/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Release the file handle before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func allModels() []any {
	return []any{&domain.Student{}, &domain.StudentCourse{}, &domain.EnrollmentStatus{}, &domain.Idempotency{}}
}

func sampleStudent(email string) *domain.Student {
	return &domain.Student{
		Name:     "Taro Yamada",
		KanaName: "ヤマダ　タロウ",
		Nickname: "Taro",
		Email:    email,
		Area:     "Tokyo",
		Age:      21,
		Sex:      "male",
	}
}

func TestCreateStudent_WithCoursesAndStatuses(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()

	s := sampleStudent("taro@example.com")
	courses := []domain.StudentCourse{
		{CourseName: "Java Fundamentals"},
		{CourseName: "Web Development"},
	}
	if err := CreateStudent(ctx, db, s, courses); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(s.ID) != 36 {
		t.Fatalf("student id not uuid text: %q", s.ID)
	}

	got, err := ListCourses(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("list courses: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("courses = %d", len(got))
	}
	for _, c := range got {
		st, err := GetEnrollmentStatus(ctx, db, c.ID)
		if err != nil {
			t.Fatalf("status for %s: %v", c.ID, err)
		}
		if st.Status != domain.StatusProvisional {
			t.Fatalf("initial status = %q", st.Status)
		}
	}
}

func TestCreateStudent_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	err := CreateStudent(context.Background(), db, sampleStudent("x@example.com"), nil)
	if err == nil {
		t.Fatal("expected error creating without table")
	}
}

func TestGetStudent_NotFound(t *testing.T) {
	db := newTestDB(t, allModels()...)
	if _, err := GetStudent(context.Background(), db, "00000000-0000-0000-0000-000000000000"); err == nil {
		t.Fatal("expected not found")
	}
}

func TestListStudentsPage_FiltersDeleted(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()

	a := sampleStudent("a@example.com")
	b := sampleStudent("b@example.com")
	if err := CreateStudent(ctx, db, a, nil); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := CreateStudent(ctx, db, b, nil); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if err := SoftDeleteStudent(ctx, db, b.ID); err != nil {
		t.Fatalf("delete b: %v", err)
	}

	visible, err := ListStudentsPage(ctx, db, false, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != a.ID {
		t.Fatalf("visible = %+v", visible)
	}

	all, err := ListStudentsPage(ctx, db, true, 0, 10)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d", len(all))
	}

	n, err := CountStudents(ctx, db, false)
	if err != nil || n != 1 {
		t.Fatalf("count visible = %d, err %v", n, err)
	}
	n, err = CountStudents(ctx, db, true)
	if err != nil || n != 2 {
		t.Fatalf("count all = %d, err %v", n, err)
	}
}

func TestUpdateStudent_And_NotFound(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()

	s := sampleStudent("u@example.com")
	if err := CreateStudent(ctx, db, s, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Area = "Osaka"
	s.Age = 22
	if err := UpdateStudent(ctx, db, s); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := GetStudent(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Area != "Osaka" || got.Age != 22 {
		t.Fatalf("update not applied: %+v", got)
	}

	ghost := sampleStudent("ghost@example.com")
	ghost.ID = "11111111-1111-1111-1111-111111111111"
	if err := UpdateStudent(ctx, db, ghost); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSoftDeleteStudent_Twice(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()

	s := sampleStudent("d@example.com")
	if err := CreateStudent(ctx, db, s, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := SoftDeleteStudent(ctx, db, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := SoftDeleteStudent(ctx, db, s.ID); err != ErrNotFound {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}
