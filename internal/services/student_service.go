// Package services – StudentService
//
// This file implements the StudentService, which manages the lifecycle of
// student records: registration (with course enrollments created
// atomically), detail retrieval, paginated listing with an includeDeleted
// switch, profile updates, and logical deletion.
//
// Input normalization happens here, not in handlers: names are Unicode
// NFC-normalized and kana readings are folded to full-width so that
// half-width katakana input never reaches the database.
//
// Service-level errors (e.g., NotFoundError) are returned for predictable
// cases so the HTTP layer can map them to the canonical error body.
package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
	"gorm.io/gorm"

	"github.com/picocico/StudentManagement-sub000/internal/domain"
	"github.com/picocico/StudentManagement-sub000/internal/repo"
)

// StudentRepo defines the repository contract required by StudentService.
type StudentRepo interface {
	CreateStudent(ctx context.Context, db *gorm.DB, s *domain.Student, courses []domain.StudentCourse) error
	GetStudent(ctx context.Context, db *gorm.DB, id string) (*domain.Student, error)
	ListCourses(ctx context.Context, db *gorm.DB, studentID string) ([]domain.StudentCourse, error)
	ListStatusesByCourseIDs(ctx context.Context, db *gorm.DB, courseIDs []string) ([]domain.EnrollmentStatus, error)
	CountStudents(ctx context.Context, db *gorm.DB, includeDeleted bool) (int64, error)
	ListStudentsPage(ctx context.Context, db *gorm.DB, includeDeleted bool, offset, limit int) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, db *gorm.DB, s *domain.Student) error
	SoftDeleteStudent(ctx context.Context, db *gorm.DB, id string) error
}

// CourseInput is one course enrollment supplied at registration time.
type CourseInput struct {
	CourseName string
}

// RegisterInput carries the normalized-pending profile of a new student.
type RegisterInput struct {
	Name     string
	KanaName string
	Nickname string
	Email    string
	Area     string
	Age      int
	Sex      string
	Remark   string
	Courses  []CourseInput
}

// CourseDetail is one enrollment joined with its current status.
type CourseDetail struct {
	Course domain.StudentCourse
	Status string
}

// StudentDetail is a student joined with all enrollments and statuses.
type StudentDetail struct {
	Student domain.Student
	Courses []CourseDetail
}

// StudentService provides student-level operations. It enforces profile
// rules and owns input normalization.
type StudentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the student repository used by this service.
	Repo StudentRepo

	// MaxAge bounds accepted student ages.
	MaxAge int
}

// NewStudentService constructs a StudentService with sane defaults.
func NewStudentService(db *gorm.DB, r StudentRepo) *StudentService {
	return &StudentService{DB: db, Repo: r, MaxAge: 150}
}

// Register creates a student together with course enrollments, each starting
// in the provisional status. Returns the full detail of the created student.
func (s *StudentService) Register(ctx context.Context, in RegisterInput) (*StudentDetail, error) {
	name := NormalizeName(in.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if in.Age < 0 || in.Age > s.maxAge() {
		return nil, ErrAgeOutOfRange
	}

	st := &domain.Student{
		Name:     name,
		KanaName: NormalizeKana(in.KanaName),
		Nickname: strings.TrimSpace(in.Nickname),
		Email:    strings.TrimSpace(strings.ToLower(in.Email)),
		Area:     strings.TrimSpace(in.Area),
		Age:      in.Age,
		Sex:      strings.TrimSpace(in.Sex),
		Remark:   in.Remark,
	}
	courses := make([]domain.StudentCourse, 0, len(in.Courses))
	for _, c := range in.Courses {
		cn := strings.TrimSpace(c.CourseName)
		if cn == "" {
			continue
		}
		courses = append(courses, domain.StudentCourse{CourseName: cn})
	}

	if err := s.Repo.CreateStudent(ctx, s.DB, st, courses); err != nil {
		return nil, err
	}
	return s.detail(ctx, st)
}

// Get returns one student with enrollments and statuses. A missing or
// unknown id yields NotFoundError.
func (s *StudentService) Get(ctx context.Context, id string) (*StudentDetail, error) {
	st, err := s.Repo.GetStudent(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, &NotFoundError{Resource: "student", Key: id}
	}
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, st)
}

// List returns a page of students plus the total count. includeDeleted
// controls whether logically deleted rows are visible.
func (s *StudentService) List(ctx context.Context, includeDeleted bool, page, pageSize int) ([]domain.Student, int64, error) {
	total, err := s.Repo.CountStudents(ctx, s.DB, includeDeleted)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Repo.ListStudentsPage(ctx, s.DB, includeDeleted, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies profile changes to an existing student. The same
// normalization as Register applies.
func (s *StudentService) Update(ctx context.Context, id string, in RegisterInput) error {
	name := NormalizeName(in.Name)
	if name == "" {
		return ErrEmptyName
	}
	if in.Age < 0 || in.Age > s.maxAge() {
		return ErrAgeOutOfRange
	}
	st := &domain.Student{
		ID:       id,
		Name:     name,
		KanaName: NormalizeKana(in.KanaName),
		Nickname: strings.TrimSpace(in.Nickname),
		Email:    strings.TrimSpace(strings.ToLower(in.Email)),
		Area:     strings.TrimSpace(in.Area),
		Age:      in.Age,
		Sex:      strings.TrimSpace(in.Sex),
		Remark:   in.Remark,
	}
	err := s.Repo.UpdateStudent(ctx, s.DB, st)
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Resource: "student", Key: id}
	}
	return err
}

// Delete marks a student as logically deleted. Role enforcement is done
// here so every transport shares it: only the "admin" role may delete.
func (s *StudentService) Delete(ctx context.Context, id, role string) error {
	if role != "admin" {
		return ErrForbidden
	}
	err := s.Repo.SoftDeleteStudent(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Resource: "student", Key: id}
	}
	return err
}

func (s *StudentService) detail(ctx context.Context, st *domain.Student) (*StudentDetail, error) {
	courses, err := s.Repo.ListCourses(ctx, s.DB, st.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	statuses, err := s.Repo.ListStatusesByCourseIDs(ctx, s.DB, ids)
	if err != nil {
		return nil, err
	}
	byCourse := make(map[string]string, len(statuses))
	for _, row := range statuses {
		byCourse[row.StudentCourseID] = row.Status
	}
	out := &StudentDetail{Student: *st, Courses: make([]CourseDetail, 0, len(courses))}
	for _, c := range courses {
		out.Courses = append(out.Courses, CourseDetail{Course: c, Status: byCourse[c.ID]})
	}
	return out, nil
}

func (s *StudentService) maxAge() int {
	if s.MaxAge <= 0 {
		return 150
	}
	return s.MaxAge
}

// NormalizeName NFC-normalizes a display name and collapses surrounding
// whitespace.
func NormalizeName(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// NormalizeKana folds half-width katakana to full-width and trims
// whitespace. Folding also narrows full-width ASCII, which is harmless for
// kana readings.
func NormalizeKana(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}
