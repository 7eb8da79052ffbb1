// Package domain defines the persistence models for students, their course
// enrollments, and enrollment application statuses. These types are mapped
// with GORM and form the core data layer of the student management backend.
//
// Identifier convention: every primary/foreign key is stored as canonical
// UUID text (char(36)). The API never exposes this form directly; handlers
// convert to and from the URL-safe base64 form with internal/ident.
//
// Logical deletion is modeled with an explicit IsDeleted flag rather than
// gorm.DeletedAt, because deleted students must remain visible to list
// endpoints when includeDeleted is requested.
package domain

import "time"

// Enrollment application statuses, in lifecycle order.
const (
	StatusProvisional = "provisional"
	StatusConfirmed   = "confirmed"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
)

// Student represents one registered student.
//
// Fields:
//   - ID: stable UUID-text primary key (char(36)).
//   - Name / KanaName: full name and its kana reading (kana is normalized
//     to full-width by the service layer).
//   - Nickname, Email, Area, Age, Sex, Remark: profile attributes.
//   - IsDeleted: logical deletion flag.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Student struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(100);not null"`
	KanaName  string    `json:"kanaName"   gorm:"type:varchar(100);not null"`
	Nickname  string    `json:"nickname"   gorm:"type:varchar(100)"`
	Email     string    `json:"email"      gorm:"type:varchar(254);not null;uniqueIndex:ux_students_email"`
	Area      string    `json:"area"       gorm:"type:varchar(100)"`
	Age       int       `json:"age"        gorm:"not null"`
	Sex       string    `json:"sex"        gorm:"type:varchar(16)"`
	Remark    string    `json:"remark"     gorm:"type:text"`
	IsDeleted bool      `json:"isDeleted"  gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Student.
func (Student) TableName() string { return "students" }

// StudentCourse is one course enrollment belonging to a student.
//
// Fields:
//   - ID: UUID-text primary key (char(36)).
//   - StudentID: foreign key to the owning student (indexed, cascade delete).
//   - CourseName: the enrolled course.
//   - StartAt / EndAt: scheduled course period.
type StudentCourse struct {
	ID         string    `json:"id"         gorm:"type:char(36);primaryKey"`
	StudentID  string    `json:"studentId"  gorm:"type:char(36);not null;index:idx_student_courses"`
	CourseName string    `json:"courseName" gorm:"type:varchar(100);not null"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Student is the owning record. Enrollments are cascade-deleted if
	// their student row is removed.
	Student Student `json:"-" gorm:"foreignKey:StudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for StudentCourse.
func (StudentCourse) TableName() string { return "student_courses" }

// EnrollmentStatus records the current application status of one enrollment.
// Exactly one row exists per enrollment; transitions overwrite Status in
// place and bump UpdatedAt.
type EnrollmentStatus struct {
	ID              string    `json:"id"              gorm:"type:char(36);primaryKey"`
	StudentCourseID string    `json:"studentCourseId" gorm:"type:char(36);not null;uniqueIndex:ux_status_course"`
	Status          string    `json:"status"          gorm:"type:varchar(32);not null;check:status IN ('provisional','confirmed','in_progress','completed')"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	StudentCourse StudentCourse `json:"-" gorm:"foreignKey:StudentCourseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for EnrollmentStatus.
func (EnrollmentStatus) TableName() string { return "enrollment_statuses" }

// StatusRank maps a status onto its position in the lifecycle, or -1 for an
// unknown value. Transitions may only move forward.
func StatusRank(s string) int {
	switch s {
	case StatusProvisional:
		return 0
	case StatusConfirmed:
		return 1
	case StatusInProgress:
		return 2
	case StatusCompleted:
		return 3
	default:
		return -1
	}
}
