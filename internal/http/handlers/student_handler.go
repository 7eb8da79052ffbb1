// Student HTTP handlers.
//
// This file exposes REST endpoints for student resources:
//   - POST   /students          (register, idempotent via Idempotency-Key)
//   - GET    /students          (list, paginated, includeDeleted switch)
//   - GET    /students/search   (in-memory name search)
//   - GET    /students/{id}     (detail with enrollments)
//   - PUT    /students/{id}     (update profile)
//   - DELETE /students/{id}     (logical delete, admin only)
//
// Handlers are transport-thin: they decode identifiers with the codec,
// validate input, call application services, and translate results into
// HTTP responses. Path identifiers arrive in URL-safe base64 form and are
// converted to UUID text before touching a service; every failure funnels
// through Respond.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/picocico/StudentManagement-sub000/internal/domain"
	"github.com/picocico/StudentManagement-sub000/internal/http/middleware"
	"github.com/picocico/StudentManagement-sub000/internal/ident"
	"github.com/picocico/StudentManagement-sub000/internal/search"
	"github.com/picocico/StudentManagement-sub000/internal/services"
	"github.com/picocico/StudentManagement-sub000/internal/utils"
)

//
// Service contracts (context-aware)
//

// StudentService defines student lifecycle operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type StudentService interface {
	// Register creates a student with course enrollments atomically.
	Register(ctx context.Context, in services.RegisterInput) (*services.StudentDetail, error)
	// Get returns one student with enrollments and statuses.
	Get(ctx context.Context, id string) (*services.StudentDetail, error)
	// List returns a page of students and the total count.
	List(ctx context.Context, includeDeleted bool, page, pageSize int) ([]domain.Student, int64, error)
	// Update applies profile changes to an existing student.
	Update(ctx context.Context, id string, in services.RegisterInput) error
	// Delete logically deletes a student; only the admin role may.
	Delete(ctx context.Context, id, role string) error
}

// EnrollmentService defines enrollment status operations consumed by HTTP
// handlers.
type EnrollmentService interface {
	// UpdateStatus moves one enrollment forward in its lifecycle.
	UpdateStatus(ctx context.Context, studentCourseID, status string) error
}

// SearchIndex is the name index contract: ranked lookup plus incremental
// maintenance as students are registered and deleted.
type SearchIndex interface {
	TopK(query string, k int) []search.Result
	Put(e search.Entry)
	Remove(studentID string)
}

// IdempotencyStore records completed registrations for replay.
type IdempotencyStore interface {
	// Get returns the previously stored (studentID, status) for a key.
	Get(ctx context.Context, clientID, key string, now time.Time) (studentID string, status int, err error)
	// Put stores the outcome of a fresh registration.
	Put(ctx context.Context, clientID, key, studentID string, status int) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for students and enrollments. It
// depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	students    StudentService
	enrollments EnrollmentService
	idx         SearchIndex
	idem        IdempotencyStore

	// SearchSize caps the number of hits returned by SearchStudents.
	SearchSize int
}

// New constructs a Handlers instance bound to the given collaborators.
// idx and idem may be nil; the respective features degrade gracefully.
func New(students StudentService, enrollments EnrollmentService, idx SearchIndex, idem IdempotencyStore) *Handlers {
	return &Handlers{students: students, enrollments: enrollments, idx: idx, idem: idem, SearchSize: 50}
}

//
// DTOs
//

// CourseRequest is one course enrollment in a registration payload.
type CourseRequest struct {
	CourseName string `json:"courseName" validate:"required,max=100" example:"Java Fundamentals"`
}

// RegisterStudentRequest is the JSON payload for registering or updating a
// student.
type RegisterStudentRequest struct {
	Name     string          `json:"name" validate:"required,max=100" example:"山田 太郎"`
	KanaName string          `json:"kanaName" validate:"max=100" example:"ヤマダ タロウ"`
	Nickname string          `json:"nickname" validate:"max=100" example:"Taro"`
	Email    string          `json:"email" validate:"required,email" example:"taro@example.com"`
	Area     string          `json:"area" validate:"max=100" example:"Tokyo"`
	Age      int             `json:"age" validate:"gte=0,lte=150" example:"21"`
	Sex      string          `json:"sex" validate:"omitempty,oneof=male female other" example:"male"`
	Remark   string          `json:"remark" validate:"max=1000"`
	Courses  []CourseRequest `json:"courses" validate:"dive"`
}

// StudentResponse is the wire form of one student; the id is the URL-safe
// base64 rendering of the identifier.
type StudentResponse struct {
	ID        string    `json:"id" example:"8tPrjIcmTkaUy3N3KO7gvw"`
	Name      string    `json:"name"`
	KanaName  string    `json:"kanaName"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Area      string    `json:"area"`
	Age       int       `json:"age"`
	Sex       string    `json:"sex"`
	Remark    string    `json:"remark"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CourseResponse is the wire form of one enrollment with its status.
type CourseResponse struct {
	ID         string    `json:"id" example:"ZQl2tFuUQ4eOLxkp2lImmg"`
	CourseName string    `json:"courseName"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	Status     string    `json:"status" example:"provisional"`
}

// StudentDetailResponse is a student joined with enrollments.
type StudentDetailResponse struct {
	Student StudentResponse  `json:"student"`
	Courses []CourseResponse `json:"courses"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListStudentsResponse wraps a page of students and pagination info.
type ListStudentsResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination Pagination        `json:"pagination"`
}

// SearchHit is one ranked search result.
type SearchHit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// SearchStudentsResponse wraps ranked search hits.
type SearchStudentsResponse struct {
	Hits []SearchHit `json:"hits"`
}

//
// Helpers
//

// toStudentResponse converts a domain student, re-encoding the stored
// UUID-text id into base64 wire form.
func toStudentResponse(s domain.Student) (StudentResponse, error) {
	id, err := ident.UUIDStringToBase64(s.ID)
	if err != nil {
		return StudentResponse{}, err
	}
	return StudentResponse{
		ID:        id,
		Name:      s.Name,
		KanaName:  s.KanaName,
		Nickname:  s.Nickname,
		Email:     s.Email,
		Area:      s.Area,
		Age:       s.Age,
		Sex:       s.Sex,
		Remark:    s.Remark,
		IsDeleted: s.IsDeleted,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

// toDetailResponse converts a service detail aggregate to wire form.
func toDetailResponse(d *services.StudentDetail) (StudentDetailResponse, error) {
	st, err := toStudentResponse(d.Student)
	if err != nil {
		return StudentDetailResponse{}, err
	}
	out := StudentDetailResponse{Student: st, Courses: make([]CourseResponse, 0, len(d.Courses))}
	for _, cd := range d.Courses {
		cid, err := ident.UUIDStringToBase64(cd.Course.ID)
		if err != nil {
			return StudentDetailResponse{}, err
		}
		out.Courses = append(out.Courses, CourseResponse{
			ID:         cid,
			CourseName: cd.Course.CourseName,
			StartAt:    cd.Course.StartAt,
			EndAt:      cd.Course.EndAt,
			Status:     cd.Status,
		})
	}
	return out, nil
}

// toRegisterInput maps the request DTO to the service input.
func toRegisterInput(req RegisterStudentRequest) services.RegisterInput {
	in := services.RegisterInput{
		Name:     req.Name,
		KanaName: req.KanaName,
		Nickname: req.Nickname,
		Email:    req.Email,
		Area:     req.Area,
		Age:      req.Age,
		Sex:      req.Sex,
		Remark:   req.Remark,
	}
	for _, c := range req.Courses {
		in.Courses = append(in.Courses, services.CourseInput{CourseName: c.CourseName})
	}
	return in
}

// pathID decodes the base64 :id path parameter to UUID text.
func pathID(c *gin.Context) (string, error) {
	return ident.Base64ToUUIDString(c.Param("id"))
}

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	return utils.ClampPage(page, pageSize, maxPageSize)
}

// indexEntry builds the search entry for one student.
func indexEntry(s domain.Student) search.Entry {
	return search.Entry{
		StudentID: s.ID,
		Name:      s.Name,
		KanaName:  s.KanaName,
		Nickname:  s.Nickname,
		Email:     s.Email,
	}
}

//
// Handlers
//

// RegisterStudent godoc
// @ID          registerStudent
// @Summary     Register a new student
// @Description Creates a student with course enrollments. Safe to retry with an Idempotency-Key header.
// @Tags        Students
// @Accept      json
// @Produce     json
//
// @Param       X-Client-ID      header  string  false "Client ID (demo header)"
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
// @Param       body             body    handlers.RegisterStudentRequest  true  "Registration payload"
//
// @Success     201  {object}  handlers.StudentDetailResponse
// @Failure     400  {object}  apierr.ErrorResponse  "Validation or body-shape failure"
// @Failure     500  {object}  apierr.ErrorResponse  "Internal error"
// @Router      /students [post]
func (h *Handlers) RegisterStudent(c *gin.Context) {
	ctx := c.Request.Context()

	// Serve a stored result when the idempotency middleware flagged a replay.
	if key, hasKey := middleware.GetIdempotencyKey(c); hasKey && middleware.IsReplay(c) && h.idem != nil {
		studentID, status, err := h.idem.Get(ctx, middleware.ClientID(c), key, time.Now().UTC())
		if err == nil && studentID != "" {
			detail, err := h.students.Get(ctx, studentID)
			if err == nil {
				body, err := toDetailResponse(detail)
				if err == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, status, body)
					return
				}
			}
		}
		// A broken stored record falls through to a fresh registration.
	}

	var req RegisterStudentRequest
	if err := decodeJSONBody(c, &req); err != nil {
		Respond(c, err)
		return
	}

	detail, err := h.students.Register(ctx, toRegisterInput(req))
	if err != nil {
		Respond(c, err)
		return
	}

	if h.idx != nil {
		h.idx.Put(indexEntry(detail.Student))
	}
	if key, hasKey := middleware.GetIdempotencyKey(c); hasKey && h.idem != nil {
		// Best effort: losing the record only costs replay capability.
		_ = h.idem.Put(ctx, middleware.ClientID(c), key, detail.Student.ID, http.StatusCreated)
	}

	body, err := toDetailResponse(detail)
	if err != nil {
		Respond(c, err)
		return
	}
	ok(c, http.StatusCreated, body)
}

// ListStudents godoc
// @ID          listStudents
// @Summary     List students (paginated)
// @Description Returns a page of students. includeDeleted=true also returns logically deleted students.
// @Tags        Students
// @Produce     json
//
// @Param       page           query  int     false "Page number (1-based)"
// @Param       page_size      query  int     false "Page size (max 100)"
// @Param       includeDeleted query  bool    false "Include logically deleted students"
//
// @Success     200  {object}  handlers.ListStudentsResponse
// @Failure     400  {object}  apierr.ErrorResponse  "Type mismatch on includeDeleted"
// @Failure     500  {object}  apierr.ErrorResponse  "Internal error"
// @Router      /students [get]
func (h *Handlers) ListStudents(c *gin.Context) {
	includeDeleted, err := boolQuery(c, "includeDeleted", false)
	if err != nil {
		Respond(c, err)
		return
	}
	page, pageSize := clampPagination(c)

	rows, total, err := h.students.List(c.Request.Context(), includeDeleted, page, pageSize)
	if err != nil {
		Respond(c, err)
		return
	}

	out := ListStudentsResponse{
		Students: make([]StudentResponse, 0, len(rows)),
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: utils.TotalPages(total, pageSize),
			HasNext:    int64(page*pageSize) < total,
		},
	}
	for _, s := range rows {
		sr, err := toStudentResponse(s)
		if err != nil {
			Respond(c, err)
			return
		}
		out.Students = append(out.Students, sr)
	}
	ok(c, http.StatusOK, out)
}

// SearchStudents godoc
// @ID          searchStudents
// @Summary     Search students by name
// @Description Ranks students against the query using the in-memory name index.
// @Tags        Students
// @Produce     json
//
// @Param       q  query  string  true  "Search query"
//
// @Success     200  {object}  handlers.SearchStudentsResponse
// @Failure     400  {object}  apierr.ErrorResponse  "Missing query parameter"
// @Router      /students/search [get]
func (h *Handlers) SearchStudents(c *gin.Context) {
	q, err := requiredQuery(c, "q")
	if err != nil {
		Respond(c, err)
		return
	}

	out := SearchStudentsResponse{Hits: []SearchHit{}}
	if h.idx != nil {
		for _, hit := range h.idx.TopK(q, h.searchSize()) {
			id, err := ident.UUIDStringToBase64(hit.StudentID)
			if err != nil {
				continue // skip entries with corrupt ids rather than fail the search
			}
			out.Hits = append(out.Hits, SearchHit{ID: id, Score: hit.Score})
		}
	}
	ok(c, http.StatusOK, out)
}

// GetStudent godoc
// @ID          getStudent
// @Summary     Get one student
// @Description Returns a student with course enrollments and statuses. The id is base64 form.
// @Tags        Students
// @Produce     json
//
// @Param       id  path  string  true  "Student ID (URL-safe base64)"
//
// @Success     200  {object}  handlers.StudentDetailResponse
// @Failure     400  {object}  apierr.ErrorResponse  "Malformed identifier"
// @Failure     404  {object}  apierr.ErrorResponse  "Student not found"
// @Router      /students/{id} [get]
func (h *Handlers) GetStudent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		Respond(c, err)
		return
	}
	detail, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		Respond(c, err)
		return
	}
	body, err := toDetailResponse(detail)
	if err != nil {
		Respond(c, err)
		return
	}
	ok(c, http.StatusOK, body)
}

// UpdateStudent godoc
// @ID          updateStudent
// @Summary     Update a student profile
// @Tags        Students
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Student ID (URL-safe base64)"
// @Param       body  body  handlers.RegisterStudentRequest  true  "Updated profile"
//
// @Success     204  "No content"
// @Failure     400  {object}  apierr.ErrorResponse  "Validation or identifier failure"
// @Failure     404  {object}  apierr.ErrorResponse  "Student not found"
// @Router      /students/{id} [put]
func (h *Handlers) UpdateStudent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		Respond(c, err)
		return
	}
	var req RegisterStudentRequest
	if err := decodeJSONBody(c, &req); err != nil {
		Respond(c, err)
		return
	}
	if err := h.students.Update(c.Request.Context(), id, toRegisterInput(req)); err != nil {
		Respond(c, err)
		return
	}
	if h.idx != nil {
		if detail, err := h.students.Get(c.Request.Context(), id); err == nil {
			h.idx.Put(indexEntry(detail.Student))
		}
	}
	noContent(c)
}

// DeleteStudent godoc
// @ID          deleteStudent
// @Summary     Logically delete a student
// @Description Marks the student deleted. Requires the admin role (X-Role header in this demo setup).
// @Tags        Students
// @Produce     json
//
// @Param       id      path    string  true   "Student ID (URL-safe base64)"
// @Param       X-Role  header  string  false  "Caller role"
//
// @Success     204  "No content"
// @Failure     401  {object}  apierr.ErrorResponse  "No credentials"
// @Failure     403  {object}  apierr.ErrorResponse  "Not permitted"
// @Failure     404  {object}  apierr.ErrorResponse  "Student not found"
// @Router      /students/{id} [delete]
func (h *Handlers) DeleteStudent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		Respond(c, err)
		return
	}
	role := c.GetHeader("X-Role")
	if role == "" {
		Respond(c, ErrUnauthorized)
		return
	}
	if err := h.students.Delete(c.Request.Context(), id, role); err != nil {
		Respond(c, err)
		return
	}
	if h.idx != nil {
		h.idx.Remove(id)
	}
	noContent(c)
}

func (h *Handlers) searchSize() int {
	if h.SearchSize <= 0 {
		return 50
	}
	return h.SearchSize
}
