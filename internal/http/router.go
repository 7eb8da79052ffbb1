// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - One error surface: every failure body comes from handlers.Respond
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/picocico/StudentManagement-sub000/docs"
	"github.com/picocico/StudentManagement-sub000/internal/config"
	"github.com/picocico/StudentManagement-sub000/internal/domain"
	"github.com/picocico/StudentManagement-sub000/internal/http/handlers"
	"github.com/picocico/StudentManagement-sub000/internal/http/middleware"
	"github.com/picocico/StudentManagement-sub000/internal/repo"
	"github.com/picocico/StudentManagement-sub000/internal/search"
	"github.com/picocico/StudentManagement-sub000/internal/services"
)

// studentRepoShim adapts the repository free functions to the
// services.StudentRepo interface expected by the StudentService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type studentRepoShim struct{}

// CreateStudent proxies repo.CreateStudent.
func (studentRepoShim) CreateStudent(ctx context.Context, db *gorm.DB, s *domain.Student, courses []domain.StudentCourse) error {
	return repo.CreateStudent(ctx, db, s, courses)
}

// GetStudent proxies repo.GetStudent.
func (studentRepoShim) GetStudent(ctx context.Context, db *gorm.DB, id string) (*domain.Student, error) {
	return repo.GetStudent(ctx, db, id)
}

// ListCourses proxies repo.ListCourses.
func (studentRepoShim) ListCourses(ctx context.Context, db *gorm.DB, studentID string) ([]domain.StudentCourse, error) {
	return repo.ListCourses(ctx, db, studentID)
}

// ListStatusesByCourseIDs proxies repo.ListStatusesByCourseIDs.
func (studentRepoShim) ListStatusesByCourseIDs(ctx context.Context, db *gorm.DB, courseIDs []string) ([]domain.EnrollmentStatus, error) {
	return repo.ListStatusesByCourseIDs(ctx, db, courseIDs)
}

// CountStudents proxies repo.CountStudents (pagination support).
func (studentRepoShim) CountStudents(ctx context.Context, db *gorm.DB, includeDeleted bool) (int64, error) {
	return repo.CountStudents(ctx, db, includeDeleted)
}

// ListStudentsPage proxies repo.ListStudentsPage (pagination support).
func (studentRepoShim) ListStudentsPage(ctx context.Context, db *gorm.DB, includeDeleted bool, offset, limit int) ([]domain.Student, error) {
	return repo.ListStudentsPage(ctx, db, includeDeleted, offset, limit)
}

// UpdateStudent proxies repo.UpdateStudent.
func (studentRepoShim) UpdateStudent(ctx context.Context, db *gorm.DB, s *domain.Student) error {
	return repo.UpdateStudent(ctx, db, s)
}

// SoftDeleteStudent proxies repo.SoftDeleteStudent.
func (studentRepoShim) SoftDeleteStudent(ctx context.Context, db *gorm.DB, id string) error {
	return repo.SoftDeleteStudent(ctx, db, id)
}

// enrollmentRepoShim adapts enrollment repository functions to the
// services.EnrollmentRepo interface.
type enrollmentRepoShim struct{}

// GetEnrollmentStatus proxies repo.GetEnrollmentStatus.
func (enrollmentRepoShim) GetEnrollmentStatus(ctx context.Context, db *gorm.DB, studentCourseID string) (*domain.EnrollmentStatus, error) {
	return repo.GetEnrollmentStatus(ctx, db, studentCourseID)
}

// UpdateEnrollmentStatus proxies repo.UpdateEnrollmentStatus.
func (enrollmentRepoShim) UpdateEnrollmentStatus(ctx context.Context, db *gorm.DB, studentCourseID, status string) error {
	return repo.UpdateEnrollmentStatus(ctx, db, studentCourseID, status)
}

// idemStore adapts the idempotency repository for the registration handler.
type idemStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// Get proxies repo.GetIdempotency.
func (s idemStore) Get(ctx context.Context, clientID, key string, now time.Time) (string, int, error) {
	rec, err := repo.GetIdempotency(ctx, s.db, clientID, key, now)
	if err != nil {
		return "", 0, err
	}
	return rec.StudentID, rec.Status, nil
}

// Put proxies repo.CreateIdempotency.
func (s idemStore) Put(ctx context.Context, clientID, key, studentID string, status int) error {
	_, err := repo.CreateIdempotency(ctx, s.db, clientID, key, studentID, status, s.ttl)
	return err
}

// NewSearchIndex builds the in-memory name index from current students,
// including logically deleted ones so replays of old searches stay cheap to
// filter at the service level.
func NewSearchIndex(ctx context.Context, db *gorm.DB) (*search.StudentIndex, error) {
	rows, err := repo.ListAllStudents(ctx, db)
	if err != nil {
		return nil, err
	}
	entries := make([]search.Entry, 0, len(rows))
	for _, s := range rows {
		if s.IsDeleted {
			continue
		}
		entries = append(entries, search.Entry{
			StudentID: s.ID,
			Name:      s.Name,
			KanaName:  s.KanaName,
			Nickname:  s.Nickname,
			Email:     s.Email,
		})
	}
	return search.NewStudentIndex(entries), nil
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and
// rate limiting, CORS and security headers, health/metrics/docs endpoints,
// and then mounts the versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per client/IP, bypass on replay)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, idx *search.StudentIndex, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.Logger(middleware.LoggerOptions{
		MaskHeaders: []string{
			"X-Role", // carries caller privileges; keep out of logs
		},
	}))

	// 4) Panic recovery to the canonical 500 body (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, clientID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, clientID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per client/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Role", middleware.HeaderClientID, middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Role", middleware.HeaderClientID, middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks route through the dispatcher so unknown paths and methods
	// get the canonical body too.
	r.NoRoute(func(c *gin.Context) {
		handlers.Respond(c, handlers.ErrUnrouted)
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Respond(c, handlers.ErrUnrouted)
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/index
	studentSvc := services.NewStudentService(db, studentRepoShim{})
	studentSvc.MaxAge = cfg.MaxAge
	enrollSvc := services.NewEnrollmentService(db, enrollmentRepoShim{})

	h := handlers.New(studentSvc, enrollSvc, idx, idemStore{db: db, ttl: cfg.IdempotencyTTL})
	h.SearchSize = cfg.SearchSize

	// Compress the chatty read endpoints only; writes stay uncompressed.
	zip := gzip.Gzip(gzip.DefaultCompression)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Students
		api.POST("/students", h.RegisterStudent)
		api.GET("/students", zip, h.ListStudents)
		api.GET("/students/search", zip, h.SearchStudents)
		api.GET("/students/:id", h.GetStudent)
		api.PUT("/students/:id", h.UpdateStudent)
		api.DELETE("/students/:id", h.DeleteStudent)

		// Enrollments
		api.PUT("/enrollments/:id/status", h.UpdateEnrollmentStatus)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
