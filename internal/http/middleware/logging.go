// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides request correlation, structured request logging with
// PII scrubbing, and a panic-safe recovery handler. Student records are
// PII-dense (names, emails, areas), so scrubbing is built into the access
// logger rather than being an optional add-on:
//
//   - RequestID() ensures every request carries a stable correlation ID
//     (propagated via X-Request-ID and stored in the Gin context).
//   - Logger() emits structured access logs with request/response metadata,
//     redacts emails, phone numbers, and UUID-like identifiers from query
//     strings and header values, masks sensitive headers outright, and
//     attaches a request-scoped zerolog.Logger for handlers and services.
//   - Recovery() converts panics into the canonical JSON error body
//     (E999 / INTERNAL_SERVER_ERROR) while preserving the correlation ID.
//   - LoggerFrom() retrieves the request-scoped logger.
//
// Order matters: RequestID() → Logger() → Recovery(), so panics are logged
// with structured context and the correlation ID.
package middleware

import (
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/picocico/StudentManagement-sub000/internal/apierr"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// requestIDHeader is the HTTP header used to propagate the correlation ID.
	requestIDHeader = "X-Request-ID"
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
)

// RequestID attaches (or propagates) a correlation identifier per request.
//
// If the incoming request has X-Request-ID, that value is reused; otherwise
// a new UUIDv4 is generated. The ID is written back to the response header
// and stored in the Gin context under the "requestID" key.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// Redaction patterns, compiled once. UUIDs are scrubbed before phone
// numbers so the loose phone pattern cannot match UUID digit segments.
var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)

	// Fully masked headers, case-insensitive, merged with LoggerOptions.MaskHeaders.
	builtinMasked = []string{"authorization", "cookie", "set-cookie"}
)

// LoggerOptions configures additional scrub behavior for Logger.
type LoggerOptions struct {
	// MaskHeaders lists extra header names whose values are fully replaced
	// with "[REDACTED]". Matching is case-insensitive.
	MaskHeaders []string
}

// Logger writes a structured, scrubbed access log for each request and
// stores a request-scoped zerolog.Logger in the Gin context (key "logger").
// Level is chosen by outcome: error for 5xx or collected Gin errors, warn
// for 4xx, info otherwise. Bodies are never logged.
func Logger(opts LoggerOptions) gin.HandlerFunc {
	masked := make(map[string]struct{}, len(builtinMasked)+len(opts.MaskHeaders))
	for _, h := range builtinMasked {
		masked[h] = struct{}{}
	}
	for _, h := range opts.MaskHeaders {
		masked[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()

		rid, _ := c.Get(requestIDKey)
		path := c.FullPath()
		if path == "" {
			// Fallback when route not matched / 404.
			path = c.Request.URL.Path
		}

		l := log.With().
			Str("request_id", asString(rid)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", scrub(c.Request.UserAgent())).
			Str("query", scrub(truncate(c.Request.URL.RawQuery, maxQueryLogLength))).
			Str("headers", scrubHeaders(c.Request.Header, masked)).
			Int64("bytes_in", c.Request.ContentLength).
			Logger()

		// Make it available to handlers/services.
		c.Set("logger", &l)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		ev := l.With().
			Int("status", status).
			Dur("latency", latency).
			Int("bytes_out", c.Writer.Size()).
			Logger()

		switch {
		case len(c.Errors) > 0:
			ev.Error().Str("errors", scrub(c.Errors.String())).Msg("request")
		case status >= 500:
			ev.Error().Msg("request")
		case status >= 400:
			ev.Warn().Msg("request")
		default:
			ev.Info().Msg("request")
		}
	}
}

// Recovery intercepts panics, logs the stack trace, and returns the
// canonical E999 error body. It never re-panics and writes nothing when a
// response has already started.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rid, _ := c.Get(requestIDKey)
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", asString(rid)).
					Msg("panic recovered")

				if !c.Writer.Written() {
					c.Header(requestIDHeader, asString(rid))
					resp := apierr.New(apierr.CategoryInternal, "unexpected error occurred")
					c.AbortWithStatusJSON(resp.Status, resp)
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger, or a fallback
// without request fields when none was attached. Callers never need nil
// checks.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get("logger"); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// scrub redacts identifiers, emails, and phone numbers. Order matters:
// ids → email → phone (phone is the loosest pattern).
func scrub(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	s = phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
	return s
}

// scrubHeaders renders request headers as "k=v; ..." with masked headers
// fully replaced and the rest scrubbed.
func scrubHeaders(h http.Header, masked map[string]struct{}) string {
	var b strings.Builder
	for k, vals := range h {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		if _, ok := masked[strings.ToLower(k)]; ok {
			b.WriteString("[REDACTED]")
			continue
		}
		b.WriteString(scrub(strings.Join(vals, ",")))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// asString converts a context value to a string, or "" when it is not one.
func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
