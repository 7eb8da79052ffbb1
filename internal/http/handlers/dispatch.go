// Error dispatcher.
//
// Respond is the single boundary between "whatever failed" and the
// canonical JSON error body: a total function from any error to exactly one
// ErrorResponse, evaluated most-specific-first. Handlers call it with raw
// errors from binding, the identifier codec, or services; the router's
// fallbacks call it for unrouted paths. Nothing else in the HTTP layer
// writes error bodies.
//
// The dispatcher itself never panics and never propagates: anything it
// cannot classify lands in the unclassified 500 bucket with a fixed generic
// message, so internal error text cannot leak to clients.
package handlers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/picocico/StudentManagement-sub000/internal/apierr"
	"github.com/picocico/StudentManagement-sub000/internal/http/middleware"
	"github.com/picocico/StudentManagement-sub000/internal/ident"
	"github.com/picocico/StudentManagement-sub000/internal/services"
)

// validationMessage is the fixed top-level message for field-constraint
// failures; per-field detail lives in errors/details.
const validationMessage = "input validation failed"

// internalMessage is the only message the unclassified bucket ever emits.
const internalMessage = "unexpected error occurred"

// Respond classifies err, records the canonical error code for metrics,
// logs server-side failures with request context, and writes the error
// body. It aborts the request.
func Respond(c *gin.Context, err error) {
	resp := classify(err)
	middleware.SetErrorCode(c, resp.Code)

	if resp.Status >= 500 {
		middleware.LoggerFrom(c).Error().
			Err(err).
			Int("status", resp.Status).
			Str("code", resp.Code).
			Msg("api error")
	}

	c.AbortWithStatusJSON(resp.Status, resp)
}

// classify maps one error onto one taxonomy category, most specific first.
// The order is load-bearing: validator violations and body shape come
// before the generic invalid-request fallback, and everything unmatched
// falls through to the internal bucket.
func classify(err error) apierr.ErrorResponse {
	// 1) Declared field-constraint violations.
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return apierr.New(apierr.CategoryValidation, validationMessage, fieldErrors(ve)...)
	}

	// 2) Body unreadable, sub-classified by cause.
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apierr.New(apierr.CategoryMissingParameter, "request body is required")
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return apierr.New(apierr.CategoryMalformedJSON, "request body is not valid JSON")
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		msg := "request body has a structural mismatch"
		if typ.Field != "" {
			msg += ": field " + typ.Field
		}
		return apierr.New(apierr.CategoryMalformedJSON, msg)
	}
	var bre *bodyReadError
	if errors.As(err, &bre) {
		return apierr.New(apierr.CategoryInvalidRequest, bre.Error())
	}

	// 3) Identifier codec failures; the codec message passes through.
	var ce *ident.Error
	if errors.As(err, &ce) {
		return apierr.New(apierr.CategoryInvalidRequest, ce.Error())
	}

	// 4) Domain not-found; the error renders either the explicit message
	// or the "<resource> not found: <key>" default.
	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		return apierr.New(apierr.CategoryNotFound, nf.Error())
	}

	// 5) Unrouted path.
	if errors.Is(err, ErrUnrouted) {
		return apierr.New(apierr.CategoryUnrouted, "resource not found")
	}

	// 6) Parameter type mismatch.
	var tm *TypeMismatchError
	if errors.As(err, &tm) {
		return apierr.New(apierr.CategoryTypeMismatch, tm.Error())
	}

	// 7) Missing required parameter.
	var mp *MissingParameterError
	if errors.As(err, &mp) {
		return apierr.New(apierr.CategoryMissingParameter, mp.Error())
	}

	// 8) Empty object body.
	if errors.Is(err, ErrEmptyBody) {
		return apierr.New(apierr.CategoryEmptyObject, "request body has no fields")
	}

	// 9) Authentication and authorization.
	if errors.Is(err, ErrUnauthorized) {
		return apierr.New(apierr.CategoryUnauthorized, "authentication required")
	}
	if errors.Is(err, services.ErrForbidden) {
		return apierr.New(apierr.CategoryForbidden, "operation not permitted")
	}

	// Service-level input rejections surface as validation failures with
	// field detail.
	switch {
	case errors.Is(err, services.ErrEmptyName):
		return apierr.New(apierr.CategoryValidation, validationMessage,
			apierr.FieldError{Field: "name", Message: "must not be blank"})
	case errors.Is(err, services.ErrAgeOutOfRange):
		return apierr.New(apierr.CategoryValidation, validationMessage,
			apierr.FieldError{Field: "age", Message: "is out of range"})
	case errors.Is(err, services.ErrUnknownStatus):
		return apierr.New(apierr.CategoryValidation, validationMessage,
			apierr.FieldError{Field: "status", Message: "is not a known enrollment status"})
	case errors.Is(err, services.ErrStatusRegression):
		return apierr.New(apierr.CategoryValidation, validationMessage,
			apierr.FieldError{Field: "status", Message: "cannot move backwards"})
	}

	// 10) Everything else: generic 500, no internal detail.
	return apierr.New(apierr.CategoryInternal, internalMessage)
}

// fieldErrors converts validator violations into field errors, one entry
// per violation, preserving discovery order and duplicates.
func fieldErrors(ve validator.ValidationErrors) []apierr.FieldError {
	out := make([]apierr.FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, apierr.FieldError{Field: fe.Field(), Message: constraintMessage(fe)})
	}
	return out
}

// constraintMessage renders a human-readable message for one violated
// constraint tag.
func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed the " + fe.Tag() + " constraint"
	}
}
