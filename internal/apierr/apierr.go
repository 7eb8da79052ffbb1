// Package apierr defines the canonical API error contract: a static taxonomy
// of failure categories and the single builder that assembles the JSON error
// body every endpoint returns on failure.
//
// The taxonomy table is the only place in the codebase where an HTTP status,
// an error code, and an error label are paired; nothing else hardcodes these.
// The wire shape is frozen:
//
//	{
//	  "status": 404,
//	  "code": "E404",
//	  "error": "NOT_FOUND",
//	  "message": "student not found: ...",
//	  "errors":  [{"field": "...", "message": "..."}],   // optional
//	  "details": [{"field": "...", "message": "..."}]    // optional, same content
//	}
//
// `errors` and `details` are two public names for one list: both present and
// identical when field-level detail exists, both absent otherwise. No other
// top-level keys are ever emitted.
package apierr

import "regexp"

// Category is a closed enumeration of failure categories. The dispatcher in
// the HTTP layer maps every error in the system onto exactly one Category.
type Category int

const (
	// CategoryValidation covers declared field-constraint violations on a
	// request body.
	CategoryValidation Category = iota
	// CategoryMalformedJSON covers structurally broken JSON bodies.
	CategoryMalformedJSON
	// CategoryMissingParameter covers an absent required parameter or body.
	CategoryMissingParameter
	// CategoryEmptyObject covers a request body that is literally "{}".
	CategoryEmptyObject
	// CategoryTypeMismatch covers a parameter that cannot be converted to
	// its declared type.
	CategoryTypeMismatch
	// CategoryInvalidRequest covers malformed identifiers (base64 or UUID
	// shape) and otherwise unreadable request content.
	CategoryInvalidRequest
	// CategoryUnauthorized covers unauthenticated access.
	CategoryUnauthorized
	// CategoryForbidden covers authenticated but not permitted access.
	CategoryForbidden
	// CategoryNotFound covers lookups of resources that do not exist.
	CategoryNotFound
	// CategoryUnrouted covers requests no route matches.
	CategoryUnrouted
	// CategoryInternal covers everything unclassified. Always a generic 500;
	// internal error text never reaches the client.
	CategoryInternal
)

// Classification is one row of the taxonomy table.
type Classification struct {
	Status int
	Code   string
	Label  string
}

// taxonomy is the single source of truth for status/code/label pairings.
var taxonomy = map[Category]Classification{
	CategoryValidation:       {Status: 400, Code: "E001", Label: "VALIDATION_FAILED"},
	CategoryMalformedJSON:    {Status: 400, Code: "E002", Label: "INVALID_JSON"},
	CategoryMissingParameter: {Status: 400, Code: "E003", Label: "MISSING_PARAMETER"},
	CategoryEmptyObject:      {Status: 400, Code: "E003", Label: "EMPTY_OBJECT"},
	CategoryTypeMismatch:     {Status: 400, Code: "E004", Label: "TYPE_MISMATCH"},
	CategoryInvalidRequest:   {Status: 400, Code: "E006", Label: "INVALID_REQUEST"},
	CategoryUnauthorized:     {Status: 401, Code: "E401", Label: "UNAUTHORIZED"},
	CategoryForbidden:        {Status: 403, Code: "E403", Label: "FORBIDDEN"},
	CategoryNotFound:         {Status: 404, Code: "E404", Label: "NOT_FOUND"},
	CategoryUnrouted:         {Status: 404, Code: "E404", Label: "NOT_FOUND"},
	CategoryInternal:         {Status: 500, Code: "E999", Label: "INTERNAL_SERVER_ERROR"},
}

// Classify returns the taxonomy row for a category. Unknown categories fall
// back to the internal-error row so a bad cast can never invent a status.
func Classify(cat Category) Classification {
	if c, ok := taxonomy[cat]; ok {
		return c
	}
	return taxonomy[CategoryInternal]
}

// FieldError is one field-level violation: which input field and why.
// Order follows discovery order and entries are not deduplicated.
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"must be a valid email address"`
}

// ErrorResponse is the canonical error body. Errors and Details always carry
// identical content when present; both are omitted entirely when there is no
// field-level detail.
type ErrorResponse struct {
	Status  int          `json:"status" example:"404"`
	Code    string       `json:"code" example:"E404"`
	Label   string       `json:"error" example:"NOT_FOUND"`
	Message string       `json:"message" example:"student not found: ..."`
	Errors  []FieldError `json:"errors,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// codePattern matches a machine-readable error code: "E" plus three digits.
var codePattern = regexp.MustCompile(`^E\d{3}$`)

// looksLikeCode reports whether s matches the error-code shape.
func looksLikeCode(s string) bool { return codePattern.MatchString(s) }

// Build assembles an ErrorResponse from positional arguments.
//
// Historically some call sites passed the label and the code swapped, so
// Build detects which argument is actually the code by testing it against
// the E-number pattern and swaps the pair when label holds the code and code
// does not. This normalization is the single guarantee that the wire body
// always carries code = the E-number and error = the label, regardless of
// call-site order. New call sites must pass (label, code) canonically; the
// shim stays regardless, because losing it would corrupt the wire contract
// for every legacy caller at once.
func Build(status int, label, code, message string, fields []FieldError) ErrorResponse {
	if looksLikeCode(label) && !looksLikeCode(code) {
		label, code = code, label
	}
	resp := ErrorResponse{
		Status:  status,
		Code:    code,
		Label:   label,
		Message: message,
	}
	if len(fields) > 0 {
		resp.Errors = fields
		resp.Details = fields
	}
	return resp
}

// New assembles an ErrorResponse for a taxonomy category. This is the
// canonical construction path; status, code, and label all come from the
// table, only the message (and optional field detail) is caller-supplied.
func New(cat Category, message string, fields ...FieldError) ErrorResponse {
	c := Classify(cat)
	return Build(c.Status, c.Label, c.Code, message, fields)
}
