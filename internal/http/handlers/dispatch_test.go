package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/picocico/StudentManagement-sub000/internal/apierr"
	"github.com/picocico/StudentManagement-sub000/internal/ident"
	"github.com/picocico/StudentManagement-sub000/internal/services"
)

// classify must be total: every error maps onto exactly one taxonomy row,
// most specific first, and nothing escapes the internal bucket.
func TestClassify_Table(t *testing.T) {
	_, synErr := jsonUnmarshal(`{`)
	_, typErr := jsonUnmarshal(`{"n": "x"}`)
	_, b64Err := ident.DecodeBase64("not*base64!")
	_, uuidErr := ident.DecodeUUIDString("nope")

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		label   string
		message string // "" skips the message check
	}{
		{"eof", io.EOF, 400, "E003", "MISSING_PARAMETER", "request body is required"},
		{"unexpected eof", io.ErrUnexpectedEOF, 400, "E003", "MISSING_PARAMETER", "request body is required"},
		{"syntax", synErr, 400, "E002", "INVALID_JSON", "request body is not valid JSON"},
		{"type mismatch in body", typErr, 400, "E002", "INVALID_JSON", ""},
		{"body read", &bodyReadError{cause: errors.New("boom")}, 400, "E006", "INVALID_REQUEST", "request body could not be read: boom"},
		{"codec base64", b64Err, 400, "E006", "INVALID_REQUEST", ""},
		{"codec uuid", uuidErr, 400, "E006", "INVALID_REQUEST", ""},
		{"not found default", &services.NotFoundError{Resource: "student", Key: "abc"}, 404, "E404", "NOT_FOUND", "student not found: abc"},
		{"not found custom", &services.NotFoundError{Message: "no such enrollment"}, 404, "E404", "NOT_FOUND", "no such enrollment"},
		{"unrouted", ErrUnrouted, 404, "E404", "NOT_FOUND", "resource not found"},
		{"param type", &TypeMismatchError{Param: "includeDeleted", Value: "abc", Expected: "boolean"}, 400, "E004", "TYPE_MISMATCH", `parameter includeDeleted with value "abc" could not be converted to boolean`},
		{"param missing", &MissingParameterError{Param: "q"}, 400, "E003", "MISSING_PARAMETER", "required parameter q is missing"},
		{"empty object", ErrEmptyBody, 400, "E003", "EMPTY_OBJECT", "request body has no fields"},
		{"unauthorized", ErrUnauthorized, 401, "E401", "UNAUTHORIZED", "authentication required"},
		{"forbidden", services.ErrForbidden, 403, "E403", "FORBIDDEN", "operation not permitted"},
		{"empty name", services.ErrEmptyName, 400, "E001", "VALIDATION_FAILED", validationMessage},
		{"age range", services.ErrAgeOutOfRange, 400, "E001", "VALIDATION_FAILED", validationMessage},
		{"unknown status", services.ErrUnknownStatus, 400, "E001", "VALIDATION_FAILED", validationMessage},
		{"status regression", services.ErrStatusRegression, 400, "E001", "VALIDATION_FAILED", validationMessage},
		{"anything else", errors.New("pq: connection reset"), 500, "E999", "INTERNAL_SERVER_ERROR", internalMessage},
		{"wrapped unknown", errors.Join(errors.New("a"), errors.New("b")), 500, "E999", "INTERNAL_SERVER_ERROR", internalMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			if got.Status != tc.status || got.Code != tc.code || got.Label != tc.label {
				t.Fatalf("got %d %s/%s, want %d %s/%s", got.Status, got.Code, got.Label, tc.status, tc.code, tc.label)
			}
			if tc.message != "" && got.Message != tc.message {
				t.Fatalf("message = %q, want %q", got.Message, tc.message)
			}
		})
	}
}

// The internal bucket must never leak the underlying error text.
func TestClassify_InternalHidesDetail(t *testing.T) {
	secret := errors.New("password=s3cret host=10.0.0.1")
	got := classify(secret)
	if got.Message != internalMessage {
		t.Fatalf("internal message leaked: %q", got.Message)
	}
	if got.Errors != nil || got.Details != nil {
		t.Fatalf("internal must not carry field detail: %#v", got)
	}
}

// Wrapping must not defeat classification.
func TestClassify_UnwrapsWrappedErrors(t *testing.T) {
	wrapped := errorsWrap("lookup failed", &services.NotFoundError{Resource: "student", Key: "k"})
	got := classify(wrapped)
	if got.Code != "E404" {
		t.Fatalf("wrapped not-found classified as %s", got.Code)
	}
}

func TestRespond_WritesBodyAndAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/students/x", nil)

	Respond(c, &services.NotFoundError{Resource: "student", Key: "x"})

	if !c.IsAborted() {
		t.Fatalf("context not aborted")
	}
	if w.Code != 404 {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	want := map[string]any{
		"status":  float64(404),
		"code":    "E404",
		"error":   "NOT_FOUND",
		"message": "student not found: x",
	}
	if !reflect.DeepEqual(body, want) {
		t.Fatalf("body = %#v", body)
	}
}

// Field detail from validator violations must surface under both alias
// keys with identical content and wire-exact key names.
func TestRespond_ValidationAliasKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var req RegisterStudentRequest
	err := validate.Struct(&req) // name and email both required
	if err == nil {
		t.Fatalf("expected violations")
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/students", nil)
	Respond(c, err)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if string(body["code"]) != `"E001"` {
		t.Fatalf("code = %s", body["code"])
	}
	e, okE := body["errors"]
	d, okD := body["details"]
	if !okE || !okD {
		t.Fatalf("alias keys missing: %s", w.Body.String())
	}
	if string(e) != string(d) {
		t.Fatalf("alias keys diverge:\n%s\n%s", e, d)
	}
	var fields []apierr.FieldError
	if err := json.Unmarshal(e, &fields); err != nil {
		t.Fatalf("fields json: %v", err)
	}
	// Field names come from the JSON tags, not the Go identifiers.
	seen := map[string]bool{}
	for _, f := range fields {
		seen[f.Field] = true
	}
	if !seen["name"] || !seen["email"] {
		t.Fatalf("expected wire field names, got %#v", fields)
	}
}

// ---------- small local helpers ----------

func jsonUnmarshal(s string) (struct {
	N int `json:"n"`
}, error) {
	var v struct {
		N int `json:"n"`
	}
	err := json.Unmarshal([]byte(s), &v)
	return v, err
}

type wrapErr struct {
	msg   string
	cause error
}

func (e *wrapErr) Error() string { return e.msg + ": " + e.cause.Error() }
func (e *wrapErr) Unwrap() error { return e.cause }

func errorsWrap(msg string, cause error) error { return &wrapErr{msg: msg, cause: cause} }
