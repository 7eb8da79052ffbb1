// Package ident implements the identifier codec used for every externally
// visible ID in the API. One identifier has three interchangeable forms:
//
//   - raw:    exactly 16 bytes (binary UUID layout, big-endian halves)
//   - base64: URL-safe base64 of the raw form, no padding (API paths/bodies)
//   - text:   canonical hyphenated UUID string (database and interop)
//
// The three forms are bijective for valid values and every conversion is a
// pure function. The 16-byte invariant is enforced here and nowhere else.
//
// Decode failures are classified: a violation of the base64 alphabet is a
// Base64-kind error, while text that decodes fine but does not yield a
// 16-byte identifier (or malformed UUID text) is a UUID-kind error. The HTTP
// layer maps the two kinds to different API error codes, so they must not be
// collapsed into one.
package ident

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// RawLen is the exact byte length of a raw identifier.
const RawLen = 16

// Kind tags a codec failure by which format contract was violated.
type Kind int

const (
	// KindBase64 marks input that is not valid URL-safe base64 text.
	KindBase64 Kind = iota
	// KindUUID marks input that is not a valid 16-byte / UUID-text identifier.
	KindUUID
)

// String returns the tag name used in logs and error text.
func (k Kind) String() string {
	if k == KindBase64 {
		return "Base64"
	}
	return "UUID"
}

// Error is the classified failure returned by all codec operations.
// Callers branch on Kind with errors.As; Value keeps the offending input
// for log context (it is never echoed verbatim into 5xx responses).
type Error struct {
	Kind  Kind
	Value string
	msg   string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.msg }

func newErr(kind Kind, value, format string, args ...any) *Error {
	return &Error{Kind: kind, Value: value, msg: fmt.Sprintf(format, args...)}
}

// New returns a freshly generated random raw identifier. It draws from the
// process-wide random source used by uuid.New and is safe for concurrent use.
func New() []byte {
	u := uuid.New()
	raw := make([]byte, RawLen)
	copy(raw, u[:])
	return raw
}

// NewString returns a freshly generated identifier in base64 form.
func NewString() string {
	s, _ := EncodeBase64(New())
	return s
}

// EncodeBase64 renders a raw identifier as URL-safe base64 without padding.
// It fails when raw is not exactly 16 bytes.
func EncodeBase64(raw []byte) (string, error) {
	if len(raw) != RawLen {
		return "", newErr(KindUUID, "", "identifier must be %d bytes, got %d", RawLen, len(raw))
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeBase64 decodes URL-safe base64 text, tolerating both padded and
// unpadded input. It only enforces the base64 alphabet; the byte-length
// invariant is the caller's concern (see DecodeBase64UUID for the strict
// variant). Alphabet violations yield a Base64-kind error.
func DecodeBase64(s string) ([]byte, error) {
	enc := base64.RawURLEncoding
	if len(s)%4 == 0 && len(s) > 0 && s[len(s)-1] == '=' {
		enc = base64.URLEncoding
	}
	raw, err := enc.DecodeString(s)
	if err != nil {
		return nil, newErr(KindBase64, s, "invalid base64 identifier: %q", s)
	}
	return raw, nil
}

// DecodeBase64UUID decodes URL-safe base64 text and additionally enforces
// that the result is a 16-byte identifier. The two failure modes stay
// distinct: bad alphabet is Base64-kind, wrong decoded length is UUID-kind.
func DecodeBase64UUID(s string) ([]byte, error) {
	raw, err := DecodeBase64(s)
	if err != nil {
		return nil, err
	}
	if len(raw) != RawLen {
		return nil, newErr(KindUUID, s, "identifier must decode to %d bytes, got %d", RawLen, len(raw))
	}
	return raw, nil
}

// EncodeUUIDString renders a raw identifier as canonical lower-case
// hyphenated UUID text. It fails when raw is not exactly 16 bytes.
func EncodeUUIDString(raw []byte) (string, error) {
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return "", newErr(KindUUID, "", "identifier must be %d bytes, got %d", RawLen, len(raw))
	}
	return u.String(), nil
}

// DecodeUUIDString parses canonical UUID text into the raw form. Blank or
// otherwise malformed input is uniformly a UUID-kind error: at this boundary
// a missing identifier is a caller contract violation, never legitimate
// optional input.
func DecodeUUIDString(s string) ([]byte, error) {
	if s == "" {
		return nil, newErr(KindUUID, s, "identifier is blank")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return nil, newErr(KindUUID, s, "invalid UUID identifier: %q", s)
	}
	raw := make([]byte, RawLen)
	copy(raw, u[:])
	return raw, nil
}

// Base64ToUUIDString converts an API-form identifier straight to its
// database text form, enforcing the 16-byte invariant in between.
func Base64ToUUIDString(s string) (string, error) {
	raw, err := DecodeBase64UUID(s)
	if err != nil {
		return "", err
	}
	return EncodeUUIDString(raw)
}

// UUIDStringToBase64 converts a database text identifier to its API form.
func UUIDStringToBase64(s string) (string, error) {
	raw, err := DecodeUUIDString(s)
	if err != nil {
		return "", err
	}
	return EncodeBase64(raw)
}
