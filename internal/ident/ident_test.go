package ident

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestNew_Is16BytesAndUnique(t *testing.T) {
	a := New()
	b := New()
	if len(a) != RawLen || len(b) != RawLen {
		t.Fatalf("lengths: %d, %d", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two generated identifiers are equal: %x", a)
	}
}

func TestEncodeBase64_RoundTrip(t *testing.T) {
	raw := New()
	s, err := EncodeBase64(raw)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.ContainsAny(s, "=+/") {
		t.Fatalf("encoded form is not unpadded url-safe: %q", s)
	}
	back, err := DecodeBase64UUID(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(back, raw) {
		t.Fatalf("round trip mismatch: %x != %x", back, raw)
	}
}

func TestEncodeBase64_RejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 15, 17, 32} {
		if _, err := EncodeBase64(make([]byte, n)); err == nil {
			t.Fatalf("len=%d: expected error", n)
		}
	}
}

func TestDecodeBase64_AcceptsPadded(t *testing.T) {
	raw := New()
	padded := base64.URLEncoding.EncodeToString(raw)
	if !strings.HasSuffix(padded, "=") {
		// 16 bytes always pads to 24 chars with two '='
		t.Fatalf("expected padding in %q", padded)
	}
	got, err := DecodeBase64(padded)
	if err != nil {
		t.Fatalf("decode padded: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("mismatch")
	}
}

func TestDecodeBase64_AlphabetViolationIsBase64Kind(t *testing.T) {
	_, err := DecodeBase64UUID("abc@def!")
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ce.Kind != KindBase64 {
		t.Fatalf("kind = %v, want Base64", ce.Kind)
	}
}

func TestDecodeBase64UUID_WrongLengthIsUUIDKind(t *testing.T) {
	// 10 bytes of valid base64: alphabet is fine, length is not.
	short := base64.RawURLEncoding.EncodeToString(make([]byte, 10))
	_, err := DecodeBase64UUID(short)
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ce.Kind != KindUUID {
		t.Fatalf("kind = %v, want UUID", ce.Kind)
	}
}

func TestDecodeBase64_NonStrictSkipsLengthCheck(t *testing.T) {
	short := base64.RawURLEncoding.EncodeToString(make([]byte, 10))
	raw, err := DecodeBase64(short)
	if err != nil {
		t.Fatalf("non-strict decode should pass: %v", err)
	}
	if len(raw) != 10 {
		t.Fatalf("len = %d", len(raw))
	}
}

func TestUUIDString_RoundTrip(t *testing.T) {
	raw := New()
	s, err := EncodeUUIDString(raw)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(s) != 36 || s != strings.ToLower(s) {
		t.Fatalf("not canonical uuid text: %q", s)
	}
	for _, i := range []int{8, 13, 18, 23} {
		if s[i] != '-' {
			t.Fatalf("missing hyphen at %d in %q", i, s)
		}
	}
	back, err := DecodeUUIDString(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(back, raw) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecodeUUIDString_Malformed(t *testing.T) {
	for _, in := range []string{"", " ", "not-a-uuid", "123e4567e89b12d3a456426614174000x"} {
		_, err := DecodeUUIDString(in)
		var ce *Error
		if !errors.As(err, &ce) {
			t.Fatalf("%q: expected *Error, got %T", in, err)
		}
		if ce.Kind != KindUUID {
			t.Fatalf("%q: kind = %v, want UUID", in, ce.Kind)
		}
	}
}

func TestBase64ToUUIDString_AndBack(t *testing.T) {
	b64 := NewString()
	text, err := Base64ToUUIDString(b64)
	if err != nil {
		t.Fatalf("to uuid text: %v", err)
	}
	back, err := UUIDStringToBase64(text)
	if err != nil {
		t.Fatalf("to base64: %v", err)
	}
	if back != b64 {
		t.Fatalf("round trip: %q != %q", back, b64)
	}
}

func TestKindString(t *testing.T) {
	if KindBase64.String() != "Base64" || KindUUID.String() != "UUID" {
		t.Fatal("kind names changed")
	}
}
