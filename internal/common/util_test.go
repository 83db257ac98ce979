package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s := MakeRandHexString(n)
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	if s := MakeRandHexString(0); s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandHexString_EntropyHint(t *testing.T) {
	const n = 32
	a := MakeRandHexString(n)
	b := MakeRandHexString(n)
	if a == b {
		t.Logf("warning: two MakeRandHexString(%d) results are identical; extremely unlikely", n)
	}
}

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 24
	buf := GenerateRandByteArray(n)
	if buf == nil {
		t.Fatalf("expected non-nil slice")
	}
	if len(buf) != n {
		t.Fatalf("expected length %d, got %d", n, len(buf))
	}
}

// ---------- sentinel errors ----------

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	sentinels := []error{
		ErrBlankFirstName, ErrMissingIdentity, ErrInvalidEmail, ErrInvalidPhone, ErrInvalidNameFormat,
		ErrBlankPassword, ErrPasswordMismatch, ErrDuplicateLogin, ErrUnknownLogin, ErrInvalidRecord,
	}
	for _, s := range sentinels {
		wrapped := fmt.Errorf("%w: context", s)
		if !errors.Is(wrapped, s) {
			t.Fatalf("errors.Is failed for %v", s)
		}
		for _, other := range sentinels {
			if other != s && errors.Is(wrapped, other) {
				t.Fatalf("%v unexpectedly matches %v", s, other)
			}
		}
	}
}
