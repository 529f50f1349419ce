package auth

import (
	"strings"
	"testing"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	claims := map[string]any{"sub": "user-1", "ver": 3}

	token, err := SignHS256(claims, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	got, err := ParseAndVerifyHS256(token, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got["sub"] != "user-1" {
		t.Fatalf("unexpected sub claim %v", got["sub"])
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := SignHS256(map[string]any{"sub": "user-1"}, []byte("secret-a"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, []byte("secret-b")); err == nil {
		t.Fatalf("expected verification failure with the wrong secret")
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	secret := []byte("test-secret")
	token, err := SignHS256(map[string]any{"sub": "user-1"}, secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	parts := strings.Split(token, ".")
	forged, err := SignHS256(map[string]any{"sub": "user-2"}, []byte("other"))
	if err != nil {
		t.Fatalf("sign forged: %v", err)
	}
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]
	if _, err := ParseAndVerifyHS256(tampered, secret); err == nil {
		t.Fatalf("expected verification failure for tampered payload")
	}
	if _, err := ParseAndVerifyHS256("not-a-token", secret); err == nil {
		t.Fatalf("expected verification failure for malformed token")
	}
}
