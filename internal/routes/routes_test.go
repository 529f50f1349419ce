package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/The-Aegis-Project/SideGig/internal/config"
	"github.com/The-Aegis-Project/SideGig/internal/logging"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	cfg := config.Config{
		AppName:         "SideGig",
		AppEnv:          "development",
		JWTSecret:       "test-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		IdempotencyTTL:  time.Hour,
		LoginRateLimit:  100,
	}
	app := fiber.New()
	if err := Setup(app, Deps{Cfg: cfg, Cache: cache, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.New().String())
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func TestBusinessOnboardingFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":         "cafe@example.com",
		"password":      "correct-horse",
		"role":          "business",
		"business_name": "Corner Cafe",
		"address":       "1 Main St",
		"latitude":      40.7,
		"longitude":     -74.0,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d: %v", resp.StatusCode, body)
	}
	if body["route"] != "business_onboarding" {
		t.Fatalf("expected business_onboarding after register, got %v", body["route"])
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("missing access token")
	}

	resp, body = request(t, app, http.MethodGet, "/api/v1/route", token, nil)
	if resp.StatusCode != http.StatusOK || body["route"] != "business_onboarding" {
		t.Fatalf("route status %d body %v", resp.StatusCode, body)
	}

	// Linking a trusted platform profile completes the business trust gate.
	resp, body = request(t, app, http.MethodPost, "/api/v1/verification/link", token, map[string]any{
		"platform":      "Google Business Profile",
		"external_id":   "gbp-123",
		"business_name": "Corner Cafe",
		"address":       "1 Main St",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("link status %d: %v", resp.StatusCode, body)
	}
	if body["is_verified_local"] != true || body["trust_complete"] != true {
		t.Fatalf("expected verified business after link, got %v", body)
	}

	resp, body = request(t, app, http.MethodGet, "/api/v1/route", token, nil)
	if resp.StatusCode != http.StatusOK || body["route"] != "business_home" {
		t.Fatalf("expected business_home after link, got %v", body["route"])
	}
}

func TestSeekerVerificationFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":     "ada@example.com",
		"password":  "correct-horse",
		"role":      "seeker",
		"full_name": "Ada Lovelace",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d: %v", resp.StatusCode, body)
	}
	if body["route"] != "seeker_onboarding" {
		t.Fatalf("expected seeker_onboarding after register, got %v", body["route"])
	}
	token, _ := body["access_token"].(string)

	// Confirming before initiating is a conflict.
	resp, body = request(t, app, http.MethodPost, "/api/v1/verification/contact/confirm", token, map[string]any{
		"code": "123456",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 before initiate, got %d: %v", resp.StatusCode, body)
	}

	resp, body = request(t, app, http.MethodPost, "/api/v1/verification/contact/initiate", token, map[string]any{
		"destination": "ada@example.com",
		"method":      "email",
	})
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("initiate status %d: %v", resp.StatusCode, body)
	}
	if body["expires_at"] == nil {
		t.Fatalf("expected expires_at in initiate response")
	}

	// A code of the wrong shape can never match the stored one.
	resp, body = request(t, app, http.MethodPost, "/api/v1/verification/contact/confirm", token, map[string]any{
		"code": "bogus",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for wrong code, got %d: %v", resp.StatusCode, body)
	}

	resp, body = request(t, app, http.MethodPost, "/api/v1/quiz/complete", token, map[string]any{"score": 9})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("quiz status %d: %v", resp.StatusCode, body)
	}
	if body["quiz_completed_at"] == nil {
		t.Fatalf("expected quiz completion timestamp")
	}

	resp, body = request(t, app, http.MethodPost, "/api/v1/verification/id/initiate", token, nil)
	if resp.StatusCode != http.StatusAccepted || body["session_url"] == "" {
		t.Fatalf("id initiate status %d: %v", resp.StatusCode, body)
	}
	resp, body = request(t, app, http.MethodGet, "/api/v1/verification/id/status", token, nil)
	if resp.StatusCode != http.StatusOK || body["status"] != "pending" {
		t.Fatalf("expected pending id status, got %d: %v", resp.StatusCode, body)
	}
	resp, body = request(t, app, http.MethodPost, "/api/v1/verification/id/complete", token, map[string]any{
		"result": `{"outcome":"passed"}`,
	})
	if resp.StatusCode != http.StatusOK || body["is_id_verified"] != true {
		t.Fatalf("id complete status %d: %v", resp.StatusCode, body)
	}

	// Contact is still unverified, so the seeker stays in onboarding.
	resp, body = request(t, app, http.MethodGet, "/api/v1/route", token, nil)
	if resp.StatusCode != http.StatusOK || body["route"] != "seeker_onboarding" {
		t.Fatalf("expected seeker_onboarding, got %v", body["route"])
	}
}

func TestAuthRejections(t *testing.T) {
	app := newTestApp(t)

	resp, _ := request(t, app, http.MethodGet, "/api/v1/route", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp, body := request(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":     "ada@example.com",
		"password":  "correct-horse",
		"role":      "seeker",
		"full_name": "Ada",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d: %v", resp.StatusCode, body)
	}

	resp, _ = request(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "ada@example.com",
		"password": "wrong-horse",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.StatusCode)
	}

	// Social sign-in for a brand-new user without details is rejected with a
	// recoverable status so the client can collect them and retry.
	resp, _ = request(t, app, http.MethodPost, "/api/v1/auth/social", "", map[string]any{
		"provider": "google",
		"subject":  "sub-1",
		"email":    "new@example.com",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for social sign-in without details, got %d", resp.StatusCode)
	}
}

func TestLogoutInvalidatesTokens(t *testing.T) {
	app := newTestApp(t)

	resp, body := request(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":     "ada@example.com",
		"password":  "correct-horse",
		"role":      "seeker",
		"full_name": "Ada",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d: %v", resp.StatusCode, body)
	}
	token, _ := body["access_token"].(string)

	resp, _ = request(t, app, http.MethodPost, "/api/v1/auth/logout", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status %d", resp.StatusCode)
	}
	resp, _ = request(t, app, http.MethodGet, "/api/v1/route", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}
