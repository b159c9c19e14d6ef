package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerforge/judge/internal/service"
	"github.com/careerforge/judge/middleware"
	"github.com/google/uuid"
)

func protectedEcho(t *testing.T, gotClaims *service.UserCredentialClaims) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := service.GetClaimsFromContext(r.Context())
		if err != nil {
			t.Errorf("handler reached without claims in context: %v", err)
			http.Error(w, "no claims", http.StatusInternalServerError)
			return
		}
		*gotClaims = claims
		w.WriteHeader(http.StatusOK)
	}
}

func TestJWTMiddlewareAcceptsBearerToken(t *testing.T) {
	t.Setenv(service.KeyJWTSecret, "test-secret")

	userID := uuid.New()
	token, err := middleware.NewSessionToken(userID, "grace", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	var gotClaims service.UserCredentialClaims
	handler := middleware.JWTMiddleware(protectedEcho(t, &gotClaims))

	req := httptest.NewRequest(http.MethodGet, "/v1/code/progress", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotClaims.UserID != userID || gotClaims.UserName != "grace" {
		t.Errorf("claims = %+v, want user %v", gotClaims, userID)
	}
}

func TestJWTMiddlewareAcceptsSessionCookie(t *testing.T) {
	t.Setenv(service.KeyJWTSecret, "test-secret")

	userID := uuid.New()
	token, err := middleware.NewSessionToken(userID, "grace", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	var gotClaims service.UserCredentialClaims
	handler := middleware.JWTMiddleware(protectedEcho(t, &gotClaims))

	req := httptest.NewRequest(http.MethodGet, "/v1/code/progress", nil)
	req.AddCookie(&http.Cookie{Name: middleware.KeyJwtSessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotClaims.UserID != userID {
		t.Errorf("claims user = %v, want %v", gotClaims.UserID, userID)
	}
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv(service.KeyJWTSecret, "test-secret")

	handler := middleware.JWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/code/progress", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTMiddlewareRejectsForgedToken(t *testing.T) {
	t.Setenv(service.KeyJWTSecret, "attacker-secret")
	token, err := middleware.NewSessionToken(uuid.New(), "mallory", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	// the server verifies with a different secret
	t.Setenv(service.KeyJWTSecret, "test-secret")

	handler := middleware.JWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a forged token")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/code/progress", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTMiddlewareRejectsExpiredToken(t *testing.T) {
	t.Setenv(service.KeyJWTSecret, "test-secret")

	token, err := middleware.NewSessionToken(uuid.New(), "grace", -time.Minute)
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	handler := middleware.JWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with an expired token")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/code/progress", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
