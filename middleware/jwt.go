package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/careerforge/judge/internal/service"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// JWTMiddleware verifies the session token minted by the platform's
// auth system and attaches the caller's claims to the request context.
// Requests without a valid token never reach the handler, so no
// execution backend cost is spent on them.
func JWTMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := extractToken(r)
		if err != nil {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}

		claims := &service.UserCredentialClaims{}
		token, err := jwt.ParseWithClaims(
			tokenString,
			claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(os.Getenv(service.KeyJWTSecret)), nil
			},
		)
		if err != nil || !token.Valid {
			log.Warnf("rejected request with invalid session token, %v", err)
			http.Error(w, "invalid session token", http.StatusUnauthorized)
			return
		}
		if claims.UserID == uuid.Nil {
			http.Error(w, "invalid session token", http.StatusUnauthorized)
			return
		}

		ctx := service.ContextWithClaims(r.Context(), *claims)
		next(w, r.WithContext(ctx))
	}
}

// extractToken looks in the session cookie first, then in the
// Authorization header.
func extractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(KeyJwtSessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok && after != "" {
		return after, nil
	}

	return "", errors.New("no session token in cookie or authorization header")
}

// NewSessionToken mints a signed session token for the given identity.
// Token issuing belongs to the platform's auth gateway, this helper
// exists for that gateway and for tests.
func NewSessionToken(userID uuid.UUID, userName string, validity time.Duration) (string, error) {
	now := time.Now()
	claims := service.UserCredentialClaims{
		UserID:   userID,
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv(service.KeyJWTSecret)))
	if err != nil {
		log.Errorf("unable to sign session token, %v", err)
		return "", err
	}
	return signed, nil
}
