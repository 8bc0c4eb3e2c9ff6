package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SessionCookieName is the HTTP-only cookie carrying the signed session token
const SessionCookieName = "token"

// SessionTTL is how long a freshly minted session token stays valid
const SessionTTL = 7 * 24 * time.Hour

// Identity is the decoded session identity for the current request
type Identity struct {
	UserID string
	Role   string
}

// Session decodes the signed session cookie on every request. It never
// rejects; routes that need an authenticated caller opt in via RequireRole
// or check the context themselves.
type Session struct {
	Secret string
}

// Authenticate decodes and verifies the session cookie on the given request.
// A missing, malformed or expired token yields no identity rather than an
// error so that callers can treat all three the same way.
func (s Session) Authenticate(r *http.Request) (*Identity, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, false
	}
	return &Identity{UserID: userID, Role: role}, true
}

// Middleware attaches the decoded identity, when present, to the request
// context
func (s Session) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if identity, ok := s.Authenticate(r); ok {
			r = r.WithContext(WithIdentity(r.Context(), identity))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects the request unless the session carries one of the
// allowed roles
func (s Session) RequireRole(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			zap.S().Warnw("unauthenticated request",
				"url", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":"authentication required"}`))
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				next.ServeHTTP(w, r)
				return
			}
		}
		zap.S().Warnw("role not permitted",
			"url", r.URL.Path,
			"role", identity.Role)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"role not permitted"}`))
	})
}

// SignToken mints a session token for the given user id and role
func SignToken(userID, role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
