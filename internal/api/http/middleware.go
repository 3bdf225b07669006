package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"parkspot-backend/internal/config"
	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/security"
)

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Handler authenticates requests to routes whose security level is not
// public and injects the caller's identity into the request context.
// Public routes still pick up the identity when a valid token is sent.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.SecurityAccess
		if route := mux.CurrentRoute(r); route != nil {
			level = config.GetSecurityLevel(route.GetName())
		}

		token := extractToken(r)
		if token == "" {
			if level == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			if level == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}
			logger.InfoContext(r.Context(), "Rejected token", "path", r.URL.Path, "error", err)
			writeError(w, r, domain.ErrUnauthenticated)
			return
		}

		id := domain.Identity{UserID: claims.UserID(), Email: claims.Email, IsAdmin: claims.IsAdmin}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	})
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request with its route and status
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := ""
		if cr := mux.CurrentRoute(r); cr != nil {
			route = cr.GetName()
		}
		logger.HTTPRequest(r.Method, r.URL.Path, rec.status, time.Since(start), "route", route)
	})
}
