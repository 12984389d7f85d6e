package middleware

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/acmedash/backend/internal/services"
)

type contextKey string

const userIDKey contextKey = "userID"

// RevocationChecker reports tokens that were logged out before expiry
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type SessionAuth struct {
	cookieName string
	loginPath  string
	revocation RevocationChecker
}

func NewSessionAuth(cookieName, loginPath string, revocation RevocationChecker) *SessionAuth {
	return &SessionAuth{
		cookieName: cookieName,
		loginPath:  loginPath,
		revocation: revocation,
	}
}

// AuthMiddleware admits requests carrying a valid session. Browsers are sent
// to the login page, API clients get 401.
func (a *SessionAuth) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := a.TokenFromRequest(r)
		if token == "" {
			a.reject(w, r, "Authorization required")
			return
		}

		claims, err := services.ParseSessionToken(token)
		if err != nil {
			log.Printf("[AUTH] Rejected token from %s: %v", r.RemoteAddr, err)
			a.reject(w, r, "Invalid token")
			return
		}

		if a.revocation != nil {
			revoked, err := a.revocation.IsRevoked(r.Context(), token)
			if err != nil {
				log.Printf("[AUTH] Blacklist lookup failed, allowing request: %v", err)
			} else if revoked {
				a.reject(w, r, "Session has ended")
				return
			}
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header
func (a *SessionAuth) TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(a.cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func (a *SessionAuth) reject(w http.ResponseWriter, r *http.Request, message string) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, a.loginPath+"?callbackUrl="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
		return
	}
	http.Error(w, message, http.StatusUnauthorized)
}

// UserIDFromContext returns the user id stored by AuthMiddleware
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
