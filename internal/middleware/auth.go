package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/auth"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate.
const (
	ContextUserID  = "user_id"
	ContextIsAdmin = "is_admin"
)

// Authenticate admits a request carrying either a valid bearer token
// or a logged-in admin session cookie and records the caller's
// identity in the request context. Everything else gets 401.
func Authenticate(tokens *auth.TokenIssuer, sessions *auth.SessionStore, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if header := c.Request().Header.Get("Authorization"); header != "" {
				tokenString, ok := strings.CutPrefix(header, "Bearer ")
				if !ok {
					return apperr.New(apperr.Unauthenticated, "malformed authorization header")
				}

				claims, err := tokens.Verify(tokenString)
				if err != nil {
					return apperr.Wrap(apperr.Unauthenticated, "invalid or expired token", err)
				}

				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextIsAdmin, claims.IsAdmin)
				return next(c)
			}

			if cookie, err := c.Cookie(cookieName); err == nil {
				if sess, ok := sessions.Resolve(cookie.Value); ok && sess.Authenticated() {
					if sess.ID != cookie.Value {
						SetSessionCookie(c, cookieName, sess.ID, sessions.Lifetime())
					}
					c.Set(ContextUserID, sess.UserID)
					c.Set(ContextIsAdmin, sess.IsAdmin)
					return next(c)
				}
			}

			return apperr.New(apperr.Unauthenticated, "authentication required")
		}
	}
}

// RequireAdmin must be composed after Authenticate, never instead of
// it.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, _ := c.Get(ContextIsAdmin).(bool)
			if !isAdmin {
				return apperr.New(apperr.Forbidden, "admin access required")
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated caller's id; zero when the request
// was not authenticated.
func UserID(c echo.Context) uint {
	id, _ := c.Get(ContextUserID).(uint)
	return id
}

// SetSessionCookie writes the admin session cookie with the attributes
// the session design requires: HTTP-only, SameSite=Strict, scoped to
// the whole site, and expiring with the session's absolute lifetime
// rather than the browser session.
func SetSessionCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the admin session cookie.
func ClearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
