package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/auth"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/middleware"
	"github.com/ahmetcinarr/selvigsm/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AdminSessionHandler implements the cookie-backed admin login. Failed
// attempts are counted against the browser session carrying the
// cookie, so the lockout is per session, not per account. That policy
// is deliberate; tightening it to per-account tracking would be a
// semantic change.
type AdminSessionHandler struct {
	authService service.AuthService
	sessions    *auth.SessionStore
	cookieName  string
	log         zerolog.Logger
}

func NewAdminSessionHandler(authService service.AuthService, sessions *auth.SessionStore, cookieName string, log zerolog.Logger) *AdminSessionHandler {
	return &AdminSessionHandler{
		authService: authService,
		sessions:    sessions,
		cookieName:  cookieName,
		log:         log,
	}
}

func (h *AdminSessionHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "malformed request body")
	}

	sess := h.resolveSession(c)
	middleware.SetSessionCookie(c, h.cookieName, sess.ID, h.sessions.Lifetime())

	if remaining := h.sessions.Locked(sess); remaining > 0 {
		return lockoutError(remaining)
	}

	user, err := h.authService.VerifyAdmin(ctx, req.Email, req.Password)
	if err != nil {
		if apperr.IsKind(err, apperr.Unauthenticated) {
			attemptsLeft, lockedFor := h.sessions.Fail(sess)
			h.log.Warn().Str("email", req.Email).Str("ip", c.RealIP()).Msg("admin login failed")

			if lockedFor > 0 {
				h.log.Warn().Str("ip", c.RealIP()).Msg("admin session locked out")
				return lockoutError(lockedFor)
			}
			return apperr.Newf(apperr.Unauthenticated,
				"invalid email or password, %d attempts remaining", attemptsLeft)
		}
		return err
	}

	h.sessions.Bind(sess, user.ID, user.IsAdmin)
	h.log.Info().Str("email", user.Email).Str("ip", c.RealIP()).Msg("admin login successful")

	return c.JSON(http.StatusOK, map[string]any{
		"message": "login successful",
		"user":    user,
	})
}

func (h *AdminSessionHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		h.sessions.Destroy(cookie.Value)
	}
	middleware.ClearSessionCookie(c, h.cookieName)

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

func (h *AdminSessionHandler) resolveSession(c echo.Context) *auth.Session {
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		if sess, ok := h.sessions.Resolve(cookie.Value); ok {
			return sess
		}
	}
	return h.sessions.Begin()
}

// lockoutError reports the remaining wait; credentials are not
// re-checked while the lockout holds.
func lockoutError(remaining time.Duration) error {
	minutes := int(math.Ceil(remaining.Minutes()))
	return apperr.Newf(apperr.RateLimited,
		"too many failed login attempts, try again in %d minutes", minutes).
		WithRetryAfter(remaining)
}
