package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/univ-lehavre/talent-finder-sub000/internal/auth"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/pages"
)

// MagicLinkService is the part of auth.Service the handlers use.
type MagicLinkService interface {
	RequestLink(ctx context.Context, email string, locale i18n.Locale, meta auth.RequestMeta) error
	Exchange(ctx context.Context, userID, secret string, meta auth.RequestMeta) (*auth.Session, error)
	Logout(ctx context.Context, user *domain.User, meta auth.RequestMeta)
	LinkTTL() time.Duration
}

// AuthHandler handles the magic link sign-in flow.
type AuthHandler struct {
	service MagicLinkService
	now     func() time.Time
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service MagicLinkService) *AuthHandler {
	return &AuthHandler{service: service, now: time.Now}
}

func meta(c echo.Context) auth.RequestMeta {
	return auth.RequestMeta{IP: c.RealIP(), UserAgent: c.Request().UserAgent()}
}

// LoginGet renders the link request form (GET /auth/login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/app/dashboard")
	}
	email := view.PopFormEmail(c)
	page := view.NewPage(c, "login.title")
	return renderPage(c, http.StatusOK, page, pages.Login(page, pages.LoginData{Email: email}))
}

// LoginPost requests a magic link (POST /auth/login). Apart from malformed
// addresses every outcome leads to the same confirmation page.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	ctx := c.Request().Context()
	email := c.FormValue("email")
	locale := middleware.Locale(c)

	err := h.service.RequestLink(ctx, email, locale, meta(c))
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		view.SetFlashError(c, i18n.T(locale, "login.invalid"))
		view.SetFormEmail(c, email)
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	case err != nil:
		middleware.FromContext(ctx).ErrorContext(ctx, "Failed to send magic link", "event", "auth_link_failure", "error", err)
	}
	return c.Redirect(http.StatusSeeOther, "/auth/sent")
}

// LoginRateLimited answers link requests over the per-IP limit.
func (h *AuthHandler) LoginRateLimited(c echo.Context) error {
	view.SetFlashError(c, i18n.T(middleware.Locale(c), "login.rate"))
	view.SetFormEmail(c, c.FormValue("email"))
	c.Response().Header().Set(echo.HeaderRetryAfter, "60")
	return c.Redirect(http.StatusSeeOther, "/auth/login")
}

// SentGet confirms that a link is on its way (GET /auth/sent).
func (h *AuthHandler) SentGet(c echo.Context) error {
	page := view.NewPage(c, "sent.title")
	minutes := int(h.service.LinkTTL() / time.Minute)
	return renderPage(c, http.StatusOK, page, pages.LinkSent(page, minutes))
}

// MagicGet exchanges the link parameters for a session cookie (GET /auth/magic).
func (h *AuthHandler) MagicGet(c echo.Context) error {
	ctx := c.Request().Context()
	locale := middleware.Locale(c)

	session, err := h.service.Exchange(ctx, c.QueryParam("userId"), c.QueryParam("secret"), meta(c))
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidMagicLink) {
			middleware.FromContext(ctx).ErrorContext(ctx, "Magic link exchange failed", "event", "auth_exchange_failure", "error", err)
		}
		view.SetFlashError(c, i18n.T(locale, "magic.invalid"))
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	c.SetCookie(auth.SessionCookie(session, isSecure(c), h.now()))
	view.SetFlashSuccess(c, i18n.T(locale, "magic.success"))
	return c.Redirect(http.StatusSeeOther, "/app/dashboard")
}

// LogoutPost ends the session (POST /auth/logout).
func (h *AuthHandler) LogoutPost(c echo.Context) error {
	h.service.Logout(c.Request().Context(), middleware.CurrentUser(c), meta(c))
	c.SetCookie(auth.ExpiredSessionCookie(isSecure(c)))
	view.SetFlashSuccess(c, i18n.T(middleware.Locale(c), "logout.success"))
	return view.Redirect(c, "/")
}
