package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/httpclient"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/openalex"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/pages"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errorCodes = map[int]string{
	http.StatusBadRequest:          "bad_request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not_found",
	http.StatusMethodNotAllowed:    "method_not_allowed",
	http.StatusTooManyRequests:     "too_many_requests",
	http.StatusBadGateway:          "upstream_unavailable",
	http.StatusServiceUnavailable:  "service_unavailable",
	http.StatusInternalServerError: "internal",
}

var messageKeys = map[int]string{
	http.StatusBadRequest:         "error.bad_request",
	http.StatusUnauthorized:       "auth.required",
	http.StatusNotFound:           "error.not_found",
	http.StatusTooManyRequests:    "login.rate",
	http.StatusBadGateway:         "error.unavailable",
	http.StatusServiceUnavailable: "error.unavailable",
}

// StatusOf maps an error to the HTTP status it should produce.
func StatusOf(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownConsentType),
		errors.Is(err, openalex.ErrInvalidInstitutionID),
		errors.Is(err, openalex.ErrNoInstitutions),
		errors.Is(err, openalex.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case httpclient.StatusCode(err) != 0:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// NewErrorResponse builds the API body for err. Internal errors do not leak
// their message.
func NewErrorResponse(status int, err error) ErrorResponse {
	code, ok := errorCodes[status]
	if !ok {
		code = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
	msg := http.StatusText(status)
	if status < http.StatusInternalServerError && err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		} else {
			msg = err.Error()
		}
	}
	return ErrorResponse{Code: code, Message: msg}
}

// HTTPErrorHandler renders errors as JSON for API clients and as an error
// page for browsers.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := StatusOf(err)
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "Request failed", "event", "http_error", "status", status, "error", err)
	} else {
		logger.DebugContext(ctx, "Request rejected", "event", "http_error", "status", status, "error", err)
	}

	var writeErr error
	switch {
	case c.Request().Method == http.MethodHead:
		writeErr = c.NoContent(status)
	case wantsJSON(c):
		writeErr = c.JSON(status, NewErrorResponse(status, err))
	default:
		key, ok := messageKeys[status]
		if !ok {
			key = "error.generic"
		}
		page := view.NewPage(c, "error.generic")
		writeErr = renderPage(c, status, page, pages.ErrorPage(page, status, key))
	}
	if writeErr != nil {
		logger.ErrorContext(ctx, "Failed to write error response", "event", "http_error_write", "error", writeErr)
	}
}

func wantsJSON(c echo.Context) bool {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/api/") || path == "/health" {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
