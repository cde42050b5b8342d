package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/labstack/echo/v4"

	"github.com/univ-lehavre/talent-finder-sub000/internal/health"
	"github.com/univ-lehavre/talent-finder-sub000/internal/i18n"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/view"
	"github.com/univ-lehavre/talent-finder-sub000/web/templates/pages"
)

// HealthChecker runs the dependency checks.
type HealthChecker interface {
	Names() []string
	Run(ctx context.Context, onResult func(health.Result)) health.Report
}

// HealthHandler serves the health report.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// LiveMessage is one frame of /health/live. Results are sent as they
// complete, then a final "done" frame carries the report.
type LiveMessage struct {
	Type   string         `json:"type"`
	Result *health.Result `json:"result,omitempty"`
	Label  string         `json:"label,omitempty"`
	Report *health.Report `json:"report,omitempty"`
}

// HealthGet runs every check (GET /health). Clients that rank text/html
// above JSON get a page that follows /health/live. Everyone else gets the
// JSON report with 200 or 503.
func (h *HealthHandler) HealthGet(c echo.Context) error {
	if prefersHTML(c.Request().Header.Get(echo.HeaderAccept)) {
		page := view.NewPage(c, "health.title")
		return renderPage(c, http.StatusOK, page, pages.Health(page, h.checker.Names()))
	}

	report := h.checker.Run(c.Request().Context(), nil)
	status := http.StatusOK
	if !report.OK() {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}

// LiveGet streams results over a websocket (GET /health/live).
func (h *HealthHandler) LiveGet(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())
	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		// Accept has already written the HTTP error.
		logger.WarnContext(c.Request().Context(), "Websocket upgrade failed", "event", "health_ws_upgrade_failure", "error", err)
		return nil
	}
	defer conn.CloseNow()

	// Only writes are expected; CloseRead handles control frames and ends
	// ctx when the client goes away.
	ctx := conn.CloseRead(c.Request().Context())
	locale := middleware.Locale(c)

	report := h.checker.Run(ctx, func(r health.Result) {
		msg := LiveMessage{Type: "result", Result: &r, Label: i18n.T(locale, "health."+string(r.Status))}
		if err := wsjson.Write(ctx, conn, msg); err != nil {
			logger.DebugContext(ctx, "Failed to stream health result", "event", "health_ws_write_failure", "error", err)
		}
	})
	if err := wsjson.Write(ctx, conn, LiveMessage{Type: "done", Report: &report}); err != nil {
		return nil
	}
	conn.Close(websocket.StatusNormalClosure, "")
	return nil
}

// prefersHTML reports whether accept names text/html explicitly and gives
// it a higher quality than application/json. The most specific media range
// decides the quality of each type.
func prefersHTML(accept string) bool {
	htmlQ, htmlRank := 0.0, -1
	jsonQ, jsonRank := 0.0, -1
	for _, part := range strings.Split(accept, ",") {
		mediaRange, params, _ := strings.Cut(part, ";")
		mediaRange = strings.ToLower(strings.TrimSpace(mediaRange))
		q := qualityOf(params)

		switch mediaRange {
		case echo.MIMETextHTML:
			htmlQ, htmlRank = q, 2
		case echo.MIMEApplicationJSON:
			jsonQ, jsonRank = q, 2
		case "text/*":
			if htmlRank < 1 {
				htmlQ, htmlRank = q, 1
			}
		case "application/*":
			if jsonRank < 1 {
				jsonQ, jsonRank = q, 1
			}
		case "*/*":
			if htmlRank < 0 {
				htmlQ, htmlRank = q, 0
			}
			if jsonRank < 0 {
				jsonQ, jsonRank = q, 0
			}
		}
	}
	return htmlRank == 2 && htmlQ > 0 && htmlQ > jsonQ
}

func qualityOf(params string) float64 {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) != "q" {
			continue
		}
		if q, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return q
		}
	}
	return 1
}
