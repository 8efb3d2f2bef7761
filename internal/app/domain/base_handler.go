package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/apiclient"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/layout"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/middleware"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
	"github.com/FACorreiaa/hmhy-portal/internal/app/observability/metrics"
	"github.com/FACorreiaa/hmhy-portal/internal/app/session"
)

type BaseHandler struct {
	Logger   *zap.Logger
	Sessions *session.Manager
}

func NewBaseHandler(logger *zap.Logger, sessions *session.Manager) *BaseHandler {
	metrics.InitAppMetrics()
	return &BaseHandler{Logger: logger, Sessions: sessions}
}

func IsHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func (h *BaseHandler) newLayoutData(c *gin.Context, title, activeNav string, content templ.Component) models.LayoutTempl {
	user := middleware.GetUserFromContext(c)
	nav := models.Navigation{}
	if user != nil {
		nav = models.NavFor(user.Role)
	}
	return models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       nav,
		ActiveNav: activeNav,
		User:      user,
	}
}

func (h *BaseHandler) render(c *gin.Context, status int, component templ.Component) {
	start := time.Now()
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.String("path", c.FullPath()), zap.Error(err))
	}
	metrics.Get().TemplateRenderDuration.Record(c.Request.Context(), time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("route", c.FullPath())))
}

// RenderPage sends only the content to HTMX requests and the full layout otherwise.
func (h *BaseHandler) RenderPage(c *gin.Context, title, activeNav string, content templ.Component) {
	h.RenderPageStatus(c, http.StatusOK, title, activeNav, content)
}

func (h *BaseHandler) RenderPageStatus(c *gin.Context, status int, title, activeNav string, content templ.Component) {
	if IsHTMX(c) {
		h.render(c, status, content)
		return
	}
	h.render(c, status, layout.Page(h.newLayoutData(c, title, activeNav, content)))
}

// Navigate sends the browser to url after a successful form post.
func (h *BaseHandler) Navigate(c *gin.Context, url string) {
	if IsHTMX(c) {
		c.Header("HX-Redirect", url)
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, url)
}

// Credentials returns the API credentials of the request's session, or nil
// for anonymous requests.
func (h *BaseHandler) Credentials(c *gin.Context) apiclient.Credentials {
	s := middleware.GetSession(c)
	if !s.Authenticated() {
		return nil
	}
	return h.Sessions.Credentials(s)
}

// Base is the area prefix of the signed-in user, /app/admin or /app/superadmin.
func Base(c *gin.Context) string {
	if s := middleware.GetSession(c); s != nil {
		return s.Role.Home()
	}
	return "/"
}

// IsSessionEnded reports whether err means the user has to sign in again.
func IsSessionEnded(err error) bool {
	return errors.Is(err, apiclient.ErrSessionExpired) || errors.Is(err, session.ErrNoSession)
}

// ErrorMessage is the text shown to the user for err, in the language of the request.
func ErrorMessage(c *gin.Context, err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message.Localize(c.GetHeader("Accept-Language")); msg != "" {
			return msg
		}
	}
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		return "Login yoki parol noto'g'ri"
	case errors.Is(err, models.ErrForbidden):
		return "Bu amal uchun ruxsat yo'q"
	case errors.Is(err, models.ErrNotFound):
		return "Ma'lumot topilmadi"
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrBadRequest):
		return "Ma'lumotlar noto'g'ri kiritilgan"
	default:
		return "Xatolik yuz berdi, keyinroq urinib ko'ring"
	}
}

// Bind decodes the posted form into obj. gin stops at the first field it
// cannot parse, so a failed bind must not reach the backend.
func (h *BaseHandler) Bind(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil {
		h.Logger.Debug("Form rejected", zap.String("path", c.FullPath()), zap.Error(err))
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return nil
}

// StatusFor maps an API or domain error to the status of the rendered page.
func StatusFor(err error) int {
	if code := apiclient.StatusCode(err); code >= 400 && code != http.StatusUnauthorized {
		return code
	}
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// HandleError ends the browser session when the backend no longer accepts it
// and otherwise renders the error as a banner in place of the page content.
func (h *BaseHandler) HandleError(c *gin.Context, err error, operation string) {
	if IsSessionEnded(err) {
		h.Logger.Info("Session ended, redirecting to landing", zap.String("operation", operation))
		if endErr := h.Sessions.End(c); endErr != nil {
			h.Logger.Warn("Failed to clear session cookie", zap.Error(endErr))
		}
		middleware.Redirect(c, "/")
		return
	}

	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("Backend call failed", zap.String("operation", operation), zap.Error(err))
	} else {
		h.Logger.Warn("Backend rejected request", zap.String("operation", operation), zap.Int("status", status), zap.Error(err))
	}
	if IsHTMX(c) {
		// htmx does not swap error responses.
		c.Header("HX-Retarget", "#content")
		status = http.StatusOK
	}
	h.RenderPageStatus(c, status, "HMHY", "", ui.Banner(ui.ToneDanger, ErrorMessage(c, err)))
}

// RenderForm re-renders a form page with its error after a failed submit.
func (h *BaseHandler) RenderForm(c *gin.Context, err error, title, activeNav string, page templ.Component) {
	if IsSessionEnded(err) {
		h.HandleError(c, err, title)
		return
	}
	status := StatusFor(err)
	h.Logger.Warn("Form submit rejected", zap.String("page", title), zap.Int("status", status), zap.Error(err))
	if IsHTMX(c) {
		status = http.StatusOK
	}
	h.RenderPageStatus(c, status, title, activeNav, page)
}
