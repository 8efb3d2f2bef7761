package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
	"github.com/FACorreiaa/hmhy-portal/internal/app/observability/metrics"
	"github.com/FACorreiaa/hmhy-portal/internal/app/session"
)

type contextKey string

const SessionContextKey contextKey = "session"

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With, HX-Request, HX-Target, HX-Current-URL, HX-Trigger")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// HTMX, Tailwind and the Telegram login widget load from CDNs
		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline' https://unpkg.com https://cdn.tailwindcss.com https://telegram.org; " +
			"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; " +
			"font-src 'self' https://fonts.gstatic.com; " +
			"img-src 'self' data: https:; " +
			"frame-src https://oauth.telegram.org; " +
			"connect-src 'self'"
		c.Writer.Header().Set("Content-Security-Policy", csp)

		c.Next()
	}
}

func OTELGinMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// MetricsMiddleware records request counts and latency per route template.
func MetricsMiddleware() gin.HandlerFunc {
	metrics.InitAppMetrics()
	m := metrics.Get()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx := c.Request.Context()
		m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("route", route),
			attribute.String("status", strconv.Itoa(c.Writer.Status())),
		))
		m.HTTPRequestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("route", route),
		))
	}
}

// SessionMiddleware loads the browser's session, if any, into the context.
func SessionMiddleware(manager *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := manager.Load(c)
		switch {
		case err == nil:
			c.Set(string(SessionContextKey), s)
		case !errors.Is(err, session.ErrNoSession):
			logger.Error("Failed to load session", zap.Error(err))
		}
		c.Next()
	}
}

// RequireRole lets the request through only for an authenticated session
// holding one of roles. Anything else goes back to the landing page.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		if !s.Authenticated() || !slices.Contains(roles, s.Role) {
			Redirect(c, "/")
			return
		}
		c.Next()
	}
}

// Redirect performs a full page navigation for both HTMX and regular requests.
func Redirect(c *gin.Context, url string) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", url)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Redirect(http.StatusFound, url)
	c.Abort()
}

// GetSession returns the session loaded by SessionMiddleware or nil.
func GetSession(c *gin.Context) *session.Session {
	v, exists := c.Get(string(SessionContextKey))
	if !exists {
		return nil
	}
	s, ok := v.(*session.Session)
	if !ok {
		return nil
	}
	return s
}

// GetUserFromContext builds the layout user from the session.
func GetUserFromContext(c *gin.Context) *models.User {
	s := GetSession(c)
	if !s.Authenticated() {
		return nil
	}
	name := s.DisplayName
	if name == "" {
		name = s.Username
	}
	return &models.User{Name: name, Role: s.Role}
}
