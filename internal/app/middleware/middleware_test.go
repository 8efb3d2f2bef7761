package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
	"github.com/FACorreiaa/hmhy-portal/internal/app/session"
)

func newGatedRouter(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := session.NewManager(session.NewMemoryStore(time.Hour), time.Hour, zap.NewNop())
	r := gin.New()
	r.Use(sessions.Sessions("hmhy_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(SessionMiddleware(manager, zap.NewNop()))

	r.POST("/login/:role", func(c *gin.Context) {
		_, err := manager.Start(c, session.Login{Token: "T1", Role: models.Role(c.Param("role")), DisplayName: "Test User"})
		require.NoError(t, err)
		c.Status(http.StatusNoContent)
	})

	ok := func(c *gin.Context) {
		user := GetUserFromContext(c)
		c.String(http.StatusOK, user.Name)
	}
	r.GET("/app/admin", RequireRole(models.RoleAdmin), ok)
	r.GET("/app/superadmin", RequireRole(models.RoleSuperAdmin), ok)
	r.GET("/teacher/dashboard", RequireRole(models.RoleTeacher), ok)
	r.GET("/student", RequireRole(models.RoleStudent), ok)
	return r, manager
}

func login(t *testing.T, r http.Handler, role models.Role) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login/"+role.String(), nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func get(r http.Handler, path string, cookies []*http.Cookie, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	r, _ := newGatedRouter(t)

	areas := map[models.Role]string{
		models.RoleAdmin:      "/app/admin",
		models.RoleSuperAdmin: "/app/superadmin",
		models.RoleTeacher:    "/teacher/dashboard",
		models.RoleStudent:    "/student",
	}

	for role := range areas {
		cookies := login(t, r, role)
		for other, otherPath := range areas {
			w := get(r, otherPath, cookies, false)
			if other == role {
				assert.Equal(t, http.StatusOK, w.Code, "%s on %s", role, otherPath)
				assert.Equal(t, "Test User", w.Body.String())
				continue
			}
			assert.Equal(t, http.StatusFound, w.Code, "%s on %s", role, otherPath)
			assert.Equal(t, "/", w.Header().Get("Location"))
		}
	}
}

func TestRequireRole_Anonymous(t *testing.T) {
	r, _ := newGatedRouter(t)

	w := get(r, "/app/admin", nil, false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = get(r, "/app/admin", nil, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/", w.Header().Get("HX-Redirect"))
}

func TestSecurityAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(), SecurityMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/", nil, false)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "https://unpkg.com")

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
