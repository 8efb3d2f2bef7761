package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/domaintest"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

func TestTeacherIndexServesDashboard(t *testing.T) {
	h := domaintest.NewHarness(t, models.RoleTeacher)
	b := domaintest.NewBackend(t)
	b.Handle(http.MethodGet, "/teacher/me", domaintest.OK(models.Teacher{ID: "me", FullName: "Aziza Karimova"}))
	b.Handle(http.MethodGet, "/lessons/for-teacher", domaintest.OK([]models.Lesson{}))
	Setup(h.Engine, b.Client(t), h.Sessions, zap.NewNop())

	for _, path := range []string{"/teacher", "/teacher/dashboard"} {
		w := h.Do(http.MethodGet, path, nil, false)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, domaintest.Doc(t, w).Find("h1").Text(), "Aziza Karimova", path)
	}
}

func TestTeacherIndexRequiresTeacher(t *testing.T) {
	h := domaintest.NewHarness(t, models.RoleStudent)
	Setup(h.Engine, domaintest.NewBackend(t).Client(t), h.Sessions, zap.NewNop())

	w := h.Do(http.MethodGet, "/teacher", nil, false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
