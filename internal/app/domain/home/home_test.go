package home

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/domaintest"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/lessons"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/teachers"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func TestUpcoming(t *testing.T) {
	all := []models.Lesson{
		{ID: "past", StartTime: now.Add(-time.Hour), Status: models.LessonBooked},
		{ID: "done", StartTime: now.Add(time.Hour), Status: models.LessonCompleted},
		{ID: "later", StartTime: now.Add(3 * time.Hour), Status: models.LessonAvailable},
		{ID: "soon", StartTime: now.Add(time.Hour), Status: models.LessonBooked},
		{ID: "cancelled", StartTime: now.Add(2 * time.Hour), Status: models.LessonCancelled},
		{ID: "latest", StartTime: now.Add(4 * time.Hour), Status: models.LessonAvailable},
	}

	got := Upcoming(all, now, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "soon", got[0].ID)
	assert.Equal(t, "later", got[1].ID)

	assert.Empty(t, Upcoming(nil, now, 5))
}

func newHarness(t *testing.T, role models.Role) (*domaintest.Harness, *domaintest.Backend) {
	t.Helper()
	h := domaintest.NewHarness(t, role)
	b := domaintest.NewBackend(t)
	client := b.Client(t)

	handlers := NewHomeHandlers(h.Base,
		teachers.NewTeacherService(client, zap.NewNop()),
		lessons.NewLessonService(client, zap.NewNop()))
	handlers.now = func() time.Time { return now }

	h.Engine.GET("/teacher/dashboard", handlers.TeacherDashboard)
	h.Engine.GET("/student/dashboard", handlers.StudentDashboard)
	h.Engine.GET("/student/profile", handlers.StudentProfile)
	return h, b
}

func TestTeacherDashboard(t *testing.T) {
	h, b := newHarness(t, models.RoleTeacher)
	b.Handle(http.MethodGet, "/teacher/me", domaintest.OK(models.Teacher{ID: "me", FullName: "Aziza Karimova", Rating: 4.8}))
	b.Handle(http.MethodGet, "/lessons/for-teacher", domaintest.OK([]models.Lesson{
		{ID: "l1", Name: "Speaking", StartTime: now.Add(time.Hour), Status: models.LessonBooked},
		{ID: "l2", Name: "Writing", StartTime: now.Add(-time.Hour), Status: models.LessonCompleted},
		{ID: "l3", Name: "Grammar", StartTime: now.Add(2 * time.Hour), Status: models.LessonAvailable},
	}))

	w := h.Do(http.MethodGet, "/teacher/dashboard", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	doc := domaintest.Doc(t, w)
	assert.Contains(t, doc.Find("h1").Text(), "Aziza Karimova")
	assert.Contains(t, doc.Find(`[data-stat="Lessons"]`).Text(), "3")
	assert.Contains(t, doc.Find(`[data-stat="Completed"]`).Text(), "1")
	assert.Equal(t, 2, doc.Find("#upcoming-lessons tbody tr").Length())

	for _, call := range b.Calls() {
		assert.Equal(t, "Bearer T1", call.Auth)
	}
}

func TestTeacherDashboard_OneFailureShowsBanner(t *testing.T) {
	h, b := newHarness(t, models.RoleTeacher)
	b.Handle(http.MethodGet, "/teacher/me", domaintest.OK(models.Teacher{ID: "me"}))
	b.Handle(http.MethodGet, "/lessons/for-teacher", domaintest.Fail(http.StatusForbidden, "Ruxsat yo'q", "Forbidden"))

	w := h.Do(http.MethodGet, "/teacher/dashboard", nil, false)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Ruxsat yo'q", domaintest.Banner(t, w))
}

func TestStudentPagesUseSession(t *testing.T) {
	h, _ := newHarness(t, models.RoleStudent)

	w := h.Do(http.MethodGet, "/student/dashboard", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Salom, Test User!")

	w = h.Do(http.MethodGet, "/student/profile", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	doc := domaintest.Doc(t, w)
	assert.Equal(t, "Test User", doc.Find("#student-name").Text())
	assert.Equal(t, "@tester", doc.Find("#student-username").Text())
}
