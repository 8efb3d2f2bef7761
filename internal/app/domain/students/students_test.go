package students

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/domaintest"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

func newHarness(t *testing.T) (*domaintest.Harness, *domaintest.Backend) {
	t.Helper()
	h := domaintest.NewHarness(t, models.RoleAdmin)
	b := domaintest.NewBackend(t)
	handlers := NewStudentHandlers(h.Base, NewStudentService(b.Client(t), zap.NewNop()))

	h.Engine.GET("/app/admin/student", handlers.ShowStudents)
	h.Engine.GET("/app/admin/student/:id", handlers.ShowStudent)
	h.Engine.POST("/app/admin/student/:id", handlers.UpdateStudent)
	h.Engine.POST("/app/admin/student/:id/block", handlers.BlockStudent)
	h.Engine.POST("/app/admin/student/:id/delete", handlers.DeleteStudent)
	return h, b
}

func roster(n int) []models.Student {
	out := make([]models.Student, 0, n)
	for i := range n {
		out = append(out, models.Student{
			ID:         fmt.Sprintf("s%02d", i),
			FirstName:  fmt.Sprintf("Student%02d", i),
			LastName:   "Test",
			TgUsername: fmt.Sprintf("tg%02d", i),
			IsBlocked:  i%4 == 0,
		})
	}
	return out
}

func serveRoster(b *domaintest.Backend, students []models.Student) {
	blocked := 0
	for _, s := range students {
		if s.IsBlocked {
			blocked++
		}
	}
	b.Handle(http.MethodGet, "/student", domaintest.OK(students))
	b.Handle(http.MethodGet, "/student/stats", domaintest.OK(models.StudentStats{
		TotalStudents: len(students), ActiveStudents: len(students) - blocked, BlockedStudents: blocked,
	}))
}

func TestShowStudents_PagesLocally(t *testing.T) {
	h, b := newHarness(t)
	serveRoster(b, roster(25))

	w := h.Do(http.MethodGet, "/app/admin/student", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	doc := domaintest.Doc(t, w)
	assert.Equal(t, 10, doc.Find("#students tbody tr").Length())
	assert.Contains(t, doc.Find(`[data-stat]`).Text(), "25")

	w = h.Do(http.MethodGet, "/app/admin/student?page=3", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, domaintest.Doc(t, w).Find("#students tbody tr").Length())
}

func TestShowStudents_SearchAndStatus(t *testing.T) {
	h, b := newHarness(t)
	serveRoster(b, roster(25))

	w := h.Do(http.MethodGet, "/app/admin/student?q=student0", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, domaintest.Doc(t, w).Find("#students tbody tr").Length())

	w = h.Do(http.MethodGet, "/app/admin/student?status=blocked", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	// 0, 4, 8, 12, 16, 20, 24
	assert.Equal(t, 7, domaintest.Doc(t, w).Find("#students tbody tr").Length())

	w = h.Do(http.MethodGet, "/app/admin/student?"+url.Values{"q": {"tg07"}, "status": {"active"}}.Encode(), nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	rows := domaintest.Doc(t, w).Find("#students tbody tr")
	require.Equal(t, 1, rows.Length())
	assert.Contains(t, rows.Text(), "Student07")
}

func TestShowStudents_StatsFailure(t *testing.T) {
	h, b := newHarness(t)
	b.Handle(http.MethodGet, "/student", domaintest.OK(roster(3)))
	b.Handle(http.MethodGet, "/student/stats", domaintest.Fail(http.StatusInternalServerError, "Xatolik", "Error"))

	w := h.Do(http.MethodGet, "/app/admin/student", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "#content", w.Header().Get("HX-Retarget"))
	assert.Equal(t, "Xatolik", domaintest.Banner(t, w))
}

func TestBlockStudent(t *testing.T) {
	h, b := newHarness(t)
	serveRoster(b, roster(2))
	b.Handle(http.MethodPost, "/student/s01/block", domaintest.OK(nil))

	w := h.Do(http.MethodPost, "/app/admin/student/s01/block", url.Values{}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "O'quvchi holati o'zgartirildi", domaintest.Banner(t, w))
	assert.Len(t, b.CallsTo(http.MethodPost, "/student/s01/block"), 1)
}

func TestUpdateStudent(t *testing.T) {
	h, b := newHarness(t)
	b.Handle(http.MethodPut, "/student/s01", domaintest.OK(models.Student{ID: "s01", FirstName: "Ali", LastName: "Valiyev"}))

	w := h.Do(http.MethodPost, "/app/admin/student/s01", url.Values{"firstname": {"Ali"}, "lastname": {"Valiyev"}, "phone": {"+998901112233"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "O'quvchi ma'lumotlari saqlandi", domaintest.Banner(t, w))

	body := b.CallsTo(http.MethodPut, "/student/s01")[0].Body
	assert.Equal(t, "Ali", body["firstname"])
	assert.Equal(t, "+998901112233", body["phone"])
	assert.NotContains(t, body, "email")
}

func TestUpdateStudent_RejectedKeepsInput(t *testing.T) {
	h, b := newHarness(t)
	b.Handle(http.MethodPut, "/student/s01", domaintest.Fail(http.StatusBadRequest, "Telefon noto'g'ri", "Bad phone"))

	w := h.Do(http.MethodPost, "/app/admin/student/s01", url.Values{"firstname": {"Ali"}, "phone": {"123"}}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Telefon noto'g'ri", domaintest.Banner(t, w))
	assert.Contains(t, w.Body.String(), `value="123"`)
}

func TestDeleteStudent_NotFound(t *testing.T) {
	h, _ := newHarness(t)

	w := h.Do(http.MethodPost, "/app/admin/student/nope/delete", url.Values{}, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Topilmadi", domaintest.Banner(t, w))
}

func TestServiceRequiresID(t *testing.T) {
	svc := NewStudentService(domaintest.NewBackend(t).Client(t), zap.NewNop())

	_, err := svc.Get(context.Background(), domaintest.NewCreds("T1"), "")
	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.ErrorIs(t, svc.ToggleBlock(context.Background(), domaintest.NewCreds("T1"), ""), models.ErrBadRequest)
}
