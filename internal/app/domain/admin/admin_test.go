package admin

import (
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
	h := domaintest.NewHarness(t, models.RoleSuperAdmin)
	b := domaintest.NewBackend(t)
	handlers := NewAdminHandlers(h.Base, NewAdminService(b.Client(t), zap.NewNop()))

	const base = "/app/superadmin"
	h.Engine.GET(base+"/dashboard", handlers.ShowDashboard)
	h.Engine.GET(base+"/admins", handlers.ShowAdmins)
	h.Engine.POST(base+"/admins", handlers.CreateAdmin)
	h.Engine.GET(base+"/profile", handlers.ShowProfile)
	h.Engine.POST(base+"/profile", handlers.UpdateProfile)
	h.Engine.POST(base+"/profile/password", handlers.ChangePassword)
	h.Engine.GET(base+"/payment", handlers.ShowPayments)
	return h, b
}

func TestShowDashboard(t *testing.T) {
	h, b := newHarness(t)
	stats := models.DashboardStats{TotalStudents: 120, TotalTeachers: 8, TotalLessons: 340, TotalRevenue: 1500000}
	stats.Charts.LessonsByStatus = []models.StatusCount{
		{Status: models.LessonCompleted, Count: 300},
		{Status: models.LessonBooked, Count: 40},
	}
	b.Handle(http.MethodGet, "/admin/stats", domaintest.OK(stats))

	w := h.Do(http.MethodGet, "/app/superadmin/dashboard", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	doc := domaintest.Doc(t, w)
	assert.Contains(t, doc.Find(`[data-stat="Students"]`).Text(), "120")
	assert.Contains(t, doc.Find(`[data-stat="Lessons"]`).Text(), "340")
	assert.Equal(t, 2, doc.Find("#lessons-by-status li").Length())
	assert.Equal(t, "Bearer T1", b.CallsTo(http.MethodGet, "/admin/stats")[0].Auth)
}

func TestCreateAdmin(t *testing.T) {
	h, b := newHarness(t)
	b.Handle(http.MethodPost, "/admin", domaintest.OK(nil))

	w := h.Do(http.MethodPost, "/app/superadmin/admins", url.Values{"username": {" newadmin "}, "password": {"secret12"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, domaintest.Banner(t, w), "newadmin")

	body := b.CallsTo(http.MethodPost, "/admin")[0].Body
	assert.Equal(t, "newadmin", body["username"])
}

func TestCreateAdmin_ValidationNeverReachesBackend(t *testing.T) {
	h, b := newHarness(t)

	w := h.Do(http.MethodPost, "/app/superadmin/admins", url.Values{"username": {"x"}, "password": {"123"}}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Ma'lumotlar noto'g'ri kiritilgan", domaintest.Banner(t, w))
	assert.NotContains(t, w.Body.String(), `value="123"`)
	assert.Empty(t, b.Calls())
}

func TestCreateAdmin_Duplicate(t *testing.T) {
	h, b := newHarness(t)
	b.Handle(http.MethodPost, "/admin", domaintest.Fail(http.StatusConflict, "Bu username band", "Username taken"))

	w := h.Do(http.MethodPost, "/app/superadmin/admins", url.Values{"username": {"admin"}, "password": {"secret12"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bu username band", domaintest.Banner(t, w))
}

func TestProfileAndPassword(t *testing.T) {
	h, b := newHarness(t)
	b.Handle(http.MethodPatch, "/admin/update", domaintest.OK(nil))
	b.Handle(http.MethodPatch, "/admin/changePassword", domaintest.Fail(http.StatusBadRequest, "Eski parol noto'g'ri", "Wrong password"))

	w := h.Do(http.MethodGet, "/app/superadmin/profile", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="tester"`)

	w = h.Do(http.MethodPost, "/app/superadmin/profile", url.Values{"username": {"boss"}, "phone": {"+998901234567"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Profil yangilandi", domaintest.Banner(t, w))
	assert.Equal(t, "boss", b.CallsTo(http.MethodPatch, "/admin/update")[0].Body["username"])

	w = h.Do(http.MethodPost, "/app/superadmin/profile/password", url.Values{"oldPassword": {"old"}, "newPassword": {"newsecret"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Eski parol noto'g'ri", domaintest.Banner(t, w))

	w = h.Do(http.MethodPost, "/app/superadmin/profile/password", url.Values{"oldPassword": {"old"}, "newPassword": {"short"}}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, b.CallsTo(http.MethodPatch, "/admin/changePassword"), 1)
}

func TestShowPayments_SearchAndPages(t *testing.T) {
	h, b := newHarness(t)
	txs := make([]models.Transaction, 0, 30)
	for i := range 30 {
		status := models.PaymentCompleted
		if i%3 == 0 {
			status = models.PaymentPending
		}
		txs = append(txs, models.Transaction{
			ID:       fmt.Sprintf("tx%02d", i),
			Student:  &models.Party{Name: fmt.Sprintf("Student %02d", i)},
			Teacher:  &models.Party{Name: "Aziza"},
			Amount:   50000,
			Status:   status,
			Provider: "payme",
		})
	}
	b.Handle(http.MethodGet, "/payment/stats", domaintest.OK(models.PaymentStats{TotalRevenue: 1000000, CompletedCount: 20, PendingCount: 10, Transactions: txs}))

	w := h.Do(http.MethodGet, "/app/superadmin/payment", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, domaintest.Doc(t, w).Find("#transactions tbody tr").Length())

	w = h.Do(http.MethodGet, "/app/superadmin/payment?page=2", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, domaintest.Doc(t, w).Find("#transactions tbody tr").Length())

	w = h.Do(http.MethodGet, "/app/superadmin/payment?q=pending", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, domaintest.Doc(t, w).Find("#transactions tbody tr").Length())
}
