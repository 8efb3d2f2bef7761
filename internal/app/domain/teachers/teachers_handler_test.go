package teachers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/hmhy-portal/internal/app/apiclient"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/domaintest"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, creds apiclient.Credentials, f listing.TeacherFilters) ([]models.Teacher, models.Pagination, error) {
	args := m.Called(ctx, creds, f)
	if args.Get(0) == nil {
		return nil, models.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]models.Teacher), args.Get(1).(models.Pagination), args.Error(2)
}

func (m *MockService) Get(ctx context.Context, creds apiclient.Credentials, id string) (*models.TeacherDetails, error) {
	args := m.Called(ctx, creds, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeacherDetails), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, creds apiclient.Credentials, in models.TeacherInput) (*models.Teacher, error) {
	args := m.Called(ctx, creds, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Teacher), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, creds apiclient.Credentials, id string, in models.TeacherInput) (*models.Teacher, error) {
	args := m.Called(ctx, creds, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Teacher), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, creds apiclient.Credentials, id string) error {
	return m.Called(ctx, creds, id).Error(0)
}

func (m *MockService) SetStatus(ctx context.Context, creds apiclient.Credentials, id string, active bool) error {
	return m.Called(ctx, creds, id, active).Error(0)
}

func (m *MockService) Activate(ctx context.Context, creds apiclient.Credentials, id string) error {
	return m.Called(ctx, creds, id).Error(0)
}

func (m *MockService) Me(ctx context.Context, creds apiclient.Credentials) (*models.Teacher, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Teacher), args.Error(1)
}

func (m *MockService) UpdateProfile(ctx context.Context, creds apiclient.Credentials, in models.TeacherProfileUpdate) (*models.Teacher, error) {
	args := m.Called(ctx, creds, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Teacher), args.Error(1)
}

func newAdminHarness(t *testing.T, role models.Role) (*domaintest.Harness, *MockService) {
	t.Helper()
	h := domaintest.NewHarness(t, role)
	svc := new(MockService)
	handlers := NewTeacherHandlers(h.Base, svc)

	base := role.Home()
	if role == models.RoleTeacher {
		h.Engine.GET("/teacher/profile", handlers.ShowProfile)
		h.Engine.POST("/teacher/profile", handlers.UpdateProfile)
		return h, svc
	}
	h.Engine.GET(base+"/teacher", handlers.ShowTeachers)
	h.Engine.POST(base+"/teacher", handlers.CreateTeacher)
	h.Engine.GET(base+"/teacher/:id", handlers.ShowTeacher)
	h.Engine.POST(base+"/teacher/:id", handlers.UpdateTeacher)
	h.Engine.POST(base+"/teacher/:id/status", handlers.SetTeacherStatus)
	h.Engine.POST(base+"/teacher/:id/activate", handlers.ActivateTeacher)
	h.Engine.POST(base+"/teacher/:id/delete", handlers.DeleteTeacher)
	h.Engine.GET(base+"/lesson", handlers.ShowLessonsIndex)
	return h, svc
}

var sampleTeachers = []models.Teacher{
	{ID: "t1", FullName: "Aziza Karimova", Email: "aziza@hmhy.uz", Rating: 4.5, HourPrice: 100000, IsActive: true},
	{ID: "t2", FullName: "Bobur Aliyev", Email: "bobur@hmhy.uz", Rating: 3, HourPrice: 80000},
}

func TestShowTeachers_RendersTableWithAreaLinks(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleSuperAdmin} {
		t.Run(role.String(), func(t *testing.T) {
			h, svc := newAdminHarness(t, role)
			svc.On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(f listing.TeacherFilters) bool {
				return f.SortBy == "rating" && f.Page == 1
			})).Return(sampleTeachers, models.Pagination{CurrentPage: 1, TotalPages: 1, TotalElements: 2}, nil).Once()

			w := h.Do(http.MethodGet, role.Home()+"/teacher?sortBy=rating", nil, false)
			require.Equal(t, http.StatusOK, w.Code)

			doc := domaintest.Doc(t, w)
			assert.Equal(t, 2, doc.Find("#teachers tbody tr").Length())
			href, _ := doc.Find("#teachers tbody tr").First().Find("a").Attr("href")
			assert.Equal(t, role.Home()+"/teacher/t1", href)
			assert.Equal(t, 1, doc.Find("#teacher-filters").Length())
			svc.AssertExpectations(t)
		})
	}
}

func TestShowTeachers_HTMXGetsFragment(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleAdmin)
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).Return(sampleTeachers, models.Pagination{CurrentPage: 1, TotalPages: 1}, nil)

	w := h.Do(http.MethodGet, "/app/admin/teacher", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<html")
	assert.Contains(t, w.Body.String(), "Aziza Karimova")
}

func TestShowTeachers_BackendErrorShowsBanner(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleAdmin)
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, models.Pagination{}, &apiclient.APIError{StatusCode: http.StatusInternalServerError,
			Message: apiclient.LocalizedMessage{Uz: "Server xatosi", En: "Server error"}})

	w := h.Do(http.MethodGet, "/app/admin/teacher", nil, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server xatosi", domaintest.Banner(t, w))
}

func TestCreateTeacher(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleAdmin)
	in := models.TeacherInput{FullName: "Dilnoza", Email: "d@hmhy.uz", Password: "secret1", Specification: models.SpecificationKids}
	svc.On("Create", mock.Anything, mock.Anything, in).Return(&models.Teacher{ID: "t3", FullName: "Dilnoza"}, nil).Once()
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).Return(sampleTeachers, models.Pagination{CurrentPage: 1, TotalPages: 1}, nil)

	w := h.Do(http.MethodPost, "/app/admin/teacher", url.Values{
		"fullName": {"Dilnoza"}, "email": {"d@hmhy.uz"}, "password": {"secret1"}, "specification": {"KIDS"},
	}, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, domaintest.Banner(t, w), "Dilnoza")
	svc.AssertExpectations(t)
}

func TestCreateTeacher_ValidationKeepsListAndShowsError(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleAdmin)
	svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, models.ErrValidation)
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).Return(sampleTeachers, models.Pagination{CurrentPage: 1, TotalPages: 1}, nil)

	w := h.Do(http.MethodPost, "/app/admin/teacher", url.Values{"fullName": {"x"}}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Ma'lumotlar noto'g'ri kiritilgan", domaintest.Banner(t, w))
	assert.Equal(t, 2, domaintest.Doc(t, w).Find("#teachers tbody tr").Length())
}

func TestSetTeacherStatus(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleSuperAdmin)
	svc.On("SetStatus", mock.Anything, mock.Anything, "t1", false).Return(nil).Once()
	// the list after the action ignores the action's own isActive query
	svc.On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(f listing.TeacherFilters) bool {
		return f.IsActive == nil
	})).Return(sampleTeachers, models.Pagination{CurrentPage: 1, TotalPages: 1}, nil).Once()

	w := h.Do(http.MethodPost, "/app/superadmin/teacher/t1/status?isActive=false", url.Values{}, true)
	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)

	w = h.Do(http.MethodPost, "/app/superadmin/teacher/t1/status?isActive=maybe", url.Values{}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShowTeacher_InactiveOffersActivation(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleAdmin)
	svc.On("Get", mock.Anything, mock.Anything, "t2").Return(&models.TeacherDetails{
		Teacher: sampleTeachers[1],
		Lessons: []models.Lesson{{ID: "l1", Name: "Speaking", Status: models.LessonBooked}},
		Stats:   models.TeacherStats{TotalLessons: 1, BookedLessons: 1},
	}, nil)

	w := h.Do(http.MethodGet, "/app/admin/teacher/t2", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	doc := domaintest.Doc(t, w)
	assert.Equal(t, 1, doc.Find(`form[action="/app/admin/teacher/t2/activate"]`).Length())
	assert.Equal(t, 1, doc.Find("#teacher-lessons tbody tr").Length())
}

func TestUpdateTeacher_FailureRerendersDetail(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleAdmin)
	svc.On("Update", mock.Anything, mock.Anything, "t1", mock.Anything).
		Return(nil, &apiclient.APIError{StatusCode: http.StatusConflict, Message: apiclient.LocalizedMessage{Uz: "Email band"}})
	svc.On("Get", mock.Anything, mock.Anything, "t1").Return(&models.TeacherDetails{Teacher: sampleTeachers[0]}, nil)

	w := h.Do(http.MethodPost, "/app/admin/teacher/t1", url.Values{"email": {"taken@hmhy.uz"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email band", domaintest.Banner(t, w))
}

func TestDeleteTeacher_SessionExpiredRedirects(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleAdmin)
	svc.On("Delete", mock.Anything, mock.Anything, "t1").Return(apiclient.ErrSessionExpired)

	w := h.Do(http.MethodPost, "/app/admin/teacher/t1/delete", url.Values{}, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/", w.Header().Get("HX-Redirect"))
}

func TestShowLessonsIndex_TeacherCards(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleAdmin)
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).Return(sampleTeachers, models.Pagination{CurrentPage: 1, TotalPages: 1}, nil)

	w := h.Do(http.MethodGet, "/app/admin/lesson", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	cards := domaintest.Doc(t, w).Find("a[data-teacher]")
	assert.Equal(t, 2, cards.Length())
	href, _ := cards.First().Attr("href")
	assert.Equal(t, "/app/admin/lesson/t1", href)
}

func TestTeacherProfile(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleTeacher)
	svc.On("Me", mock.Anything, mock.Anything).Return(&models.Teacher{ID: "me", FullName: "Aziza", Email: "aziza@hmhy.uz"}, nil)
	svc.On("UpdateProfile", mock.Anything, mock.Anything, mock.MatchedBy(func(in models.TeacherProfileUpdate) bool {
		return in.FullName == "Aziza K" && in.Experience == 5
	})).Return(&models.Teacher{ID: "me", FullName: "Aziza K"}, nil)

	w := h.Do(http.MethodGet, "/teacher/profile", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	name, _ := domaintest.Doc(t, w).Find(`input[name="fullName"]`).Attr("value")
	assert.Equal(t, "Aziza", name)

	w = h.Do(http.MethodPost, "/teacher/profile", url.Values{"fullName": {"Aziza K"}, "phoneNumber": {"+998"}, "experience": {"5"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Profil yangilandi", domaintest.Banner(t, w))
}

func TestTeacherProfile_UnparsableNumberNeverReachesBackend(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleTeacher)

	w := h.Do(http.MethodPost, "/teacher/profile", url.Values{
		"fullName":    {"Aziza K"},
		"phoneNumber": {"+998901234567"},
		"experience":  {"3.5"},
		"hourPrice":   {"150000"},
		"description": {"keep me"},
	}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Ma'lumotlar noto'g'ri kiritilgan", domaintest.Banner(t, w))

	doc := domaintest.Doc(t, w)
	assert.Equal(t, "3.5", doc.Find(`input[name="experience"]`).AttrOr("value", ""))
	assert.Equal(t, "150000", doc.Find(`input[name="hourPrice"]`).AttrOr("value", ""))
	assert.Equal(t, "keep me", doc.Find(`textarea[name="description"]`).Text())
	svc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTeacher_UnparsablePriceNeverReachesBackend(t *testing.T) {
	h, svc := newAdminHarness(t, models.RoleAdmin)
	svc.On("List", mock.Anything, mock.Anything, mock.Anything).Return([]models.Teacher{}, models.Pagination{}, nil)

	w := h.Do(http.MethodPost, "/app/admin/teacher", url.Values{
		"fullName": {"Aziza"}, "email": {"a@b.uz"}, "password": {"secret1"}, "hourPrice": {"ko'p"},
	}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ma'lumotlar noto'g'ri kiritilgan", domaintest.Banner(t, w))
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}
