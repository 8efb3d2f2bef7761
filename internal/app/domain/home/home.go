// Package home serves the landing pages of the teacher and student areas.
package home

import (
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	studentui "github.com/FACorreiaa/hmhy-portal/internal/app/components/student"
	teacherui "github.com/FACorreiaa/hmhy-portal/internal/app/components/teacher"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/lessons"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/teachers"
	"github.com/FACorreiaa/hmhy-portal/internal/app/middleware"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const upcomingLimit = 5

type HomeHandlers struct {
	*domain.BaseHandler
	teacherService teachers.Service
	lessonService  lessons.Service
	now            func() time.Time
}

func NewHomeHandlers(base *domain.BaseHandler, teacherService teachers.Service, lessonService lessons.Service) *HomeHandlers {
	return &HomeHandlers{BaseHandler: base, teacherService: teacherService, lessonService: lessonService, now: time.Now}
}

// Upcoming returns the next open or booked lessons, soonest first.
func Upcoming(all []models.Lesson, now time.Time, limit int) []models.Lesson {
	out := make([]models.Lesson, 0, limit)
	for _, l := range all {
		if l.StartTime.After(now) && (l.Status == models.LessonAvailable || l.Status == models.LessonBooked) {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b models.Lesson) int { return a.StartTime.Compare(b.StartTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (h *HomeHandlers) TeacherDashboard(c *gin.Context) {
	creds := h.Credentials(c)

	var (
		me  *models.Teacher
		all []models.Lesson
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		me, err = h.teacherService.Me(ctx, creds)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = h.lessonService.ForTeacher(ctx, creds)
		return err
	})
	if err := g.Wait(); err != nil {
		h.HandleError(c, err, "load teacher dashboard")
		return
	}

	h.RenderPage(c, "Dashboard", "Dashboard",
		teacherui.Dashboard(*me, teacherui.CountLessons(all), Upcoming(all, h.now(), upcomingLimit), ui.Flash{}))
}

// The student pages render from the session; the backend has no student
// self-service endpoints.

func (h *HomeHandlers) StudentDashboard(c *gin.Context) {
	name := ""
	if s := middleware.GetSession(c); s != nil {
		name = s.DisplayName
	}
	h.RenderPage(c, "Dashboard", "Dashboard", studentui.Dashboard(name, ui.Flash{}))
}

func (h *HomeHandlers) StudentProfile(c *gin.Context) {
	var name, username string
	if s := middleware.GetSession(c); s != nil {
		name, username = s.DisplayName, s.Username
	}
	h.RenderPage(c, "Profile", "Profile", studentui.Profile(name, username))
}
