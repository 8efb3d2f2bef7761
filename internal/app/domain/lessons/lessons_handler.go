package lessons

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	adminui "github.com/FACorreiaa/hmhy-portal/internal/app/components/admin"
	teacherui "github.com/FACorreiaa/hmhy-portal/internal/app/components/teacher"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

type LessonHandlers struct {
	*domain.BaseHandler
	lessonService Service
	// Location reads the zone-less datetime-local form values.
	Location *time.Location
}

func NewLessonHandlers(base *domain.BaseHandler, lessonService Service) *LessonHandlers {
	return &LessonHandlers{BaseHandler: base, lessonService: lessonService, Location: time.Local}
}

func postForm(c *gin.Context) url.Values {
	_ = c.Request.ParseForm()
	return c.Request.PostForm
}

// outcome maps an action result to the banner shown above the re-rendered
// list. A nil error with an empty message shows nothing.
func outcome(c *gin.Context, err error, ok string) ui.Flash {
	if err != nil {
		return ui.Failure(domain.ErrorMessage(c, err))
	}
	if ok == "" {
		return ui.Flash{}
	}
	return ui.Success(ok)
}

// Admin area: one teacher's lessons.

func (h *LessonHandlers) ShowTeacherLessons(c *gin.Context) {
	h.renderTeacherLessons(c, url.Values{}, nil, "")
}

// renderTeacherLessons lists the lessons with the filters from the request
// query; action URLs carry the list's filters so the page stays the same.
func (h *LessonHandlers) renderTeacherLessons(c *gin.Context, form url.Values, actionErr error, ok string) {
	if actionErr != nil && domain.IsSessionEnded(actionErr) {
		h.HandleError(c, actionErr, "teacher lessons")
		return
	}

	teacherID := c.Param("teacherId")
	f := listing.ParseLessonFilters(c.Request.URL.Query())
	lessons, pagination, err := h.lessonService.TeacherLessons(c.Request.Context(), h.Credentials(c), teacherID, f)
	if err != nil {
		h.HandleError(c, err, "list teacher lessons")
		return
	}

	page := adminui.TeacherLessons(adminui.TeacherLessonsView{
		Base:       domain.Base(c),
		TeacherID:  teacherID,
		Lessons:    lessons,
		Filters:    f,
		Pagination: pagination,
		Form:       form,
		Flash:      outcome(c, actionErr, ok),
	})
	if actionErr != nil {
		h.RenderForm(c, actionErr, "Lessons", "Lessons", page)
		return
	}
	h.RenderPage(c, "Lessons", "Lessons", page)
}

func (h *LessonHandlers) CreateTeacherLesson(c *gin.Context) {
	form := postForm(c)
	in, err := InputFromForm(form, h.Location)
	if err == nil {
		in.TeacherID = c.Param("teacherId")
		_, err = h.lessonService.Create(c.Request.Context(), h.Credentials(c), in)
	}
	if err != nil {
		h.renderTeacherLessons(c, form, err, "")
		return
	}
	h.renderTeacherLessons(c, url.Values{}, nil, "Dars yaratildi")
}

func (h *LessonHandlers) BookLesson(c *gin.Context) {
	err := h.lessonService.Book(c.Request.Context(), h.Credentials(c), c.Param("lessonId"), postForm(c).Get("studentId"))
	h.renderTeacherLessons(c, url.Values{}, err, "Dars band qilindi")
}

func (h *LessonHandlers) CancelLesson(c *gin.Context) {
	err := h.lessonService.Cancel(c.Request.Context(), h.Credentials(c), c.Param("lessonId"), postForm(c).Get("reason"))
	h.renderTeacherLessons(c, url.Values{}, err, "Dars bekor qilindi")
}

func (h *LessonHandlers) CompleteLesson(c *gin.Context) {
	err := h.lessonService.Complete(c.Request.Context(), h.Credentials(c), c.Param("lessonId"))
	h.renderTeacherLessons(c, url.Values{}, err, "Dars yakunlandi")
}

func (h *LessonHandlers) DeleteLesson(c *gin.Context) {
	err := h.lessonService.Delete(c.Request.Context(), h.Credentials(c), c.Param("lessonId"))
	h.renderTeacherLessons(c, url.Values{}, err, "Dars o'chirildi")
}

func (h *LessonHandlers) ShowLesson(c *gin.Context) {
	l, err := h.lessonService.Get(c.Request.Context(), h.Credentials(c), c.Param("lessonId"))
	if err != nil {
		h.HandleError(c, err, "load lesson")
		return
	}
	h.RenderPage(c, l.Name, "Lessons",
		adminui.LessonEdit(domain.Base(c), c.Param("teacherId"), *l, adminui.LessonValues(*l), ui.Flash{}))
}

func (h *LessonHandlers) UpdateLesson(c *gin.Context) {
	ctx, creds := c.Request.Context(), h.Credentials(c)
	id := c.Param("lessonId")

	current, err := h.lessonService.Get(ctx, creds, id)
	if err != nil {
		h.HandleError(c, err, "load lesson")
		return
	}

	form := postForm(c)
	in, err := InputFromForm(form, h.Location)
	if err == nil {
		var updated *models.Lesson
		if updated, err = h.lessonService.Update(ctx, creds, id, in); err == nil && updated.ID != "" {
			current = updated
		}
	}
	if err != nil {
		h.RenderForm(c, err, current.Name, "Lessons",
			adminui.LessonEdit(domain.Base(c), c.Param("teacherId"), *current, form, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	h.RenderPage(c, current.Name, "Lessons",
		adminui.LessonEdit(domain.Base(c), c.Param("teacherId"), *current, adminui.LessonValues(*current), ui.Success("Dars saqlandi")))
}

// Teacher area: the signed-in teacher's own lessons.

func (h *LessonHandlers) ShowMyLessons(c *gin.Context) {
	h.renderMyLessons(c, c.Request.URL.Query(), url.Values{}, nil, "")
}

// renderMyLessons searches, filters and pages locally; the backend returns
// all of a teacher's lessons at once.
func (h *LessonHandlers) renderMyLessons(c *gin.Context, query, form url.Values, actionErr error, ok string) {
	if actionErr != nil && domain.IsSessionEnded(actionErr) {
		h.HandleError(c, actionErr, "own lessons")
		return
	}

	all, err := h.lessonService.ForTeacher(c.Request.Context(), h.Credentials(c))
	if err != nil {
		h.HandleError(c, err, "list own lessons")
		return
	}

	q := query.Get("q")
	f := listing.ParseOwnLessonFilters(query)
	lessons, pagination := f.Apply(listing.SearchLessons(all, q))

	page := teacherui.Lessons(teacherui.LessonsView{
		Lessons:    lessons,
		Query:      q,
		Filters:    f,
		Pagination: pagination,
		Form:       form,
		Flash:      outcome(c, actionErr, ok),
	})
	if actionErr != nil {
		h.RenderForm(c, actionErr, "Lessons", "Lessons", page)
		return
	}
	h.RenderPage(c, "Lessons", "Lessons", page)
}

func (h *LessonHandlers) CreateMyLesson(c *gin.Context) {
	form := postForm(c)
	in, err := InputFromForm(form, h.Location)
	if err == nil {
		_, err = h.lessonService.Create(c.Request.Context(), h.Credentials(c), in)
	}
	if err != nil {
		h.renderMyLessons(c, url.Values{}, form, err, "")
		return
	}
	h.renderMyLessons(c, url.Values{}, url.Values{}, nil, "Dars yaratildi")
}

func (h *LessonHandlers) CompleteMyLesson(c *gin.Context) {
	err := h.lessonService.Complete(c.Request.Context(), h.Credentials(c), c.Param("lessonId"))
	h.renderMyLessons(c, url.Values{}, url.Values{}, err, "Dars yakunlandi")
}

func (h *LessonHandlers) CancelMyLesson(c *gin.Context) {
	err := h.lessonService.Cancel(c.Request.Context(), h.Credentials(c), c.Param("lessonId"), postForm(c).Get("reason"))
	h.renderMyLessons(c, url.Values{}, url.Values{}, err, "Dars bekor qilindi")
}

func (h *LessonHandlers) DeleteMyLesson(c *gin.Context) {
	err := h.lessonService.Delete(c.Request.Context(), h.Credentials(c), c.Param("lessonId"))
	h.renderMyLessons(c, url.Values{}, url.Values{}, err, "Dars o'chirildi")
}
