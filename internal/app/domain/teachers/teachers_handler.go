package teachers

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	adminui "github.com/FACorreiaa/hmhy-portal/internal/app/components/admin"
	teacherui "github.com/FACorreiaa/hmhy-portal/internal/app/components/teacher"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

type TeacherHandlers struct {
	*domain.BaseHandler
	teacherService Service
}

func NewTeacherHandlers(base *domain.BaseHandler, teacherService Service) *TeacherHandlers {
	return &TeacherHandlers{BaseHandler: base, teacherService: teacherService}
}

func (h *TeacherHandlers) list(c *gin.Context, f listing.TeacherFilters) (adminui.TeachersView, error) {
	teachers, pagination, err := h.teacherService.List(c.Request.Context(), h.Credentials(c), f)
	if err != nil {
		return adminui.TeachersView{}, err
	}
	return adminui.TeachersView{
		Base:       domain.Base(c),
		Teachers:   teachers,
		Filters:    f,
		Pagination: pagination,
	}, nil
}

func (h *TeacherHandlers) ShowTeachers(c *gin.Context) {
	h.renderTeachers(c, listing.ParseTeacherFilters(c.Request.URL.Query()), ui.Flash{})
}

func (h *TeacherHandlers) renderTeachers(c *gin.Context, f listing.TeacherFilters, flash ui.Flash) {
	v, err := h.list(c, f)
	if err != nil {
		h.HandleError(c, err, "list teachers")
		return
	}
	v.Flash = flash
	h.RenderPage(c, "Teachers", "Teachers", adminui.Teachers(v))
}

// ShowLessonsIndex is the entry of the lessons section: pick a teacher first.
func (h *TeacherHandlers) ShowLessonsIndex(c *gin.Context) {
	v, err := h.list(c, listing.ParseTeacherFilters(c.Request.URL.Query()))
	if err != nil {
		h.HandleError(c, err, "list teachers")
		return
	}
	h.RenderPage(c, "Lessons", "Lessons", adminui.LessonsIndex(v))
}

// afterAction re-renders the first page of the list. The action URL carries
// its own query, so the filters are not read from the request.
func (h *TeacherHandlers) afterAction(c *gin.Context, msg string) {
	h.renderTeachers(c, listing.ParseTeacherFilters(url.Values{}), ui.Success(msg))
}

func (h *TeacherHandlers) CreateTeacher(c *gin.Context) {
	var in models.TeacherInput
	var t *models.Teacher
	err := h.Bind(c, &in)
	if err == nil {
		t, err = h.teacherService.Create(c.Request.Context(), h.Credentials(c), in)
	}
	if err != nil {
		if domain.IsSessionEnded(err) {
			h.HandleError(c, err, "create teacher")
			return
		}
		v, listErr := h.list(c, listing.ParseTeacherFilters(url.Values{}))
		if listErr != nil {
			h.HandleError(c, listErr, "list teachers")
			return
		}
		v.Flash = ui.Failure(domain.ErrorMessage(c, err))
		h.RenderForm(c, err, "Teachers", "Teachers", adminui.Teachers(v))
		return
	}
	h.afterAction(c, "O'qituvchi qo'shildi: "+t.FullName)
}

func (h *TeacherHandlers) ShowTeacher(c *gin.Context) {
	h.renderTeacher(c, c.Param("id"), ui.Flash{})
}

func (h *TeacherHandlers) renderTeacher(c *gin.Context, id string, flash ui.Flash) {
	d, err := h.teacherService.Get(c.Request.Context(), h.Credentials(c), id)
	if err != nil {
		h.HandleError(c, err, "load teacher")
		return
	}
	if d.Teacher.ID == "" {
		d.Teacher.ID = id
	}
	h.RenderPage(c, d.Teacher.FullName, "Teachers", adminui.TeacherDetail(domain.Base(c), *d, flash))
}

func (h *TeacherHandlers) UpdateTeacher(c *gin.Context) {
	var in models.TeacherInput
	id := c.Param("id")
	err := h.Bind(c, &in)
	if err == nil {
		_, err = h.teacherService.Update(c.Request.Context(), h.Credentials(c), id, in)
	}
	if err != nil {
		if domain.IsSessionEnded(err) {
			h.HandleError(c, err, "update teacher")
			return
		}
		h.renderTeacher(c, id, ui.Failure(domain.ErrorMessage(c, err)))
		return
	}
	h.renderTeacher(c, id, ui.Success("O'qituvchi ma'lumotlari saqlandi"))
}

func (h *TeacherHandlers) DeleteTeacher(c *gin.Context) {
	if err := h.teacherService.Delete(c.Request.Context(), h.Credentials(c), c.Param("id")); err != nil {
		h.HandleError(c, err, "delete teacher")
		return
	}
	h.afterAction(c, "O'qituvchi o'chirildi")
}

func (h *TeacherHandlers) SetTeacherStatus(c *gin.Context) {
	active, err := strconv.ParseBool(c.Query("isActive"))
	if err != nil {
		h.HandleError(c, models.ErrBadRequest, "change teacher status")
		return
	}
	if err := h.teacherService.SetStatus(c.Request.Context(), h.Credentials(c), c.Param("id"), active); err != nil {
		h.HandleError(c, err, "change teacher status")
		return
	}
	h.afterAction(c, "O'qituvchi holati o'zgartirildi")
}

func (h *TeacherHandlers) ActivateTeacher(c *gin.Context) {
	id := c.Param("id")
	if err := h.teacherService.Activate(c.Request.Context(), h.Credentials(c), id); err != nil {
		h.HandleError(c, err, "activate teacher")
		return
	}
	h.renderTeacher(c, id, ui.Success("O'qituvchi tasdiqlandi"))
}

func (h *TeacherHandlers) ShowProfile(c *gin.Context) {
	t, err := h.teacherService.Me(c.Request.Context(), h.Credentials(c))
	if err != nil {
		h.HandleError(c, err, "load profile")
		return
	}
	h.RenderPage(c, "Profile", "Profile", teacherui.Profile(*t, ui.Flash{}))
}

func (h *TeacherHandlers) UpdateProfile(c *gin.Context) {
	var in models.TeacherProfileUpdate
	var t *models.Teacher
	err := h.Bind(c, &in)
	if err == nil {
		t, err = h.teacherService.UpdateProfile(c.Request.Context(), h.Credentials(c), in)
	}
	if err != nil {
		// Re-render what was typed; a failed bind leaves in half filled.
		price, _ := strconv.ParseFloat(c.PostForm("hourPrice"), 64)
		submitted := models.Teacher{
			FullName:      c.PostForm("fullName"),
			PhoneNumber:   c.PostForm("phoneNumber"),
			Specification: models.TeacherSpecification(c.PostForm("specification")),
			Level:         c.PostForm("level"),
			Experience:    c.PostForm("experience"),
			HourPrice:     price,
			PortfolioLink: c.PostForm("portfolioLink"),
			Description:   c.PostForm("description"),
			CardNumber:    c.PostForm("cardNumber"),
		}
		h.RenderForm(c, err, "Profile", "Profile", teacherui.Profile(submitted, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	h.RenderPage(c, "Profile", "Profile", teacherui.Profile(*t, ui.Success("Profil yangilandi")))
}
