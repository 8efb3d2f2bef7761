package students

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	adminui "github.com/FACorreiaa/hmhy-portal/internal/app/components/admin"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const pageSize = 10

type StudentHandlers struct {
	*domain.BaseHandler
	studentService Service
}

func NewStudentHandlers(base *domain.BaseHandler, studentService Service) *StudentHandlers {
	return &StudentHandlers{BaseHandler: base, studentService: studentService}
}

func (h *StudentHandlers) ShowStudents(c *gin.Context) {
	h.renderList(c, ui.Flash{})
}

// renderList loads the list and the stats together, then searches, filters
// and pages locally.
func (h *StudentHandlers) renderList(c *gin.Context, flash ui.Flash) {
	creds := h.Credentials(c)

	var (
		list  []models.Student
		stats *models.StudentStats
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		list, err = h.studentService.List(ctx, creds)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = h.studentService.Stats(ctx, creds)
		return err
	})
	if err := g.Wait(); err != nil {
		h.HandleError(c, err, "list students")
		return
	}

	query := c.Query("q")
	status := c.Query("status")
	page, _ := strconv.Atoi(c.Query("page"))

	matched := listing.SearchStudents(list, query)
	if status == adminui.StudentsActive || status == adminui.StudentsBlocked {
		blocked := status == adminui.StudentsBlocked
		filtered := matched[:0:0]
		for _, s := range matched {
			if s.IsBlocked == blocked {
				filtered = append(filtered, s)
			}
		}
		matched = filtered
	}
	items, pagination := listing.Page(matched, page, pageSize)

	h.RenderPage(c, "Students", "Students", adminui.Students(adminui.StudentsView{
		Base:       domain.Base(c),
		Students:   items,
		Stats:      *stats,
		Query:      query,
		Status:     status,
		Pagination: pagination,
		Flash:      flash,
	}))
}

func (h *StudentHandlers) ShowStudent(c *gin.Context) {
	st, err := h.studentService.Get(c.Request.Context(), h.Credentials(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err, "load student")
		return
	}
	h.RenderPage(c, st.FullName(), "Students", adminui.StudentDetail(domain.Base(c), *st, ui.Flash{}))
}

func (h *StudentHandlers) UpdateStudent(c *gin.Context) {
	var in models.StudentUpdate
	var updated *models.Student
	id := c.Param("id")
	err := h.Bind(c, &in)
	if err == nil {
		updated, err = h.studentService.Update(c.Request.Context(), h.Credentials(c), id, in)
	}
	if err != nil {
		current := models.Student{ID: id, FirstName: in.FirstName, LastName: in.LastName, PhoneNumber: in.Phone,
			Email: in.Email, Bio: in.Bio, LanguageCode: in.LanguageCode, Timezone: in.Timezone}
		h.RenderForm(c, err, "Students", "Students",
			adminui.StudentDetail(domain.Base(c), current, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	if updated.ID == "" {
		updated.ID = id
	}
	h.RenderPage(c, updated.FullName(), "Students", adminui.StudentDetail(domain.Base(c), *updated, ui.Success("O'quvchi ma'lumotlari saqlandi")))
}

func (h *StudentHandlers) BlockStudent(c *gin.Context) {
	if err := h.studentService.ToggleBlock(c.Request.Context(), h.Credentials(c), c.Param("id")); err != nil {
		h.HandleError(c, err, "block student")
		return
	}
	h.renderList(c, ui.Success("O'quvchi holati o'zgartirildi"))
}

func (h *StudentHandlers) DeleteStudent(c *gin.Context) {
	if err := h.studentService.Delete(c.Request.Context(), h.Credentials(c), c.Param("id")); err != nil {
		h.HandleError(c, err, "delete student")
		return
	}
	h.renderList(c, ui.Success("O'quvchi o'chirildi"))
}
