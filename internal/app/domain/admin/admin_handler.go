package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	adminui "github.com/FACorreiaa/hmhy-portal/internal/app/components/admin"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/middleware"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const paymentsPageSize = 20

type AdminHandlers struct {
	*domain.BaseHandler
	adminService Service
}

func NewAdminHandlers(base *domain.BaseHandler, adminService Service) *AdminHandlers {
	return &AdminHandlers{BaseHandler: base, adminService: adminService}
}

func (h *AdminHandlers) ShowDashboard(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context(), h.Credentials(c))
	if err != nil {
		h.HandleError(c, err, "load dashboard")
		return
	}
	h.RenderPage(c, "Dashboard", "Dashboard", adminui.Dashboard(*stats, ui.Flash{}))
}

func (h *AdminHandlers) ShowAdmins(c *gin.Context) {
	h.RenderPage(c, "Admins", "Admins", adminui.Admins(domain.Base(c), models.CreateAdmin{}, ui.Flash{}))
}

func (h *AdminHandlers) CreateAdmin(c *gin.Context) {
	var in models.CreateAdmin
	err := h.Bind(c, &in)
	if err == nil {
		err = h.adminService.CreateAdmin(c.Request.Context(), h.Credentials(c), in)
	}
	if err != nil {
		in.Password = ""
		h.RenderForm(c, err, "Admins", "Admins", adminui.Admins(domain.Base(c), in, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	h.RenderPage(c, "Admins", "Admins", adminui.Admins(domain.Base(c), models.CreateAdmin{}, ui.Success("Admin qo'shildi: "+in.Username)))
}

func (h *AdminHandlers) currentProfile(c *gin.Context) models.EditProfile {
	p := models.EditProfile{}
	if s := middleware.GetSession(c); s != nil {
		p.Username = s.Username
	}
	return p
}

func (h *AdminHandlers) ShowProfile(c *gin.Context) {
	h.RenderPage(c, "Profile", "Profile", adminui.Profile(domain.Base(c), h.currentProfile(c), ui.Flash{}))
}

func (h *AdminHandlers) UpdateProfile(c *gin.Context) {
	var in models.EditProfile
	err := h.Bind(c, &in)
	if err == nil {
		err = h.adminService.UpdateProfile(c.Request.Context(), h.Credentials(c), in)
	}
	if err != nil {
		h.RenderForm(c, err, "Profile", "Profile", adminui.Profile(domain.Base(c), in, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	h.RenderPage(c, "Profile", "Profile", adminui.Profile(domain.Base(c), in, ui.Success("Profil yangilandi")))
}

func (h *AdminHandlers) ChangePassword(c *gin.Context) {
	var in models.ChangePassword
	err := h.Bind(c, &in)
	if err == nil {
		err = h.adminService.ChangePassword(c.Request.Context(), h.Credentials(c), in)
	}

	profile := h.currentProfile(c)
	if err != nil {
		h.RenderForm(c, err, "Profile", "Profile", adminui.Profile(domain.Base(c), profile, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	h.RenderPage(c, "Profile", "Profile", adminui.Profile(domain.Base(c), profile, ui.Success("Parol o'zgartirildi")))
}

// ShowPayments lists transactions; search and paging happen here because the
// backend returns them all with the totals.
func (h *AdminHandlers) ShowPayments(c *gin.Context) {
	stats, err := h.adminService.PaymentStats(c.Request.Context(), h.Credentials(c))
	if err != nil {
		h.HandleError(c, err, "load payments")
		return
	}

	query := c.Query("q")
	page, _ := strconv.Atoi(c.Query("page"))
	txs, pagination := listing.Page(listing.SearchTransactions(stats.Transactions, query), page, paymentsPageSize)

	h.RenderPage(c, "Payments", "Payments", adminui.Payments(adminui.PaymentsView{
		Base:         domain.Base(c),
		Stats:        *stats,
		Transactions: txs,
		Query:        query,
		Pagination:   pagination,
	}))
}
