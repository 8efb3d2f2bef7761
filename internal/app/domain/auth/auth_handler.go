package auth

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	authui "github.com/FACorreiaa/hmhy-portal/internal/app/components/auth"
	"github.com/FACorreiaa/hmhy-portal/internal/app/components/ui"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/middleware"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
	"github.com/FACorreiaa/hmhy-portal/internal/app/observability/metrics"
	"github.com/FACorreiaa/hmhy-portal/internal/app/session"
)

const (
	LogoutMessage   = "Tizimdan muvaffaqiyatli chiqdingiz!"
	verifiedMessage = "Email tasdiqlandi, endi tizimga kiring"
	otpSentMessage  = "Tasdiqlash kodi emailingizga yuborildi"
)

type AdminLoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type TeacherLoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type SendOTPRequest struct {
	Email       string `form:"email"`
	PhoneNumber string `form:"phoneNumber"`
	Password    string `form:"password"`
}

type VerifyOTPRequest struct {
	Email string `form:"email"`
	OTP   string `form:"otp"`
}

type AuthHandlers struct {
	*domain.BaseHandler
	authService Service
}

func NewAuthHandlers(base *domain.BaseHandler, authService Service) *AuthHandlers {
	return &AuthHandlers{BaseHandler: base, authService: authService}
}

// redirectSignedIn sends a browser that already has a session to its area.
func (h *AuthHandlers) redirectSignedIn(c *gin.Context) bool {
	s := middleware.GetSession(c)
	if !s.Authenticated() {
		return false
	}
	c.Redirect(http.StatusFound, s.Role.Home())
	return true
}

func (h *AuthHandlers) Landing(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	flash := ui.Flash{}
	if c.Query("logout") != "" {
		flash = ui.Success(LogoutMessage)
	}
	h.RenderPage(c, "HMHY", "", authui.RoleSelect(flash))
}

func (h *AuthHandlers) ShowAdminLogin(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	h.RenderPage(c, "Admin login", "", authui.AdminLogin("", ui.Flash{}))
}

func (h *AuthHandlers) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	var result *Result
	err := h.Bind(c, &req)
	if err == nil {
		h.Logger.Info("Admin login attempt", zap.String("username", req.Username), zap.String("remote_addr", c.ClientIP()))
		result, err = h.authService.AdminLogin(c.Request.Context(), req.Username, req.Password)
	}
	if err != nil {
		h.recordLogin(c, models.RoleAdmin, "failed")
		h.RenderForm(c, err, "Admin login", "", authui.AdminLogin(req.Username, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	h.completeLogin(c, result, func(msg string) templ.Component {
		return authui.AdminLogin(req.Username, ui.Failure(msg))
	})
}

func (h *AuthHandlers) ShowTeacherLogin(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	flash := ui.Flash{}
	switch {
	case c.Query("verified") != "":
		flash = ui.Success(verifiedMessage)
	case c.Query("error") != "":
		flash = ui.Failure(c.Query("error"))
	}
	h.RenderPage(c, "Teacher login", "", authui.TeacherLogin(c.Query("email"), flash))
}

func (h *AuthHandlers) TeacherLogin(c *gin.Context) {
	var req TeacherLoginRequest
	var result *Result
	err := h.Bind(c, &req)
	if err == nil {
		h.Logger.Info("Teacher login attempt", zap.String("email", req.Email), zap.String("remote_addr", c.ClientIP()))
		result, err = h.authService.TeacherLogin(c.Request.Context(), req.Email, req.Password)
	}
	if err != nil {
		h.recordLogin(c, models.RoleTeacher, "failed")
		h.RenderForm(c, err, "Teacher login", "", authui.TeacherLogin(req.Email, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	h.completeLogin(c, result, func(msg string) templ.Component {
		return authui.TeacherLogin(req.Email, ui.Failure(msg))
	})
}

// GoogleLogin hands the browser to the backend, which comes back to the
// teacher dashboard with ?token= or to the OTP page for new accounts.
func (h *AuthHandlers) GoogleLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, h.authService.GoogleURL())
}

func (h *AuthHandlers) ShowOTPVerify(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.Redirect(http.StatusFound, "/teacher/login")
		return
	}
	h.RenderPage(c, "Tasdiqlash", "", authui.OTPVerify(authui.OTPForm{Email: email}, ui.Flash{}))
}

func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	err := h.Bind(c, &req)
	if err == nil {
		err = h.authService.SendOTP(c.Request.Context(), req.Email, req.PhoneNumber, req.Password)
	}

	form := authui.OTPForm{Email: req.Email, PhoneNumber: req.PhoneNumber}
	if err != nil {
		h.RenderForm(c, err, "Tasdiqlash", "", authui.OTPVerify(form, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	form.Sent = true
	h.RenderPage(c, "Tasdiqlash", "", authui.OTPVerify(form, ui.Success(otpSentMessage)))
}

func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	err := h.Bind(c, &req)
	if err == nil {
		err = h.authService.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	}
	if err != nil {
		form := authui.OTPForm{Email: req.Email, Sent: true}
		h.RenderForm(c, err, "Tasdiqlash", "", authui.OTPVerify(form, ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	h.Navigate(c, "/teacher/login?"+url.Values{"verified": {"1"}, "email": {req.Email}}.Encode())
}

func (h *AuthHandlers) ShowTelegram(c *gin.Context) {
	h.RenderPage(c, "Telegram", "", authui.Telegram(authui.TelegramBotURL))
}

func (h *AuthHandlers) ShowStudentLogin(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	h.RenderPage(c, "Student login", "", authui.StudentLogin(ui.Flash{}))
}

func (h *AuthHandlers) StudentLogin(c *gin.Context) {
	initData := c.PostForm("initData")

	result, err := h.authService.TelegramLogin(c.Request.Context(), initData)
	if err != nil {
		h.recordLogin(c, models.RoleStudent, "failed")
		h.RenderForm(c, err, "Student login", "", authui.StudentLogin(ui.Failure(domain.ErrorMessage(c, err))))
		return
	}
	h.completeLogin(c, result, func(msg string) templ.Component {
		return authui.StudentLogin(ui.Failure(msg))
	})
}

func (h *AuthHandlers) Logout(c *gin.Context) {
	if s := middleware.GetSession(c); s != nil {
		h.Logger.Info("User logged out", zap.String("role", s.Role.String()), zap.String("username", s.Username))
	}
	if err := h.Sessions.End(c); err != nil {
		h.Logger.Warn("Failed to end session", zap.Error(err))
	}
	h.Navigate(c, "/?logout=1")
}

// TeacherTokenLanding turns the ?token= of the Google callback into a teacher
// session before the dashboard's role check runs.
func (h *AuthHandlers) TeacherTokenLanding() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.Next()
			return
		}

		s, err := h.Sessions.Start(c, session.Login{Token: token, Role: models.RoleTeacher})
		if err != nil {
			h.recordLogin(c, models.RoleTeacher, "failed")
			h.Logger.Warn("Google sign-in landing rejected", zap.Error(err))
			c.Redirect(http.StatusFound, "/teacher/login")
			c.Abort()
			return
		}
		h.recordLogin(c, models.RoleTeacher, "success")
		h.Logger.Info("Teacher signed in with Google", zap.String("session", s.ID.String()))
		c.Redirect(http.StatusFound, c.Request.URL.Path)
		c.Abort()
	}
}

func (h *AuthHandlers) completeLogin(c *gin.Context, result *Result, retry func(msg string) templ.Component) {
	_, err := h.Sessions.Start(c, session.Login{
		Token:       result.Token,
		Role:        result.Role,
		Username:    result.Username,
		DisplayName: result.DisplayName,
		Cookies:     result.Cookies,
	})
	if err != nil {
		h.recordLogin(c, result.Role, "failed")
		h.Logger.Error("Failed to start session", zap.String("role", result.Role.String()), zap.Error(err))
		h.RenderForm(c, err, "HMHY", "", retry(domain.ErrorMessage(c, err)))
		return
	}
	h.recordLogin(c, result.Role, "success")
	h.Navigate(c, result.Role.Home())
}

func (h *AuthHandlers) recordLogin(c *gin.Context, role models.Role, outcome string) {
	metrics.Get().LoginsTotal.Add(c.Request.Context(), 1, metric.WithAttributes(
		attribute.String("role", role.String()),
		attribute.String("outcome", outcome),
	))
}
