package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/apiclient"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/admin"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/auth"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/home"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/lessons"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/students"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain/teachers"
	"github.com/FACorreiaa/hmhy-portal/internal/app/middleware"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
	"github.com/FACorreiaa/hmhy-portal/internal/app/session"
)

type AppHandlers struct {
	Auth     *auth.AuthHandlers
	Admin    *admin.AdminHandlers
	Teachers *teachers.TeacherHandlers
	Students *students.StudentHandlers
	Lessons  *lessons.LessonHandlers
	Home     *home.HomeHandlers
}

func Setup(r *gin.Engine, client *apiclient.Client, sessions *session.Manager, log *zap.Logger) {
	setupRouter(r, setupDependencies(client, sessions, log))
}

func setupDependencies(client *apiclient.Client, sessions *session.Manager, log *zap.Logger) *AppHandlers {
	baseHandler := domain.NewBaseHandler(log, sessions)

	teacherService := teachers.NewTeacherService(client, log)
	lessonService := lessons.NewLessonService(client, log)

	return &AppHandlers{
		Auth:     auth.NewAuthHandlers(baseHandler, auth.NewAuthService(client, log)),
		Admin:    admin.NewAdminHandlers(baseHandler, admin.NewAdminService(client, log)),
		Teachers: teachers.NewTeacherHandlers(baseHandler, teacherService),
		Students: students.NewStudentHandlers(baseHandler, students.NewStudentService(client, log)),
		Lessons:  lessons.NewLessonHandlers(baseHandler, lessonService),
		Home:     home.NewHomeHandlers(baseHandler, teacherService, lessonService),
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers) {
	public := r.Group("/")
	{
		public.GET("/", h.Auth.Landing)
		public.GET("/admin/login", h.Auth.ShowAdminLogin)
		public.POST("/admin/login", h.Auth.AdminLogin)
		public.GET("/teacher/login", h.Auth.ShowTeacherLogin)
		public.POST("/teacher/login", h.Auth.TeacherLogin)
		public.GET("/teacher/google", h.Auth.GoogleLogin)
		public.GET("/teacher/otp-verify", h.Auth.ShowOTPVerify)
		public.POST("/teacher/otp-verify/send", h.Auth.SendOTP)
		public.POST("/teacher/otp-verify/verify", h.Auth.VerifyOTP)
		public.GET("/telegram", h.Auth.ShowTelegram)
		public.GET("/student/login", h.Auth.ShowStudentLogin)
		public.POST("/student/login", h.Auth.StudentLogin)
		public.POST("/logout", h.Auth.Logout)
	}

	// Both admin roles get the same pages under their own prefix.
	setupAdminArea(r.Group(models.RoleAdmin.Home(), middleware.RequireRole(models.RoleAdmin)), h)
	setupAdminArea(r.Group(models.RoleSuperAdmin.Home(), middleware.RequireRole(models.RoleSuperAdmin)), h)

	requireTeacher := middleware.RequireRole(models.RoleTeacher)
	teacher := r.Group("/teacher")
	{
		teacher.GET("", h.Auth.TeacherTokenLanding(), requireTeacher, h.Home.TeacherDashboard)
		teacher.GET("/dashboard", h.Auth.TeacherTokenLanding(), requireTeacher, h.Home.TeacherDashboard)
		teacher.GET("/profile", requireTeacher, h.Teachers.ShowProfile)
		teacher.POST("/profile", requireTeacher, h.Teachers.UpdateProfile)
		teacher.GET("/lesson", requireTeacher, h.Lessons.ShowMyLessons)
		teacher.POST("/lesson", requireTeacher, h.Lessons.CreateMyLesson)
		teacher.POST("/lesson/:lessonId/complete", requireTeacher, h.Lessons.CompleteMyLesson)
		teacher.POST("/lesson/:lessonId/cancel", requireTeacher, h.Lessons.CancelMyLesson)
		teacher.POST("/lesson/:lessonId/delete", requireTeacher, h.Lessons.DeleteMyLesson)
	}

	requireStudent := middleware.RequireRole(models.RoleStudent)
	student := r.Group("/student")
	{
		student.GET("", requireStudent, h.Home.StudentDashboard)
		student.GET("/dashboard", requireStudent, h.Home.StudentDashboard)
		student.GET("/profile", requireStudent, h.Home.StudentProfile)
	}
}

func setupAdminArea(g *gin.RouterGroup, h *AppHandlers) {
	g.GET("", h.Admin.ShowDashboard)
	g.GET("/dashboard", h.Admin.ShowDashboard)

	g.GET("/teacher", h.Teachers.ShowTeachers)
	g.POST("/teacher", h.Teachers.CreateTeacher)
	g.GET("/teacher/:id", h.Teachers.ShowTeacher)
	g.POST("/teacher/:id", h.Teachers.UpdateTeacher)
	g.POST("/teacher/:id/status", h.Teachers.SetTeacherStatus)
	g.POST("/teacher/:id/activate", h.Teachers.ActivateTeacher)
	g.POST("/teacher/:id/delete", h.Teachers.DeleteTeacher)

	g.GET("/lesson", h.Teachers.ShowLessonsIndex)
	g.GET("/lesson/:teacherId", h.Lessons.ShowTeacherLessons)
	g.POST("/lesson/:teacherId", h.Lessons.CreateTeacherLesson)
	g.GET("/lesson/:teacherId/:lessonId", h.Lessons.ShowLesson)
	g.POST("/lesson/:teacherId/:lessonId", h.Lessons.UpdateLesson)
	g.POST("/lesson/:teacherId/:lessonId/book", h.Lessons.BookLesson)
	g.POST("/lesson/:teacherId/:lessonId/cancel", h.Lessons.CancelLesson)
	g.POST("/lesson/:teacherId/:lessonId/complete", h.Lessons.CompleteLesson)
	g.POST("/lesson/:teacherId/:lessonId/delete", h.Lessons.DeleteLesson)

	g.GET("/student", h.Students.ShowStudents)
	g.GET("/student/:id", h.Students.ShowStudent)
	g.POST("/student/:id", h.Students.UpdateStudent)
	g.POST("/student/:id/block", h.Students.BlockStudent)
	g.POST("/student/:id/delete", h.Students.DeleteStudent)

	g.GET("/payment", h.Admin.ShowPayments)

	g.GET("/admins", h.Admin.ShowAdmins)
	g.POST("/admins", h.Admin.CreateAdmin)

	g.GET("/profile", h.Admin.ShowProfile)
	g.POST("/profile", h.Admin.UpdateProfile)
	g.POST("/profile/password", h.Admin.ChangePassword)
}
