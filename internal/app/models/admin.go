package models

type StatusCount struct {
	Status LessonStatus `json:"status"`
	Count  int          `json:"count"`
}

type DashboardStats struct {
	TotalStudents int     `json:"totalStudents"`
	TotalTeachers int     `json:"totalTeachers"`
	TotalLessons  int     `json:"totalLessons"`
	TotalRevenue  float64 `json:"totalRevenue"`
	Charts        struct {
		LessonsByStatus []StatusCount `json:"lessonsByStatus"`
	} `json:"charts"`
}

type CreateAdmin struct {
	Username    string `json:"username" form:"username" binding:"required,min=2,max=50"`
	Password    string `json:"password" form:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phoneNumber,omitempty" form:"phoneNumber"`
}

type EditProfile struct {
	Username string `json:"username" form:"username" binding:"required,min=2,max=50"`
	Phone    string `json:"phone,omitempty" form:"phone"`
}

type ChangePassword struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" binding:"required,min=6"`
}
