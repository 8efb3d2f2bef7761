package models

import "github.com/a-h/templ"

type User struct {
	Name string
	Role Role
}

type NavItem struct {
	Name string
	URL  string
	Icon string
}

type Navigation struct {
	Items []NavItem
}

type LayoutTempl struct {
	Title     string
	User      *User
	Nav       Navigation
	ActiveNav string
	Content   templ.Component
}

// AdminNav builds the sidebar for an admin area mounted at base (/app/admin or /app/superadmin).
func AdminNav(base string) Navigation {
	return Navigation{
		Items: []NavItem{
			{Name: "Dashboard", URL: base, Icon: "layout-dashboard"},
			{Name: "Teachers", URL: base + "/teacher", Icon: "graduation-cap"},
			{Name: "Students", URL: base + "/student", Icon: "users"},
			{Name: "Lessons", URL: base + "/lesson", Icon: "book-open"},
			{Name: "Payments", URL: base + "/payment", Icon: "credit-card"},
			{Name: "Admins", URL: base + "/admins", Icon: "shield"},
			{Name: "Profile", URL: base + "/profile", Icon: "user"},
		},
	}
}

var TeacherNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/teacher/dashboard", Icon: "layout-dashboard"},
		{Name: "Lessons", URL: "/teacher/lesson", Icon: "book-open"},
		{Name: "Profile", URL: "/teacher/profile", Icon: "user"},
	},
}

var StudentNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/student/dashboard", Icon: "layout-dashboard"},
		{Name: "Profile", URL: "/student/profile", Icon: "user"},
	},
}

// NavFor picks the sidebar matching a role.
func NavFor(role Role) Navigation {
	switch role {
	case RoleAdmin, RoleSuperAdmin:
		return AdminNav(role.Home())
	case RoleTeacher:
		return TeacherNav
	case RoleStudent:
		return StudentNav
	default:
		return Navigation{}
	}
}
