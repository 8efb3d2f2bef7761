package models

import (
	"strings"
	"time"
)

type Student struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	PhoneNumber   string     `json:"phoneNumber,omitempty"`
	Role          string     `json:"role,omitempty"`
	TgID          string     `json:"tgId,omitempty"`
	TgUsername    string     `json:"tgUsername,omitempty"`
	Email         string     `json:"email,omitempty"`
	Avatar        string     `json:"avatar,omitempty"`
	LanguageCode  string     `json:"languageCode,omitempty"`
	Timezone      string     `json:"timezone,omitempty"`
	Bio           string     `json:"bio,omitempty"`
	IsBlocked     bool       `json:"isBlocked"`
	BlockedAt     *time.Time `json:"blockedAt,omitempty"`
	BlockedReason string     `json:"blockedReason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Lessons       []Lesson   `json:"lessons,omitempty"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// ShortID is the eight character prefix shown in lists.
func (s Student) ShortID() string {
	if len(s.ID) <= 8 {
		return s.ID
	}
	return s.ID[:8] + "..."
}

type StudentStats struct {
	TotalStudents   int `json:"totalStudents"`
	ActiveStudents  int `json:"activeStudents"`
	BlockedStudents int `json:"blockedStudents"`
}

// StudentUpdate is the payload of PUT /student/:id.
type StudentUpdate struct {
	FirstName    string `json:"firstname,omitempty" form:"firstname"`
	LastName     string `json:"lastname,omitempty" form:"lastname"`
	Phone        string `json:"phone,omitempty" form:"phone"`
	Email        string `json:"email,omitempty" form:"email"`
	Bio          string `json:"bio,omitempty" form:"bio"`
	LanguageCode string `json:"languageCode,omitempty" form:"languageCode"`
	Timezone     string `json:"timezone,omitempty" form:"timezone"`
}

func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
