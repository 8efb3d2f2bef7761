package models

import (
	"strings"
	"time"
)

type LessonStatus string

const (
	LessonAvailable LessonStatus = "AVAILABLE"
	LessonBooked    LessonStatus = "BOOKED"
	LessonCompleted LessonStatus = "COMPLETED"
	LessonCancelled LessonStatus = "CANCELLED"
)

// DateTimeLocal is the layout of an HTML datetime-local input.
const DateTimeLocal = "2006-01-02T15:04"

var LessonStatuses = []LessonStatus{LessonAvailable, LessonBooked, LessonCompleted, LessonCancelled}

func (s LessonStatus) Valid() bool {
	switch s {
	case LessonAvailable, LessonBooked, LessonCompleted, LessonCancelled:
		return true
	}
	return false
}

// Label renders AVAILABLE as "Available"; the empty status reads "All".
func (s LessonStatus) Label() string {
	if s == "" {
		return "All"
	}
	return string(s[0]) + strings.ToLower(string(s[1:]))
}

type Lesson struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	StartTime     time.Time    `json:"startTime"`
	EndTime       time.Time    `json:"endTime"`
	TeacherID     string       `json:"teacherId"`
	StudentID     string       `json:"studentId,omitempty"`
	GoogleMeetURL string       `json:"googleMeetUrl,omitempty"`
	Status        LessonStatus `json:"status"`
	GoogleEventID string       `json:"googleEventId,omitempty"`
	Price         float64      `json:"price"`
	IsPaid        bool         `json:"isPaid"`
	BookedAt      *time.Time   `json:"bookedAt,omitempty"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	Teacher       *Teacher     `json:"teacher,omitempty"`
	Student       *Student     `json:"student,omitempty"`
}

// LessonInput is the create/update payload for /lessons.
type LessonInput struct {
	Name          string       `json:"name,omitempty"`
	StartTime     *time.Time   `json:"startTime,omitempty"`
	EndTime       *time.Time   `json:"endTime,omitempty"`
	TeacherID     string       `json:"teacherId,omitempty"`
	StudentID     string       `json:"studentId,omitempty"`
	GoogleMeetURL string       `json:"googleMeetUrl,omitempty"`
	Status        LessonStatus `json:"status,omitempty"`
	Price         *float64     `json:"price,omitempty"`
	IsPaid        *bool        `json:"isPaid,omitempty"`
}
