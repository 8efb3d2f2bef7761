package models

import "time"

type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "LOCAL"
	AuthProviderGoogle AuthProvider = "GOOGLE"
)

type TeacherSpecification string

const (
	SpecificationIELTS    TeacherSpecification = "IELTS"
	SpecificationSpeaking TeacherSpecification = "SPEAKING"
	SpecificationGrammar  TeacherSpecification = "GRAMMAR"
	SpecificationBusiness TeacherSpecification = "BUSINESS"
	SpecificationKids     TeacherSpecification = "KIDS"
)

var TeacherSpecifications = []TeacherSpecification{
	SpecificationIELTS,
	SpecificationSpeaking,
	SpecificationGrammar,
	SpecificationBusiness,
	SpecificationKids,
}

func (s TeacherSpecification) Valid() bool {
	for _, known := range TeacherSpecifications {
		if s == known {
			return true
		}
	}
	return false
}

type Teacher struct {
	ID            string               `json:"id"`
	Email         string               `json:"email"`
	PhoneNumber   string               `json:"phoneNumber"`
	FullName      string               `json:"fullName"`
	CardNumber    string               `json:"cardNumber,omitempty"`
	IsActive      bool                 `json:"isActive"`
	AuthProvider  AuthProvider         `json:"authProvider,omitempty"`
	IsDelete      bool                 `json:"isDelete,omitempty"`
	IsComplete    bool                 `json:"isComplete,omitempty"`
	Role          string               `json:"role,omitempty"`
	Specification TeacherSpecification `json:"specification,omitempty"`
	Level         string               `json:"level,omitempty"`
	Description   string               `json:"description,omitempty"`
	HourPrice     float64              `json:"hourPrice,omitempty"`
	PortfolioLink string               `json:"portfolioLink,omitempty"`
	ImageURL      string               `json:"imageUrl,omitempty"`
	Rating        float64              `json:"rating"`
	Experience    string               `json:"experience,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	LessonsCount  int                  `json:"lessonsCount,omitempty"`
}

// Initials renders up to two leading letters of the teacher's name for avatar placeholders.
func (t Teacher) Initials() string {
	return initials(t.FullName)
}

type TeacherStats struct {
	TotalLessons     int     `json:"totalLessons"`
	AvailableLessons int     `json:"availableLessons"`
	BookedLessons    int     `json:"bookedLessons"`
	CompletedLessons int     `json:"completedLessons"`
	TotalEarnings    float64 `json:"totalEarnings"`
}

type TeacherDetails struct {
	Teacher Teacher      `json:"teacher"`
	Lessons []Lesson     `json:"lessons"`
	Stats   TeacherStats `json:"stats"`
}

// TeacherProfileUpdate is the payload of PATCH /teacher/update.
type TeacherProfileUpdate struct {
	FullName      string               `json:"fullName" form:"fullName"`
	PhoneNumber   string               `json:"phoneNumber" form:"phoneNumber"`
	Specification TeacherSpecification `json:"specification,omitempty" form:"specification"`
	Level         string               `json:"level,omitempty" form:"level"`
	Experience    int                  `json:"experience" form:"experience"`
	HourPrice     float64              `json:"hourPrice" form:"hourPrice"`
	PortfolioLink string               `json:"portfolioLink,omitempty" form:"portfolioLink"`
	Description   string               `json:"description,omitempty" form:"description"`
	CardNumber    string               `json:"cardNumber,omitempty" form:"cardNumber"`
}

// TeacherInput is the admin create/update payload. Empty fields are left out
// so updates only touch what the form sent.
type TeacherInput struct {
	FullName      string               `json:"fullName,omitempty" form:"fullName"`
	Email         string               `json:"email,omitempty" form:"email"`
	PhoneNumber   string               `json:"phoneNumber,omitempty" form:"phoneNumber"`
	Password      string               `json:"password,omitempty" form:"password"`
	Specification TeacherSpecification `json:"specification,omitempty" form:"specification"`
	Level         string               `json:"level,omitempty" form:"level"`
	HourPrice     float64              `json:"hourPrice,omitempty" form:"hourPrice"`
	Description   string               `json:"description,omitempty" form:"description"`
	PortfolioLink string               `json:"portfolioLink,omitempty" form:"portfolioLink"`
}
