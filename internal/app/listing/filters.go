// Package listing turns list-page query strings into backend filters and
// applies them locally when an endpoint returns an unpaginated list.
package listing

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

func parseOrder(v string) SortOrder {
	if strings.EqualFold(v, string(Desc)) {
		return Desc
	}
	return Asc
}

func (o SortOrder) Flip() SortOrder {
	if o == Desc {
		return Asc
	}
	return Desc
}

var teacherSortFields = []string{"fullName", "rating", "createdAt", "hourPrice"}

const (
	defaultTeacherLimit = 12
	defaultLessonLimit  = 10
	ownLessonLimit      = 20
	maxLimit            = 100
)

type TeacherFilters struct {
	Search        string
	Specification models.TeacherSpecification
	Level         string
	MinRating     *float64
	MaxRating     *float64
	MinPrice      *float64
	MaxPrice      *float64
	IsActive      *bool
	SortBy        string
	SortOrder     SortOrder
	Page          int
	Limit         int
}

// ParseTeacherFilters reads the teacher list query. Invalid values fall back to defaults.
func ParseTeacherFilters(q url.Values) TeacherFilters {
	f := TeacherFilters{
		Search:    strings.TrimSpace(q.Get("search")),
		Level:     strings.TrimSpace(q.Get("level")),
		MinRating: parseFloat(q.Get("minRating")),
		MaxRating: parseFloat(q.Get("maxRating")),
		MinPrice:  parseFloat(q.Get("minPrice")),
		MaxPrice:  parseFloat(q.Get("maxPrice")),
		IsActive:  parseBool(q.Get("isActive")),
		SortBy:    q.Get("sortBy"),
		SortOrder: parseOrder(q.Get("sortOrder")),
		Page:      parsePositive(q.Get("page"), 1),
		Limit:     parseLimit(q.Get("limit"), defaultTeacherLimit),
	}
	if spec := models.TeacherSpecification(strings.ToUpper(q.Get("specification"))); spec.Valid() {
		f.Specification = spec
	}
	if !slices.Contains(teacherSortFields, f.SortBy) {
		f.SortBy = "fullName"
	}
	return f
}

// Values re-encodes the filters for the backend and for page links.
func (f TeacherFilters) Values() url.Values {
	v := url.Values{}
	setString(v, "search", f.Search)
	setString(v, "specification", string(f.Specification))
	setString(v, "level", f.Level)
	setFloat(v, "minRating", f.MinRating)
	setFloat(v, "maxRating", f.MaxRating)
	setFloat(v, "minPrice", f.MinPrice)
	setFloat(v, "maxPrice", f.MaxPrice)
	if f.IsActive != nil {
		v.Set("isActive", strconv.FormatBool(*f.IsActive))
	}
	v.Set("sortBy", f.SortBy)
	v.Set("sortOrder", string(f.SortOrder))
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	return v
}

// Toggle switches to field, flips the order and returns to the first page.
func (f TeacherFilters) Toggle(field string) TeacherFilters {
	if !slices.Contains(teacherSortFields, field) {
		return f
	}
	f.SortBy = field
	f.SortOrder = f.SortOrder.Flip()
	f.Page = 1
	return f
}

func (f TeacherFilters) WithPage(page int) TeacherFilters {
	f.Page = max(page, 1)
	return f
}

func (f TeacherFilters) match(t models.Teacher, m *Matcher) bool {
	if f.Specification != "" && t.Specification != f.Specification {
		return false
	}
	if f.Level != "" && !strings.EqualFold(t.Level, f.Level) {
		return false
	}
	if f.IsActive != nil && t.IsActive != *f.IsActive {
		return false
	}
	if !inRange(t.Rating, f.MinRating, f.MaxRating) || !inRange(t.HourPrice, f.MinPrice, f.MaxPrice) {
		return false
	}
	return m.Match(t.FullName, t.Email, t.PhoneNumber)
}

// Apply filters, sorts and pages teachers locally.
func (f TeacherFilters) Apply(teachers []models.Teacher) ([]models.Teacher, models.Pagination) {
	m := NewMatcher(f.Search)
	out := make([]models.Teacher, 0, len(teachers))
	for _, t := range teachers {
		if f.match(t, m) {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b models.Teacher) int {
		var c int
		switch f.SortBy {
		case "rating":
			c = compareFloat(a.Rating, b.Rating)
		case "hourPrice":
			c = compareFloat(a.HourPrice, b.HourPrice)
		case "createdAt":
			c = a.CreatedAt.Compare(b.CreatedAt)
		default:
			c = strings.Compare(strings.ToLower(a.FullName), strings.ToLower(b.FullName))
		}
		if f.SortOrder == Desc {
			return -c
		}
		return c
	})

	return Page(out, f.Page, f.Limit)
}

var lessonSortFields = []string{"startTime", "price", "createdAt"}

type LessonFilters struct {
	TeacherID string
	StudentID string
	Status    models.LessonStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	IsPaid    *bool
	SortBy    string
	SortOrder SortOrder
	Page      int
	Limit     int
}

func ParseLessonFilters(q url.Values) LessonFilters {
	return parseLessonFilters(q, Asc, defaultLessonLimit)
}

// ParseOwnLessonFilters is used on the teacher's own lesson page, which
// lists the newest lessons first, twenty at a time.
func ParseOwnLessonFilters(q url.Values) LessonFilters {
	return parseLessonFilters(q, Desc, ownLessonLimit)
}

func parseLessonFilters(q url.Values, order SortOrder, limit int) LessonFilters {
	if v := q.Get("sortOrder"); v != "" {
		order = parseOrder(v)
	}
	f := LessonFilters{
		TeacherID: strings.TrimSpace(q.Get("teacherId")),
		StudentID: strings.TrimSpace(q.Get("studentId")),
		DateFrom:  parseDate(q.Get("dateFrom")),
		DateTo:    parseDate(q.Get("dateTo")),
		IsPaid:    parseBool(q.Get("isPaid")),
		SortBy:    q.Get("sortBy"),
		SortOrder: order,
		Page:      parsePositive(q.Get("page"), 1),
		Limit:     parseLimit(q.Get("limit"), limit),
	}
	if status := models.LessonStatus(strings.ToUpper(q.Get("status"))); status.Valid() {
		f.Status = status
	}
	if !slices.Contains(lessonSortFields, f.SortBy) {
		f.SortBy = "startTime"
	}
	return f
}

func (f LessonFilters) Values() url.Values {
	v := url.Values{}
	setString(v, "teacherId", f.TeacherID)
	setString(v, "studentId", f.StudentID)
	setString(v, "status", string(f.Status))
	if f.DateFrom != nil {
		v.Set("dateFrom", f.DateFrom.Format(time.DateOnly))
	}
	if f.DateTo != nil {
		v.Set("dateTo", f.DateTo.Format(time.DateOnly))
	}
	if f.IsPaid != nil {
		v.Set("isPaid", strconv.FormatBool(*f.IsPaid))
	}
	v.Set("sortBy", f.SortBy)
	v.Set("sortOrder", string(f.SortOrder))
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	return v
}

func (f LessonFilters) Toggle(field string) LessonFilters {
	if !slices.Contains(lessonSortFields, field) {
		return f
	}
	f.SortBy = field
	f.SortOrder = f.SortOrder.Flip()
	f.Page = 1
	return f
}

func (f LessonFilters) WithPage(page int) LessonFilters {
	f.Page = max(page, 1)
	return f
}

func (f LessonFilters) match(l models.Lesson) bool {
	if f.TeacherID != "" && l.TeacherID != f.TeacherID {
		return false
	}
	if f.StudentID != "" && l.StudentID != f.StudentID {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.IsPaid != nil && l.IsPaid != *f.IsPaid {
		return false
	}
	if f.DateFrom != nil && l.StartTime.Before(*f.DateFrom) {
		return false
	}
	// dateTo is inclusive of the whole day
	if f.DateTo != nil && !l.StartTime.Before(f.DateTo.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func (f LessonFilters) Apply(lessons []models.Lesson) ([]models.Lesson, models.Pagination) {
	out := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if f.match(l) {
			out = append(out, l)
		}
	}

	slices.SortStableFunc(out, func(a, b models.Lesson) int {
		var c int
		switch f.SortBy {
		case "price":
			c = compareFloat(a.Price, b.Price)
		case "createdAt":
			c = a.CreatedAt.Compare(b.CreatedAt)
		default:
			c = a.StartTime.Compare(b.StartTime)
		}
		if f.SortOrder == Desc {
			return -c
		}
		return c
	})

	return Page(out, f.Page, f.Limit)
}

func parseFloat(v string) *float64 {
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func parseBool(v string) *bool {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil
	}
	return &t
}

func parsePositive(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func parseLimit(v string, def int) int {
	return min(parsePositive(v, def), maxLimit)
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setFloat(v url.Values, key string, value *float64) {
	if value != nil {
		v.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}

func inRange(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
