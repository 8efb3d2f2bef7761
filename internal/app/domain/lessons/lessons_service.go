package lessons

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/apiclient"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const tracerName = "LessonService"

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// ForTeacher returns every lesson of the signed-in teacher.
	ForTeacher(ctx context.Context, creds apiclient.Credentials) ([]models.Lesson, error)
	TeacherLessons(ctx context.Context, creds apiclient.Credentials, teacherID string, f listing.LessonFilters) ([]models.Lesson, models.Pagination, error)
	Get(ctx context.Context, creds apiclient.Credentials, id string) (*models.Lesson, error)
	Create(ctx context.Context, creds apiclient.Credentials, in models.LessonInput) (*models.Lesson, error)
	Update(ctx context.Context, creds apiclient.Credentials, id string, in models.LessonInput) (*models.Lesson, error)
	Delete(ctx context.Context, creds apiclient.Credentials, id string) error
	Book(ctx context.Context, creds apiclient.Credentials, id, studentID string) error
	Cancel(ctx context.Context, creds apiclient.Credentials, id, reason string) error
	Complete(ctx context.Context, creds apiclient.Credentials, id string) error
}

type ServiceImpl struct {
	client *apiclient.Client
	logger *zap.Logger
}

func NewLessonService(client *apiclient.Client, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{client: client, logger: logger}
}

func lessonPath(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("lesson id is required: %w", models.ErrBadRequest)
	}
	return "/lessons/" + id, nil
}

// InputFromForm reads the lesson form. The datetime-local values carry no
// zone and are read in loc.
func InputFromForm(form url.Values, loc *time.Location) (models.LessonInput, error) {
	in := models.LessonInput{
		Name:          strings.TrimSpace(form.Get("name")),
		GoogleMeetURL: strings.TrimSpace(form.Get("googleMeetUrl")),
	}
	if in.Name == "" {
		return in, fmt.Errorf("lesson name is required: %w", models.ErrValidation)
	}
	if in.GoogleMeetURL != "" && !models.IsWebURL(in.GoogleMeetURL) {
		return in, fmt.Errorf("meet link must be an http(s) URL: %w", models.ErrValidation)
	}

	start, err := time.ParseInLocation(models.DateTimeLocal, form.Get("startTime"), loc)
	if err != nil {
		return in, fmt.Errorf("invalid start time: %w", models.ErrValidation)
	}
	end, err := time.ParseInLocation(models.DateTimeLocal, form.Get("endTime"), loc)
	if err != nil {
		return in, fmt.Errorf("invalid end time: %w", models.ErrValidation)
	}
	if !end.After(start) {
		return in, fmt.Errorf("lesson must end after it starts: %w", models.ErrValidation)
	}
	in.StartTime, in.EndTime = &start, &end

	if raw := strings.TrimSpace(form.Get("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return in, fmt.Errorf("invalid price %q: %w", raw, models.ErrValidation)
		}
		in.Price = &price
	}
	return in, nil
}

func (s *ServiceImpl) ForTeacher(ctx context.Context, creds apiclient.Credentials) ([]models.Lesson, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "ForTeacher", s.logger)
	defer op.End()

	lessons, err := apiclient.Get[[]models.Lesson](ctx, s.client, creds, "/lessons/for-teacher", nil)
	if err != nil {
		return nil, op.Fail(err, "failed to list own lessons")
	}
	op.Done("Own lessons listed", attribute.Int("lessons.count", len(lessons)))
	return lessons, nil
}

func (s *ServiceImpl) TeacherLessons(ctx context.Context, creds apiclient.Credentials, teacherID string, f listing.LessonFilters) ([]models.Lesson, models.Pagination, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "TeacherLessons", s.logger,
		attribute.String("teacher.id", teacherID), attribute.String("status", string(f.Status)))
	defer op.End()

	if teacherID == "" {
		return nil, models.Pagination{}, fmt.Errorf("teacher id is required: %w", models.ErrBadRequest)
	}
	q := f.Values()
	q.Del("teacherId")
	page, err := apiclient.GetPage[models.Lesson](ctx, s.client, creds, "/lessons/"+teacherID+"/lessons", q)
	if err != nil {
		return nil, models.Pagination{}, op.Fail(err, "failed to list teacher lessons")
	}

	lessons, pagination := page.Data, page.Pagination
	if pagination.TotalPages == 0 && len(lessons) > 0 {
		lessons, pagination = f.Apply(lessons)
	}
	op.Done("Teacher lessons listed", attribute.Int("lessons.count", len(lessons)))
	return lessons, pagination, nil
}

func (s *ServiceImpl) Get(ctx context.Context, creds apiclient.Credentials, id string) (*models.Lesson, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Get", s.logger, attribute.String("lesson.id", id))
	defer op.End()

	path, err := lessonPath(id)
	if err != nil {
		return nil, err
	}
	l, err := apiclient.Get[models.Lesson](ctx, s.client, creds, path, nil)
	if err != nil {
		return nil, op.Fail(err, "failed to load lesson")
	}
	op.Done("Lesson loaded")
	return &l, nil
}

func (s *ServiceImpl) Create(ctx context.Context, creds apiclient.Credentials, in models.LessonInput) (*models.Lesson, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Create", s.logger, attribute.String("teacher.id", in.TeacherID))
	defer op.End()

	l, err := apiclient.Send[models.Lesson](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/lessons",
		Body:   in,
	})
	if err != nil {
		return nil, op.Fail(err, "failed to create lesson")
	}
	op.Done("Lesson created", attribute.String("lesson.id", l.ID))
	return &l, nil
}

func (s *ServiceImpl) Update(ctx context.Context, creds apiclient.Credentials, id string, in models.LessonInput) (*models.Lesson, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Update", s.logger, attribute.String("lesson.id", id))
	defer op.End()

	path, err := lessonPath(id)
	if err != nil {
		return nil, err
	}
	l, err := apiclient.Send[models.Lesson](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   in,
	})
	if err != nil {
		return nil, op.Fail(err, "failed to update lesson")
	}
	op.Done("Lesson updated")
	return &l, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, creds apiclient.Credentials, id string) error {
	return s.act(ctx, creds, "Delete", http.MethodDelete, id, "", nil)
}

func (s *ServiceImpl) Book(ctx context.Context, creds apiclient.Credentials, id, studentID string) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return fmt.Errorf("student id is required: %w", models.ErrValidation)
	}
	return s.act(ctx, creds, "Book", http.MethodPost, id, "/book", map[string]string{"studentId": studentID})
}

func (s *ServiceImpl) Cancel(ctx context.Context, creds apiclient.Credentials, id, reason string) error {
	return s.act(ctx, creds, "Cancel", http.MethodPost, id, "/cancel", map[string]string{"reason": strings.TrimSpace(reason)})
}

func (s *ServiceImpl) Complete(ctx context.Context, creds apiclient.Credentials, id string) error {
	return s.act(ctx, creds, "Complete", http.MethodPost, id, "/complete", nil)
}

// act runs a lesson state change whose response body is not needed.
func (s *ServiceImpl) act(ctx context.Context, creds apiclient.Credentials, name, method, id, suffix string, body any) error {
	ctx, op := domain.StartOp(ctx, tracerName, name, s.logger, attribute.String("lesson.id", id))
	defer op.End()

	path, err := lessonPath(id)
	if err != nil {
		return err
	}
	if _, err := apiclient.Send[json.RawMessage](ctx, s.client, creds, apiclient.Request{
		Method: method,
		Path:   path + suffix,
		Body:   body,
	}); err != nil {
		return op.Fail(err, "lesson "+strings.ToLower(name)+" failed")
	}
	op.Done("Lesson " + strings.ToLower(name) + " done")
	return nil
}
