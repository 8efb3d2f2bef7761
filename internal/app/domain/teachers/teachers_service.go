package teachers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/apiclient"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/listing"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const tracerName = "TeacherService"

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	List(ctx context.Context, creds apiclient.Credentials, f listing.TeacherFilters) ([]models.Teacher, models.Pagination, error)
	Get(ctx context.Context, creds apiclient.Credentials, id string) (*models.TeacherDetails, error)
	Create(ctx context.Context, creds apiclient.Credentials, in models.TeacherInput) (*models.Teacher, error)
	Update(ctx context.Context, creds apiclient.Credentials, id string, in models.TeacherInput) (*models.Teacher, error)
	Delete(ctx context.Context, creds apiclient.Credentials, id string) error
	SetStatus(ctx context.Context, creds apiclient.Credentials, id string, active bool) error
	Activate(ctx context.Context, creds apiclient.Credentials, id string) error
	Me(ctx context.Context, creds apiclient.Credentials) (*models.Teacher, error)
	UpdateProfile(ctx context.Context, creds apiclient.Credentials, in models.TeacherProfileUpdate) (*models.Teacher, error)
}

type ServiceImpl struct {
	client *apiclient.Client
	logger *zap.Logger
}

func NewTeacherService(client *apiclient.Client, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{client: client, logger: logger}
}

func teacherPath(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("teacher id is required: %w", models.ErrBadRequest)
	}
	return "/teacher/" + id, nil
}

// List forwards the filters to the backend. A response without paging fields
// is the whole unfiltered list, so the filters are applied here instead.
func (s *ServiceImpl) List(ctx context.Context, creds apiclient.Credentials, f listing.TeacherFilters) ([]models.Teacher, models.Pagination, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "List", s.logger,
		attribute.String("sort_by", f.SortBy), attribute.Int("page", f.Page))
	defer op.End()

	page, err := apiclient.GetPage[models.Teacher](ctx, s.client, creds, "/teacher", f.Values())
	if err != nil {
		return nil, models.Pagination{}, op.Fail(err, "failed to list teachers")
	}

	teachers, pagination := page.Data, page.Pagination
	if pagination.TotalPages == 0 && len(teachers) > 0 {
		teachers, pagination = f.Apply(teachers)
	}
	op.Done("Teachers listed", attribute.Int("teachers.count", len(teachers)))
	return teachers, pagination, nil
}

func (s *ServiceImpl) Get(ctx context.Context, creds apiclient.Credentials, id string) (*models.TeacherDetails, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Get", s.logger, attribute.String("teacher.id", id))
	defer op.End()

	path, err := teacherPath(id)
	if err != nil {
		return nil, err
	}
	details, err := apiclient.Get[models.TeacherDetails](ctx, s.client, creds, path, nil)
	if err != nil {
		return nil, op.Fail(err, "failed to load teacher")
	}
	op.Done("Teacher loaded", attribute.Int("lessons.count", len(details.Lessons)))
	return &details, nil
}

func validateInput(in models.TeacherInput, create bool) error {
	if in.Specification != "" && !in.Specification.Valid() {
		return fmt.Errorf("unknown specification %q: %w", in.Specification, models.ErrValidation)
	}
	if in.HourPrice < 0 {
		return fmt.Errorf("hour price cannot be negative: %w", models.ErrValidation)
	}
	if in.PortfolioLink != "" && !models.IsWebURL(in.PortfolioLink) {
		return fmt.Errorf("portfolio link must be an http(s) URL: %w", models.ErrValidation)
	}
	if create && (strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "") {
		return fmt.Errorf("full name, email and password are required: %w", models.ErrValidation)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, creds apiclient.Credentials, in models.TeacherInput) (*models.Teacher, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Create", s.logger, attribute.String("email", in.Email))
	defer op.End()

	if err := validateInput(in, true); err != nil {
		return nil, err
	}
	t, err := apiclient.Send[models.Teacher](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/teacher",
		Body:   in,
	})
	if err != nil {
		return nil, op.Fail(err, "failed to create teacher")
	}
	op.Done("Teacher created", attribute.String("teacher.id", t.ID))
	return &t, nil
}

func (s *ServiceImpl) Update(ctx context.Context, creds apiclient.Credentials, id string, in models.TeacherInput) (*models.Teacher, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Update", s.logger, attribute.String("teacher.id", id))
	defer op.End()

	path, err := teacherPath(id)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in, false); err != nil {
		return nil, err
	}
	in.Password = ""
	t, err := apiclient.Send[models.Teacher](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   in,
	})
	if err != nil {
		return nil, op.Fail(err, "failed to update teacher")
	}
	op.Done("Teacher updated")
	return &t, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, creds apiclient.Credentials, id string) error {
	ctx, op := domain.StartOp(ctx, tracerName, "Delete", s.logger, attribute.String("teacher.id", id))
	defer op.End()

	path, err := teacherPath(id)
	if err != nil {
		return err
	}
	if _, err := apiclient.Send[json.RawMessage](ctx, s.client, creds, apiclient.Request{Method: http.MethodDelete, Path: path}); err != nil {
		return op.Fail(err, "failed to delete teacher")
	}
	op.Done("Teacher deleted")
	return nil
}

func (s *ServiceImpl) SetStatus(ctx context.Context, creds apiclient.Credentials, id string, active bool) error {
	ctx, op := domain.StartOp(ctx, tracerName, "SetStatus", s.logger,
		attribute.String("teacher.id", id), attribute.Bool("active", active))
	defer op.End()

	path, err := teacherPath(id)
	if err != nil {
		return err
	}
	if _, err := apiclient.Send[json.RawMessage](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPatch,
		Path:   path + "/status",
		Body:   map[string]bool{"isActive": active},
	}); err != nil {
		return op.Fail(err, "failed to change teacher status")
	}
	op.Done("Teacher status changed")
	return nil
}

func (s *ServiceImpl) Activate(ctx context.Context, creds apiclient.Credentials, id string) error {
	ctx, op := domain.StartOp(ctx, tracerName, "Activate", s.logger, attribute.String("teacher.id", id))
	defer op.End()

	if id == "" {
		return fmt.Errorf("teacher id is required: %w", models.ErrBadRequest)
	}
	if _, err := apiclient.Send[json.RawMessage](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/teacher/activate/" + id,
	}); err != nil {
		return op.Fail(err, "failed to activate teacher")
	}
	op.Done("Teacher activated")
	return nil
}

func (s *ServiceImpl) Me(ctx context.Context, creds apiclient.Credentials) (*models.Teacher, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Me", s.logger)
	defer op.End()

	t, err := apiclient.Get[models.Teacher](ctx, s.client, creds, "/teacher/me", nil)
	if err != nil {
		return nil, op.Fail(err, "failed to load teacher profile")
	}
	op.Done("Teacher profile loaded")
	return &t, nil
}

func (s *ServiceImpl) UpdateProfile(ctx context.Context, creds apiclient.Credentials, in models.TeacherProfileUpdate) (*models.Teacher, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "UpdateProfile", s.logger)
	defer op.End()

	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.PhoneNumber) == "" {
		return nil, fmt.Errorf("full name and phone number are required: %w", models.ErrValidation)
	}
	if in.Specification != "" && !in.Specification.Valid() {
		return nil, fmt.Errorf("unknown specification %q: %w", in.Specification, models.ErrValidation)
	}
	if in.PortfolioLink != "" && !models.IsWebURL(in.PortfolioLink) {
		return nil, fmt.Errorf("portfolio link must be an http(s) URL: %w", models.ErrValidation)
	}
	t, err := apiclient.Send[models.Teacher](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/teacher/update",
		Body:   in,
	})
	if err != nil {
		return nil, op.Fail(err, "failed to update teacher profile")
	}
	op.Done("Teacher profile updated")
	return &t, nil
}
