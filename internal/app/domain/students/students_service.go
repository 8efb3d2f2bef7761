package students

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/apiclient"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const tracerName = "StudentService"

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	List(ctx context.Context, creds apiclient.Credentials) ([]models.Student, error)
	Get(ctx context.Context, creds apiclient.Credentials, id string) (*models.Student, error)
	Stats(ctx context.Context, creds apiclient.Credentials) (*models.StudentStats, error)
	Update(ctx context.Context, creds apiclient.Credentials, id string, in models.StudentUpdate) (*models.Student, error)
	// ToggleBlock blocks an active student and unblocks a blocked one.
	ToggleBlock(ctx context.Context, creds apiclient.Credentials, id string) error
	Delete(ctx context.Context, creds apiclient.Credentials, id string) error
}

type ServiceImpl struct {
	client *apiclient.Client
	logger *zap.Logger
}

func NewStudentService(client *apiclient.Client, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{client: client, logger: logger}
}

func studentPath(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("student id is required: %w", models.ErrBadRequest)
	}
	return "/student/" + id, nil
}

func (s *ServiceImpl) List(ctx context.Context, creds apiclient.Credentials) ([]models.Student, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "List", s.logger)
	defer op.End()

	list, err := apiclient.Get[[]models.Student](ctx, s.client, creds, "/student", nil)
	if err != nil {
		return nil, op.Fail(err, "failed to list students")
	}
	op.Done("Students listed", attribute.Int("students.count", len(list)))
	return list, nil
}

func (s *ServiceImpl) Get(ctx context.Context, creds apiclient.Credentials, id string) (*models.Student, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Get", s.logger, attribute.String("student.id", id))
	defer op.End()

	path, err := studentPath(id)
	if err != nil {
		return nil, err
	}
	st, err := apiclient.Get[models.Student](ctx, s.client, creds, path, nil)
	if err != nil {
		return nil, op.Fail(err, "failed to load student")
	}
	op.Done("Student loaded")
	return &st, nil
}

func (s *ServiceImpl) Stats(ctx context.Context, creds apiclient.Credentials) (*models.StudentStats, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Stats", s.logger)
	defer op.End()

	stats, err := apiclient.Get[models.StudentStats](ctx, s.client, creds, "/student/stats", nil)
	if err != nil {
		return nil, op.Fail(err, "failed to load student stats")
	}
	op.Done("Student stats loaded")
	return &stats, nil
}

func (s *ServiceImpl) Update(ctx context.Context, creds apiclient.Credentials, id string, in models.StudentUpdate) (*models.Student, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Update", s.logger, attribute.String("student.id", id))
	defer op.End()

	path, err := studentPath(id)
	if err != nil {
		return nil, err
	}
	st, err := apiclient.Send[models.Student](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   in,
	})
	if err != nil {
		return nil, op.Fail(err, "failed to update student")
	}
	op.Done("Student updated")
	return &st, nil
}

func (s *ServiceImpl) ToggleBlock(ctx context.Context, creds apiclient.Credentials, id string) error {
	ctx, op := domain.StartOp(ctx, tracerName, "ToggleBlock", s.logger, attribute.String("student.id", id))
	defer op.End()

	path, err := studentPath(id)
	if err != nil {
		return err
	}
	if _, err := apiclient.Send[json.RawMessage](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPost,
		Path:   path + "/block",
	}); err != nil {
		return op.Fail(err, "failed to toggle student block")
	}
	op.Done("Student block toggled")
	return nil
}

func (s *ServiceImpl) Delete(ctx context.Context, creds apiclient.Credentials, id string) error {
	ctx, op := domain.StartOp(ctx, tracerName, "Delete", s.logger, attribute.String("student.id", id))
	defer op.End()

	path, err := studentPath(id)
	if err != nil {
		return err
	}
	if _, err := apiclient.Send[json.RawMessage](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodDelete,
		Path:   path,
	}); err != nil {
		return op.Fail(err, "failed to delete student")
	}
	op.Done("Student deleted")
	return nil
}
