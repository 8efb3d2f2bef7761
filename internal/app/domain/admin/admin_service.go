package admin

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
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const tracerName = "AdminService"

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Stats(ctx context.Context, creds apiclient.Credentials) (*models.DashboardStats, error)
	CreateAdmin(ctx context.Context, creds apiclient.Credentials, in models.CreateAdmin) error
	UpdateProfile(ctx context.Context, creds apiclient.Credentials, in models.EditProfile) error
	ChangePassword(ctx context.Context, creds apiclient.Credentials, in models.ChangePassword) error
	PaymentStats(ctx context.Context, creds apiclient.Credentials) (*models.PaymentStats, error)
}

type ServiceImpl struct {
	client *apiclient.Client
	logger *zap.Logger
}

func NewAdminService(client *apiclient.Client, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{client: client, logger: logger}
}

func (s *ServiceImpl) Stats(ctx context.Context, creds apiclient.Credentials) (*models.DashboardStats, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "Stats", s.logger)
	defer op.End()

	stats, err := apiclient.Get[models.DashboardStats](ctx, s.client, creds, "/admin/stats", nil)
	if err != nil {
		return nil, op.Fail(err, "failed to load dashboard stats")
	}
	op.Done("Dashboard stats loaded", attribute.Int("students", stats.TotalStudents))
	return &stats, nil
}

func (s *ServiceImpl) CreateAdmin(ctx context.Context, creds apiclient.Credentials, in models.CreateAdmin) error {
	ctx, op := domain.StartOp(ctx, tracerName, "CreateAdmin", s.logger, attribute.String("username", in.Username))
	defer op.End()

	in.Username = strings.TrimSpace(in.Username)
	if len(in.Username) < 2 || len(in.Password) < 6 {
		return fmt.Errorf("username needs 2 and password 6 characters: %w", models.ErrValidation)
	}

	if _, err := apiclient.Send[json.RawMessage](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/admin",
		Body:   in,
	}); err != nil {
		return op.Fail(err, "failed to create admin")
	}
	op.Done("Admin created")
	return nil
}

func (s *ServiceImpl) UpdateProfile(ctx context.Context, creds apiclient.Credentials, in models.EditProfile) error {
	ctx, op := domain.StartOp(ctx, tracerName, "UpdateProfile", s.logger)
	defer op.End()

	in.Username = strings.TrimSpace(in.Username)
	if len(in.Username) < 2 {
		return fmt.Errorf("username needs 2 characters: %w", models.ErrValidation)
	}

	if _, err := apiclient.Send[json.RawMessage](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/admin/update",
		Body:   in,
	}); err != nil {
		return op.Fail(err, "failed to update profile")
	}
	op.Done("Profile updated")
	return nil
}

func (s *ServiceImpl) ChangePassword(ctx context.Context, creds apiclient.Credentials, in models.ChangePassword) error {
	ctx, op := domain.StartOp(ctx, tracerName, "ChangePassword", s.logger)
	defer op.End()

	if in.OldPassword == "" || len(in.NewPassword) < 6 {
		return fmt.Errorf("new password needs 6 characters: %w", models.ErrValidation)
	}

	if _, err := apiclient.Send[json.RawMessage](ctx, s.client, creds, apiclient.Request{
		Method: http.MethodPatch,
		Path:   "/admin/changePassword",
		Body:   in,
	}); err != nil {
		return op.Fail(err, "failed to change password")
	}
	op.Done("Password changed")
	return nil
}

func (s *ServiceImpl) PaymentStats(ctx context.Context, creds apiclient.Credentials) (*models.PaymentStats, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "PaymentStats", s.logger)
	defer op.End()

	stats, err := apiclient.Get[models.PaymentStats](ctx, s.client, creds, "/payment/stats", nil)
	if err != nil {
		return nil, op.Fail(err, "failed to load payments")
	}
	op.Done("Payments loaded", attribute.Int("transactions", len(stats.Transactions)))
	return &stats, nil
}
