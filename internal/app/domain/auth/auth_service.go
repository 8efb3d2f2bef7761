package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/apiclient"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const tracerName = "AuthService"

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

var _ Service = (*ServiceImpl)(nil)

// Result is a successful sign-in, ready to become a session.
type Result struct {
	Token       string
	Role        models.Role
	Username    string
	DisplayName string
	Cookies     []*http.Cookie
}

type Service interface {
	AdminLogin(ctx context.Context, username, password string) (*Result, error)
	TeacherLogin(ctx context.Context, email, password string) (*Result, error)
	SendOTP(ctx context.Context, email, phoneNumber, password string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	TelegramLogin(ctx context.Context, initData string) (*Result, error)
	// GoogleURL is the backend endpoint that starts teacher Google sign-in.
	GoogleURL() string
}

type ServiceImpl struct {
	client *apiclient.Client
	logger *zap.Logger
}

func NewAuthService(client *apiclient.Client, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{client: client, logger: logger}
}

type adminSignin struct {
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
}

func (s *ServiceImpl) AdminLogin(ctx context.Context, username, password string) (*Result, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "AdminLogin", s.logger, attribute.String("username", username))
	defer op.End()

	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", models.ErrValidation)
	}

	data, resp, err := apiclient.Anonymous[adminSignin](ctx, s.client, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/signin/admin",
		Body:   map[string]string{"username": username, "password": password},
	})
	if err != nil {
		return nil, op.Fail(err, "admin sign-in failed")
	}
	if data.AccessToken == "" {
		return nil, op.Fail(apiclient.ErrEmptyToken, "admin sign-in returned no token")
	}
	role, err := models.ParseRole(data.Role)
	if err != nil || (role != models.RoleAdmin && role != models.RoleSuperAdmin) {
		return nil, op.Fail(fmt.Errorf("%w: %q", models.ErrInvalidRole, data.Role), "admin sign-in returned unexpected role")
	}

	name := data.Username
	if name == "" {
		name = username
	}
	op.Done("Admin signed in", attribute.String("role", role.String()))
	return &Result{Token: data.AccessToken, Role: role, Username: name, DisplayName: name, Cookies: resp.Cookies}, nil
}

func (s *ServiceImpl) TeacherLogin(ctx context.Context, email, password string) (*Result, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "TeacherLogin", s.logger, attribute.String("email", email))
	defer op.End()

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", models.ErrValidation)
	}

	token, resp, err := apiclient.Anonymous[string](ctx, s.client, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/signin/teacher",
		Body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return nil, op.Fail(err, "teacher sign-in failed")
	}
	if token == "" {
		return nil, op.Fail(apiclient.ErrEmptyToken, "teacher sign-in returned no token")
	}

	op.Done("Teacher signed in")
	return &Result{Token: token, Role: models.RoleTeacher, Username: email, Cookies: resp.Cookies}, nil
}

func (s *ServiceImpl) SendOTP(ctx context.Context, email, phoneNumber, password string) error {
	ctx, op := domain.StartOp(ctx, tracerName, "SendOTP", s.logger, attribute.String("email", email))
	defer op.End()

	if email == "" || strings.TrimSpace(phoneNumber) == "" || password == "" {
		return fmt.Errorf("email, phone number and password are required: %w", models.ErrValidation)
	}

	_, err := apiclient.Send[json.RawMessage](ctx, s.client, nil, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/teacher/google/send-otp",
		Body:   map[string]string{"email": email, "phoneNumber": phoneNumber, "password": password},
	})
	if err != nil {
		return op.Fail(err, "send otp failed")
	}
	op.Done("OTP sent")
	return nil
}

func (s *ServiceImpl) VerifyOTP(ctx context.Context, email, otp string) error {
	ctx, op := domain.StartOp(ctx, tracerName, "VerifyOTP", s.logger, attribute.String("email", email))
	defer op.End()

	if !otpPattern.MatchString(otp) {
		return fmt.Errorf("otp must be 6 digits: %w", models.ErrValidation)
	}

	_, err := apiclient.Send[json.RawMessage](ctx, s.client, nil, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/teacher/google/verify-otp",
		Body:   map[string]string{"email": email, "otp": otp},
	})
	if err != nil {
		return op.Fail(err, "verify otp failed")
	}
	op.Done("OTP verified")
	return nil
}

type telegramSignin struct {
	AccessToken string         `json:"accessToken"`
	Student     models.Student `json:"student"`
}

func (s *ServiceImpl) TelegramLogin(ctx context.Context, initData string) (*Result, error) {
	ctx, op := domain.StartOp(ctx, tracerName, "TelegramLogin", s.logger)
	defer op.End()

	if strings.TrimSpace(initData) == "" {
		return nil, fmt.Errorf("telegram init data is missing: %w", models.ErrValidation)
	}

	data, resp, err := apiclient.Anonymous[telegramSignin](ctx, s.client, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/telegram/login",
		Body:   map[string]string{"initData": initData},
	})
	if err != nil {
		return nil, op.Fail(err, "telegram sign-in failed")
	}
	if data.AccessToken == "" {
		return nil, op.Fail(apiclient.ErrEmptyToken, "telegram sign-in returned no token")
	}

	op.Done("Student signed in", attribute.String("student.id", data.Student.ID))
	return &Result{
		Token:       data.AccessToken,
		Role:        models.RoleStudent,
		Username:    data.Student.TgUsername,
		DisplayName: data.Student.FullName(),
		Cookies:     resp.Cookies,
	}, nil
}

func (s *ServiceImpl) GoogleURL() string {
	return s.client.Endpoint("/teacher/google")
}
