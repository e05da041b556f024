package service

import (
	"context"

	"github.com/Dhoini/invoice-dashboard/internal/auth"
	"github.com/Dhoini/invoice-dashboard/internal/metrics"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
)

// Сообщения формы входа
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgSomethingWentWrong = "Something went wrong"
)

// SignInProvider внешний провайдер входа
type SignInProvider interface {
	SignIn(ctx context.Context, providerID string, creds auth.Credentials) (*auth.Session, error)
}

// AuthResult итог попытки входа: либо Message для формы, либо Session
type AuthResult struct {
	Message string
	Session *auth.Session
}

// AuthService интерфейс сервиса входа
type AuthService interface {
	Authenticate(ctx context.Context, prevState string, creds auth.Credentials) (AuthResult, error)
}

type authService struct {
	provider SignInProvider
	metrics  metrics.InvoiceMetrics
	log      *logger.Logger
}

// NewAuthService создает сервис входа
func NewAuthService(provider SignInProvider, m metrics.InvoiceMetrics, log *logger.Logger) AuthService {
	return &authService{provider: provider, metrics: m, log: log}
}

// Authenticate передает учетные данные провайдеру и переводит его
// классифицированные ошибки в сообщения для формы. Неклассифицированная
// ошибка возвращается вызывающему как есть.
func (s *authService) Authenticate(ctx context.Context, _ string, creds auth.Credentials) (AuthResult, error) {
	session, err := s.provider.SignIn(ctx, auth.CredentialsProviderID, creds)
	if err == nil {
		s.metrics.IncAuthAttempt("success")
		return AuthResult{Session: session}, nil
	}

	authErr, ok := auth.AsError(err)
	if !ok {
		s.metrics.IncAuthAttempt("error")
		return AuthResult{}, err
	}

	switch authErr.Type {
	case auth.CredentialsSignin:
		s.metrics.IncAuthAttempt("invalid_credentials")
		return AuthResult{Message: MsgInvalidCredentials}, nil
	default:
		s.log.Warnw("Sign-in failed", "type", authErr.Type, "error", authErr.Err)
		s.metrics.IncAuthAttempt("failed")
		return AuthResult{Message: MsgSomethingWentWrong}, nil
	}
}
