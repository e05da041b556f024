package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/Dhoini/invoice-dashboard/internal/repository"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/Dhoini/invoice-dashboard/pkg/req"
	"golang.org/x/crypto/bcrypt"
)

// CredentialsProviderID идентификатор провайдера входа по логину и паролю
const CredentialsProviderID = "credentials"

// Credentials сырые поля формы входа. Их смысл знает только провайдер.
type Credentials map[string]string

// Session результат успешного входа
type Session struct {
	UserID    string
	Email     string
	Name      string
	Token     string
	ExpiresAt time.Time
}

// Provider проверяет учетные данные и возвращает пользователя.
// Для неподходящих учетных данных возвращает ErrInvalidCredentials.
type Provider interface {
	ID() string
	Authorize(ctx context.Context, creds Credentials) (domain.User, error)
}

// Authenticator выполняет вход через зарегистрированных провайдеров
type Authenticator struct {
	providers map[string]Provider
	tokens    *TokenManager
	log       *logger.Logger
}

// NewAuthenticator создает Authenticator с набором провайдеров
func NewAuthenticator(tokens *TokenManager, log *logger.Logger, providers ...Provider) *Authenticator {
	byID := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byID[p.ID()] = p
	}
	return &Authenticator{providers: byID, tokens: tokens, log: log}
}

// SignIn проверяет учетные данные провайдером providerID и выпускает сессию.
// Ошибки провайдера возвращаются как *Error. Отмена контекста возвращается
// как есть: это не ошибка входа.
func (a *Authenticator) SignIn(ctx context.Context, providerID string, creds Credentials) (*Session, error) {
	provider, ok := a.providers[providerID]
	if !ok {
		return nil, NewError(Configuration, fmt.Errorf("unknown provider %q", providerID))
	}

	user, err := provider.Authorize(ctx, creds)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if _, classified := AsError(err); classified {
			return nil, err
		}
		if errors.Is(err, ErrInvalidCredentials) {
			a.log.Debugw("Sign-in rejected", "provider", providerID)
			return nil, NewError(CredentialsSignin, err)
		}
		a.log.Errorw("Sign-in provider failed", "provider", providerID, "error", err)
		return nil, NewError(CallbackRouteError, err)
	}

	token, expiresAt, err := a.tokens.Issue(user)
	if err != nil {
		return nil, NewError(Configuration, err)
	}

	a.log.Infow("User signed in", "provider", providerID, "userID", user.ID)
	return &Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// credentialsForm правила проверки формы входа
type credentialsForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// CredentialsProvider вход по email и паролю, пароли хранятся как bcrypt-хеши
type CredentialsProvider struct {
	users repository.UserRepository
}

// NewCredentialsProvider создает провайдер входа по логину и паролю
func NewCredentialsProvider(users repository.UserRepository) *CredentialsProvider {
	return &CredentialsProvider{users: users}
}

// ID реализует Provider
func (p *CredentialsProvider) ID() string {
	return CredentialsProviderID
}

// Authorize реализует Provider
func (p *CredentialsProvider) Authorize(ctx context.Context, creds Credentials) (domain.User, error) {
	form := credentialsForm{
		Email:    strings.TrimSpace(creds["email"]),
		Password: creds["password"],
	}
	if err := req.IsValid(form); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := p.users.GetByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}
