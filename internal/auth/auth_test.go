package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/Dhoini/invoice-dashboard/internal/repository"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUsers struct {
	users map[string]domain.User
	err   error
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	if s.err != nil {
		return domain.User{}, s.err
	}
	u, ok := s.users[email]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return u, nil
}

func newTestAuthenticator(t *testing.T, users *stubUsers) *Authenticator {
	t.Helper()
	tokens, err := NewTokenManager([]byte("test-secret"), time.Hour)
	require.NoError(t, err)
	return NewAuthenticator(tokens, logger.NewNop(), NewCredentialsProvider(users))
}

func seededUsers(t *testing.T) *stubUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	return &stubUsers{users: map[string]domain.User{
		"user@nextmail.com": {ID: "u1", Name: "User", Email: "user@nextmail.com", PasswordHash: string(hash)},
	}}
}

func TestSignIn_Success(t *testing.T) {
	a := newTestAuthenticator(t, seededUsers(t))

	session, err := a.SignIn(context.Background(), CredentialsProviderID, Credentials{
		"email":    "user@nextmail.com",
		"password": "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.NotEmpty(t, session.Token)

	claims, err := a.tokens.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "user@nextmail.com", claims.UserEmail)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	a := newTestAuthenticator(t, seededUsers(t))

	cases := map[string]Credentials{
		"wrong password": {"email": "user@nextmail.com", "password": "654321"},
		"unknown user":   {"email": "nobody@nextmail.com", "password": "123456"},
		"bad email":      {"email": "not-an-email", "password": "123456"},
		"short password": {"email": "user@nextmail.com", "password": "123"},
		"empty":          {},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := a.SignIn(context.Background(), CredentialsProviderID, creds)
			authErr, ok := AsError(err)
			require.True(t, ok, "expected classified error, got %v", err)
			assert.Equal(t, CredentialsSignin, authErr.Type)
		})
	}
}

func TestSignIn_RepositoryFailureIsCallbackError(t *testing.T) {
	a := newTestAuthenticator(t, &stubUsers{err: errors.New("connection refused")})

	_, err := a.SignIn(context.Background(), CredentialsProviderID, Credentials{
		"email":    "user@nextmail.com",
		"password": "123456",
	})
	authErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CallbackRouteError, authErr.Type)
}

func TestSignIn_UnknownProvider(t *testing.T) {
	a := newTestAuthenticator(t, seededUsers(t))

	_, err := a.SignIn(context.Background(), "github", Credentials{})
	authErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, Configuration, authErr.Type)
}

func TestSignIn_CanceledContextIsNotClassified(t *testing.T) {
	a := newTestAuthenticator(t, &stubUsers{err: context.Canceled})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.SignIn(ctx, CredentialsProviderID, Credentials{
		"email":    "user@nextmail.com",
		"password": "123456",
	})
	_, classified := AsError(err)
	assert.False(t, classified)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	m, err := NewTokenManager([]byte("secret-a"), time.Minute)
	require.NoError(t, err)
	other, err := NewTokenManager([]byte("secret-b"), time.Minute)
	require.NoError(t, err)

	token, _, err := other.Issue(domain.User{ID: "u1"})
	require.NoError(t, err)
	_, err = m.Validate(token)
	assert.EqualError(t, err, "invalid token signature")

	now := time.Now()
	m.now = func() time.Time { return now }
	token, _, err = m.Issue(domain.User{ID: "u1"})
	require.NoError(t, err)
	m.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = m.Validate(token)
	assert.EqualError(t, err, "token expired")

	_, err = m.Validate("garbage")
	assert.EqualError(t, err, "malformed token")
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager(nil, time.Hour)
	assert.Error(t, err)
}
