package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Dhoini/invoice-dashboard/internal/auth"
	"github.com/Dhoini/invoice-dashboard/internal/metrics"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSignIn struct {
	session    *auth.Session
	err        error
	providerID string
	creds      auth.Credentials
}

func (s *stubSignIn) SignIn(_ context.Context, providerID string, creds auth.Credentials) (*auth.Session, error) {
	s.providerID = providerID
	s.creds = creds
	return s.session, s.err
}

func newAuthService(p SignInProvider) AuthService {
	return NewAuthService(p, metrics.NopInvoiceMetrics{}, logger.NewNop())
}

func TestAuthenticate_Success(t *testing.T) {
	p := &stubSignIn{session: &auth.Session{UserID: "u1", Token: "tok"}}
	creds := auth.Credentials{"email": "user@nextmail.com", "password": "123456"}

	res, err := newAuthService(p).Authenticate(context.Background(), "", creds)

	require.NoError(t, err)
	assert.Empty(t, res.Message)
	assert.Equal(t, "u1", res.Session.UserID)
	assert.Equal(t, auth.CredentialsProviderID, p.providerID)
	assert.Equal(t, creds, p.creds)
}

func TestAuthenticate_CredentialsSignin(t *testing.T) {
	p := &stubSignIn{err: auth.NewError(auth.CredentialsSignin, auth.ErrInvalidCredentials)}

	res, err := newAuthService(p).Authenticate(context.Background(), "", nil)

	require.NoError(t, err)
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.Nil(t, res.Session)
}

func TestAuthenticate_OtherClassifiedErrors(t *testing.T) {
	for _, typ := range []auth.ErrorType{auth.CallbackRouteError, auth.Configuration, auth.AccessDenied} {
		p := &stubSignIn{err: auth.NewError(typ, errors.New("boom"))}

		res, err := newAuthService(p).Authenticate(context.Background(), "", nil)

		require.NoError(t, err, "type %s", typ)
		assert.Equal(t, "Something went wrong", res.Message, "type %s", typ)
	}
}

func TestAuthenticate_ClassifiedErrorWrappedStillMapped(t *testing.T) {
	inner := auth.NewError(auth.CredentialsSignin, nil)
	p := &stubSignIn{err: errors.Join(errors.New("context"), inner)}

	res, err := newAuthService(p).Authenticate(context.Background(), "", nil)

	require.NoError(t, err)
	assert.Equal(t, "Invalid credentials", res.Message)
}

func TestAuthenticate_UnclassifiedErrorPropagates(t *testing.T) {
	boom := errors.New("provider crashed")
	p := &stubSignIn{err: boom}

	res, err := newAuthService(p).Authenticate(context.Background(), "", nil)

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, res.Message)
}
