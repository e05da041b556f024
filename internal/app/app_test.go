package app

import (
	"testing"

	"github.com/Dhoini/invoice-dashboard/internal/config"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSecret(t *testing.T) {
	log := logger.NewNop()

	secret, err := sessionSecret(&config.Config{Auth: config.AuthConfig{JWTSecret: "configured"}}, log)
	require.NoError(t, err)
	assert.Equal(t, []byte("configured"), secret)

	first, err := sessionSecret(&config.Config{}, log)
	require.NoError(t, err)
	second, err := sessionSecret(&config.Config{}, log)
	require.NoError(t, err)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)

	_, err = sessionSecret(&config.Config{App: config.AppConfig{Env: "production"}}, log)
	assert.Error(t, err)
}

func TestCloseRunsInReverseOrder(t *testing.T) {
	var order []int
	a := &App{closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return nil },
	}}

	require.NoError(t, a.Close())
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, a.Close())
}
