package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/digimarket/internal/config"
	"github.com/vncsmyrnk/digimarket/internal/core/ports"
)

func memoryConfig() config.Config {
	return config.Config{
		Storage:            config.StorageMemory,
		JWTSecret:          "test",
		JWTExpiresIn:       time.Hour,
		TokenSweepInterval: time.Minute,
		BcryptCost:         4,
		RateLimitPerMinute: 1000,
	}
}

func TestNew_MemoryStorage(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, memoryConfig())
	require.NoError(t, err)
	defer a.Close()

	assert.NoError(t, a.Migrate(ctx))
	assert.NoError(t, a.Ready(ctx))

	_, err = a.UserService.Register(ctx, ports.RegisterUserInput{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	session, err := a.Auth.Login(ctx, "a@example.com", "password123")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/users/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	n, err := a.Sweeper(zerolog.Nop()).SweepOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNew_UnknownStorage(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage = "redis"
	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "redis"))
}
