package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/logging"
	"github.com/dmitrijs2005/schoolauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageMode = config.ModeMemory
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_UnknownMode(t *testing.T) {
	c := memoryConfig()
	c.StorageMode = "redis"
	_, err := NewApp(context.Background(), c, logging.Discard())
	require.ErrorContains(t, err, `unknown storage mode "redis"`)
}

func TestNewApp_SeedsAdmin(t *testing.T) {
	c := memoryConfig()
	c.AdminEmail = "admin@school.test"
	c.AdminPassword = "root"

	app, err := NewApp(context.Background(), c, logging.Discard())
	require.NoError(t, err)
	defer app.Close()

	pair, err := app.users.Login(context.Background(), "admin@school.test", "root")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestNewApp_AdminWithoutPassword(t *testing.T) {
	c := memoryConfig()
	c.AdminEmail = "admin@school.test"
	_, err := NewApp(context.Background(), c, logging.Discard())
	require.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig(), logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("app exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestRun_BadAddress(t *testing.T) {
	c := memoryConfig()
	c.HTTPAddr = "127.0.0.1:99999"
	app, err := NewApp(context.Background(), c, logging.Discard())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not fail on a bad address")
	}
}
