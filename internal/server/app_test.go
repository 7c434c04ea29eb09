package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageDriver = "memory"
	c.SecretKey = "app-secret"
	c.BcryptCost = 4
	return c
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewApp_FailsFast(t *testing.T) {
	ctx := context.Background()

	c := memoryConfig()
	c.SecretKey = ""
	_, err := NewApp(ctx, c, logging.NewDiscardLogger())
	assert.ErrorIs(t, err, auth.ErrMissingSecretKey)

	c = memoryConfig()
	c.HashAlgorithm = "md5"
	_, err = NewApp(ctx, c, logging.NewDiscardLogger())
	assert.Error(t, err)

	c = memoryConfig()
	c.StorageDriver = "sqlite"
	_, err = NewApp(ctx, c, logging.NewDiscardLogger())
	assert.ErrorContains(t, err, "db init error")
}

func TestApp_RunServesAndStops(t *testing.T) {
	c := memoryConfig()
	c.HTTPAddr = freeAddr(t)
	c.GRPCAddr = freeAddr(t)

	app, err := NewApp(context.Background(), c, logging.NewDiscardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	base := fmt.Sprintf("http://%s", c.HTTPAddr)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Post(base+"/signup", "application/json",
		strings.NewReader(`{"name":"Ana","email":"ana@x.com","gender":"f","password":"pw1"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_RunReportsListenerFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	c := memoryConfig()
	c.HTTPAddr = busy.Addr().String()
	c.GRPCAddr = freeAddr(t)

	app, err := NewApp(context.Background(), c, logging.NewDiscardLogger())
	require.NoError(t, err)

	select {
	case err := <-runAsync(app):
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after listener failure")
	}
}

func runAsync(app *App) <-chan error {
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	return done
}
